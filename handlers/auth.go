package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var errUserRequired = errors.New("User ID required in X-User-ID header")

// requireUser extracts the authenticated user's id from the X-User-ID
// header. Identity is established upstream (hosted auth); the backend only
// requires that it is present and well formed.
func requireUser(c *fiber.Ctx) (uuid.UUID, error) {
	userID, err := uuid.Parse(c.Get("X-User-ID"))
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, errUserRequired
	}
	return userID, nil
}

// unauthorized writes the standard 401 response for a missing identity.
func unauthorized(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
}
