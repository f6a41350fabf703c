package handlers

import (
	"bytes"
	"context"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/MatheusPalmieri/finance/database"
	"github.com/MatheusPalmieri/finance/logger"
	"github.com/MatheusPalmieri/finance/models"
	"github.com/MatheusPalmieri/finance/statement"
)

// CommitRequest carries the candidates the user approved in the review step.
type CommitRequest struct {
	Transactions []statement.Candidate `json:"transactions"`
}

// ErrorReportRequest carries the failed bucket of an import result.
type ErrorReportRequest struct {
	Failed []statement.Candidate `json:"failed"`
}

// PreviewImport parses an uploaded statement file and returns every
// candidate row, valid and invalid, for the review step. Invalid rows carry
// their errors inline so the UI can show them next to the row.
func PreviewImport(c *fiber.Ctx) error {
	if _, err := requireUser(c); err != nil {
		return unauthorized(c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A statement file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Could not open uploaded file"})
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Could not read uploaded file"})
	}

	candidates, err := statement.Parse(string(content))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if len(candidates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No transactions found in file"})
	}

	return c.JSON(fiber.Map{"transactions": candidates})
}

// CommitImport writes the approved candidates as bills, skipping duplicates
// already in the store, and returns the full outcome tally.
func CommitImport(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return unauthorized(c, err)
	}

	var req CommitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	log := logger.FromContext(c.UserContext())
	result, err := statement.Commit(c.UserContext(), &gormBillStore{}, userID, req.Transactions)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("import commit failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	log.Info().
		Str("user_id", userID.String()).
		Int("success", result.Success).
		Int("duplicates", result.Duplicates).
		Int("errors", result.Errors).
		Msg("import commit finished")

	return c.JSON(result)
}

// ExportErrorReport serializes the failed bucket of an import run as a
// downloadable CSV.
func ExportErrorReport(c *fiber.Ctx) error {
	if _, err := requireUser(c); err != nil {
		return unauthorized(c, err)
	}

	var req ErrorReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	var buf bytes.Buffer
	if err := statement.WriteErrorReport(&buf, req.Failed); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build error report"})
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="import_error_report.csv"`)
	return c.Send(buf.Bytes())
}

// gormBillStore backs the commit stage with the application database.
type gormBillStore struct{}

func (s *gormBillStore) ExistingForDedup(ctx context.Context, userID uuid.UUID) ([]statement.ExistingBill, error) {
	var existing []statement.ExistingBill
	err := database.DB.WithContext(ctx).
		Model(&models.Bill{}).
		Select("name", "amount", "date", "description").
		Where("user_id = ? AND status <> ?", userID, models.StatusDeleted).
		Find(&existing).Error
	return existing, err
}

func (s *gormBillStore) Insert(ctx context.Context, bill *models.Bill) error {
	return database.DB.WithContext(ctx).Create(bill).Error
}
