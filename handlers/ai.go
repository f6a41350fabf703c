package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"google.golang.org/genai"

	"github.com/MatheusPalmieri/finance/database"
	applogger "github.com/MatheusPalmieri/finance/logger"
	"github.com/MatheusPalmieri/finance/models"
)

// CategorySuggestion is one Gemini proposal for a bill still tagged "other".
type CategorySuggestion struct {
	BillID            string `json:"bill_id"`
	SuggestedCategory string `json:"suggested_category"`
	CleanName         string `json:"clean_name"`
}

// billCategories is the vocabulary the model is asked to pick from. It
// matches the category options of the add-bill form.
var billCategories = []string{
	"salary", "freelance", "investment", "gift", "market", "food",
	"transport", "health", "education", "entertainment", "utilities",
	"rent", "insurance", "shopping", "travel", "transfer", "study",
	"office", "other",
}

// SuggestCategories asks Gemini for better categories for the user's bills
// that are still tagged "other". Suggestions are advisory; nothing is
// written.
func SuggestCategories(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return unauthorized(c, err)
	}

	log := applogger.FromContext(c.UserContext())
	log.Info().Str("user_id", userID.String()).Msg("starting AI category analysis")

	// Limit to 50 to avoid token limits and keep latency reasonable.
	var bills []models.Bill
	if err := database.DB.
		Where("user_id = ? AND status <> ? AND (category = ? OR category = ?)",
			userID, models.StatusDeleted, "other", "").
		Limit(50).
		Find(&bills).Error; err != nil {
		log.Error().Err(err).Msg("failed to fetch bills")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch bills"})
	}

	if len(bills) == 0 {
		return c.JSON(fiber.Map{
			"message":     "No uncategorized bills found",
			"suggestions": []CategorySuggestion{},
		})
	}

	var promptBuilder strings.Builder
	promptBuilder.WriteString("You are a financial analyst. Analyze these bill records.\n")
	promptBuilder.WriteString("Return a RAW JSON ARRAY of objects. Do NOT use markdown formatting.\n")
	promptBuilder.WriteString("Each object must have: 'bill_id', 'suggested_category' (one of: ")
	promptBuilder.WriteString(strings.Join(billCategories, ", "))
	promptBuilder.WriteString("), and 'clean_name' (a cleaned-up display name).\n\n")

	for _, b := range bills {
		promptBuilder.WriteString(fmt.Sprintf(`{"bill_id": "%s", "name": "%s", "description": "%s", "amount": %.2f}`+"\n",
			b.ID, b.Name, b.Description, b.Amount))
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Error().Msg("GEMINI_API_KEY not set")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "GEMINI_API_KEY not set"})
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		log.Error().Err(err).Msg("failed to init AI client")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to init AI client"})
	}

	resp, err := client.Models.GenerateContent(ctx, "gemini-1.5-flash", genai.Text(promptBuilder.String()), nil)
	if err != nil {
		log.Error().Err(err).Msg("AI generation failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "AI generation failed: " + err.Error()})
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Empty response from AI"})
	}

	rawText := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			rawText += part.Text
		}
	}

	// Clean Markdown if present (Gemini loves adding ```json ... ```)
	rawText = strings.TrimSpace(rawText)
	rawText = strings.TrimPrefix(rawText, "```json")
	rawText = strings.TrimPrefix(rawText, "```")
	rawText = strings.TrimSuffix(rawText, "```")

	var suggestions []CategorySuggestion
	if err := json.Unmarshal([]byte(rawText), &suggestions); err != nil {
		log.Error().Err(err).Str("raw", rawText).Msg("failed to parse AI response")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to parse AI response", "raw": rawText})
	}

	return c.JSON(fiber.Map{
		"count":       len(suggestions),
		"suggestions": suggestions,
	})
}
