package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/MatheusPalmieri/finance/database"
	"github.com/MatheusPalmieri/finance/models"
)

// UpdateBillRequest is the edit form payload: a full replacement of the
// editable fields.
type UpdateBillRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Amount          float64 `json:"amount"`
	TransactionType string  `json:"transaction_type"`
	Date            string  `json:"date"`
	Category        string  `json:"category"`
	PaymentMethod   string  `json:"payment_method"`
	IsRecurring     bool    `json:"is_recurring"`
	IsEssential     bool    `json:"is_essential"`
}

// ListBills returns the user's non-deleted bills, newest first, optionally
// narrowed to one calendar month (English month name, any year) and a
// free-text search over name and description.
func ListBills(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return unauthorized(c, err)
	}

	var bills []models.Bill
	if err := database.DB.
		Where("user_id = ? AND status <> ?", userID, models.StatusDeleted).
		Order("created_at DESC").
		Find(&bills).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch bills"})
	}

	month := c.Query("month")
	search := strings.ToLower(c.Query("search"))

	filtered := make([]models.Bill, 0, len(bills))
	for _, bill := range bills {
		if month != "" && !billInMonth(bill, month) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(bill.Name), search) &&
			!strings.Contains(strings.ToLower(bill.Description), search) {
			continue
		}
		filtered = append(filtered, bill)
	}

	return c.JSON(filtered)
}

func billInMonth(bill models.Bill, month string) bool {
	date, err := time.Parse("2006-01-02", bill.Date)
	if err != nil {
		return false
	}
	return strings.EqualFold(date.Month().String(), month)
}

// CreateBill inserts one bill, or several when the request asks for
// installments: the total amount is split evenly and each installment lands
// one month after the previous, all sharing a parent transaction id.
func CreateBill(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return unauthorized(c, err)
	}

	var req models.NewBillRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if len(strings.TrimSpace(req.Name)) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name must be at least 2 characters"})
	}
	if req.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Amount must be greater than 0"})
	}
	if req.TransactionType != models.TypeIncome && req.TransactionType != models.TypeExpense {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Transaction type must be income or expense"})
	}

	bills, err := models.ExpandInstallments(userID, req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if result := database.DB.CreateInBatches(bills, 100); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save bill"})
	}

	return c.Status(fiber.StatusCreated).JSON(bills)
}

// UpdateBill replaces the editable fields of one owned bill.
func UpdateBill(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return unauthorized(c, err)
	}

	var req UpdateBillRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	var bill models.Bill
	if err := database.DB.
		Where("id = ? AND user_id = ? AND status <> ?", c.Params("id"), userID, models.StatusDeleted).
		First(&bill).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Bill not found"})
	}

	bill.Name = req.Name
	bill.Description = req.Description
	bill.Amount = req.Amount
	bill.TransactionType = req.TransactionType
	bill.Date = req.Date
	bill.Category = req.Category
	bill.PaymentMethod = req.PaymentMethod
	bill.IsRecurring = req.IsRecurring
	bill.IsEssential = req.IsEssential

	if err := database.DB.Save(&bill).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update bill"})
	}

	return c.JSON(bill)
}

// DeleteBill soft-deletes one owned bill: the row stays, flagged deleted
// with a timestamp.
func DeleteBill(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return unauthorized(c, err)
	}

	now := time.Now()
	result := database.DB.Model(&models.Bill{}).
		Where("id = ? AND user_id = ? AND status <> ?", c.Params("id"), userID, models.StatusDeleted).
		Updates(map[string]interface{}{
			"status":     models.StatusDeleted,
			"deleted_at": now,
		})

	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete bill"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Bill not found"})
	}

	return c.JSON(fiber.Map{"message": "Bill deleted successfully"})
}
