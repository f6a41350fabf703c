package models

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Installment limits enforced by the add-bill form.
const (
	MinInstallments = 1
	MaxInstallments = 48
)

// NewBillRequest carries the fields of the add-bill form. Amount is the
// total value; when Installments > 1 it is divided across the generated
// bills.
type NewBillRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Amount          float64 `json:"amount"`
	TransactionType string  `json:"transaction_type"`
	Date            string  `json:"date"` // YYYY-MM-DD
	Category        string  `json:"category"`
	PaymentMethod   string  `json:"payment_method"`
	Installments    int     `json:"installments"`
	IsRecurring     bool    `json:"is_recurring"`
	IsEssential     bool    `json:"is_essential"`
}

// ExpandInstallments turns one request into the Bill rows to insert: one per
// installment, amounts split and rounded to cents, names suffixed "(i/n)",
// due dates advanced one calendar month each, all sharing a freshly generated
// ParentTransactionID when n > 1.
func ExpandInstallments(userID uuid.UUID, req NewBillRequest) ([]Bill, error) {
	n := req.Installments
	if n == 0 {
		n = 1
	}
	if n < MinInstallments || n > MaxInstallments {
		return nil, fmt.Errorf("installments must be between %d and %d, got %d", MinInstallments, MaxInstallments, n)
	}

	start, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", req.Date, err)
	}

	var parentID *uuid.UUID
	if n > 1 {
		id := uuid.New()
		parentID = &id
	}

	perInstallment := math.Round(req.Amount/float64(n)*100) / 100

	bills := make([]Bill, 0, n)
	for i := 1; i <= n; i++ {
		name := req.Name
		if n > 1 {
			name = fmt.Sprintf("%s (%d/%d)", req.Name, i, n)
		}

		bills = append(bills, Bill{
			UserID:              userID,
			Name:                name,
			Description:         req.Description,
			Amount:              perInstallment,
			TransactionType:     req.TransactionType,
			Date:                start.AddDate(0, i-1, 0).Format("2006-01-02"),
			Category:            req.Category,
			PaymentMethod:       req.PaymentMethod,
			InstallmentNumber:   i,
			TotalInstallments:   n,
			ParentTransactionID: parentID,
			IsRecurring:         req.IsRecurring,
			IsEssential:         req.IsEssential,
			Status:              StatusActive,
		})
	}

	return bills, nil
}
