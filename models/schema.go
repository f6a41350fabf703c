package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction types.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Bill lifecycle status values. Bills are never physically erased.
const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// User represents a user in the system.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Bill represents one income or expense record owned by a user.
// A purchase split into installments is stored as one Bill per installment,
// all sharing a ParentTransactionID.
type Bill struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Name            string  `gorm:"not null" json:"name"`
	Description     string  `json:"description"`
	Amount          float64 `gorm:"not null" json:"amount"` // positive magnitude; sign lives in TransactionType
	TransactionType string  `gorm:"not null" json:"transaction_type"`
	Date            string  `gorm:"not null" json:"date"` // YYYY-MM-DD
	Category        string  `gorm:"not null;default:other" json:"category"`
	PaymentMethod   string  `gorm:"not null;default:other" json:"payment_method"`

	InstallmentNumber   int        `gorm:"not null;default:1" json:"installment_number"`
	TotalInstallments   int        `gorm:"not null;default:1" json:"total_installments"`
	ParentTransactionID *uuid.UUID `gorm:"type:uuid" json:"parent_transaction_id"`

	IsRecurring bool `gorm:"default:false" json:"is_recurring"`
	IsEssential bool `gorm:"default:false" json:"is_essential"`

	Status    string     `gorm:"not null;default:active;index" json:"status"`
	DeletedAt *time.Time `json:"deleted_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
