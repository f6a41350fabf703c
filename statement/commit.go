package statement

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/google/uuid"

	"github.com/MatheusPalmieri/finance/models"
)

// ExistingBill is the minimal projection of a stored bill needed to build
// its dedup key.
type ExistingBill struct {
	Name        string
	Amount      float64
	Date        string
	Description string
}

// BillStore is the persistence boundary of the commit stage.
type BillStore interface {
	// ExistingForDedup returns the owner's non-deleted bills.
	ExistingForDedup(ctx context.Context, userID uuid.UUID) ([]ExistingBill, error)
	// Insert creates one bill. Errors are reported per candidate and do
	// not abort the run.
	Insert(ctx context.Context, bill *models.Bill) error
}

// identifierMarker recognizes a bank identifier embedded in a stored bill's
// description by a previous import run.
var identifierMarker = regexp.MustCompile(`ID:([a-f0-9-]+)`)

// Commit writes the user-approved candidates as bills, skipping ones whose
// dedup key already exists in the store. The existing-key set is fetched in
// full before the first insert; a fetch failure aborts the run with no
// partial result. Inserts run sequentially in input order and individual
// failures only fail their own candidate.
func Commit(ctx context.Context, store BillStore, userID uuid.UUID, selected []Candidate) (*Result, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("commit requires an authenticated user")
	}

	existing, err := store.ExistingForDedup(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch existing bills for dedup: %w", err)
	}

	seen := make(map[string]struct{}, len(existing))
	for _, bill := range existing {
		seen[existingKey(bill)] = struct{}{}
	}

	result := &Result{
		Total: len(selected),
		Details: ResultDetails{
			Imported:   []Candidate{},
			Failed:     []Candidate{},
			Duplicates: []Candidate{},
		},
	}

	for _, candidate := range selected {
		key := candidateKey(candidate)

		if _, dup := seen[key]; dup {
			result.Duplicates++
			result.Details.Duplicates = append(result.Details.Duplicates, candidate)
			continue
		}

		if err := store.Insert(ctx, buildBill(userID, candidate)); err != nil {
			failed := candidate
			failed.Errors = append(append([]string{}, candidate.Errors...), err.Error())
			result.Errors++
			result.Details.Failed = append(result.Details.Failed, failed)
			continue
		}

		// An inserted key joins the set so repeats within one file dedup
		// against each other, matching what a re-read of the store would see.
		seen[key] = struct{}{}
		result.Success++
		result.Details.Imported = append(result.Details.Imported, candidate)
	}

	return result, nil
}

func buildBill(userID uuid.UUID, c Candidate) *models.Bill {
	description := fmt.Sprintf("Imported from Nubank - %s", c.Description)
	if c.Identifier != "" {
		description = fmt.Sprintf("Imported from Nubank - ID:%s - %s", c.Identifier, c.Description)
	}

	return &models.Bill{
		UserID:            userID,
		Name:              c.Description,
		Description:       description,
		Amount:            c.Amount,
		TransactionType:   c.TransactionType,
		Date:              c.Date,
		Category:          orDefault(c.Category),
		PaymentMethod:     orDefault(c.PaymentMethod),
		InstallmentNumber: 1,
		TotalInstallments: 1,
		IsRecurring:       false,
		IsEssential:       false,
		Status:            models.StatusActive,
	}
}

func orDefault(tag string) string {
	if tag == "" {
		return DefaultTag
	}
	return tag
}

// candidateKey prefers the bank-supplied identifier; without one it falls
// back to a description+amount+date composite. The composite can collide
// for genuinely distinct same-day identical purchases; the identifier path
// exists precisely to avoid that.
func candidateKey(c Candidate) string {
	if c.Identifier != "" {
		return c.Identifier
	}
	return compositeKey(c.Description, c.Amount, c.Date)
}

// existingKey mirrors candidateKey for stored bills: an identifier embedded
// in the description wins, else the composite of the imported fields (the
// bill's name holds the original statement description).
func existingKey(b ExistingBill) string {
	if m := identifierMarker.FindStringSubmatch(b.Description); m != nil {
		return m[1]
	}
	return compositeKey(b.Name, b.Amount, b.Date)
}

func compositeKey(description string, amount float64, date string) string {
	return fmt.Sprintf("%s-%s-%s", description, strconv.FormatFloat(amount, 'f', -1, 64), date)
}
