package models

import (
	"testing"

	"github.com/google/uuid"
)

func baseRequest() NewBillRequest {
	return NewBillRequest{
		Name:            "Notebook",
		Description:     "Dell",
		Amount:          3000,
		TransactionType: TypeExpense,
		Date:            "2025-09-15",
		Category:        "shopping",
		PaymentMethod:   "credit_card",
		Installments:    1,
	}
}

func TestExpandInstallmentsSingle(t *testing.T) {
	userID := uuid.New()

	bills, err := ExpandInstallments(userID, baseRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bills) != 1 {
		t.Fatalf("got %d bills, want 1", len(bills))
	}

	b := bills[0]
	if b.Name != "Notebook" {
		t.Errorf("single installment keeps the plain name, got %q", b.Name)
	}
	if b.Amount != 3000 {
		t.Errorf("amount: got %v, want 3000", b.Amount)
	}
	if b.ParentTransactionID != nil {
		t.Error("single installment has no parent transaction id")
	}
	if b.InstallmentNumber != 1 || b.TotalInstallments != 1 {
		t.Errorf("installment fields: got %d/%d, want 1/1", b.InstallmentNumber, b.TotalInstallments)
	}
	if b.UserID != userID {
		t.Error("bill must carry the owner id")
	}
	if b.Status != StatusActive {
		t.Errorf("status: got %q, want active", b.Status)
	}
}

func TestExpandInstallmentsSplit(t *testing.T) {
	req := baseRequest()
	req.Installments = 3

	bills, err := ExpandInstallments(uuid.New(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bills) != 3 {
		t.Fatalf("got %d bills, want 3", len(bills))
	}

	wantDates := []string{"2025-09-15", "2025-10-15", "2025-11-15"}
	wantNames := []string{"Notebook (1/3)", "Notebook (2/3)", "Notebook (3/3)"}

	parent := bills[0].ParentTransactionID
	if parent == nil {
		t.Fatal("installments must share a parent transaction id")
	}

	for i, b := range bills {
		if b.Amount != 1000 {
			t.Errorf("bill %d amount: got %v, want 1000", i, b.Amount)
		}
		if b.Date != wantDates[i] {
			t.Errorf("bill %d date: got %q, want %q", i, b.Date, wantDates[i])
		}
		if b.Name != wantNames[i] {
			t.Errorf("bill %d name: got %q, want %q", i, b.Name, wantNames[i])
		}
		if b.InstallmentNumber != i+1 || b.TotalInstallments != 3 {
			t.Errorf("bill %d installment fields: got %d/%d", i, b.InstallmentNumber, b.TotalInstallments)
		}
		if b.ParentTransactionID == nil || *b.ParentTransactionID != *parent {
			t.Errorf("bill %d does not share the parent id", i)
		}
	}
}

func TestExpandInstallmentsRounding(t *testing.T) {
	req := baseRequest()
	req.Amount = 100
	req.Installments = 3

	bills, err := ExpandInstallments(uuid.New(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, b := range bills {
		if b.Amount != 33.33 {
			t.Errorf("bill %d amount: got %v, want 33.33", i, b.Amount)
		}
	}
}

func TestExpandInstallmentsBounds(t *testing.T) {
	tests := []struct {
		name         string
		installments int
		wantErr      bool
	}{
		{"zero defaults to one", 0, false},
		{"max", 48, false},
		{"over max", 49, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			req.Installments = tt.installments

			_, err := ExpandInstallments(uuid.New(), req)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestExpandInstallmentsBadDate(t *testing.T) {
	req := baseRequest()
	req.Date = "15/09/2025"

	if _, err := ExpandInstallments(uuid.New(), req); err == nil {
		t.Error("expected error for non-ISO date")
	}
}
