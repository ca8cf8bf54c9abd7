package entity

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tinashem/employee-portal/internal/domain/errs"
)

func TestNewCashRequisition(t *testing.T) {
	req, err := NewCashRequisition("Acme", decimal.NewFromInt(100), CurrencyUSD, "supplies", "", "", "Operations", "u-1")
	if err != nil {
		t.Fatalf("NewCashRequisition() error: %v", err)
	}
	if req.Status != RequisitionStatusDraft {
		t.Errorf("new requisition status = %s, want DRAFT", req.Status)
	}
	if req.PreparedByID != "u-1" {
		t.Errorf("owner = %s, want u-1", req.PreparedByID)
	}
	if req.ID == "" {
		t.Error("expected a generated id")
	}
}

func TestNewCashRequisition_Validation(t *testing.T) {
	tests := []struct {
		name     string
		payee    string
		amount   decimal.Decimal
		currency string
		details  string
	}{
		{"zero amount", "Acme", decimal.Zero, CurrencyUSD, "supplies"},
		{"negative amount", "Acme", decimal.NewFromInt(-5), CurrencyUSD, "supplies"},
		{"unknown currency", "Acme", decimal.NewFromInt(10), "EUR", "supplies"},
		{"empty payee", "  ", decimal.NewFromInt(10), CurrencyZWG, "supplies"},
		{"empty details", "Acme", decimal.NewFromInt(10), CurrencyZWG, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCashRequisition(tt.payee, tt.amount, tt.currency, tt.details, "", "", "Ops", "u-1")
			if !errors.Is(err, errs.ErrValidation) {
				t.Errorf("NewCashRequisition() error = %v, want ErrValidation", err)
			}
		})
	}
}
