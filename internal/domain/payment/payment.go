package payment

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type identifies how a payment affects its loan when processed.
type Type string

const (
	// TypeFinished settles the loan in full and closes it.
	TypeFinished Type = "FINISHED"
	// TypeAgreement applies a negotiated discount to the loan balance.
	TypeAgreement Type = "AGREEMENT"
	// TypeInterest covers interest only and pushes the due date out a month.
	TypeInterest Type = "INTEREST"
)

func (t Type) Valid() bool {
	switch t {
	case TypeFinished, TypeAgreement, TypeInterest:
		return true
	}
	return false
}

// ParseType normalizes raw input to a known payment type.
func ParseType(raw string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown payment type %q", raw)
	}
	return t, nil
}

type Payment struct {
	ID          uuid.UUID
	LoanID      uuid.UUID
	PaymentDate time.Time
	Amount      decimal.Decimal
	Type        Type
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
