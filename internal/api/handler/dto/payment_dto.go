package dto

import (
	"fmt"
	"time"

	"loan-manager/internal/domain/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentRequest struct {
	LoanID      string          `json:"loanId"`
	PaymentDate string          `json:"paymentDate"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Notes       string          `json:"notes,omitempty"`
}

func (r PaymentRequest) Validate() error {
	if r.LoanID == "" {
		return fmt.Errorf("the field loan is required")
	}
	if _, err := uuid.Parse(r.LoanID); err != nil {
		return fmt.Errorf("loanId must be a valid UUID")
	}
	if _, err := time.Parse(DateLayout, r.PaymentDate); err != nil {
		return fmt.Errorf("paymentDate must be a valid date in format %s", DateLayout)
	}
	if r.Type == "" {
		return fmt.Errorf("the field type is required")
	}
	return nil
}

// ToInput converts a validated request into the service input. The payment
// type is passed through raw so the service can reject unknown types with
// its own error.
func (r PaymentRequest) ToInput() payment.CreatePaymentInput {
	loanID, _ := uuid.Parse(r.LoanID)
	paymentDate, _ := time.Parse(DateLayout, r.PaymentDate)
	t, err := payment.ParseType(r.Type)
	if err != nil {
		t = payment.Type(r.Type)
	}
	return payment.CreatePaymentInput{
		LoanID:      loanID,
		PaymentDate: paymentDate,
		Amount:      r.Amount,
		Type:        t,
		Notes:       r.Notes,
	}
}

type PaymentResponse struct {
	ID          string          `json:"id"`
	LoanID      string          `json:"loanId"`
	PaymentDate string          `json:"paymentDate"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func NewPaymentResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID.String(),
		LoanID:      p.LoanID.String(),
		PaymentDate: p.PaymentDate.Format(DateLayout),
		Amount:      p.Amount,
		Type:        string(p.Type),
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func NewPaymentListResponse(payments []*payment.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, NewPaymentResponse(p))
	}
	return out
}
