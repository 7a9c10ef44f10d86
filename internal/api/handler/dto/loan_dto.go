package dto

import (
	"fmt"
	"time"

	"loan-manager/internal/domain/loan"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for date-only fields.
const DateLayout = "2006-01-02"

type LoanRequest struct {
	CustomerID       string          `json:"customerId"`
	LoanDate         string          `json:"loanDate"`
	PaymentDate      string          `json:"paymentDate"`
	Amount           decimal.Decimal `json:"amount"`
	Percentage       decimal.Decimal `json:"percentage"`
	TotalAmountToPay decimal.Decimal `json:"totalAmountToPay"`
	Notes            string          `json:"notes,omitempty"`
	Negotiation      bool            `json:"negotiation"`
	Status           string          `json:"status,omitempty"`
}

func (r LoanRequest) Validate() error {
	if r.CustomerID == "" {
		return fmt.Errorf("the field customer is required")
	}
	if _, err := uuid.Parse(r.CustomerID); err != nil {
		return fmt.Errorf("customerId must be a valid UUID")
	}
	if _, err := time.Parse(DateLayout, r.LoanDate); err != nil {
		return fmt.Errorf("loanDate must be a valid date in format %s", DateLayout)
	}
	if _, err := time.Parse(DateLayout, r.PaymentDate); err != nil {
		return fmt.Errorf("paymentDate must be a valid date in format %s", DateLayout)
	}
	return nil
}

// ToInput converts a validated request into the service input. Validate
// must have been called first.
func (r LoanRequest) ToInput() loan.CreateLoanInput {
	customerID, _ := uuid.Parse(r.CustomerID)
	loanDate, _ := time.Parse(DateLayout, r.LoanDate)
	paymentDate, _ := time.Parse(DateLayout, r.PaymentDate)
	return loan.CreateLoanInput{
		CustomerID:       customerID,
		LoanDate:         loanDate,
		PaymentDate:      paymentDate,
		Amount:           r.Amount,
		Percentage:       r.Percentage,
		TotalAmountToPay: r.TotalAmountToPay,
		Notes:            r.Notes,
		Negotiation:      r.Negotiation,
		Status:           loan.Status(r.Status),
	}
}

type LoanResponse struct {
	ID               string          `json:"id"`
	CustomerID       string          `json:"customerId"`
	CustomerName     string          `json:"customerName,omitempty"`
	LoanDate         string          `json:"loanDate"`
	PaymentDate      string          `json:"paymentDate"`
	Amount           decimal.Decimal `json:"amount"`
	Percentage       decimal.Decimal `json:"percentage"`
	TotalAmountToPay decimal.Decimal `json:"totalAmountToPay"`
	Notes            string          `json:"notes,omitempty"`
	Negotiation      bool            `json:"negotiation"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

func NewLoanResponse(l *loan.Loan) LoanResponse {
	return LoanResponse{
		ID:               l.ID.String(),
		CustomerID:       l.CustomerID.String(),
		CustomerName:     l.CustomerName,
		LoanDate:         l.LoanDate.Format(DateLayout),
		PaymentDate:      l.PaymentDate.Format(DateLayout),
		Amount:           l.Amount,
		Percentage:       l.Percentage,
		TotalAmountToPay: l.TotalAmountToPay,
		Notes:            l.Notes,
		Negotiation:      l.Negotiation,
		Status:           string(l.Status),
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}

func NewLoanListResponse(loans []*loan.Loan) []LoanResponse {
	out := make([]LoanResponse, 0, len(loans))
	for _, l := range loans {
		out = append(out, NewLoanResponse(l))
	}
	return out
}
