package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	RoutingKeyPaymentProcessed = "payment.processed"
	RoutingKeyLoanClosed       = "loan.closed"
	RoutingKeyLoanOverdue      = "loan.overdue"
)

// PaymentProcessedEvent is published after a payment commits together with
// its loan effect.
type PaymentProcessedEvent struct {
	PaymentID   uuid.UUID       `json:"paymentId"`
	LoanID      uuid.UUID       `json:"loanId"`
	PaymentType string          `json:"paymentType"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"paymentDate"`
	OccurredAt  time.Time       `json:"occurredAt"`
}

type LoanClosedEvent struct {
	LoanID     uuid.UUID `json:"loanId"`
	CustomerID uuid.UUID `json:"customerId"`
	OccurredAt time.Time `json:"occurredAt"`
}

type LoanOverdueEvent struct {
	LoanID     uuid.UUID       `json:"loanId"`
	CustomerID uuid.UUID       `json:"customerId"`
	DueDate    time.Time       `json:"dueDate"`
	AmountDue  decimal.Decimal `json:"amountDue"`
	OccurredAt time.Time       `json:"occurredAt"`
}
