package customer

import (
	"context"

	"github.com/google/uuid"
)

type CustomerRepository interface {
	Create(ctx context.Context, cust *Customer) error

	Update(ctx context.Context, cust *Customer) error

	FindByID(ctx context.Context, customerID uuid.UUID) (*Customer, error)

	// FindAll returns every customer ordered by name ascending.
	FindAll(ctx context.Context) ([]*Customer, error)

	Delete(ctx context.Context, customerID uuid.UUID) error
}

// LoanSummarizer reports open/closed loan counts for a customer. It is
// implemented by the loan repository; the customer service only needs
// this one read.
type LoanSummarizer interface {
	CountLoansByCustomer(ctx context.Context, customerID uuid.UUID) (LoanSummary, error)
}
