package loan

import (
	"context"
	"time"

	"loan-manager/internal/domain/customer"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Repository interface {
	Create(ctx context.Context, l *Loan) error

	GetByID(ctx context.Context, loanID uuid.UUID) (*Loan, error)

	Update(ctx context.Context, l *Loan) error

	// UpdateInTx persists loan mutations inside a caller-owned transaction.
	// The payment service uses it to keep the payment insert and the loan
	// read-modify-write atomic.
	UpdateInTx(ctx context.Context, tx pgx.Tx, l *Loan) error

	// FindAll returns every loan ordered by payment date ascending.
	FindAll(ctx context.Context) ([]*Loan, error)

	FindAllByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*Loan, error)

	Delete(ctx context.Context, loanID uuid.UUID) error

	CountLoansByCustomer(ctx context.Context, customerID uuid.UUID) (customer.LoanSummary, error)

	// FindOverdue returns open loans whose due date is strictly before asOf.
	FindOverdue(ctx context.Context, asOf time.Time) ([]*Loan, error)

	BeginTx(ctx context.Context) (pgx.Tx, error)

	CommitTx(ctx context.Context, tx pgx.Tx) error

	RollbackTx(ctx context.Context, tx pgx.Tx) error
}
