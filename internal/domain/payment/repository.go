package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Repository interface {
	// CreateInTx inserts a payment inside a caller-owned transaction so
	// the insert commits or rolls back together with the loan update.
	CreateInTx(ctx context.Context, tx pgx.Tx, p *Payment) error

	GetByID(ctx context.Context, paymentID uuid.UUID) (*Payment, error)

	Update(ctx context.Context, p *Payment) error

	// FindAll returns every payment ordered by payment date ascending.
	FindAll(ctx context.Context) ([]*Payment, error)

	FindAllByLoanID(ctx context.Context, loanID uuid.UUID) ([]*Payment, error)

	Delete(ctx context.Context, paymentID uuid.UUID) error
}
