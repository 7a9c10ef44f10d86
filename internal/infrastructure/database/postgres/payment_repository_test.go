package postgres

import (
	"context"
	"testing"
	"time"

	"loan-manager/internal/domain/payment"
	"loan-manager/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPaymentRepo(t *testing.T) (context.Context, *PaymentRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}

	ctx := context.Background()
	repo := NewPaymentRepository(mockPool, logger)

	return ctx, repo, mockPool
}

func paymentRowColumns() []string {
	return []string{"id", "loan_id", "payment_date", "amount", "type", "notes", "created_at", "updated_at"}
}

func samplePayment() *payment.Payment {
	return &payment.Payment{
		LoanID:      uuid.New(),
		PaymentDate: time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(300),
		Type:        payment.TypeAgreement,
		Notes:       "renegotiated after a call",
	}
}

func TestPaymentRepositoryCreateInTx(t *testing.T) {
	ctx, repo, mockPool := setupPaymentRepo(t)
	defer mockPool.Close()

	p := samplePayment()
	newID := uuid.New()
	now := time.Now()

	mockPool.ExpectBegin()
	mockPool.ExpectQuery(`INSERT INTO payments`).
		WithArgs(p.LoanID, p.PaymentDate, p.Amount, p.Type, p.Notes).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(newID, now, now))
	mockPool.ExpectCommit()

	tx, err := mockPool.Begin(ctx)
	require.NoError(t, err)

	err = repo.CreateInTx(ctx, tx, p)
	assert.NoError(t, err)
	assert.Equal(t, newID, p.ID)

	require.NoError(t, tx.Commit(ctx))
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestPaymentRepositoryCreateInTxUnknownLoan(t *testing.T) {
	ctx, repo, mockPool := setupPaymentRepo(t)
	defer mockPool.Close()

	p := samplePayment()

	mockPool.ExpectBegin()
	mockPool.ExpectQuery(`INSERT INTO payments`).
		WithArgs(p.LoanID, p.PaymentDate, p.Amount, p.Type, p.Notes).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "payments_loan_id_fkey"})
	mockPool.ExpectRollback()

	tx, err := mockPool.Begin(ctx)
	require.NoError(t, err)

	err = repo.CreateInTx(ctx, tx, p)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	require.NoError(t, tx.Rollback(ctx))
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestPaymentRepositoryGetByID(t *testing.T) {
	ctx, repo, mockPool := setupPaymentRepo(t)
	defer mockPool.Close()

	paymentID := uuid.New()
	loanID := uuid.New()
	now := time.Now()

	mockPool.ExpectQuery(`SELECT (.+) FROM payments WHERE id`).
		WithArgs(paymentID).
		WillReturnRows(pgxmock.NewRows(paymentRowColumns()).
			AddRow(paymentID, loanID, now, decimal.NewFromInt(300), payment.TypeAgreement,
				"renegotiated", now, now))

	p, err := repo.GetByID(ctx, paymentID)

	require.NoError(t, err)
	assert.Equal(t, paymentID, p.ID)
	assert.Equal(t, payment.TypeAgreement, p.Type)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestPaymentRepositoryGetByIDNotFound(t *testing.T) {
	ctx, repo, mockPool := setupPaymentRepo(t)
	defer mockPool.Close()

	paymentID := uuid.New()

	mockPool.ExpectQuery(`SELECT (.+) FROM payments WHERE id`).
		WithArgs(paymentID).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(ctx, paymentID)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestPaymentRepositoryFindAllByLoanID(t *testing.T) {
	ctx, repo, mockPool := setupPaymentRepo(t)
	defer mockPool.Close()

	loanID := uuid.New()
	now := time.Now()

	mockPool.ExpectQuery(`SELECT (.+) FROM payments WHERE loan_id`).
		WithArgs(loanID).
		WillReturnRows(pgxmock.NewRows(paymentRowColumns()).
			AddRow(uuid.New(), loanID, now.AddDate(0, -1, 0), decimal.NewFromInt(100),
				payment.TypeInterest, "", now, now).
			AddRow(uuid.New(), loanID, now, decimal.NewFromInt(1100),
				payment.TypeFinished, "", now, now))

	payments, err := repo.FindAllByLoanID(ctx, loanID)

	require.NoError(t, err)
	assert.Len(t, payments, 2)
	assert.Equal(t, payment.TypeInterest, payments[0].Type)
	assert.Equal(t, payment.TypeFinished, payments[1].Type)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestPaymentRepositoryUpdate(t *testing.T) {
	ctx, repo, mockPool := setupPaymentRepo(t)
	defer mockPool.Close()

	p := samplePayment()
	p.ID = uuid.New()

	mockPool.ExpectQuery(`UPDATE payments`).
		WithArgs(p.ID, p.PaymentDate, p.Amount, p.Type, p.Notes).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))

	err := repo.Update(ctx, p)

	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestPaymentRepositoryDelete(t *testing.T) {
	ctx, repo, mockPool := setupPaymentRepo(t)
	defer mockPool.Close()

	paymentID := uuid.New()

	mockPool.ExpectExec(`DELETE FROM payments`).
		WithArgs(paymentID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(ctx, paymentID)

	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}
