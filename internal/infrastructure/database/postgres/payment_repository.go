package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"loan-manager/internal/domain/payment"
	"loan-manager/internal/infrastructure/monitoring"
	"loan-manager/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PaymentRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ payment.Repository = (*PaymentRepository)(nil)

func NewPaymentRepository(db DBPool, logger *slog.Logger) *PaymentRepository {
	if db == nil {
		panic("DBPool cannot be nil for PaymentRepository")
	}
	return &PaymentRepository{db: db, logger: logger.With("component", "PaymentRepository")}
}

const paymentColumns = `id, loan_id, payment_date, amount, type, notes, created_at, updated_at`

func (r *PaymentRepository) CreateInTx(ctx context.Context, tx pgx.Tx, p *payment.Payment) error {
	if p == nil {
		return fmt.Errorf("%w: payment cannot be nil", apperrors.ErrInvalidArgument)
	}
	logCtx := r.logger.With(slog.String("operation", "CreateInTx"), slog.String("loanID", p.LoanID.String()))
	logCtx.DebugContext(ctx, "Attempting to insert new payment")

	query := `
        INSERT INTO payments (loan_id, payment_date, amount, type, notes, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	start := time.Now()
	err := tx.QueryRow(ctx, query,
		p.LoanID,
		p.PaymentDate,
		p.Amount,
		p.Type,
		p.Notes,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	monitoring.RecordDBQuery("payment_insert", queryStatus(err), time.Since(start))

	if err != nil {
		translatedErr := translateDBError(err, logCtx)
		logCtx.ErrorContext(ctx, "Failed to insert payment", slog.Any("error", err))
		return fmt.Errorf("failed to save payment: %w", translatedErr)
	}

	logCtx.InfoContext(ctx, "Successfully inserted payment", slog.String("paymentID", p.ID.String()))
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, paymentID uuid.UUID) (*payment.Payment, error) {
	logCtx := r.logger.With(slog.String("operation", "GetByID"), slog.String("paymentID", paymentID.String()))
	logCtx.DebugContext(ctx, "Attempting to find payment")

	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	start := time.Now()
	p, err := scanPayment(r.db.QueryRow(ctx, query, paymentID))
	monitoring.RecordDBQuery("payment_get_by_id", queryStatus(err), time.Since(start))

	if err != nil {
		translatedErr := translateDBError(err, logCtx)
		if errors.Is(translatedErr, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Payment not found")
			return nil, fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, paymentID)
		}
		logCtx.ErrorContext(ctx, "Failed to query payment", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get payment %s: %w", paymentID, translatedErr)
	}

	return p, nil
}

func (r *PaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	if p == nil {
		return fmt.Errorf("%w: payment cannot be nil", apperrors.ErrInvalidArgument)
	}
	logCtx := r.logger.With(slog.String("operation", "Update"), slog.String("paymentID", p.ID.String()))
	logCtx.DebugContext(ctx, "Attempting to update payment")

	query := `
        UPDATE payments
        SET payment_date = $2, amount = $3, type = $4, notes = $5, updated_at = NOW()
        WHERE id = $1
        RETURNING updated_at`

	start := time.Now()
	err := r.db.QueryRow(ctx, query,
		p.ID,
		p.PaymentDate,
		p.Amount,
		p.Type,
		p.Notes,
	).Scan(&p.UpdatedAt)
	monitoring.RecordDBQuery("payment_update", queryStatus(err), time.Since(start))

	if err != nil {
		translatedErr := translateDBError(err, logCtx)
		if errors.Is(translatedErr, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Payment not found for update")
			return fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, p.ID)
		}
		logCtx.ErrorContext(ctx, "Failed to update payment", slog.Any("error", err))
		return fmt.Errorf("failed to update payment %s: %w", p.ID, translatedErr)
	}

	logCtx.InfoContext(ctx, "Successfully updated payment")
	return nil
}

func (r *PaymentRepository) FindAll(ctx context.Context) ([]*payment.Payment, error) {
	logCtx := r.logger.With(slog.String("operation", "FindAll"))
	logCtx.DebugContext(ctx, "Attempting to find all payments")

	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY payment_date ASC`

	start := time.Now()
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		monitoring.RecordDBQuery("payment_find_all", "error", time.Since(start))
		logCtx.ErrorContext(ctx, "Failed to query payments", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query payments: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	payments, err := scanPayments(rows)
	monitoring.RecordDBQuery("payment_find_all", queryStatus(err), time.Since(start))
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to scan payments", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to scan payments: %w", apperrors.ErrDatabase, err)
	}
	return payments, nil
}

func (r *PaymentRepository) FindAllByLoanID(ctx context.Context, loanID uuid.UUID) ([]*payment.Payment, error) {
	logCtx := r.logger.With(slog.String("operation", "FindAllByLoanID"), slog.String("loanID", loanID.String()))
	logCtx.DebugContext(ctx, "Attempting to find payments for loan")

	query := `SELECT ` + paymentColumns + ` FROM payments WHERE loan_id = $1 ORDER BY payment_date ASC`

	start := time.Now()
	rows, err := r.db.Query(ctx, query, loanID)
	if err != nil {
		monitoring.RecordDBQuery("payment_find_by_loan", "error", time.Since(start))
		logCtx.ErrorContext(ctx, "Failed to query payments for loan", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query payments for loan: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	payments, err := scanPayments(rows)
	monitoring.RecordDBQuery("payment_find_by_loan", queryStatus(err), time.Since(start))
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to scan payments for loan", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to scan payments for loan: %w", apperrors.ErrDatabase, err)
	}
	return payments, nil
}

func (r *PaymentRepository) Delete(ctx context.Context, paymentID uuid.UUID) error {
	logCtx := r.logger.With(slog.String("operation", "Delete"), slog.String("paymentID", paymentID.String()))
	logCtx.DebugContext(ctx, "Attempting to delete payment")

	query := `DELETE FROM payments WHERE id = $1`

	start := time.Now()
	tag, err := r.db.Exec(ctx, query, paymentID)
	monitoring.RecordDBQuery("payment_delete", queryStatus(err), time.Since(start))

	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to delete payment", slog.Any("error", err))
		return fmt.Errorf("failed to delete payment %s: %w", paymentID, translateDBError(err, logCtx))
	}
	if tag.RowsAffected() == 0 {
		logCtx.WarnContext(ctx, "Payment not found for delete")
		return fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, paymentID)
	}

	logCtx.InfoContext(ctx, "Successfully deleted payment")
	return nil
}

func scanPayment(row pgx.Row) (*payment.Payment, error) {
	var p payment.Payment
	err := row.Scan(
		&p.ID,
		&p.LoanID,
		&p.PaymentDate,
		&p.Amount,
		&p.Type,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanPayments(rows pgx.Rows) ([]*payment.Payment, error) {
	payments := make([]*payment.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}
