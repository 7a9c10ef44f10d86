package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"loan-manager/internal/domain/customer"
	"loan-manager/internal/domain/loan"
	"loan-manager/internal/infrastructure/monitoring"
	"loan-manager/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v3"
)

type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Acquire(ctx context.Context) (*pgxpool.Conn, error)
	Close()
}

var _ DBPool = (*pgxpool.Pool)(nil)

var _ DBPool = (pgxmock.PgxPoolIface)(nil)

var errMsgFormat = "%w: %w"

type LoanRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ loan.Repository = (*LoanRepository)(nil)

func NewLoanRepository(db DBPool, logger *slog.Logger) *LoanRepository {
	if db == nil {
		panic("DBPool cannot be nil for LoanRepository")
	}
	return &LoanRepository{db: db, logger: logger.With("component", "LoanRepository")}
}

func (r *LoanRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to begin transaction", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return tx, nil
}

func (r *LoanRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	err := tx.Commit(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to commit transaction", "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return nil
}

func (r *LoanRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	err := tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		r.logger.ErrorContext(ctx, "Failed to rollback transaction", "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return nil
}

const loanColumns = `id, customer_id, loan_date, payment_date, amount, percentage, total_amount_to_pay, notes, negotiation, status, created_at, updated_at`

func (r *LoanRepository) Create(ctx context.Context, l *loan.Loan) error {
	if l == nil {
		return fmt.Errorf("%w: loan cannot be nil", apperrors.ErrInvalidArgument)
	}
	logCtx := r.logger.With(slog.String("operation", "Create"), slog.String("customerID", l.CustomerID.String()))
	logCtx.DebugContext(ctx, "Attempting to insert new loan")

	query := `
        INSERT INTO loans (customer_id, loan_date, payment_date, amount, percentage, total_amount_to_pay, notes, negotiation, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	start := time.Now()
	err := r.db.QueryRow(ctx, query,
		l.CustomerID,
		l.LoanDate,
		l.PaymentDate,
		l.Amount,
		l.Percentage,
		l.TotalAmountToPay,
		l.Notes,
		l.Negotiation,
		l.Status,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	monitoring.RecordDBQuery("loan_insert", queryStatus(err), time.Since(start))

	if err != nil {
		translatedErr := translateDBError(err, logCtx)
		logCtx.ErrorContext(ctx, "Failed to insert loan", slog.Any("error", err))
		return fmt.Errorf("failed to save loan: %w", translatedErr)
	}

	logCtx.InfoContext(ctx, "Successfully inserted loan", slog.String("loanID", l.ID.String()))
	return nil
}

func (r *LoanRepository) GetByID(ctx context.Context, loanID uuid.UUID) (*loan.Loan, error) {
	logCtx := r.logger.With(slog.String("operation", "GetByID"), slog.String("loanID", loanID.String()))
	logCtx.DebugContext(ctx, "Attempting to find loan")

	query := `
        SELECT l.` + joinLoanColumns("l") + `, c.name
        FROM loans l
        JOIN customers c ON c.id = l.customer_id
        WHERE l.id = $1`

	start := time.Now()
	row := r.db.QueryRow(ctx, query, loanID)
	l, err := scanLoan(row)
	monitoring.RecordDBQuery("loan_get_by_id", queryStatus(err), time.Since(start))

	if err != nil {
		translatedErr := translateDBError(err, logCtx)
		if errors.Is(translatedErr, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Loan not found")
			return nil, fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, loanID)
		}
		logCtx.ErrorContext(ctx, "Failed to query loan", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get loan %s: %w", loanID, translatedErr)
	}

	return l, nil
}

func (r *LoanRepository) Update(ctx context.Context, l *loan.Loan) error {
	return r.update(ctx, r.db, l)
}

func (r *LoanRepository) UpdateInTx(ctx context.Context, tx pgx.Tx, l *loan.Loan) error {
	return r.update(ctx, tx, l)
}

type execQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *LoanRepository) update(ctx context.Context, q execQuerier, l *loan.Loan) error {
	if l == nil {
		return fmt.Errorf("%w: loan cannot be nil", apperrors.ErrInvalidArgument)
	}
	logCtx := r.logger.With(slog.String("operation", "Update"), slog.String("loanID", l.ID.String()))
	logCtx.DebugContext(ctx, "Attempting to update loan")

	query := `
        UPDATE loans
        SET loan_date = $2, payment_date = $3, amount = $4, percentage = $5,
            total_amount_to_pay = $6, notes = $7, negotiation = $8, status = $9,
            updated_at = NOW()
        WHERE id = $1
        RETURNING updated_at`

	start := time.Now()
	err := q.QueryRow(ctx, query,
		l.ID,
		l.LoanDate,
		l.PaymentDate,
		l.Amount,
		l.Percentage,
		l.TotalAmountToPay,
		l.Notes,
		l.Negotiation,
		l.Status,
	).Scan(&l.UpdatedAt)
	monitoring.RecordDBQuery("loan_update", queryStatus(err), time.Since(start))

	if err != nil {
		translatedErr := translateDBError(err, logCtx)
		if errors.Is(translatedErr, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Loan not found for update")
			return fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, l.ID)
		}
		logCtx.ErrorContext(ctx, "Failed to update loan", slog.Any("error", err))
		return fmt.Errorf("failed to update loan %s: %w", l.ID, translatedErr)
	}

	logCtx.InfoContext(ctx, "Successfully updated loan")
	return nil
}

func (r *LoanRepository) FindAll(ctx context.Context) ([]*loan.Loan, error) {
	logCtx := r.logger.With(slog.String("operation", "FindAll"))
	logCtx.DebugContext(ctx, "Attempting to find all loans")

	query := `
        SELECT l.` + joinLoanColumns("l") + `, c.name
        FROM loans l
        JOIN customers c ON c.id = l.customer_id
        ORDER BY l.payment_date ASC`

	start := time.Now()
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		monitoring.RecordDBQuery("loan_find_all", "error", time.Since(start))
		logCtx.ErrorContext(ctx, "Failed to query loans", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query loans: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	loans, err := scanLoans(rows)
	monitoring.RecordDBQuery("loan_find_all", queryStatus(err), time.Since(start))
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to scan loans", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to scan loans: %w", apperrors.ErrDatabase, err)
	}
	return loans, nil
}

func (r *LoanRepository) FindAllByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*loan.Loan, error) {
	logCtx := r.logger.With(slog.String("operation", "FindAllByCustomerID"), slog.String("customerID", customerID.String()))
	logCtx.DebugContext(ctx, "Attempting to find loans for customer")

	query := `
        SELECT l.` + joinLoanColumns("l") + `, c.name
        FROM loans l
        JOIN customers c ON c.id = l.customer_id
        WHERE l.customer_id = $1
        ORDER BY l.payment_date ASC`

	start := time.Now()
	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		monitoring.RecordDBQuery("loan_find_by_customer", "error", time.Since(start))
		logCtx.ErrorContext(ctx, "Failed to query loans for customer", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query loans for customer: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	loans, err := scanLoans(rows)
	monitoring.RecordDBQuery("loan_find_by_customer", queryStatus(err), time.Since(start))
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to scan loans for customer", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to scan loans for customer: %w", apperrors.ErrDatabase, err)
	}
	return loans, nil
}

func (r *LoanRepository) Delete(ctx context.Context, loanID uuid.UUID) error {
	logCtx := r.logger.With(slog.String("operation", "Delete"), slog.String("loanID", loanID.String()))
	logCtx.DebugContext(ctx, "Attempting to delete loan")

	query := `DELETE FROM loans WHERE id = $1`

	start := time.Now()
	tag, err := r.db.Exec(ctx, query, loanID)
	monitoring.RecordDBQuery("loan_delete", queryStatus(err), time.Since(start))

	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to delete loan", slog.Any("error", err))
		return fmt.Errorf("failed to delete loan %s: %w", loanID, translateDBError(err, logCtx))
	}
	if tag.RowsAffected() == 0 {
		logCtx.WarnContext(ctx, "Loan not found for delete")
		return fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, loanID)
	}

	logCtx.InfoContext(ctx, "Successfully deleted loan")
	return nil
}

func (r *LoanRepository) CountLoansByCustomer(ctx context.Context, customerID uuid.UUID) (customer.LoanSummary, error) {
	logCtx := r.logger.With(slog.String("operation", "CountLoansByCustomer"), slog.String("customerID", customerID.String()))
	logCtx.DebugContext(ctx, "Counting loans for customer")

	query := `
        SELECT
            COUNT(*) FILTER (WHERE status = $2),
            COUNT(*) FILTER (WHERE status = $3)
        FROM loans
        WHERE customer_id = $1`

	var summary customer.LoanSummary
	start := time.Now()
	err := r.db.QueryRow(ctx, query, customerID, loan.StatusOpen, loan.StatusClosed).
		Scan(&summary.OpenLoans, &summary.ClosedLoans)
	monitoring.RecordDBQuery("loan_count_by_customer", queryStatus(err), time.Since(start))

	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to count loans for customer", slog.Any("error", err))
		return customer.LoanSummary{}, fmt.Errorf("%w: failed to count loans for customer: %w", apperrors.ErrDatabase, err)
	}
	return summary, nil
}

func (r *LoanRepository) FindOverdue(ctx context.Context, asOf time.Time) ([]*loan.Loan, error) {
	logCtx := r.logger.With(slog.String("operation", "FindOverdue"))
	logCtx.DebugContext(ctx, "Attempting to find overdue loans", slog.Time("asOf", asOf))

	query := `
        SELECT l.` + joinLoanColumns("l") + `, c.name
        FROM loans l
        JOIN customers c ON c.id = l.customer_id
        WHERE l.status = $1 AND l.payment_date < $2
        ORDER BY l.payment_date ASC`

	start := time.Now()
	rows, err := r.db.Query(ctx, query, loan.StatusOpen, asOf)
	if err != nil {
		monitoring.RecordDBQuery("loan_find_overdue", "error", time.Since(start))
		logCtx.ErrorContext(ctx, "Failed to query overdue loans", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query overdue loans: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	loans, err := scanLoans(rows)
	monitoring.RecordDBQuery("loan_find_overdue", queryStatus(err), time.Since(start))
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to scan overdue loans", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to scan overdue loans: %w", apperrors.ErrDatabase, err)
	}
	return loans, nil
}

// joinLoanColumns prefixes every loan column with a table alias for joined
// selects.
func joinLoanColumns(alias string) string {
	return alias + `.id, ` + alias + `.customer_id, ` + alias + `.loan_date, ` + alias + `.payment_date, ` +
		alias + `.amount, ` + alias + `.percentage, ` + alias + `.total_amount_to_pay, ` + alias + `.notes, ` +
		alias + `.negotiation, ` + alias + `.status, ` + alias + `.created_at, ` + alias + `.updated_at`
}

func scanLoan(row pgx.Row) (*loan.Loan, error) {
	var l loan.Loan
	err := row.Scan(
		&l.ID,
		&l.CustomerID,
		&l.LoanDate,
		&l.PaymentDate,
		&l.Amount,
		&l.Percentage,
		&l.TotalAmountToPay,
		&l.Notes,
		&l.Negotiation,
		&l.Status,
		&l.CreatedAt,
		&l.UpdatedAt,
		&l.CustomerName,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func scanLoans(rows pgx.Rows) ([]*loan.Loan, error) {
	loans := make([]*loan.Loan, 0)
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return loans, nil
}

func queryStatus(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func translateDBError(err error, contextLogger *slog.Logger) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			contextLogger.Warn("Database unique constraint violation", "detail", pgErr.Detail, "constraint", pgErr.ConstraintName)
			return fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, pgErr.ConstraintName)
		}
		if pgErr.Code == "23503" {
			contextLogger.Warn("Database foreign key violation", "detail", pgErr.Detail, "constraint", pgErr.ConstraintName)
			return fmt.Errorf("%w: %s", apperrors.ErrInvalidArgument, pgErr.ConstraintName)
		}

		contextLogger.Error("PostgreSQL specific error", "code", pgErr.Code, "message", pgErr.Message, "detail", pgErr.Detail)
		return fmt.Errorf("%w: db error code %s", apperrors.ErrDatabase, pgErr.Code)
	}

	contextLogger.Error("Generic database error", "error", err)
	return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
}
