package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"loan-manager/internal/domain/customer"
	"loan-manager/internal/infrastructure/monitoring"
	"loan-manager/internal/pkg/apperrors"

	"github.com/google/uuid"
)

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

const customerColumns = `id, name, phone, notes, created_at, updated_at`

func (r *CustomerRepository) Create(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	logCtx := r.logger.With(slog.String("operation", "Create"), slog.String("name", cust.Name))
	logCtx.DebugContext(ctx, "Attempting to insert new customer")

	query := `
        INSERT INTO customers (name, phone, notes, created_at, updated_at)
        VALUES ($1, $2, $3, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	start := time.Now()
	err := r.db.QueryRow(ctx, query,
		cust.Name,
		cust.Phone,
		cust.Notes,
	).Scan(&cust.ID, &cust.CreatedAt, &cust.UpdatedAt)
	monitoring.RecordDBQuery("customer_insert", queryStatus(err), time.Since(start))

	if err != nil {
		translatedErr := translateDBError(err, logCtx)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			logCtx.WarnContext(ctx, "Customer already exists", slog.Any("error", err))
			return translatedErr
		}
		logCtx.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return fmt.Errorf("failed to save customer: %w", translatedErr)
	}

	logCtx.InfoContext(ctx, "Successfully inserted customer", slog.String("customerID", cust.ID.String()))
	return nil
}

func (r *CustomerRepository) Update(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	logCtx := r.logger.With(slog.String("operation", "Update"), slog.String("customerID", cust.ID.String()))
	logCtx.DebugContext(ctx, "Attempting to update customer")

	query := `
        UPDATE customers
        SET name = $2, phone = $3, notes = $4, updated_at = NOW()
        WHERE id = $1
        RETURNING updated_at`

	start := time.Now()
	err := r.db.QueryRow(ctx, query,
		cust.ID,
		cust.Name,
		cust.Phone,
		cust.Notes,
	).Scan(&cust.UpdatedAt)
	monitoring.RecordDBQuery("customer_update", queryStatus(err), time.Since(start))

	if err != nil {
		translatedErr := translateDBError(err, logCtx)
		if errors.Is(translatedErr, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Customer not found for update")
			return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, cust.ID)
		}
		logCtx.ErrorContext(ctx, "Failed to update customer", slog.Any("error", err))
		return fmt.Errorf("failed to update customer %s: %w", cust.ID, translatedErr)
	}

	logCtx.InfoContext(ctx, "Successfully updated customer")
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID uuid.UUID) (*customer.Customer, error) {
	logCtx := r.logger.With(slog.String("operation", "FindByID"), slog.String("customerID", customerID.String()))
	logCtx.DebugContext(ctx, "Attempting to find customer")

	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	var cust customer.Customer
	start := time.Now()
	err := r.db.QueryRow(ctx, query, customerID).Scan(
		&cust.ID,
		&cust.Name,
		&cust.Phone,
		&cust.Notes,
		&cust.CreatedAt,
		&cust.UpdatedAt,
	)
	monitoring.RecordDBQuery("customer_get_by_id", queryStatus(err), time.Since(start))

	if err != nil {
		translatedErr := translateDBError(err, logCtx)
		if errors.Is(translatedErr, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Customer not found")
			return nil, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
		}
		logCtx.ErrorContext(ctx, "Failed to query customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %s: %w", customerID, translatedErr)
	}

	return &cust, nil
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	logCtx := r.logger.With(slog.String("operation", "FindAll"))
	logCtx.DebugContext(ctx, "Attempting to find all customers")

	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY name ASC`

	start := time.Now()
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		monitoring.RecordDBQuery("customer_find_all", "error", time.Since(start))
		logCtx.ErrorContext(ctx, "Failed to query customers", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query customers: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		var cust customer.Customer
		if err := rows.Scan(
			&cust.ID,
			&cust.Name,
			&cust.Phone,
			&cust.Notes,
			&cust.CreatedAt,
			&cust.UpdatedAt,
		); err != nil {
			monitoring.RecordDBQuery("customer_find_all", "error", time.Since(start))
			logCtx.ErrorContext(ctx, "Failed to scan customer row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan customer: %w", apperrors.ErrDatabase, err)
		}
		customers = append(customers, &cust)
	}
	if err := rows.Err(); err != nil {
		monitoring.RecordDBQuery("customer_find_all", "error", time.Since(start))
		logCtx.ErrorContext(ctx, "Error iterating customer rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed reading customers: %w", apperrors.ErrDatabase, err)
	}
	monitoring.RecordDBQuery("customer_find_all", "success", time.Since(start))

	return customers, nil
}

func (r *CustomerRepository) Delete(ctx context.Context, customerID uuid.UUID) error {
	logCtx := r.logger.With(slog.String("operation", "Delete"), slog.String("customerID", customerID.String()))
	logCtx.DebugContext(ctx, "Attempting to delete customer")

	query := `DELETE FROM customers WHERE id = $1`

	start := time.Now()
	tag, err := r.db.Exec(ctx, query, customerID)
	monitoring.RecordDBQuery("customer_delete", queryStatus(err), time.Since(start))

	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to delete customer", slog.Any("error", err))
		return fmt.Errorf("failed to delete customer %s: %w", customerID, translateDBError(err, logCtx))
	}
	if tag.RowsAffected() == 0 {
		logCtx.WarnContext(ctx, "Customer not found for delete")
		return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
	}

	logCtx.InfoContext(ctx, "Successfully deleted customer")
	return nil
}
