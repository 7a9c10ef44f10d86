package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"loan-manager/internal/pkg/apperrors"

	"github.com/google/uuid"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, name, phone, notes string) (*Profile, error)
	UpdateCustomer(ctx context.Context, customerID uuid.UUID, name, phone, notes string) (*Profile, error)
	GetCustomer(ctx context.Context, customerID uuid.UUID) (*Profile, error)
	ListCustomers(ctx context.Context) ([]*Profile, error)
	DeleteCustomer(ctx context.Context, customerID uuid.UUID) error
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo    CustomerRepository
	summary LoanSummarizer
	logger  *slog.Logger
}

func NewCustomerService(repo CustomerRepository, summary LoanSummarizer, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if summary == nil {
		panic("loan summarizer cannot be nil")
	}
	return &customerService{
		repo:    repo,
		summary: summary,
		logger:  logger.With(slog.String("component", "customerService")),
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, name, phone, notes string) (*Profile, error) {
	s.logger.InfoContext(ctx, "Creating customer")

	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		s.logger.WarnContext(ctx, "Validation failed: name is empty")
		return nil, apperrors.NewValidationError("name", "the field name is required")
	}
	if phone == "" {
		s.logger.WarnContext(ctx, "Validation failed: phone is empty", slog.String("name", name))
		return nil, apperrors.NewValidationError("phone", "the field phone is required")
	}

	cust := NewCustomer(name, phone, notes)
	if err := s.repo.Create(ctx, cust); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save new customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new customer: %w", err)
	}

	s.logger.InfoContext(ctx, "Registered customer", slog.String("customerID", cust.ID.String()))
	return s.withSummary(ctx, cust)
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID uuid.UUID, name, phone, notes string) (*Profile, error) {
	s.logger.InfoContext(ctx, "Updating customer", slog.String("customerID", customerID.String()))

	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "the field name is required")
	}
	if phone == "" {
		return nil, apperrors.NewValidationError("phone", "the field phone is required")
	}

	existing, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Customer not found for update", slog.String("customerID", customerID.String()))
			return nil, err
		}
		s.logger.ErrorContext(ctx, "Repository error finding customer for update", slog.Any("error", err))
		return nil, fmt.Errorf("cannot find customer %s to update: %w", customerID, err)
	}

	existing.Name = name
	existing.Phone = phone
	existing.Notes = notes

	if err := s.repo.Update(ctx, existing); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save updated customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to update customer %s: %w", customerID, err)
	}

	s.logger.InfoContext(ctx, "Updated customer", slog.String("customerID", customerID.String()))
	return s.withSummary(ctx, existing)
}

func (s *customerService) GetCustomer(ctx context.Context, customerID uuid.UUID) (*Profile, error) {
	s.logger.InfoContext(ctx, "Finding customer by ID", slog.String("customerID", customerID.String()))

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Customer not found", slog.String("customerID", customerID.String()))
			return nil, err
		}
		s.logger.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %s: %w", customerID, err)
	}

	return s.withSummary(ctx, cust)
}

func (s *customerService) ListCustomers(ctx context.Context) ([]*Profile, error) {
	s.logger.InfoContext(ctx, "Finding all customers")

	customers, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	profiles := make([]*Profile, 0, len(customers))
	for _, cust := range customers {
		profile, err := s.withSummary(ctx, cust)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	s.logger.InfoContext(ctx, "Retrieved customers", slog.Int("count", len(profiles)))
	return profiles, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID uuid.UUID) error {
	s.logger.InfoContext(ctx, "Deleting customer", slog.String("customerID", customerID.String()))

	if err := s.repo.Delete(ctx, customerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Customer not found for delete", slog.String("customerID", customerID.String()))
			return err
		}
		s.logger.ErrorContext(ctx, "Repository error deleting customer", slog.Any("error", err))
		return fmt.Errorf("failed to delete customer %s: %w", customerID, err)
	}

	s.logger.InfoContext(ctx, "Customer deleted", slog.String("customerID", customerID.String()))
	return nil
}

func (s *customerService) withSummary(ctx context.Context, cust *Customer) (*Profile, error) {
	summary, err := s.summary.CountLoansByCustomer(ctx, cust.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to count loans for customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to count loans for customer %s: %w", cust.ID, err)
	}
	return &Profile{Customer: *cust, LoanSummary: summary}, nil
}
