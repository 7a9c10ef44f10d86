package loan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"loan-manager/internal/domain/customer"
	"loan-manager/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateLoanInput carries the fields accepted on loan creation and update.
type CreateLoanInput struct {
	CustomerID       uuid.UUID
	LoanDate         time.Time
	PaymentDate      time.Time
	Amount           decimal.Decimal
	Percentage       decimal.Decimal
	TotalAmountToPay decimal.Decimal
	Notes            string
	Negotiation      bool
	Status           Status
}

type LoanService interface {
	CreateLoan(ctx context.Context, in CreateLoanInput) (*Loan, error)
	UpdateLoan(ctx context.Context, loanID uuid.UUID, in CreateLoanInput) (*Loan, error)
	GetLoan(ctx context.Context, loanID uuid.UUID) (*Loan, error)
	ListLoans(ctx context.Context) ([]*Loan, error)
	ListLoansByCustomer(ctx context.Context, customerID uuid.UUID) ([]*Loan, error)
	DeleteLoan(ctx context.Context, loanID uuid.UUID) error
}

var _ LoanService = (*loanService)(nil)

type loanService struct {
	repo         Repository
	customerRepo customer.CustomerRepository
	logger       *slog.Logger
}

func NewLoanService(repo Repository, customerRepo customer.CustomerRepository, logger *slog.Logger) LoanService {
	if repo == nil {
		panic("loan repository cannot be nil")
	}
	if customerRepo == nil {
		panic("customer repository cannot be nil")
	}
	return &loanService{
		repo:         repo,
		customerRepo: customerRepo,
		logger:       logger.With(slog.String("component", "loanService")),
	}
}

func (s *loanService) CreateLoan(ctx context.Context, in CreateLoanInput) (*Loan, error) {
	s.logger.InfoContext(ctx, "Creating loan",
		slog.String("customerID", in.CustomerID.String()),
		slog.String("totalAmountToPay", in.TotalAmountToPay.String()))

	if err := validateLoanInput(in); err != nil {
		s.logger.WarnContext(ctx, "Loan validation failed", slog.Any("error", err))
		return nil, err
	}

	cust, err := s.customerRepo.FindByID(ctx, in.CustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Customer not found for loan", slog.String("customerID", in.CustomerID.String()))
			return nil, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, in.CustomerID)
		}
		s.logger.ErrorContext(ctx, "Failed to verify customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to verify customer %s: %w", in.CustomerID, err)
	}

	if in.Negotiation && strings.TrimSpace(in.Notes) == "" {
		s.logger.WarnContext(ctx, "Negotiated loan missing notes")
		return nil, apperrors.NewValidationError("notes", "for loan agreements, it is necessary to provide a note")
	}

	status := in.Status
	if status == "" {
		status = StatusOpen
	}

	l := &Loan{
		CustomerID:       cust.ID,
		LoanDate:         in.LoanDate,
		PaymentDate:      in.PaymentDate,
		Amount:           in.Amount,
		Percentage:       in.Percentage,
		TotalAmountToPay: in.TotalAmountToPay,
		Notes:            in.Notes,
		Negotiation:      in.Negotiation,
		Status:           status,
		CustomerName:     cust.Name,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save loan", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save loan: %w", err)
	}

	s.logger.InfoContext(ctx, "Loan registered", slog.String("loanID", l.ID.String()))
	return l, nil
}

func (s *loanService) UpdateLoan(ctx context.Context, loanID uuid.UUID, in CreateLoanInput) (*Loan, error) {
	s.logger.InfoContext(ctx, "Updating loan", slog.String("loanID", loanID.String()))

	if err := validateLoanInput(in); err != nil {
		s.logger.WarnContext(ctx, "Loan validation failed", slog.Any("error", err))
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Loan not found for update", slog.String("loanID", loanID.String()))
			return nil, err
		}
		s.logger.ErrorContext(ctx, "Repository error finding loan for update", slog.Any("error", err))
		return nil, fmt.Errorf("cannot find loan %s to update: %w", loanID, err)
	}

	existing.LoanDate = in.LoanDate
	existing.PaymentDate = in.PaymentDate
	existing.Amount = in.Amount
	existing.Percentage = in.Percentage
	existing.TotalAmountToPay = in.TotalAmountToPay
	existing.Notes = in.Notes
	existing.Negotiation = in.Negotiation
	if in.Status != "" {
		existing.Status = in.Status
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save updated loan", slog.Any("error", err))
		return nil, fmt.Errorf("failed to update loan %s: %w", loanID, err)
	}

	s.logger.InfoContext(ctx, "Updated loan", slog.String("loanID", loanID.String()))
	return existing, nil
}

func (s *loanService) GetLoan(ctx context.Context, loanID uuid.UUID) (*Loan, error) {
	s.logger.InfoContext(ctx, "Finding loan by ID", slog.String("loanID", loanID.String()))

	l, err := s.repo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Loan not found", slog.String("loanID", loanID.String()))
			return nil, err
		}
		s.logger.ErrorContext(ctx, "Repository error finding loan", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get loan %s: %w", loanID, err)
	}
	return l, nil
}

func (s *loanService) ListLoans(ctx context.Context) ([]*Loan, error) {
	s.logger.InfoContext(ctx, "Finding all loans")

	loans, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing loans", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	return loans, nil
}

func (s *loanService) ListLoansByCustomer(ctx context.Context, customerID uuid.UUID) ([]*Loan, error) {
	s.logger.InfoContext(ctx, "Finding loans for customer", slog.String("customerID", customerID.String()))

	loans, err := s.repo.FindAllByCustomerID(ctx, customerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing loans by customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list loans for customer %s: %w", customerID, err)
	}
	return loans, nil
}

func (s *loanService) DeleteLoan(ctx context.Context, loanID uuid.UUID) error {
	s.logger.InfoContext(ctx, "Deleting loan", slog.String("loanID", loanID.String()))

	if err := s.repo.Delete(ctx, loanID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Loan not found for delete", slog.String("loanID", loanID.String()))
			return err
		}
		s.logger.ErrorContext(ctx, "Repository error deleting loan", slog.Any("error", err))
		return fmt.Errorf("failed to delete loan %s: %w", loanID, err)
	}

	s.logger.InfoContext(ctx, "Loan deleted", slog.String("loanID", loanID.String()))
	return nil
}

func validateLoanInput(in CreateLoanInput) error {
	if in.LoanDate.IsZero() {
		return apperrors.NewValidationError("loanDate", "the field loan date is required")
	}
	if !in.Amount.IsPositive() {
		return apperrors.NewValidationError("amount", "amount must be greater than zero")
	}
	if !in.TotalAmountToPay.IsPositive() {
		return apperrors.NewValidationError("totalAmountToPay", "total amount to pay must be greater than zero")
	}
	if in.Percentage.IsNegative() {
		return apperrors.NewValidationError("percentage", "percentage cannot be negative")
	}
	if in.Status != "" && !in.Status.Valid() {
		return apperrors.NewValidationError("status", "status must be OPEN or CLOSED")
	}
	return nil
}
