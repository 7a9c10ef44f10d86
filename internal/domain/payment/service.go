package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"loan-manager/internal/domain/loan"
	"loan-manager/internal/event"
	"loan-manager/internal/infrastructure/monitoring"
	"loan-manager/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreatePaymentInput carries the fields accepted on payment registration
// and update.
type CreatePaymentInput struct {
	LoanID      uuid.UUID
	PaymentDate time.Time
	Amount      decimal.Decimal
	Type        Type
	Notes       string
}

type PaymentService interface {
	// ProcessPayment records a payment and applies its effect on the loan
	// in a single transaction.
	ProcessPayment(ctx context.Context, in CreatePaymentInput) (*Payment, error)
	// UpdatePayment corrects a recorded payment without reapplying its
	// loan effect.
	UpdatePayment(ctx context.Context, paymentID uuid.UUID, in CreatePaymentInput) (*Payment, error)
	GetPayment(ctx context.Context, paymentID uuid.UUID) (*Payment, error)
	ListPayments(ctx context.Context) ([]*Payment, error)
	ListPaymentsByLoan(ctx context.Context, loanID uuid.UUID) ([]*Payment, error)
	DeletePayment(ctx context.Context, paymentID uuid.UUID) error
}

var _ PaymentService = (*paymentService)(nil)

type paymentService struct {
	repo      Repository
	loanRepo  loan.Repository
	processor Processor
	publisher event.EventPublisher
	logger    *slog.Logger
}

func NewPaymentService(repo Repository, loanRepo loan.Repository, publisher event.EventPublisher, logger *slog.Logger) PaymentService {
	if repo == nil {
		panic("payment repository cannot be nil")
	}
	if loanRepo == nil {
		panic("loan repository cannot be nil")
	}
	if publisher == nil {
		panic("event publisher cannot be nil")
	}
	return &paymentService{
		repo:      repo,
		loanRepo:  loanRepo,
		processor: NewProcessor(),
		publisher: publisher,
		logger:    logger.With(slog.String("component", "paymentService")),
	}
}

func (s *paymentService) ProcessPayment(ctx context.Context, in CreatePaymentInput) (*Payment, error) {
	logCtx := s.logger.With(
		slog.String("loanID", in.LoanID.String()),
		slog.String("paymentType", string(in.Type)))
	logCtx.InfoContext(ctx, "Processing payment", slog.String("amount", in.Amount.String()))

	if err := validatePaymentInput(in); err != nil {
		logCtx.WarnContext(ctx, "Payment validation failed", slog.Any("error", err))
		monitoring.RecordPayment(string(in.Type), "rejected")
		return nil, err
	}

	l, err := s.loanRepo.GetByID(ctx, in.LoanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Loan not found for payment")
			monitoring.RecordPayment(string(in.Type), "rejected")
			return nil, fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, in.LoanID)
		}
		logCtx.ErrorContext(ctx, "Failed to load loan for payment", slog.Any("error", err))
		monitoring.RecordPayment(string(in.Type), "failed")
		return nil, fmt.Errorf("failed to load loan %s: %w", in.LoanID, err)
	}

	p := &Payment{
		LoanID:      l.ID,
		PaymentDate: in.PaymentDate,
		Amount:      in.Amount,
		Type:        in.Type,
		Notes:       in.Notes,
	}

	updated, err := s.processor.Apply(*l, *p)
	if err != nil {
		logCtx.WarnContext(ctx, "Payment rejected by processing rules", slog.Any("error", err))
		monitoring.RecordPayment(string(in.Type), "rejected")
		return nil, err
	}
	loanClosed := l.Status != loan.StatusClosed && updated.Status == loan.StatusClosed

	tx, err := s.loanRepo.BeginTx(ctx)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to begin transaction", slog.Any("error", err))
		monitoring.RecordPayment(string(in.Type), "failed")
		return nil, fmt.Errorf("failed to begin payment transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = s.loanRepo.RollbackTx(ctx, tx)
		}
	}()

	if err = s.repo.CreateInTx(ctx, tx, p); err != nil {
		logCtx.ErrorContext(ctx, "Failed to insert payment", slog.Any("error", err))
		monitoring.RecordPayment(string(in.Type), "failed")
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	if err = s.loanRepo.UpdateInTx(ctx, tx, &updated); err != nil {
		logCtx.ErrorContext(ctx, "Failed to update loan for payment", slog.Any("error", err))
		monitoring.RecordPayment(string(in.Type), "failed")
		return nil, fmt.Errorf("failed to apply payment to loan %s: %w", l.ID, err)
	}

	if err = s.loanRepo.CommitTx(ctx, tx); err != nil {
		logCtx.ErrorContext(ctx, "Failed to commit payment transaction", slog.Any("error", err))
		monitoring.RecordPayment(string(in.Type), "failed")
		return nil, fmt.Errorf("failed to commit payment transaction: %w", err)
	}

	monitoring.RecordPayment(string(in.Type), "processed")
	if loanClosed {
		monitoring.RecordLoanClosed()
	}
	logCtx.InfoContext(ctx, "Payment processed",
		slog.String("paymentID", p.ID.String()),
		slog.String("loanStatus", string(updated.Status)))

	s.publishProcessed(ctx, p, &updated, loanClosed)
	return p, nil
}

// publishProcessed emits events after the transaction commits. Publishing
// failures are logged but never fail the already committed payment.
func (s *paymentService) publishProcessed(ctx context.Context, p *Payment, l *loan.Loan, loanClosed bool) {
	now := time.Now().UTC()
	err := s.publisher.PublishPaymentProcessed(ctx, event.PaymentProcessedEvent{
		PaymentID:   p.ID,
		LoanID:      p.LoanID,
		PaymentType: string(p.Type),
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate,
		OccurredAt:  now,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to publish payment processed event",
			slog.String("paymentID", p.ID.String()), slog.Any("error", err))
	}

	if !loanClosed {
		return
	}
	err = s.publisher.PublishLoanClosed(ctx, event.LoanClosedEvent{
		LoanID:     l.ID,
		CustomerID: l.CustomerID,
		OccurredAt: now,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to publish loan closed event",
			slog.String("loanID", l.ID.String()), slog.Any("error", err))
	}
}

func (s *paymentService) UpdatePayment(ctx context.Context, paymentID uuid.UUID, in CreatePaymentInput) (*Payment, error) {
	s.logger.InfoContext(ctx, "Updating payment", slog.String("paymentID", paymentID.String()))

	if err := validatePaymentInput(in); err != nil {
		s.logger.WarnContext(ctx, "Payment validation failed", slog.Any("error", err))
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Payment not found for update", slog.String("paymentID", paymentID.String()))
			return nil, err
		}
		s.logger.ErrorContext(ctx, "Repository error finding payment for update", slog.Any("error", err))
		return nil, fmt.Errorf("cannot find payment %s to update: %w", paymentID, err)
	}

	existing.PaymentDate = in.PaymentDate
	existing.Amount = in.Amount
	existing.Type = in.Type
	existing.Notes = in.Notes

	if err := s.repo.Update(ctx, existing); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save updated payment", slog.Any("error", err))
		return nil, fmt.Errorf("failed to update payment %s: %w", paymentID, err)
	}

	s.logger.InfoContext(ctx, "Updated payment", slog.String("paymentID", paymentID.String()))
	return existing, nil
}

func (s *paymentService) GetPayment(ctx context.Context, paymentID uuid.UUID) (*Payment, error) {
	s.logger.InfoContext(ctx, "Finding payment by ID", slog.String("paymentID", paymentID.String()))

	p, err := s.repo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Payment not found", slog.String("paymentID", paymentID.String()))
			return nil, err
		}
		s.logger.ErrorContext(ctx, "Repository error finding payment", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get payment %s: %w", paymentID, err)
	}
	return p, nil
}

func (s *paymentService) ListPayments(ctx context.Context) ([]*Payment, error) {
	s.logger.InfoContext(ctx, "Finding all payments")

	payments, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing payments", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func (s *paymentService) ListPaymentsByLoan(ctx context.Context, loanID uuid.UUID) ([]*Payment, error) {
	s.logger.InfoContext(ctx, "Finding payments for loan", slog.String("loanID", loanID.String()))

	payments, err := s.repo.FindAllByLoanID(ctx, loanID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing payments by loan", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list payments for loan %s: %w", loanID, err)
	}
	return payments, nil
}

func (s *paymentService) DeletePayment(ctx context.Context, paymentID uuid.UUID) error {
	s.logger.InfoContext(ctx, "Deleting payment", slog.String("paymentID", paymentID.String()))

	if err := s.repo.Delete(ctx, paymentID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Payment not found for delete", slog.String("paymentID", paymentID.String()))
			return err
		}
		s.logger.ErrorContext(ctx, "Repository error deleting payment", slog.Any("error", err))
		return fmt.Errorf("failed to delete payment %s: %w", paymentID, err)
	}

	s.logger.InfoContext(ctx, "Payment deleted", slog.String("paymentID", paymentID.String()))
	return nil
}

func validatePaymentInput(in CreatePaymentInput) error {
	if in.LoanID == uuid.Nil {
		return apperrors.NewValidationError("loanId", "the field loan is required")
	}
	if in.PaymentDate.IsZero() {
		return apperrors.NewValidationError("paymentDate", "the field payment date is required")
	}
	if !in.Amount.IsPositive() {
		return apperrors.NewValidationError("amount", "amount must be greater than zero")
	}
	if !in.Type.Valid() {
		return fmt.Errorf("%w: %q", apperrors.ErrUnsupportedPaymentType, in.Type)
	}
	return nil
}
