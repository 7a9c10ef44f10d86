package batch_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"loan-manager/internal/batch"
	"loan-manager/internal/domain/customer"
	"loan-manager/internal/domain/loan"
	"loan-manager/internal/event"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockLoanRepository struct {
	mock.Mock
}

func (_m *mockLoanRepository) Create(ctx context.Context, l *loan.Loan) error {
	ret := _m.Called(ctx, l)
	return ret.Error(0)
}

func (_m *mockLoanRepository) GetByID(ctx context.Context, loanID uuid.UUID) (*loan.Loan, error) {
	ret := _m.Called(ctx, loanID)
	var r0 *loan.Loan
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*loan.Loan)
	}
	return r0, ret.Error(1)
}

func (_m *mockLoanRepository) Update(ctx context.Context, l *loan.Loan) error {
	ret := _m.Called(ctx, l)
	return ret.Error(0)
}

func (_m *mockLoanRepository) UpdateInTx(ctx context.Context, tx pgx.Tx, l *loan.Loan) error {
	ret := _m.Called(ctx, tx, l)
	return ret.Error(0)
}

func (_m *mockLoanRepository) FindAll(ctx context.Context) ([]*loan.Loan, error) {
	ret := _m.Called(ctx)
	var r0 []*loan.Loan
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*loan.Loan)
	}
	return r0, ret.Error(1)
}

func (_m *mockLoanRepository) FindAllByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*loan.Loan, error) {
	ret := _m.Called(ctx, customerID)
	var r0 []*loan.Loan
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*loan.Loan)
	}
	return r0, ret.Error(1)
}

func (_m *mockLoanRepository) FindOverdue(ctx context.Context, asOf time.Time) ([]*loan.Loan, error) {
	ret := _m.Called(ctx, asOf)
	var r0 []*loan.Loan
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*loan.Loan)
	}
	return r0, ret.Error(1)
}

func (_m *mockLoanRepository) Delete(ctx context.Context, loanID uuid.UUID) error {
	ret := _m.Called(ctx, loanID)
	return ret.Error(0)
}

func (_m *mockLoanRepository) CountLoansByCustomer(ctx context.Context, customerID uuid.UUID) (customer.LoanSummary, error) {
	ret := _m.Called(ctx, customerID)
	return ret.Get(0).(customer.LoanSummary), ret.Error(1)
}

func (_m *mockLoanRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	ret := _m.Called(ctx)
	var r0 pgx.Tx
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(pgx.Tx)
	}
	return r0, ret.Error(1)
}

func (_m *mockLoanRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	ret := _m.Called(ctx, tx)
	return ret.Error(0)
}

func (_m *mockLoanRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	ret := _m.Called(ctx, tx)
	return ret.Error(0)
}

var _ loan.Repository = (*mockLoanRepository)(nil)

type mockEventPublisher struct {
	mock.Mock
}

func (_m *mockEventPublisher) PublishPaymentProcessed(ctx context.Context, e event.PaymentProcessedEvent) error {
	ret := _m.Called(ctx, e)
	return ret.Error(0)
}

func (_m *mockEventPublisher) PublishLoanClosed(ctx context.Context, e event.LoanClosedEvent) error {
	ret := _m.Called(ctx, e)
	return ret.Error(0)
}

func (_m *mockEventPublisher) PublishLoanOverdue(ctx context.Context, e event.LoanOverdueEvent) error {
	ret := _m.Called(ctx, e)
	return ret.Error(0)
}

var _ event.EventPublisher = (*mockEventPublisher)(nil)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func overdueLoan() *loan.Loan {
	return &loan.Loan{
		ID:               uuid.New(),
		CustomerID:       uuid.New(),
		PaymentDate:      time.Now().AddDate(0, -1, 0),
		Amount:           decimal.NewFromInt(1000),
		TotalAmountToPay: decimal.NewFromInt(1100),
		Status:           loan.StatusOpen,
	}
}

func TestOverdueSweepJobRun(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes an event per overdue loan", func(t *testing.T) {
		repo := new(mockLoanRepository)
		publisher := new(mockEventPublisher)

		first := overdueLoan()
		second := overdueLoan()
		repo.On("FindOverdue", ctx, mock.AnythingOfType("time.Time")).
			Return([]*loan.Loan{first, second}, nil).Once()
		publisher.On("PublishLoanOverdue", ctx, mock.MatchedBy(func(e event.LoanOverdueEvent) bool {
			return e.LoanID == first.ID
		})).Return(nil).Once()
		publisher.On("PublishLoanOverdue", ctx, mock.MatchedBy(func(e event.LoanOverdueEvent) bool {
			return e.LoanID == second.ID
		})).Return(nil).Once()

		job := batch.NewOverdueSweepJob(repo, publisher, testLogger)
		err := job.Run(ctx)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("is a no-op when nothing is overdue", func(t *testing.T) {
		repo := new(mockLoanRepository)
		publisher := new(mockEventPublisher)

		repo.On("FindOverdue", ctx, mock.AnythingOfType("time.Time")).
			Return([]*loan.Loan{}, nil).Once()

		job := batch.NewOverdueSweepJob(repo, publisher, testLogger)
		err := job.Run(ctx)

		assert.NoError(t, err)
		publisher.AssertNotCalled(t, "PublishLoanOverdue")
	})

	t.Run("aborts when the overdue query fails", func(t *testing.T) {
		repo := new(mockLoanRepository)
		publisher := new(mockEventPublisher)

		repo.On("FindOverdue", ctx, mock.AnythingOfType("time.Time")).
			Return(nil, errors.New("connection refused")).Once()

		job := batch.NewOverdueSweepJob(repo, publisher, testLogger)
		err := job.Run(ctx)

		assert.Error(t, err)
		publisher.AssertNotCalled(t, "PublishLoanOverdue")
	})

	t.Run("reports an error when a publish fails", func(t *testing.T) {
		repo := new(mockLoanRepository)
		publisher := new(mockEventPublisher)

		repo.On("FindOverdue", ctx, mock.AnythingOfType("time.Time")).
			Return([]*loan.Loan{overdueLoan()}, nil).Once()
		publisher.On("PublishLoanOverdue", ctx, mock.Anything).
			Return(errors.New("channel closed")).Once()

		job := batch.NewOverdueSweepJob(repo, publisher, testLogger)
		err := job.Run(ctx)

		assert.Error(t, err)
		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})
}
