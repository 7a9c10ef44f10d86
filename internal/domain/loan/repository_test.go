package loan

import (
	"context"
	"time"

	"loan-manager/internal/domain/customer"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (_m *MockRepository) Create(ctx context.Context, l *Loan) error {
	ret := _m.Called(ctx, l)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *Loan) error); ok {
		r0 = rf(ctx, l)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockRepository) GetByID(ctx context.Context, loanID uuid.UUID) (*Loan, error) {
	ret := _m.Called(ctx, loanID)

	var r0 *Loan
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) *Loan); ok {
		r0 = rf(ctx, loanID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*Loan)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, loanID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockRepository) Update(ctx context.Context, l *Loan) error {
	ret := _m.Called(ctx, l)
	return ret.Error(0)
}

func (_m *MockRepository) UpdateInTx(ctx context.Context, tx pgx.Tx, l *Loan) error {
	ret := _m.Called(ctx, tx, l)
	return ret.Error(0)
}

func (_m *MockRepository) FindAll(ctx context.Context) ([]*Loan, error) {
	ret := _m.Called(ctx)

	var r0 []*Loan
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Loan)
	}

	return r0, ret.Error(1)
}

func (_m *MockRepository) FindAllByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*Loan, error) {
	ret := _m.Called(ctx, customerID)

	var r0 []*Loan
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Loan)
	}

	return r0, ret.Error(1)
}

func (_m *MockRepository) Delete(ctx context.Context, loanID uuid.UUID) error {
	ret := _m.Called(ctx, loanID)
	return ret.Error(0)
}

func (_m *MockRepository) CountLoansByCustomer(ctx context.Context, customerID uuid.UUID) (customer.LoanSummary, error) {
	ret := _m.Called(ctx, customerID)

	var r0 customer.LoanSummary
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(customer.LoanSummary)
	}

	return r0, ret.Error(1)
}

func (_m *MockRepository) FindOverdue(ctx context.Context, asOf time.Time) ([]*Loan, error) {
	ret := _m.Called(ctx, asOf)

	var r0 []*Loan
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Loan)
	}

	return r0, ret.Error(1)
}

func (_m *MockRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	ret := _m.Called(ctx)

	var r0 pgx.Tx
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(pgx.Tx)
	}

	return r0, ret.Error(1)
}

func (_m *MockRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	ret := _m.Called(ctx, tx)
	return ret.Error(0)
}

func (_m *MockRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	ret := _m.Called(ctx, tx)
	return ret.Error(0)
}

var _ Repository = (*MockRepository)(nil)
