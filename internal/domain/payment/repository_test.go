package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (_m *MockRepository) CreateInTx(ctx context.Context, tx pgx.Tx, p *Payment) error {
	ret := _m.Called(ctx, tx, p)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, pgx.Tx, *Payment) error); ok {
		r0 = rf(ctx, tx, p)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockRepository) GetByID(ctx context.Context, paymentID uuid.UUID) (*Payment, error) {
	ret := _m.Called(ctx, paymentID)

	var r0 *Payment
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Payment)
	}

	return r0, ret.Error(1)
}

func (_m *MockRepository) Update(ctx context.Context, p *Payment) error {
	return _m.Called(ctx, p).Error(0)
}

func (_m *MockRepository) FindAll(ctx context.Context) ([]*Payment, error) {
	ret := _m.Called(ctx)

	var r0 []*Payment
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Payment)
	}

	return r0, ret.Error(1)
}

func (_m *MockRepository) FindAllByLoanID(ctx context.Context, loanID uuid.UUID) ([]*Payment, error) {
	ret := _m.Called(ctx, loanID)

	var r0 []*Payment
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Payment)
	}

	return r0, ret.Error(1)
}

func (_m *MockRepository) Delete(ctx context.Context, paymentID uuid.UUID) error {
	return _m.Called(ctx, paymentID).Error(0)
}

var _ Repository = (*MockRepository)(nil)
