package dto

import (
	"testing"
	"time"

	"loan-manager/internal/domain/loan"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLoanRequest() LoanRequest {
	return LoanRequest{
		CustomerID:       uuid.NewString(),
		LoanDate:         "2025-01-10",
		PaymentDate:      "2025-02-10",
		Amount:           decimal.NewFromInt(1500),
		Percentage:       decimal.NewFromInt(10),
		TotalAmountToPay: decimal.NewFromInt(1650),
	}
}

func TestLoanRequestValidate(t *testing.T) {
	t.Run("accepts a complete request", func(t *testing.T) {
		assert.NoError(t, validLoanRequest().Validate())
	})

	t.Run("rejects a missing customer", func(t *testing.T) {
		req := validLoanRequest()
		req.CustomerID = ""
		assert.Error(t, req.Validate())
	})

	t.Run("rejects a malformed customer ID", func(t *testing.T) {
		req := validLoanRequest()
		req.CustomerID = "not-a-uuid"
		assert.Error(t, req.Validate())
	})

	t.Run("rejects a bad date format", func(t *testing.T) {
		req := validLoanRequest()
		req.LoanDate = "10/01/2025"
		assert.Error(t, req.Validate())
	})
}

func TestLoanRequestToInput(t *testing.T) {
	req := validLoanRequest()
	req.Negotiation = true
	req.Notes = "renegotiated terms"

	in := req.ToInput()

	assert.Equal(t, req.CustomerID, in.CustomerID.String())
	assert.Equal(t, time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC), in.LoanDate)
	assert.Equal(t, time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC), in.PaymentDate)
	assert.True(t, in.Amount.Equal(decimal.NewFromInt(1500)))
	assert.True(t, in.Negotiation)
	assert.Equal(t, "renegotiated terms", in.Notes)
}

func TestNewLoanResponse(t *testing.T) {
	l := &loan.Loan{
		ID:               uuid.New(),
		CustomerID:       uuid.New(),
		CustomerName:     "Maria Silva",
		LoanDate:         time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
		PaymentDate:      time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC),
		Amount:           decimal.NewFromInt(1500),
		TotalAmountToPay: decimal.NewFromInt(1650),
		Status:           loan.StatusOpen,
	}

	resp := NewLoanResponse(l)

	assert.Equal(t, l.ID.String(), resp.ID)
	assert.Equal(t, "Maria Silva", resp.CustomerName)
	assert.Equal(t, "2025-01-10", resp.LoanDate)
	assert.Equal(t, "2025-02-10", resp.PaymentDate)
	assert.Equal(t, "OPEN", resp.Status)
}

func TestNewLoanListResponse(t *testing.T) {
	loans := []*loan.Loan{
		{ID: uuid.New(), CustomerID: uuid.New(), Status: loan.StatusOpen},
		{ID: uuid.New(), CustomerID: uuid.New(), Status: loan.StatusClosed},
	}

	resp := NewLoanListResponse(loans)

	require.Len(t, resp, 2)
	assert.Equal(t, "OPEN", resp[0].Status)
	assert.Equal(t, "CLOSED", resp[1].Status)
}
