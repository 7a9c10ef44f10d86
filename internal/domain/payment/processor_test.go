package payment_test

import (
	"testing"
	"time"

	"loan-manager/internal/domain/loan"
	"loan-manager/internal/domain/payment"
	"loan-manager/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func openLoan() loan.Loan {
	return loan.Loan{
		PaymentDate:      date("2025-01-10"),
		Amount:           decimal.NewFromInt(1500),
		TotalAmountToPay: decimal.NewFromInt(1600),
		Status:           loan.StatusOpen,
	}
}

func TestProcessorApply_Finished(t *testing.T) {
	p := payment.NewProcessor()
	l := openLoan()

	got, err := p.Apply(l, payment.Payment{Type: payment.TypeFinished, Amount: decimal.NewFromInt(1600)})

	assert.NoError(t, err)
	assert.Equal(t, loan.StatusClosed, got.Status)
	assert.True(t, got.Amount.Equal(l.Amount), "amounts are untouched by a settlement")
	assert.True(t, got.TotalAmountToPay.Equal(l.TotalAmountToPay))
}

func TestProcessorApply_Agreement(t *testing.T) {
	p := payment.NewProcessor()

	t.Run("applies discount to both amounts", func(t *testing.T) {
		got, err := p.Apply(openLoan(), payment.Payment{
			Type:   payment.TypeAgreement,
			Amount: decimal.NewFromInt(300),
			Notes:  "negotiated settlement of remaining interest",
		})

		assert.NoError(t, err)
		assert.True(t, got.Amount.Equal(decimal.NewFromInt(1200)), "amount = %s", got.Amount)
		assert.True(t, got.TotalAmountToPay.Equal(decimal.NewFromInt(1300)), "totalAmountToPay = %s", got.TotalAmountToPay)
		assert.Equal(t, loan.StatusOpen, got.Status)
	})

	t.Run("clamps balances at zero", func(t *testing.T) {
		got, err := p.Apply(openLoan(), payment.Payment{
			Type:   payment.TypeAgreement,
			Amount: decimal.NewFromInt(5000),
			Notes:  "full write off",
		})

		assert.NoError(t, err)
		assert.True(t, got.Amount.IsZero())
		assert.True(t, got.TotalAmountToPay.IsZero())
	})

	t.Run("requires notes and leaves the loan untouched", func(t *testing.T) {
		l := openLoan()

		got, err := p.Apply(l, payment.Payment{Type: payment.TypeAgreement, Amount: decimal.NewFromInt(300)})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.True(t, got.Amount.Equal(l.Amount), "failed agreement must not mutate the loan")
		assert.True(t, got.TotalAmountToPay.Equal(l.TotalAmountToPay))
		assert.Equal(t, l.Status, got.Status)
	})

	t.Run("whitespace only notes are rejected", func(t *testing.T) {
		_, err := p.Apply(openLoan(), payment.Payment{
			Type:   payment.TypeAgreement,
			Amount: decimal.NewFromInt(300),
			Notes:  "   ",
		})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestProcessorApply_Interest(t *testing.T) {
	p := payment.NewProcessor()

	t.Run("postpones due date one month", func(t *testing.T) {
		got, err := p.Apply(openLoan(), payment.Payment{Type: payment.TypeInterest, Amount: decimal.NewFromInt(100)})

		assert.NoError(t, err)
		assert.Equal(t, date("2025-02-10"), got.PaymentDate)
		assert.Equal(t, loan.StatusOpen, got.Status)
		assert.True(t, got.TotalAmountToPay.Equal(decimal.NewFromInt(1600)), "interest payments do not reduce the balance")
	})

	t.Run("end of month lands on last valid day", func(t *testing.T) {
		l := openLoan()
		l.PaymentDate = date("2025-01-31")

		got, err := p.Apply(l, payment.Payment{Type: payment.TypeInterest, Amount: decimal.NewFromInt(100)})

		assert.NoError(t, err)
		assert.Equal(t, date("2025-02-28"), got.PaymentDate)
	})
}

func TestProcessorApply_UnknownType(t *testing.T) {
	p := payment.NewProcessor()
	l := openLoan()

	got, err := p.Apply(l, payment.Payment{Type: payment.Type("REFUND"), Amount: decimal.NewFromInt(100)})

	assert.ErrorIs(t, err, apperrors.ErrUnsupportedPaymentType)
	assert.Equal(t, l, got)
}

func TestParseType(t *testing.T) {
	tests := []struct {
		raw     string
		want    payment.Type
		wantErr bool
	}{
		{"FINISHED", payment.TypeFinished, false},
		{"agreement", payment.TypeAgreement, false},
		{"  Interest ", payment.TypeInterest, false},
		{"REFUND", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := payment.ParseType(tt.raw)
		if tt.wantErr {
			assert.Error(t, err, "raw=%q", tt.raw)
			continue
		}
		assert.NoError(t, err, "raw=%q", tt.raw)
		assert.Equal(t, tt.want, got)
	}
}
