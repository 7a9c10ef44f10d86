package loan

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

func (s Status) Valid() bool {
	return s == StatusOpen || s == StatusClosed
}

type Loan struct {
	ID               uuid.UUID
	CustomerID       uuid.UUID
	LoanDate         time.Time
	PaymentDate      time.Time
	Amount           decimal.Decimal
	Percentage       decimal.Decimal
	TotalAmountToPay decimal.Decimal
	Notes            string
	Negotiation      bool
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// CustomerName is populated on reads that join the owning customer.
	CustomerName string
}

// ApplyDiscount subtracts amount from both the remaining principal and the
// total to pay, flooring each at zero. Returns a copy; the receiver is not
// mutated.
func (l Loan) ApplyDiscount(amount decimal.Decimal) Loan {
	newAmount := l.Amount.Sub(amount)
	newTotal := l.TotalAmountToPay.Sub(amount)

	if newAmount.IsNegative() {
		newAmount = decimal.Zero
	}
	if newTotal.IsNegative() {
		newTotal = decimal.Zero
	}

	l.Amount = newAmount
	l.TotalAmountToPay = newTotal
	return l
}

// Close marks the loan settled. Returns a copy.
func (l Loan) Close() Loan {
	l.Status = StatusClosed
	return l
}

// PostponeDueDate advances the due date by one calendar month, keeping the
// day of month where it exists and clamping to the last valid day of the
// target month otherwise (Jan 31 -> Feb 28, or Feb 29 in leap years).
func (l Loan) PostponeDueDate() Loan {
	l.PaymentDate = addOneMonth(l.PaymentDate)
	return l
}

func addOneMonth(d time.Time) time.Time {
	year, month, day := d.Date()
	year += int(month) / 12
	month = month%12 + 1

	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, d.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	// Day zero of the following month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
