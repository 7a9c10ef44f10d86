package customer

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LoanSummary carries the open/closed loan counts shown on customer reads.
type LoanSummary struct {
	OpenLoans   int64 `json:"quantityOpenLoans"`
	ClosedLoans int64 `json:"quantityClosedLoans"`
}

// Profile is a customer together with its loan summary.
type Profile struct {
	Customer
	LoanSummary
}

func NewCustomer(name, phone, notes string) *Customer {
	return &Customer{
		Name:  name,
		Phone: phone,
		Notes: notes,
	}
}
