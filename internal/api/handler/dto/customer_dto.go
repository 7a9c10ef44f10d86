package dto

import (
	"fmt"
	"strings"
	"time"

	"loan-manager/internal/domain/customer"
)

type CustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Notes string `json:"notes,omitempty"`
}

func (r CustomerRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("the field name is required")
	}
	if strings.TrimSpace(r.Phone) == "" {
		return fmt.Errorf("the field phone is required")
	}
	return nil
}

type CustomerResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Notes       string    `json:"notes,omitempty"`
	OpenLoans   int64     `json:"openLoans"`
	ClosedLoans int64     `json:"closedLoans"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewCustomerResponse(p *customer.Profile) CustomerResponse {
	return CustomerResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Phone:       p.Phone,
		Notes:       p.Notes,
		OpenLoans:   p.OpenLoans,
		ClosedLoans: p.ClosedLoans,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func NewCustomerListResponse(profiles []*customer.Profile) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, NewCustomerResponse(p))
	}
	return out
}
