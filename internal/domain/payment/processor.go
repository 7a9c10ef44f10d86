package payment

import (
	"fmt"
	"strings"

	"loan-manager/internal/domain/loan"
	"loan-manager/internal/pkg/apperrors"
)

// Processor applies the business effect of a payment to its loan. It is a
// pure value transformation; persistence happens in the service layer.
type Processor struct{}

func NewProcessor() Processor {
	return Processor{}
}

// Apply validates the payment against the loan and returns the loan state
// after the payment takes effect. On any error the input loan is returned
// unchanged.
func (Processor) Apply(l loan.Loan, p Payment) (loan.Loan, error) {
	switch p.Type {
	case TypeFinished:
		return l.Close(), nil

	case TypeAgreement:
		if strings.TrimSpace(p.Notes) == "" {
			return l, apperrors.NewValidationError("notes", "for loan agreements, it is necessary to provide a note")
		}
		return l.ApplyDiscount(p.Amount), nil

	case TypeInterest:
		return l.PostponeDueDate(), nil

	default:
		return l, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedPaymentType, p.Type)
	}
}
