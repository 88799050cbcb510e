package invoice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/biztime/internal/apperrors"
)

// Invoice is an amount billed against a company.
type Invoice struct {
	ID          uuid.UUID
	CompanyCode string
	Amount      decimal.Decimal
	Paid        bool
	AddDate     time.Time
	PaidDate    *time.Time // Set if and only if Paid
}

// PaymentState returns the part of the invoice the payment transition reads.
func (inv *Invoice) PaymentState() PaymentState {
	return PaymentState{Paid: inv.Paid, PaidDate: inv.PaidDate}
}

// Apply copies a transition result onto the invoice.
func (inv *Invoice) Apply(p Payment) {
	inv.Amount = p.Amount
	inv.Paid = p.Paid
	inv.PaidDate = p.PaidDate
}

// MaxAmount is the first amount the amt NUMERIC(12, 2) column cannot hold.
var MaxAmount = decimal.New(1, 10)

// ValidateAmount checks that the amount is positive, has at most two decimal
// places and fits the amt column, so Postgres stores exactly what was sent.
func ValidateAmount(amt decimal.Decimal) error {
	switch {
	case !amt.IsPositive():
		return ErrInvalidAmount
	case !amt.Equal(amt.Round(2)):
		return ErrAmountPrecision
	case amt.GreaterThanOrEqual(MaxAmount):
		return ErrAmountTooLarge
	}

	return nil
}

var (
	ErrNotFound        = apperrors.New(apperrors.ErrNotFound, "invoice not found")
	ErrInvalidAmount   = apperrors.New(apperrors.ErrInvalidRequest, "amount must be positive")
	ErrAmountPrecision = apperrors.New(apperrors.ErrInvalidRequest, "amount must have at most 2 decimal places")
	ErrAmountTooLarge  = apperrors.New(apperrors.ErrInvalidRequest, "amount must be less than 10000000000")
	ErrUnknownCompany  = apperrors.New(apperrors.ErrInvalidReference, "company does not exist")
)
