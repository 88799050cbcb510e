package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentState is the persisted payment status of an invoice.
type PaymentState struct {
	Paid     bool
	PaidDate *time.Time
}

// PaymentRequest is what a client may ask for. There is no way to pass a
// payment date: it is always derived.
type PaymentRequest struct {
	Amount decimal.Decimal
	Paid   bool
}

// Payment is the next persisted state produced by Transition.
type Payment struct {
	Amount   decimal.Decimal
	Paid     bool
	PaidDate *time.Time
}

// Transition computes the next payment state of an invoice.
//
// Marking an unpaid invoice as paid stamps it with now. Marking it unpaid
// clears the date. Marking an already paid invoice as paid again keeps the
// original date. The amount is always taken from the request.
func Transition(current PaymentState, requested PaymentRequest, now time.Time) Payment {
	next := Payment{
		Amount: requested.Amount,
		Paid:   requested.Paid,
	}

	switch {
	case requested.Paid && current.PaidDate == nil:
		next.PaidDate = &now
	case !requested.Paid:
		next.PaidDate = nil
	default:
		paidDate := *current.PaidDate
		next.PaidDate = &paidDate
	}

	return next
}
