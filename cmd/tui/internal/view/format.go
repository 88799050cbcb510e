package view

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/biztime/internal/invoice"
)

const dbTimeout = 5 * time.Second

// FormatAmount renders an amount with two decimal places.
func FormatAmount(amt decimal.Decimal) string {
	return amt.StringFixed(2)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatPaidDate renders a missing paid date as a dash.
func FormatPaidDate(t *time.Time) string {
	if t == nil {
		return "-"
	}

	return FormatDate(*t)
}

// ParseAmount reads an amount typed by the operator and applies the same
// checks the invoice service does.
func ParseAmount(s string) (decimal.Decimal, error) {
	amt, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, errors.New("not a number")
	}

	if err := invoice.ValidateAmount(amt); err != nil {
		return decimal.Decimal{}, err
	}

	return amt, nil
}

func validateAmount(s string) error {
	_, err := ParseAmount(s)
	return err
}

func required(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(label + " cannot be empty")
		}

		return nil
	}
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
