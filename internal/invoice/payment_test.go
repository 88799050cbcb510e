package invoice_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/biztime/internal/invoice"
)

var (
	t0 = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	t1 = t0.Add(time.Hour)
	t2 = t0.Add(48 * time.Hour)
)

func TestTransition(t *testing.T) {
	type testCase struct {
		name         string
		current      invoice.PaymentState
		requested    invoice.PaymentRequest
		wantPaid     bool
		wantPaidDate *time.Time
	}

	tests := []testCase{
		{
			name:         "MarkUnpaidAsPaid",
			current:      invoice.PaymentState{},
			requested:    invoice.PaymentRequest{Amount: decimal.NewFromInt(200), Paid: true},
			wantPaid:     true,
			wantPaidDate: &t1,
		},
		{
			name:         "MarkPaidAsPaidKeepsDate",
			current:      invoice.PaymentState{Paid: true, PaidDate: &t0},
			requested:    invoice.PaymentRequest{Amount: decimal.NewFromInt(250), Paid: true},
			wantPaid:     true,
			wantPaidDate: &t0,
		},
		{
			name:      "MarkPaidAsUnpaidClearsDate",
			current:   invoice.PaymentState{Paid: true, PaidDate: &t0},
			requested: invoice.PaymentRequest{Amount: decimal.NewFromInt(500), Paid: false},
			wantPaid:  false,
		},
		{
			name:      "MarkUnpaidAsUnpaid",
			current:   invoice.PaymentState{},
			requested: invoice.PaymentRequest{Amount: decimal.NewFromInt(100), Paid: false},
			wantPaid:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := invoice.Transition(tt.current, tt.requested, t1)

			assert.Equal(t, tt.wantPaid, got.Paid)
			assert.True(t, tt.requested.Amount.Equal(got.Amount), "amount comes from the request")
			assert.Equal(t, tt.wantPaidDate, got.PaidDate)
			assert.Equal(t, got.Paid, got.PaidDate != nil)
		})
	}
}

func TestTransition_IdempotentPay(t *testing.T) {
	req := invoice.PaymentRequest{Amount: decimal.NewFromInt(200), Paid: true}

	first := invoice.Transition(invoice.PaymentState{}, req, t0)
	require.NotNil(t, first.PaidDate)

	second := invoice.Transition(invoice.PaymentState{Paid: first.Paid, PaidDate: first.PaidDate}, req, t1)
	require.NotNil(t, second.PaidDate)
	assert.Equal(t, t0, *second.PaidDate)
}

func TestTransition_UnpayThenRepayRecomputes(t *testing.T) {
	amt := decimal.NewFromInt(200)
	state := invoice.PaymentState{}

	paid := invoice.Transition(state, invoice.PaymentRequest{Amount: amt, Paid: true}, t0)
	state = invoice.PaymentState{Paid: paid.Paid, PaidDate: paid.PaidDate}

	unpaid := invoice.Transition(state, invoice.PaymentRequest{Amount: amt, Paid: false}, t1)
	assert.Nil(t, unpaid.PaidDate)
	state = invoice.PaymentState{Paid: unpaid.Paid, PaidDate: unpaid.PaidDate}

	repaid := invoice.Transition(state, invoice.PaymentRequest{Amount: amt, Paid: true}, t2)
	require.NotNil(t, repaid.PaidDate)
	assert.Equal(t, t2, *repaid.PaidDate)
	assert.NotEqual(t, *paid.PaidDate, *repaid.PaidDate)
}

func TestTransition_InvariantOverSequences(t *testing.T) {
	sequence := []bool{true, true, false, false, true, false, true, true}
	state := invoice.PaymentState{}
	now := t0

	for i, paid := range sequence {
		now = now.Add(time.Minute)
		next := invoice.Transition(state, invoice.PaymentRequest{Amount: decimal.NewFromInt(int64(i + 1)), Paid: paid}, now)

		assert.Equal(t, next.Paid, next.PaidDate != nil, "step %d", i)

		state = invoice.PaymentState{Paid: next.Paid, PaidDate: next.PaidDate}
	}
}

func TestTransition_DoesNotAliasCurrentDate(t *testing.T) {
	original := t0
	current := invoice.PaymentState{Paid: true, PaidDate: &original}

	next := invoice.Transition(current, invoice.PaymentRequest{Amount: decimal.NewFromInt(1), Paid: true}, t1)
	*next.PaidDate = t2

	assert.Equal(t, t0, original)
}
