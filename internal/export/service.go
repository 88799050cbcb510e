package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/biztime/internal/invoice"
)

// Lister is the part of the invoice service exports read from.
type Lister interface {
	List(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error)
}

// CompanyTotals aggregates the invoices of one company.
type CompanyTotals struct {
	CompanyCode string
	Count       int
	Billed      decimal.Decimal
	Outstanding decimal.Decimal
}

// Statement aggregates a set of invoices.
type Statement struct {
	Count       int
	Billed      decimal.Decimal
	Paid        decimal.Decimal
	Outstanding decimal.Decimal
	Companies   []CompanyTotals // Ordered by company code
}

type Service struct {
	invoices Lister
}

func NewService(invoices Lister) *Service {
	return &Service{invoices: invoices}
}

var csvHeader = []string{"id", "comp_code", "amt", "paid", "add_date", "paid_date"}

// WriteCSV writes the invoices matching filter to w and returns how many were written.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer, filter invoice.ListFilter) (int, error) {
	invoices, err := s.invoices.List(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("listing invoices: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	for _, inv := range invoices {
		paidDate := ""
		if inv.PaidDate != nil {
			paidDate = inv.PaidDate.Format(time.RFC3339)
		}

		record := []string{
			inv.ID.String(),
			inv.CompanyCode,
			inv.Amount.StringFixed(2),
			strconv.FormatBool(inv.Paid),
			inv.AddDate.Format(time.RFC3339),
			paidDate,
		}
		if err := cw.Write(record); err != nil {
			return 0, fmt.Errorf("writing invoice %s: %w", inv.ID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flushing csv: %w", err)
	}

	return len(invoices), nil
}

// Statement totals the invoices matching filter.
func (s *Service) Statement(ctx context.Context, filter invoice.ListFilter) (*Statement, error) {
	invoices, err := s.invoices.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}

	st := &Statement{Companies: []CompanyTotals{}}
	byCompany := make(map[string]*CompanyTotals)

	for _, inv := range invoices {
		ct, ok := byCompany[inv.CompanyCode]
		if !ok {
			ct = &CompanyTotals{CompanyCode: inv.CompanyCode}
			byCompany[inv.CompanyCode] = ct
		}

		st.Count++
		ct.Count++
		st.Billed = st.Billed.Add(inv.Amount)
		ct.Billed = ct.Billed.Add(inv.Amount)

		if inv.Paid {
			st.Paid = st.Paid.Add(inv.Amount)
		} else {
			st.Outstanding = st.Outstanding.Add(inv.Amount)
			ct.Outstanding = ct.Outstanding.Add(inv.Amount)
		}
	}

	for _, ct := range byCompany {
		st.Companies = append(st.Companies, *ct)
	}

	slices.SortFunc(st.Companies, func(a, b CompanyTotals) int {
		return strings.Compare(a.CompanyCode, b.CompanyCode)
	})

	return st, nil
}

// Text renders the statement as plain lines, one per company plus a total.
func (st *Statement) Text() string {
	var sb strings.Builder

	for _, ct := range st.Companies {
		fmt.Fprintf(&sb, "* %s | %d invoices | billed %s | outstanding %s\n",
			ct.CompanyCode, ct.Count, ct.Billed.StringFixed(2), ct.Outstanding.StringFixed(2))
	}

	fmt.Fprintf(&sb, "Total: %d invoices | billed %s | paid %s | outstanding %s\n",
		st.Count, st.Billed.StringFixed(2), st.Paid.StringFixed(2), st.Outstanding.StringFixed(2))

	return sb.String()
}
