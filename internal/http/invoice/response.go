package invoice

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/biztime/internal/invoice"
)

type invoiceResponse struct {
	ID          uuid.UUID   `json:"id"`
	CompanyCode string      `json:"comp_code"`
	Amount      json.Number `json:"amt"`
	Paid        bool        `json:"paid"`
	AddDate     time.Time   `json:"add_date"`
	PaidDate    *time.Time  `json:"paid_date"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:          inv.ID,
		CompanyCode: inv.CompanyCode,
		Amount:      json.Number(inv.Amount.String()),
		Paid:        inv.Paid,
		AddDate:     inv.AddDate,
		PaidDate:    inv.PaidDate,
	}
}

func toResponseList(invoices []*invoice.Invoice) []invoiceResponse {
	resp := make([]invoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		resp = append(resp, toResponse(inv))
	}

	return resp
}
