package company

import (
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/biztime/internal/company"
)

type summaryResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// companyResponse omits industries and invoices for create and update,
// which do not load them.
type companyResponse struct {
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Industries  []string    `json:"industries,omitzero"`
	Invoices    []uuid.UUID `json:"invoices,omitzero"`
}

func toResponse(c *company.Company) companyResponse {
	return companyResponse{
		Code:        c.Code,
		Name:        c.Name,
		Description: c.Description,
		Industries:  c.Industries,
		Invoices:    c.Invoices,
	}
}

func toSummaryList(companies []*company.Summary) []summaryResponse {
	resp := make([]summaryResponse, 0, len(companies))
	for _, c := range companies {
		resp = append(resp, summaryResponse{Code: c.Code, Name: c.Name})
	}

	return resp
}
