package industry

import (
	"github.com/MrJamesThe3rd/biztime/internal/industry"
)

type industryResponse struct {
	Code      string   `json:"code"`
	Industry  string   `json:"industry"`
	Companies []string `json:"companies"`
}

type associationResponse struct {
	IndustryCode string `json:"industry_code"`
	CompanyCode  string `json:"company_code"`
}

func toResponse(ind *industry.Industry) industryResponse {
	companies := ind.Companies
	if companies == nil {
		companies = []string{}
	}

	return industryResponse{
		Code:      ind.Code,
		Industry:  ind.Industry,
		Companies: companies,
	}
}

func toResponseList(industries []*industry.Industry) []industryResponse {
	resp := make([]industryResponse, 0, len(industries))
	for _, ind := range industries {
		resp = append(resp, toResponse(ind))
	}

	return resp
}
