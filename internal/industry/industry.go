package industry

import (
	"github.com/MrJamesThe3rd/biztime/internal/apperrors"
)

// Industry is a classification companies can be associated with.
type Industry struct {
	Code     string
	Industry string
	// Companies holds the codes of associated companies. Populated by List.
	Companies []string
}

// Link associates a company with an industry. The same pair may be linked more than once.
type Link struct {
	IndustryCode string
	CompanyCode  string
}

var (
	ErrExists          = apperrors.New(apperrors.ErrConflict, "industry already exists")
	ErrInvalidIndustry = apperrors.New(apperrors.ErrInvalidRequest, "industry code and label are required")
	ErrUnknownIndustry = apperrors.New(apperrors.ErrInvalidReference, "industry does not exist")
	ErrUnknownCompany  = apperrors.New(apperrors.ErrInvalidReference, "company does not exist")
)
