package company

import (
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/biztime/internal/apperrors"
)

// Company is a billable organisation identified by a slug of its name.
type Company struct {
	Code        string
	Name        string
	Description string
	Industries  []string    // Labels, loaded on Get only
	Invoices    []uuid.UUID // Loaded on Get only
}

// Summary is the list projection of a company.
type Summary struct {
	Code string
	Name string
}

var (
	ErrNotFound    = apperrors.New(apperrors.ErrNotFound, "company not found")
	ErrExists      = apperrors.New(apperrors.ErrConflict, "company already exists")
	ErrHasInvoices = apperrors.New(apperrors.ErrConflict, "company still has invoices")
	ErrInvalidName = apperrors.New(apperrors.ErrInvalidRequest, "company name must contain a letter or digit")
)
