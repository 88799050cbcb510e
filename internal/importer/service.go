package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/MrJamesThe3rd/biztime/internal/apperrors"
	"github.com/MrJamesThe3rd/biztime/internal/company"
	"github.com/MrJamesThe3rd/biztime/internal/industry"
)

// Issue explains why a row was not fully applied.
type Issue struct {
	Line   int
	Name   string
	Reason string
}

// Report summarises a directory import. Every row is applied on its own:
// a rejected row does not undo the rows before it.
type Report struct {
	Charset string
	Created []string // Codes of created companies
	Linked  int
	Skipped []Issue // Companies that already exist
	Failed  []Issue
}

type Service struct {
	companies  *company.Service
	industries *industry.Service
}

func NewService(companies *company.Service, industries *industry.Service) *Service {
	return &Service{
		companies:  companies,
		industries: industries,
	}
}

// Import creates the companies listed in r and links them to the industries
// named on their row. It stops at the first store failure and returns the
// report so far together with the error.
func (s *Service) Import(ctx context.Context, r io.Reader) (*Report, error) {
	rows, charset, err := Parse(r)
	if err != nil {
		return nil, err
	}

	report := &Report{Charset: charset, Created: []string{}}

	for _, row := range rows {
		if err := s.importRow(ctx, row, report); err != nil {
			return report, fmt.Errorf("line %d: %w", row.Line, err)
		}
	}

	slog.Info("directory imported",
		"charset", charset,
		"created", len(report.Created),
		"linked", report.Linked,
		"skipped", len(report.Skipped),
		"failed", len(report.Failed),
	)

	return report, nil
}

func (s *Service) importRow(ctx context.Context, row Row, report *Report) error {
	c, err := s.companies.Create(ctx, company.CreateParams{Name: row.Name, Description: row.Description})

	switch {
	case errors.Is(err, apperrors.ErrConflict):
		report.Skipped = append(report.Skipped, Issue{Line: row.Line, Name: row.Name, Reason: "company already exists"})
		return nil
	case errors.Is(err, apperrors.ErrInvalidRequest):
		report.Failed = append(report.Failed, Issue{Line: row.Line, Name: row.Name, Reason: err.Error()})
		return nil
	case err != nil:
		return err
	}

	report.Created = append(report.Created, c.Code)

	for _, code := range row.Industries {
		_, err := s.industries.Associate(ctx, industry.Link{IndustryCode: code, CompanyCode: c.Code})

		switch {
		case errors.Is(err, apperrors.ErrInvalidReference):
			report.Failed = append(report.Failed, Issue{Line: row.Line, Name: row.Name, Reason: err.Error()})
		case err != nil:
			return err
		default:
			report.Linked++
		}
	}

	return nil
}
