package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/biztime/internal/database"
	"github.com/MrJamesThe3rd/biztime/internal/industry"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListIndustries(ctx context.Context) ([]*industry.Industry, error) {
	query := `
		SELECT i.code, i.industry, COALESCE(string_agg(ci.company_code, ',' ORDER BY ci.id), '')
		FROM industries i
		LEFT JOIN companies_industries ci ON ci.industry_code = i.code
		GROUP BY i.code, i.industry
		ORDER BY i.code
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing industries: %w", err)
	}
	defer rows.Close()

	industries := []*industry.Industry{}

	for rows.Next() {
		var (
			ind       industry.Industry
			companies string
		)

		if err := rows.Scan(&ind.Code, &ind.Industry, &companies); err != nil {
			return nil, fmt.Errorf("scanning industry: %w", err)
		}

		ind.Companies = splitCodes(companies)
		industries = append(industries, &ind)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating industry rows: %w", err)
	}

	return industries, nil
}

// splitCodes turns the aggregated company codes back into a slice.
// Codes are slugs and never contain commas.
func splitCodes(s string) []string {
	if s == "" {
		return []string{}
	}

	return strings.Split(s, ",")
}

func (s *Store) CreateIndustry(ctx context.Context, ind *industry.Industry) error {
	query := `
		INSERT INTO industries (code, industry)
		VALUES ($1, $2)
		ON CONFLICT (code) DO NOTHING
		RETURNING code
	`

	var code string

	err := s.db.QueryRowContext(ctx, query, ind.Code, ind.Industry).Scan(&code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return industry.ErrExists
		}

		return fmt.Errorf("inserting industry: %w", err)
	}

	return nil
}

func (s *Store) IndustryExists(ctx context.Context, code string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM industries WHERE code = $1)`, code)
}

func (s *Store) CompanyExists(ctx context.Context, code string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM companies WHERE code = $1)`, code)
}

func (s *Store) exists(ctx context.Context, query, code string) (bool, error) {
	var ok bool
	if err := s.db.QueryRowContext(ctx, query, code).Scan(&ok); err != nil {
		return false, fmt.Errorf("checking existence: %w", err)
	}

	return ok, nil
}

// CreateLink inserts the association. Industries are never deleted, so a
// foreign key violation means the company went away after the service checked it.
func (s *Store) CreateLink(ctx context.Context, link *industry.Link) error {
	query := `
		INSERT INTO companies_industries (industry_code, company_code)
		VALUES ($1, $2)
	`

	_, err := s.db.ExecContext(ctx, query, link.IndustryCode, link.CompanyCode)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: %q", industry.ErrUnknownCompany, link.CompanyCode)
		}

		return fmt.Errorf("inserting industry link: %w", err)
	}

	return nil
}
