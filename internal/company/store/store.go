package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/biztime/internal/company"
	"github.com/MrJamesThe3rd/biztime/internal/database"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListCompanies(ctx context.Context) ([]*company.Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT code, name FROM companies ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	defer rows.Close()

	companies := []*company.Summary{}

	for rows.Next() {
		var c company.Summary
		if err := rows.Scan(&c.Code, &c.Name); err != nil {
			return nil, fmt.Errorf("scanning company: %w", err)
		}

		companies = append(companies, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating company rows: %w", err)
	}

	return companies, nil
}

// GetCompany loads the company together with its industry labels and invoice ids.
func (s *Store) GetCompany(ctx context.Context, code string) (*company.Company, error) {
	var c company.Company

	err := s.db.QueryRowContext(ctx,
		`SELECT code, name, description FROM companies WHERE code = $1`, code,
	).Scan(&c.Code, &c.Name, &c.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, company.ErrNotFound
		}

		return nil, fmt.Errorf("getting company: %w", err)
	}

	if c.Industries, err = s.industryLabels(ctx, code); err != nil {
		return nil, err
	}

	if c.Invoices, err = s.invoiceIDs(ctx, code); err != nil {
		return nil, err
	}

	return &c, nil
}

func (s *Store) industryLabels(ctx context.Context, code string) ([]string, error) {
	query := `
		SELECT i.industry
		FROM companies_industries ci
		JOIN industries i ON i.code = ci.industry_code
		WHERE ci.company_code = $1
		ORDER BY ci.id
	`

	rows, err := s.db.QueryContext(ctx, query, code)
	if err != nil {
		return nil, fmt.Errorf("listing company industries: %w", err)
	}
	defer rows.Close()

	labels := []string{}

	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("scanning industry: %w", err)
		}

		labels = append(labels, label)
	}

	return labels, rows.Err()
}

func (s *Store) invoiceIDs(ctx context.Context, code string) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM invoices WHERE comp_code = $1 ORDER BY add_date`, code)
	if err != nil {
		return nil, fmt.Errorf("listing company invoices: %w", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning invoice id: %w", err)
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// CreateCompany inserts the company, reporting an existing code as ErrExists.
// Names are not unique: two names that slugify alike still collide on code.
func (s *Store) CreateCompany(ctx context.Context, c *company.Company) error {
	query := `
		INSERT INTO companies (code, name, description)
		VALUES ($1, $2, $3)
	`

	if _, err := s.db.ExecContext(ctx, query, c.Code, c.Name, c.Description); err != nil {
		if database.IsUniqueViolation(err) {
			return company.ErrExists
		}

		return fmt.Errorf("inserting company: %w", err)
	}

	return nil
}

func (s *Store) UpdateCompany(ctx context.Context, c *company.Company) error {
	query := `
		UPDATE companies
		SET name = $1, description = $2
		WHERE code = $3
	`

	res, err := s.db.ExecContext(ctx, query, c.Name, c.Description, c.Code)
	if err != nil {
		return fmt.Errorf("updating company: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return company.ErrNotFound
	}

	return nil
}

// DeleteCompany runs the invoice check or cascade, the link cleanup and the
// delete itself in one transaction.
func (s *Store) DeleteCompany(ctx context.Context, code string, cascade bool) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	// Row lock keeps invoices from being billed against the company mid-delete.
	var locked string

	err = dbTx.QueryRowContext(ctx, `SELECT code FROM companies WHERE code = $1 FOR UPDATE`, code).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return company.ErrNotFound
		}

		return fmt.Errorf("locking company: %w", err)
	}

	if cascade {
		if _, err := dbTx.ExecContext(ctx, `DELETE FROM invoices WHERE comp_code = $1`, code); err != nil {
			return fmt.Errorf("deleting company invoices: %w", err)
		}
	} else {
		var hasInvoices bool
		if err := dbTx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM invoices WHERE comp_code = $1)`, code,
		).Scan(&hasInvoices); err != nil {
			return fmt.Errorf("checking company invoices: %w", err)
		}

		if hasInvoices {
			return company.ErrHasInvoices
		}
	}

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM companies_industries WHERE company_code = $1`, code); err != nil {
		return fmt.Errorf("deleting company industries: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM companies WHERE code = $1`, code); err != nil {
		return fmt.Errorf("deleting company: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
