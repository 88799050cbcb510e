package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/biztime/internal/database"
	"github.com/MrJamesThe3rd/biztime/internal/invoice"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectInvoiceColumns = `id, comp_code, amt, paid, add_date, paid_date`

// scanInvoice reads columns in selectInvoiceColumns order.
func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var inv invoice.Invoice

	if err := s.Scan(&inv.ID, &inv.CompanyCode, &inv.Amount, &inv.Paid, &inv.AddDate, &inv.PaidDate); err != nil {
		return nil, err
	}

	return &inv, nil
}

func (s *Store) ListInvoices(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices`

	var (
		conditions []string
		args       []any
	)

	if filter.Paid != nil {
		args = append(args, *filter.Paid)
		conditions = append(conditions, fmt.Sprintf("paid = $%d", len(args)))
	}

	if filter.CompanyCode != "" {
		args = append(args, filter.CompanyCode)
		conditions = append(conditions, fmt.Sprintf("comp_code = $%d", len(args)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY add_date ASC, id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	invoices := []*invoice.Invoice{}

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice rows: %w", err)
	}

	return invoices, nil
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices WHERE id = $1`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	return inv, nil
}

func (s *Store) CompanyExists(ctx context.Context, code string) (bool, error) {
	var ok bool

	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM companies WHERE code = $1)`, code).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("checking company: %w", err)
	}

	return ok, nil
}

// CreateInvoice inserts an unpaid invoice and fills in the generated columns
// and the amount as stored.
func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		INSERT INTO invoices (comp_code, amt, paid, paid_date, add_date)
		VALUES ($1, $2, FALSE, NULL, NOW())
		RETURNING id, amt, paid, add_date, paid_date
	`

	err := s.db.QueryRowContext(ctx, query, inv.CompanyCode, inv.Amount).
		Scan(&inv.ID, &inv.Amount, &inv.Paid, &inv.AddDate, &inv.PaidDate)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: %q", invoice.ErrUnknownCompany, inv.CompanyCode)
		}

		return fmt.Errorf("inserting invoice: %w", err)
	}

	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	if n == 0 {
		return invoice.ErrNotFound
	}

	return nil
}

type updateTx struct {
	tx *sql.Tx
}

func (s *Store) BeginUpdate(ctx context.Context) (invoice.UpdateTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning update tx: %w", err)
	}

	return &updateTx{tx: dbTx}, nil
}

func (utx *updateTx) Commit() error { return utx.tx.Commit() }

// Rollback is safe to defer after Commit.
func (utx *updateTx) Rollback() error {
	if err := utx.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}

	return nil
}

// LockInvoice reads the invoice with FOR UPDATE; other updates of the same
// row wait until this transaction ends and then see its result.
func (utx *updateTx) LockInvoice(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices WHERE id = $1 FOR UPDATE`

	inv, err := scanInvoice(utx.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("locking invoice: %w", err)
	}

	return inv, nil
}

// SavePayment writes only the fields a payment transition may change and
// reads the amount back as stored.
func (utx *updateTx) SavePayment(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		UPDATE invoices
		SET amt = $1, paid = $2, paid_date = $3
		WHERE id = $4
		RETURNING amt
	`

	err := utx.tx.QueryRowContext(ctx, query, inv.Amount, inv.Paid, inv.PaidDate, inv.ID).Scan(&inv.Amount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return invoice.ErrNotFound
		}

		return fmt.Errorf("updating invoice: %w", err)
	}

	return nil
}
