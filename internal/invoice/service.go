package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	ListInvoices(ctx context.Context, filter ListFilter) ([]*Invoice, error)
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	CompanyExists(ctx context.Context, code string) (bool, error)
	CreateInvoice(ctx context.Context, inv *Invoice) error
	DeleteInvoice(ctx context.Context, id uuid.UUID) error

	BeginUpdate(ctx context.Context) (UpdateTx, error)
}

// UpdateTx reads and writes one invoice inside a single database transaction.
// LockInvoice holds the row until Commit or Rollback, so concurrent updates
// of the same invoice are applied one after the other.
type UpdateTx interface {
	LockInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	SavePayment(ctx context.Context, inv *Invoice) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

type Option func(*Service)

// WithClock replaces the wall clock used to stamp payment dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		now:  defaultNow,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// defaultNow matches the microsecond resolution of Postgres timestamps so a
// returned invoice compares equal to the same invoice read back later.
func defaultNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

type CreateParams struct {
	CompanyCode string
	Amount      decimal.Decimal
}

type ListFilter struct {
	Paid        *bool
	CompanyCode string
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Invoice, error) {
	if err := ValidateAmount(params.Amount); err != nil {
		return nil, err
	}

	ok, err := s.repo.CompanyExists(ctx, params.CompanyCode)
	if err != nil {
		return nil, fmt.Errorf("looking up company: %w", err)
	}

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompany, params.CompanyCode)
	}

	inv := &Invoice{
		CompanyCode: params.CompanyCode,
		Amount:      params.Amount,
	}
	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, fmt.Errorf("creating invoice: %w", err)
	}

	return inv, nil
}

// Update applies a payment request to the invoice. The current state is read
// under a row lock in the same transaction that writes the result.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req PaymentRequest) (*Invoice, error) {
	if err := ValidateAmount(req.Amount); err != nil {
		return nil, err
	}

	return s.update(ctx, id, func(*Invoice) PaymentRequest { return req })
}

// UpdateAmount changes the amount and keeps the paid flag found under the lock.
func (s *Service) UpdateAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*Invoice, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}

	return s.update(ctx, id, func(current *Invoice) PaymentRequest {
		return PaymentRequest{Amount: amount, Paid: current.Paid}
	})
}

// SetPaid changes the paid flag and keeps the amount found under the lock.
func (s *Service) SetPaid(ctx context.Context, id uuid.UUID, paid bool) (*Invoice, error) {
	return s.update(ctx, id, func(current *Invoice) PaymentRequest {
		return PaymentRequest{Amount: current.Amount, Paid: paid}
	})
}

// update builds the payment request from the locked row and writes the
// transition result before releasing the lock.
func (s *Service) update(ctx context.Context, id uuid.UUID, request func(current *Invoice) PaymentRequest) (*Invoice, error) {
	utx, err := s.repo.BeginUpdate(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin update: %w", err)
	}
	defer utx.Rollback()

	inv, err := utx.LockInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	inv.Apply(Transition(inv.PaymentState(), request(inv), s.now()))

	if err := utx.SavePayment(ctx, inv); err != nil {
		return nil, fmt.Errorf("save payment: %w", err)
	}

	if err := utx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}

	return inv, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteInvoice(ctx, id)
}
