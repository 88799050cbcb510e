package company

import (
	"context"
	"fmt"
	"strings"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=company
type Repository interface {
	ListCompanies(ctx context.Context) ([]*Summary, error)
	GetCompany(ctx context.Context, code string) (*Company, error)
	CreateCompany(ctx context.Context, c *Company) error
	UpdateCompany(ctx context.Context, c *Company) error

	// DeleteCompany removes the company and its industry links. Invoices are
	// deleted with it when cascade is set, otherwise their presence is an error.
	DeleteCompany(ctx context.Context, code string, cascade bool) error
}

type Service struct {
	repo            Repository
	cascadeInvoices bool
}

type Option func(*Service)

// WithInvoiceCascade makes Delete remove a company's invoices instead of refusing.
func WithInvoiceCascade(cascade bool) Option {
	return func(s *Service) {
		s.cascadeInvoices = cascade
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

type CreateParams struct {
	Name        string
	Description string
}

// UpdateParams deliberately has no code: a company's code never changes.
type UpdateParams struct {
	Name        string
	Description string
}

func (s *Service) List(ctx context.Context) ([]*Summary, error) {
	return s.repo.ListCompanies(ctx)
}

func (s *Service) Get(ctx context.Context, code string) (*Company, error) {
	return s.repo.GetCompany(ctx, code)
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Company, error) {
	name := strings.TrimSpace(params.Name)

	code := Slugify(name)
	if code == "" {
		return nil, ErrInvalidName
	}

	c := &Company{
		Code:        code,
		Name:        name,
		Description: params.Description,
	}
	if err := s.repo.CreateCompany(ctx, c); err != nil {
		return nil, fmt.Errorf("creating company %s: %w", code, err)
	}

	return c, nil
}

func (s *Service) Update(ctx context.Context, code string, params UpdateParams) (*Company, error) {
	name := strings.TrimSpace(params.Name)
	if Slugify(name) == "" {
		return nil, ErrInvalidName
	}

	c := &Company{
		Code:        code,
		Name:        name,
		Description: params.Description,
	}
	if err := s.repo.UpdateCompany(ctx, c); err != nil {
		return nil, fmt.Errorf("updating company %s: %w", code, err)
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, code string) error {
	if err := s.repo.DeleteCompany(ctx, code, s.cascadeInvoices); err != nil {
		return fmt.Errorf("deleting company %s: %w", code, err)
	}

	return nil
}
