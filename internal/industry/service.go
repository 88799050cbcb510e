package industry

import (
	"context"
	"fmt"
	"strings"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=industry
type Repository interface {
	ListIndustries(ctx context.Context) ([]*Industry, error)
	CreateIndustry(ctx context.Context, ind *Industry) error

	IndustryExists(ctx context.Context, code string) (bool, error)
	CompanyExists(ctx context.Context, code string) (bool, error)
	CreateLink(ctx context.Context, link *Link) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Code     string
	Industry string
}

func (s *Service) List(ctx context.Context) ([]*Industry, error) {
	return s.repo.ListIndustries(ctx)
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Industry, error) {
	ind := &Industry{
		Code:     strings.TrimSpace(params.Code),
		Industry: strings.TrimSpace(params.Industry),
	}
	if ind.Code == "" || ind.Industry == "" {
		return nil, ErrInvalidIndustry
	}

	if err := s.repo.CreateIndustry(ctx, ind); err != nil {
		return nil, fmt.Errorf("creating industry %s: %w", ind.Code, err)
	}

	ind.Companies = []string{}

	return ind, nil
}

// Associate links a company to an industry once both are known to exist.
// Nothing is written when either side is missing.
func (s *Service) Associate(ctx context.Context, link Link) (*Link, error) {
	ok, err := s.repo.IndustryExists(ctx, link.IndustryCode)
	if err != nil {
		return nil, fmt.Errorf("looking up industry: %w", err)
	}

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIndustry, link.IndustryCode)
	}

	ok, err = s.repo.CompanyExists(ctx, link.CompanyCode)
	if err != nil {
		return nil, fmt.Errorf("looking up company: %w", err)
	}

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompany, link.CompanyCode)
	}

	if err := s.repo.CreateLink(ctx, &link); err != nil {
		return nil, fmt.Errorf("associating %s with %s: %w", link.CompanyCode, link.IndustryCode, err)
	}

	return &link, nil
}
