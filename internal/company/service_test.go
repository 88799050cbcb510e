package company_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/biztime/internal/apperrors"
	"github.com/MrJamesThe3rd/biztime/internal/company"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    company.CreateParams
		setupMock func(m *company.MockRepository)
		wantCode  string
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			params: company.CreateParams{Name: "Apple Inc", Description: "Maker of OSX."},
			setupMock: func(m *company.MockRepository) {
				m.EXPECT().
					CreateCompany(gomock.Any(), &company.Company{
						Code:        "apple-inc",
						Name:        "Apple Inc",
						Description: "Maker of OSX.",
					}).
					Return(nil)
			},
			wantCode: "apple-inc",
		},
		{
			name:   "TrimsName",
			params: company.CreateParams{Name: "  IBM  "},
			setupMock: func(m *company.MockRepository) {
				m.EXPECT().
					CreateCompany(gomock.Any(), &company.Company{Code: "ibm", Name: "IBM"}).
					Return(nil)
			},
			wantCode: "ibm",
		},
		{
			name:    "BlankName",
			params:  company.CreateParams{Name: "   "},
			wantErr: apperrors.ErrInvalidRequest,
		},
		{
			name:    "NameWithoutSlug",
			params:  company.CreateParams{Name: "?!"},
			wantErr: apperrors.ErrInvalidRequest,
		},
		{
			name:   "Duplicate",
			params: company.CreateParams{Name: "Apple Inc"},
			setupMock: func(m *company.MockRepository) {
				m.EXPECT().
					CreateCompany(gomock.Any(), gomock.Any()).
					Return(company.ErrExists)
			},
			wantErr: apperrors.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := company.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := company.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, got.Code)
		})
	}
}

func TestService_Update(t *testing.T) {
	type testCase struct {
		name      string
		code      string
		params    company.UpdateParams
		setupMock func(m *company.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			code:   "apple-inc",
			params: company.UpdateParams{Name: "Apple", Description: "Phones"},
			setupMock: func(m *company.MockRepository) {
				m.EXPECT().
					UpdateCompany(gomock.Any(), &company.Company{Code: "apple-inc", Name: "Apple", Description: "Phones"}).
					Return(nil)
			},
		},
		{
			name:   "NotFound",
			code:   "nope",
			params: company.UpdateParams{Name: "Nope"},
			setupMock: func(m *company.MockRepository) {
				m.EXPECT().
					UpdateCompany(gomock.Any(), gomock.Any()).
					Return(company.ErrNotFound)
			},
			wantErr: apperrors.ErrNotFound,
		},
		{
			name:    "BlankName",
			code:    "apple-inc",
			params:  company.UpdateParams{Name: ""},
			wantErr: apperrors.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := company.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := company.NewService(repo)
			got, err := svc.Update(context.Background(), tt.code, tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.params.Name, got.Name)
		})
	}
}

func TestService_Delete(t *testing.T) {
	t.Run("RestrictByDefault", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := company.NewMockRepository(ctrl)
		repo.EXPECT().DeleteCompany(gomock.Any(), "apple-inc", false).Return(company.ErrHasInvoices)

		err := company.NewService(repo).Delete(context.Background(), "apple-inc")
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("Cascade", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := company.NewMockRepository(ctrl)
		repo.EXPECT().DeleteCompany(gomock.Any(), "apple-inc", true).Return(nil)

		err := company.NewService(repo, company.WithInvoiceCascade(true)).Delete(context.Background(), "apple-inc")
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := company.NewMockRepository(ctrl)
		repo.EXPECT().DeleteCompany(gomock.Any(), "ghost", false).Return(company.ErrNotFound)

		err := company.NewService(repo).Delete(context.Background(), "ghost")
		assert.ErrorIs(t, err, company.ErrNotFound)
	})
}

func TestService_ListAndGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := company.NewMockRepository(ctrl)
	repo.EXPECT().ListCompanies(gomock.Any()).Return([]*company.Summary{
		{Code: "apple-inc", Name: "Apple Inc"},
		{Code: "ibm", Name: "IBM"},
	}, nil)
	repo.EXPECT().GetCompany(gomock.Any(), "ibm").Return(&company.Company{
		Code:       "ibm",
		Name:       "IBM",
		Industries: []string{"Technology"},
	}, nil)
	repo.EXPECT().GetCompany(gomock.Any(), "ghost").Return(nil, company.ErrNotFound)

	svc := company.NewService(repo)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)

	got, err := svc.Get(context.Background(), "ibm")
	require.NoError(t, err)
	assert.Equal(t, []string{"Technology"}, got.Industries)

	_, err = svc.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
