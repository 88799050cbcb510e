package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/biztime/internal/company"
	"github.com/MrJamesThe3rd/biztime/internal/importer"
	"github.com/MrJamesThe3rd/biztime/internal/industry"
)

func newService(t *testing.T, setupMock func(c *company.MockRepository, i *industry.MockRepository)) *importer.Service {
	t.Helper()

	ctrl := gomock.NewController(t)
	companies := company.NewMockRepository(ctrl)
	industries := industry.NewMockRepository(ctrl)

	setupMock(companies, industries)

	return importer.NewService(company.NewService(companies), industry.NewService(industries))
}

func TestService_Import(t *testing.T) {
	input := "name,description,industries\n" +
		"Apple Inc,Maker of OSX.,tech|mining\n" +
		"IBM,Big blue,\n" +
		"?!,no letters,\n"

	svc := newService(t, func(c *company.MockRepository, i *industry.MockRepository) {
		c.EXPECT().
			CreateCompany(gomock.Any(), &company.Company{Code: "apple-inc", Name: "Apple Inc", Description: "Maker of OSX."}).
			Return(nil)
		c.EXPECT().
			CreateCompany(gomock.Any(), &company.Company{Code: "ibm", Name: "IBM", Description: "Big blue"}).
			Return(company.ErrExists)

		i.EXPECT().IndustryExists(gomock.Any(), "tech").Return(true, nil)
		i.EXPECT().CompanyExists(gomock.Any(), "apple-inc").Return(true, nil)
		i.EXPECT().CreateLink(gomock.Any(), &industry.Link{IndustryCode: "tech", CompanyCode: "apple-inc"}).Return(nil)
		i.EXPECT().IndustryExists(gomock.Any(), "mining").Return(false, nil)
	})

	report, err := svc.Import(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "UTF-8", report.Charset)
	assert.Equal(t, []string{"apple-inc"}, report.Created)
	assert.Equal(t, 1, report.Linked)
	assert.Equal(t, []importer.Issue{{Line: 3, Name: "IBM", Reason: "company already exists"}}, report.Skipped)

	require.Len(t, report.Failed, 2)
	assert.Equal(t, 2, report.Failed[0].Line)
	assert.Contains(t, report.Failed[0].Reason, "mining")
	assert.Equal(t, 4, report.Failed[1].Line)
}

func TestService_Import_StopsOnStoreFailure(t *testing.T) {
	input := "name\nApple Inc\nIBM\n"

	svc := newService(t, func(c *company.MockRepository, _ *industry.MockRepository) {
		c.EXPECT().CreateCompany(gomock.Any(), gomock.Any()).Return(nil)
		c.EXPECT().CreateCompany(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
	})

	report, err := svc.Import(context.Background(), strings.NewReader(input))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
	assert.Equal(t, []string{"apple-inc"}, report.Created)
}

func TestService_Import_BadFile(t *testing.T) {
	svc := newService(t, func(*company.MockRepository, *industry.MockRepository) {})

	report, err := svc.Import(context.Background(), strings.NewReader("nothing useful\n"))

	assert.ErrorIs(t, err, importer.ErrNoHeader)
	assert.Nil(t, report)
}
