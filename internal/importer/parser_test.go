package importer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/biztime/internal/apperrors"
	"github.com/MrJamesThe3rd/biztime/internal/importer"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []importer.Row
	}{
		{
			name:  "Comma",
			input: "name,description,industries\nApple Inc,Maker of OSX.,tech|acct\nIBM,Big blue,\n",
			want: []importer.Row{
				{Line: 2, Name: "Apple Inc", Description: "Maker of OSX.", Industries: []string{"tech", "acct"}},
				{Line: 3, Name: "IBM", Description: "Big blue"},
			},
		},
		{
			name:  "SemicolonWithPreamble",
			input: "Company directory;exported 2024-05-01\n\nCompany;Desc\n\"Crème Brûlée & Co.\";\"Desserts; mostly\"\n;;\n",
			want: []importer.Row{
				{Line: 4, Name: "Crème Brûlée & Co.", Description: "Desserts; mostly"},
			},
		},
		{
			name:  "ColumnsInAnyOrder",
			input: "Industry,Name\ntech,Apple Inc\n",
			want: []importer.Row{
				{Line: 2, Name: "Apple Inc", Industries: []string{"tech"}},
			},
		},
		{
			name:  "ShortRows",
			input: "name,description\nIBM\n",
			want: []importer.Row{
				{Line: 2, Name: "IBM"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, charset, err := importer.Parse(strings.NewReader(tt.input))
			require.NoError(t, err)

			assert.Equal(t, "UTF-8", charset)
			assert.Equal(t, tt.want, rows)
		})
	}
}

func TestParse_Latin1(t *testing.T) {
	input := []byte("name;description\nCaf\xe9 Soleil;Boulangerie\n")

	rows, charset, err := importer.Parse(bytes.NewReader(input))
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "Café Soleil", rows[0].Name)
	assert.NotEqual(t, "UTF-8", charset)
}

func TestParse_NoHeader(t *testing.T) {
	_, _, err := importer.Parse(strings.NewReader("code,label\nacct,Accounting\n"))

	assert.ErrorIs(t, err, importer.ErrNoHeader)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
}

func TestParse_TooManyRows(t *testing.T) {
	var b strings.Builder

	b.WriteString("name\n")

	for range 5001 {
		b.WriteString("x\n")
	}

	_, _, err := importer.Parse(strings.NewReader(b.String()))

	assert.ErrorIs(t, err, importer.ErrTooManyRows)
}
