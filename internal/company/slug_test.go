package company_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/biztime/internal/company"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "Simple", in: "Apple Inc", want: "apple-inc"},
		{name: "Punctuation Run", in: "Apple, Inc.", want: "apple-inc"},
		{name: "Leading And Trailing", in: "  --IBM--  ", want: "ibm"},
		{name: "Accents", in: "Crème Brûlée & Co.", want: "creme-brulee-co"},
		{name: "Digits", in: "3M Company", want: "3m-company"},
		{name: "Already Slug", in: "apple-inc", want: "apple-inc"},
		{name: "Only Symbols", in: "!!!", want: ""},
		{name: "Empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, company.Slugify(tt.in))
		})
	}
}
