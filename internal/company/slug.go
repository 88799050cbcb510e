package company

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const slugSeparator = '-'

// Slugify derives a company code from a display name: accents are folded,
// letters lowercased and every run of other characters collapsed into a
// single separator. "Apple Inc" becomes "apple-inc".
func Slugify(name string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), name)
	if err != nil {
		folded = name
	}

	var sb strings.Builder

	pending := false

	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && sb.Len() > 0 {
				sb.WriteRune(slugSeparator)
			}

			sb.WriteRune(r)

			pending = false

			continue
		}

		pending = true
	}

	return sb.String()
}
