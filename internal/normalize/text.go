package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Text folds compatibility forms (full-width letters, ideographic spaces) with NFKC
// and trims surrounding whitespace. Header labels and category text go through it so
// hand-typed variants compare equal.
func Text(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(norm.NFKC.String(s))
}

// IsBlank reports whether s has no content after Text.
func IsBlank(s string) bool { return Text(s) == "" }
