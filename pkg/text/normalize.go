package text

import (
	"strings"
)

// Normalize collapses runs of whitespace, line breaks included, into single spaces.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
