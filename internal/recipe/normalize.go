package recipe

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText canonicalizes step instruction text before it is stored:
// NFC normalization plus leading/trailing whitespace trim. Two visually
// identical instructions must compare equal regardless of how the client
// composed their code points.
func NormalizeText(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}
