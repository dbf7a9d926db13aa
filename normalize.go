package integral

import (
	"regexp"
	"strings"
)

var lnToken = regexp.MustCompile(`\bln\b`)

// Normalize rewrites user notation into the expression syntax both
// evaluators read: "^" becomes "**" and the whole-word "ln" becomes "log".
// Nothing else changes, so Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	return lnToken.ReplaceAllString(strings.ReplaceAll(raw, "^", "**"), "log")
}
