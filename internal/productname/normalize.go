// Package productname folds tiered price variants of a product into a
// single display name so that usage and spend roll up per product rather
// than per pricing tier.
package productname

import (
	"regexp"
	"strings"
)

var tierSuffix = regexp.MustCompile(`(?i)\s*-\s*tier\s*\d+$`)

// Normalize strips a trailing tier suffix such as " - Tier 3" from a
// product name. Names without a tier suffix are returned trimmed but
// otherwise unchanged.
func Normalize(name string) string {
	return strings.TrimSpace(tierSuffix.ReplaceAllString(name, ""))
}
