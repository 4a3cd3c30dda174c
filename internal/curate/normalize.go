package curate

import (
	"regexp"
	"strings"
)

// The normalizer strips promotional clutter in a fixed order; later steps
// assume earlier noise is already gone.
var (
	bracketTagRe    = regexp.MustCompile(`\[.*?\]`)
	parenDiscountRe = regexp.MustCompile(`(?i)\(\s*[0-9]+%\s*OFF\s*\)`)
	trailingPriceRe = regexp.MustCompile(`-\s*\$[0-9]+(\.[0-9]{2})?$`)
	dealPrefixRe    = regexp.MustCompile(`(?i)^\s*(Deal:|Hot Deal:|Amazon Deal:)`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
)

// NormalizeTitle produces the canonical display string for a raw deal title:
// bracketed tags, parenthesized "(N% OFF)" annotations, a trailing "- $N.NN"
// price suffix and known deal-site prefixes are removed, then whitespace is
// collapsed and trimmed.
func NormalizeTitle(title string) string {
	t := bracketTagRe.ReplaceAllString(title, "")
	t = parenDiscountRe.ReplaceAllString(t, "")
	t = trailingPriceRe.ReplaceAllString(strings.TrimRight(t, " "), "")
	t = dealPrefixRe.ReplaceAllString(t, "")
	t = whitespaceRe.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}
