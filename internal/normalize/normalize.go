// Package normalize canonicalizes user-entered text before it is stored or
// turned into file names.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// Matches spaces, underscores, and slashes (for replacement with dashes).
	wordSeparatorRe = regexp.MustCompile(`[\s_/]+`)
	// Matches non-alphanumeric characters (except dashes).
	nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9-]`)
	// Matches multiple consecutive dashes.
	multipleDashRe = regexp.MustCompile(`-+`)
)

// Text returns s in Unicode NFC so visually identical names compare equal
// under the store's unique constraints.
func Text(s string) string {
	return norm.NFC.String(s)
}

// TextPtr applies Text to an optional value.
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := Text(*s)
	return &v
}

// Slug converts a title to a lowercase ASCII slug for file names.
//
// Rules:
//  1. Strip diacritics ("Café" becomes "cafe")
//  2. Trim whitespace and lowercase
//  3. Replace spaces, underscores and slashes with dashes
//  4. Remove everything but a-z, 0-9 and dashes
//  5. Collapse and trim dashes
//
// Examples:
//
//	"Meeting Notes"      → "meeting-notes"
//	"Q3/Q4 plan_v2"      → "q3-q4-plan-v2"
//	"Crème brûlée!"      → "creme-brulee"
//	"🗒"                 → ""
func Slug(input string) string {
	s := stripMarks(input)

	s = strings.ToLower(strings.TrimSpace(s))
	s = wordSeparatorRe.ReplaceAllString(s, "-")
	s = nonAlphanumericRe.ReplaceAllString(s, "")
	s = multipleDashRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
