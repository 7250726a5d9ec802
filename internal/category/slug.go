// Package category provides prompt category normalization, aliasing, and the default taxonomy.
package category

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// Matches any non-alphanumeric character.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	// Matches multiple hyphens.
	multipleHyphens = regexp.MustCompile(`-+`)
)

// Slugify converts a string to a URL-safe slug.
// "Data Analysis" -> "data-analysis".
// "Design/UX" -> "design-ux".
func Slugify(s string) string {
	// Normalize unicode (decompose accented characters).
	s = norm.NFKD.String(s)

	// Remove non-ASCII characters.
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	// Lowercase.
	s = strings.ToLower(s)

	// Replace non-alphanumeric with hyphens.
	s = nonAlphanumeric.ReplaceAllString(s, "-")

	// Collapse multiple hyphens.
	s = multipleHyphens.ReplaceAllString(s, "-")

	// Trim leading/trailing hyphens.
	s = strings.Trim(s, "-")

	return s
}

// Normalize resolves a raw category label to its canonical slug.
// Unknown labels fall through to their own slug.
func Normalize(raw string) string {
	slug := Slugify(raw)
	if canonical, ok := CanonicalAliases[slug]; ok {
		return canonical
	}
	return slug
}
