package render

import "strings"

// GenerateStars renders a prompt rating as star glyphs.
//
// Whole-number ratings produce five glyphs, floor(rating) of them filled.
// Fractional ratings produce four: the fractional remainder drops its slot
// rather than rendering a partial glyph. Consumers depend on that exact
// shape, so it is preserved as is.
func GenerateStars(rating float64) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}

	filled := int(rating)
	total := 5
	if rating != float64(filled) {
		total = 4
	}
	return strings.Repeat("★", filled) + strings.Repeat("☆", total-filled)
}
