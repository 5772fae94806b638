// Package clean provides text sanitizing helpers shared by the layout and
// marker packages.
package clean

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Invisible covers control characters and zero-width code points that some
// PDF generators embed inside otherwise copyable text. Left in place they
// break marker matching, so every matcher runs on sanitized text.
var Invisible = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0000, Hi: 0x0008, Stride: 1},
		{Lo: 0x000B, Hi: 0x001F, Stride: 1},
		{Lo: 0x007F, Hi: 0x009F, Stride: 1},
		{Lo: 0x200B, Hi: 0x200D, Stride: 1},
		{Lo: 0xFEFF, Hi: 0xFEFF, Stride: 1},
	},
}

var stripInvisible = runes.Remove(runes.In(Invisible))

// Sanitize removes invisible control characters from s. The input is
// returned unchanged if the transform fails.
func Sanitize(s string) string {
	out, _, err := transform.String(stripInvisible, s)
	if err != nil {
		return s
	}
	return out
}

// HasInvisible reports whether s contains any character Sanitize would strip.
func HasInvisible(s string) bool {
	for _, r := range s {
		if unicode.Is(Invisible, r) {
			return true
		}
	}
	return false
}

// dotLike is the repertoire of dot, dash and underscore characters that
// answer-writing lines are typically typeset with.
const dotLike = ".·•_‐-–—"

// DotLikeRatio returns the fraction of runes in s drawn from the dot, dash
// and underscore repertoire. Returns 0 for an empty string.
func DotLikeRatio(s string) float64 {
	total := 0
	hits := 0
	for _, r := range s {
		total++
		if strings.ContainsRune(dotLike, r) {
			hits++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// IsWritingLine reports whether s looks like a typeset answer-writing line:
// at least four characters, sixty percent or more of them dot-like.
func IsWritingLine(s string) bool {
	if len([]rune(s)) < 4 {
		return false
	}
	return DotLikeRatio(s) >= 0.6
}
