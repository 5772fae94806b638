package layout

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/laurens1995s/paper-labeler/internal/clean"
	"github.com/laurens1995s/paper-labeler/model"
)

var snippetHeadRe = regexp.MustCompile(`^[(（]?\s*\d{1,3}\b`)

// ControlCharSnippet returns a short escaped excerpt around the first
// invisible control character found inside a marker-looking line, or the
// empty string when no such line exists. PDF generators occasionally embed
// zero-width characters inside question numbers; the excerpt makes the
// resulting warning actionable instead of mystifying.
func ControlCharSnippet(lines []model.TextLine) string {
	for _, ln := range lines {
		if !clean.HasInvisible(ln.Text) {
			continue
		}
		head := markerHead(ln.Text)
		if !snippetHeadRe.MatchString(head) && !headSubpartRe.MatchString(head) {
			continue
		}

		runes := []rune(ln.Text)
		at := 0
		for i, r := range runes {
			if unicode.Is(clean.Invisible, r) {
				at = i
				break
			}
		}
		lo := at - 8
		if lo < 0 {
			lo = 0
		}
		hi := at + 24
		if hi > len(runes) {
			hi = len(runes)
		}
		quoted := strconv.Quote(string(runes[lo:hi]))
		return strings.Trim(quoted, `"`)
	}
	return ""
}
