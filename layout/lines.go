// Package layout extracts per-page text lines and the geometric evidence
// (horizontal rules, footer onset, content bounds, stem lines) that the
// region assembler consumes. Everything here is best-effort: a page that
// yields nothing simply contributes nothing.
package layout

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/laurens1995s/paper-labeler/internal/clean"
	"github.com/laurens1995s/paper-labeler/marker"
	"github.com/laurens1995s/paper-labeler/model"
	"github.com/laurens1995s/paper-labeler/source"
)

// LineConfig holds the line extraction bands.
type LineConfig struct {
	// LeftLimitRatio is the fraction of the page width a line's left edge
	// may reach. Question and subpart markers live in the left column;
	// everything further right is body text or margin notes.
	LeftLimitRatio float64

	// TopBand and BottomBand exclude running headers and page furniture.
	TopBand    float64
	BottomBand float64

	// RescueBand is the very-top zone in which lines are still kept when
	// they look like markers. Some papers print the first question number
	// right under the header.
	RescueBand float64
}

// DefaultLineConfig returns the default line extraction bands.
func DefaultLineConfig() LineConfig {
	return LineConfig{
		LeftLimitRatio: 0.28,
		TopBand:        0.02,
		BottomBand:     0.97,
		RescueBand:     0.05,
	}
}

// LineExtractor selects the left-column text lines of a page.
type LineExtractor struct {
	config LineConfig
}

// NewLineExtractor creates a line extractor with default configuration.
func NewLineExtractor() *LineExtractor {
	return NewLineExtractorWithConfig(DefaultLineConfig())
}

// NewLineExtractorWithConfig creates a line extractor with the given
// configuration.
func NewLineExtractorWithConfig(config LineConfig) *LineExtractor {
	return &LineExtractor{config: config}
}

// Extract returns the left-column text lines of one page, in source order.
// Line text is kept raw; matching stages sanitize on their own.
func (e *LineExtractor) Extract(pc source.PageContent) []model.TextLine {
	if pc.Width <= 0 || pc.Height <= 0 {
		return nil
	}

	var out []model.TextLine
	for _, ln := range pc.Lines {
		if ln.X0 > pc.Width*e.config.LeftLimitRatio {
			continue
		}
		if strings.TrimSpace(ln.Text) == "" {
			continue
		}
		y := marker.ClampY(ln.Y0 / pc.Height)
		if y < e.config.TopBand || y > e.config.BottomBand {
			continue
		}
		if y < e.config.RescueBand && !looksLikeMarkerHead(markerHead(ln.Text)) {
			continue
		}
		out = append(out, model.TextLine{
			X0:   ln.X0,
			Y0:   ln.Y0,
			X1:   ln.X1,
			Y1:   ln.Y1,
			Text: ln.Text,
		})
	}
	return out
}

// markerHead returns the sanitized first 16 runes of a line, the part a
// marker form would occupy.
func markerHead(text string) string {
	head := strings.TrimSpace(clean.Sanitize(text))
	runes := []rune(head)
	if len(runes) > 16 {
		runes = runes[:16]
	}
	return string(runes)
}

var (
	headNumberRe  = regexp.MustCompile(`^\d{1,3}(\s+|[)）:：、]|[.．]|$)`)
	headSubpartRe = regexp.MustCompile(`(?i)^[(（]\s*[a-zivx]{1,4}`)
)

// looksLikeMarkerHead reports whether head could open a question or subpart
// marker. It is a coarse screen, deliberately looser than the detector's
// grammar.
func looksLikeMarkerHead(head string) bool {
	if m := headNumberRe.FindStringSubmatch(head); m != nil {
		if m[1] == "." || m[1] == "．" {
			rest := head[len(m[0]):]
			if r, _ := utf8.DecodeRuneInString(rest); unicode.IsDigit(r) {
				return false
			}
		}
		return true
	}
	return headSubpartRe.MatchString(head)
}
