// Package marker classifies extracted text lines into question and subpart
// markers and normalizes the resulting cross-page marker stream.
package marker

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
	"golang.org/x/text/width"

	"github.com/laurens1995s/paper-labeler/internal/clean"
	"github.com/laurens1995s/paper-labeler/model"
)

// Config holds the positional gates for the ambiguous marker forms. A bare
// number far from the left margin is a figure reference or a mark count,
// not a question marker, so those forms only match near the margin.
type Config struct {
	// SpaceFormMaxLeft gates "12 The diagram..." style markers: the line
	// must start within this fraction of the page width.
	SpaceFormMaxLeft float64

	// StandaloneMaxLeft gates lines containing nothing but a number.
	StandaloneMaxLeft float64
}

// DefaultConfig returns the default detector configuration.
func DefaultConfig() Config {
	return Config{
		SpaceFormMaxLeft:  0.14,
		StandaloneMaxLeft: 0.16,
	}
}

// Detector recognizes question and subpart markers at the start of text
// lines. Matching runs on sanitized, width-folded text, so full-width
// punctuation variants are accepted throughout.
type Detector struct {
	config Config
}

// NewDetector creates a detector with default configuration.
func NewDetector() *Detector {
	return NewDetectorWithConfig(DefaultConfig())
}

// NewDetectorWithConfig creates a detector with the given configuration.
func NewDetectorWithConfig(config Config) *Detector {
	return &Detector{config: config}
}

// The marker grammar. Ordered by specificity: combined forms first so that
// "4(a)" yields question 4 rather than subpart (a), bare numbers last.
// Roman alternations also match single letters, so the alpha forms run
// first and claim "(a)" through "(z)".
var (
	combinedAlphaRe = regexp.MustCompile(`(?i)^\s*(\d{1,3})\s*[(（]\s*([a-z])\s*[)）]`)
	combinedRomanRe = regexp.MustCompile(`(?i)^\s*(\d{1,3})\s*[(（]\s*(ix|iv|v?i{0,3}|x)\s*[)）]`)
	numberPunctRe   = regexp.MustCompile(`^\s*(\d{1,3})\s*([)）:：、.．])`)
	numberSpaceRe   = regexp.MustCompile(`^\s*(\d{1,3})\s+`)
	subpartAlphaRe  = regexp.MustCompile(`(?i)^\s*[(（]\s*([a-z])\s*[)）](?:\s|[.．:：、]|$)`)
	subpartRomanRe  = regexp.MustCompile(`(?i)^\s*[(（]\s*(ix|iv|v?i{0,3}|x)\s*[)）](?:\s|[.．:：、]|$)`)
	standaloneRe    = regexp.MustCompile(`^\s*(\d{1,3})\s*$`)
)

// matchFunc attempts one marker form against a sanitized line. left is the
// line's left edge as a fraction of the page width.
type matchFunc func(text string, left float64, cfg Config) (model.MarkerKind, string, bool)

var patternTable = []matchFunc{
	matchCombinedAlpha,
	matchCombinedRoman,
	matchNumberPunct,
	matchNumberSpace,
	matchSubpartAlpha,
	matchSubpartRoman,
	matchStandalone,
}

// DetectPage classifies the lines of one page. Marker positions are the
// normalized tops of their lines, clamped to [0, 0.999].
func (d *Detector) DetectPage(lines []model.TextLine, page int, pageW, pageH float64) []model.Marker {
	if pageW <= 0 || pageH <= 0 {
		return nil
	}
	var markers []model.Marker
	for _, line := range lines {
		text := foldWidth(strings.TrimSpace(clean.Sanitize(line.Text)))
		if text == "" {
			continue
		}
		kind, value, ok := d.match(text, line.X0/pageW)
		if !ok {
			continue
		}
		markers = append(markers, model.Marker{
			Page:  page,
			Y:     ClampY(line.Y0 / pageH),
			Kind:  kind,
			Value: value,
		})
	}
	return markers
}

func (d *Detector) match(text string, left float64) (model.MarkerKind, string, bool) {
	for _, try := range patternTable {
		if kind, value, ok := try(text, left, d.config); ok {
			return kind, value, true
		}
	}
	return 0, "", false
}

// bareMarkerTable omits the combined forms: a line like "4(a) The diagram
// shows ..." carries stem text after its marker and must stay a stem
// candidate.
var bareMarkerTable = []matchFunc{
	matchNumberPunct,
	matchNumberSpace,
	matchSubpartAlpha,
	matchSubpartRoman,
	matchStandalone,
}

// MatchesBareMarker reports whether text begins with a marker form other
// than the combined ones, ignoring the left-edge gating DetectPage applies.
// The stem sweep uses it to keep bare marker lines out of the stem
// candidates.
func MatchesBareMarker(text string) bool {
	text = foldWidth(strings.TrimSpace(clean.Sanitize(text)))
	if text == "" {
		return false
	}
	cfg := DefaultConfig()
	for _, try := range bareMarkerTable {
		if _, _, ok := try(text, 0, cfg); ok {
			return true
		}
	}
	return false
}

// ClampY clamps a normalized y coordinate to [0, 0.999].
func ClampY(y float64) float64 {
	if y < 0 {
		return 0
	}
	if y > 0.999 {
		return 0.999
	}
	return y
}

func matchCombinedAlpha(text string, _ float64, _ Config) (model.MarkerKind, string, bool) {
	m := combinedAlphaRe.FindStringSubmatch(text)
	if m == nil {
		return 0, "", false
	}
	return model.MarkerQuestion, m[1], true
}

func matchCombinedRoman(text string, _ float64, _ Config) (model.MarkerKind, string, bool) {
	m := combinedRomanRe.FindStringSubmatch(text)
	if m == nil || m[2] == "" {
		return 0, "", false
	}
	return model.MarkerQuestion, m[1], true
}

func matchNumberPunct(text string, _ float64, _ Config) (model.MarkerKind, string, bool) {
	m := numberPunctRe.FindStringSubmatchIndex(text)
	if m == nil {
		return 0, "", false
	}
	num := text[m[2]:m[3]]
	punct := text[m[4]:m[5]]
	if punct == "." || punct == "．" {
		// "14.4" is a decimal figure, not question 14.
		if r, _ := utf8.DecodeRuneInString(text[m[5]:]); unicode.IsDigit(r) {
			return 0, "", false
		}
	}
	return model.MarkerQuestion, num, true
}

func matchNumberSpace(text string, left float64, cfg Config) (model.MarkerKind, string, bool) {
	if left > cfg.SpaceFormMaxLeft {
		return 0, "", false
	}
	m := numberSpaceRe.FindStringSubmatch(text)
	if m == nil {
		return 0, "", false
	}
	return model.MarkerQuestion, m[1], true
}

func matchSubpartAlpha(text string, _ float64, _ Config) (model.MarkerKind, string, bool) {
	m := subpartAlphaRe.FindStringSubmatch(text)
	if m == nil {
		return 0, "", false
	}
	return model.MarkerSubpart, strings.ToLower(m[1]), true
}

func matchSubpartRoman(text string, _ float64, _ Config) (model.MarkerKind, string, bool) {
	m := subpartRomanRe.FindStringSubmatch(text)
	if m == nil || m[1] == "" {
		return 0, "", false
	}
	return model.MarkerSubpart, strings.ToLower(m[1]), true
}

func matchStandalone(text string, left float64, cfg Config) (model.MarkerKind, string, bool) {
	if left > cfg.StandaloneMaxLeft {
		return 0, "", false
	}
	m := standaloneRe.FindStringSubmatch(text)
	if m == nil {
		return 0, "", false
	}
	return model.MarkerQuestion, m[1], true
}

func foldWidth(s string) string {
	out, _, err := transform.String(width.Fold, s)
	if err != nil {
		return s
	}
	return out
}
