// Package quality classifies a document's copyable text layer before any
// marker inference runs. Scanned papers and papers produced with broken
// font encodings yield text that looks like noise; detecting that up front
// lets the engine fall back to one suggested box per page instead of
// emitting garbage regions.
package quality

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/laurens1995s/paper-labeler/source"
)

// Status is the outcome of a text-quality assessment.
type Status int

const (
	// StatusOK means the text layer looks usable.
	StatusOK Status = iota

	// StatusNoText means the document has little or no copyable text.
	// Marker recognition is still attempted but is unlikely to succeed.
	StatusNoText

	// StatusGarbled means the text layer is dominated by replacement or
	// private-use glyphs. Marker recognition would produce nonsense.
	StatusGarbled
)

// String returns a short name for the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoText:
		return "no_text"
	case StatusGarbled:
		return "garbled"
	default:
		return "unknown"
	}
}

// Config holds assessor configuration.
type Config struct {
	// SamplePages is the number of pages whose text is sampled.
	SamplePages int

	// MaxSampleChars caps the total number of characters examined.
	MaxSampleChars int

	// MinSampleChars is the minimum number of non-whitespace characters
	// required before the text layer counts as present at all.
	MinSampleChars int

	// PrivateUseRatio is the private-use glyph ratio above which the text
	// is considered garbled. Subset fonts with broken ToUnicode maps emit
	// private-use code points for every glyph.
	PrivateUseRatio float64

	// WeirdRatio and LetterDigitRatio together catch text that is mostly
	// unprintable while containing almost no letters or digits.
	WeirdRatio       float64
	LetterDigitRatio float64
}

// DefaultConfig returns the default assessor configuration.
func DefaultConfig() Config {
	return Config{
		SamplePages:      4,
		MaxSampleChars:   4000,
		MinSampleChars:   80,
		PrivateUseRatio:  0.01,
		WeirdRatio:       0.03,
		LetterDigitRatio: 0.08,
	}
}

// Assessor classifies a document's text layer.
type Assessor struct {
	config Config
}

// NewAssessor creates an assessor with default configuration.
func NewAssessor() *Assessor {
	return NewAssessorWithConfig(DefaultConfig())
}

// NewAssessorWithConfig creates an assessor with the given configuration.
func NewAssessorWithConfig(config Config) *Assessor {
	return &Assessor{config: config}
}

// Assess samples a few pages of text and classifies the document. The
// second return value is a human-readable warning, empty when the status is
// StatusOK. Page 1 is skipped when the document has a cover page to skip.
func (a *Assessor) Assess(doc source.Document) (Status, string) {
	pageCount := doc.PageCount()
	start := 1
	if pageCount >= 2 {
		start = 2
	}
	end := start + a.config.SamplePages - 1
	if end > pageCount {
		end = pageCount
	}

	var sample strings.Builder
	sampleRunes := 0
	readFailures := 0
	for n := start; n <= end; n++ {
		text, err := doc.PlainText(n)
		if err != nil {
			readFailures++
			continue
		}
		sample.WriteString(text)
		sampleRunes += utf8.RuneCountInString(text)
		if sampleRunes >= a.config.MaxSampleChars {
			break
		}
	}
	if readFailures > 0 && sample.Len() == 0 {
		return StatusGarbled, fmt.Sprintf("cannot read document text (%d pages failed); falling back to one suggested box per page", readFailures)
	}

	var (
		nonWS        int
		replacement  int
		privateUse   int
		weird        int
		lettersDigit int
	)
	examined := 0
	for _, r := range sample.String() {
		if examined >= a.config.MaxSampleChars {
			break
		}
		examined++
		if unicode.IsSpace(r) {
			continue
		}
		nonWS++
		switch {
		case r == unicode.ReplacementChar:
			replacement++
			weird++
		case unicode.Is(unicode.Co, r):
			privateUse++
			weird++
		case unicode.In(r, unicode.Cc, unicode.Cf, unicode.Cs):
			weird++
		case !unicode.IsGraphic(r):
			// Unassigned code points.
			weird++
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			lettersDigit++
		}
	}

	if nonWS < a.config.MinSampleChars {
		return StatusNoText, "document has little or no copyable text; marker recognition may fail"
	}

	puRatio := float64(privateUse) / float64(nonWS)
	weirdRatio := float64(weird) / float64(nonWS)
	ldRatio := float64(lettersDigit) / float64(nonWS)

	if replacement > 0 || puRatio > a.config.PrivateUseRatio ||
		(weirdRatio > a.config.WeirdRatio && ldRatio < a.config.LetterDigitRatio) {
		return StatusGarbled, "copyable text looks garbled (replacement or private-use glyphs); falling back to one suggested box per page"
	}

	return StatusOK, ""
}
