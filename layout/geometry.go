package layout

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/laurens1995s/paper-labeler/internal/clean"
	"github.com/laurens1995s/paper-labeler/marker"
	"github.com/laurens1995s/paper-labeler/model"
	"github.com/laurens1995s/paper-labeler/source"
)

// GeometryConfig holds the bands for the page-geometry scan.
type GeometryConfig struct {
	// StemTopBand and StemBottomBand bound the page-wide stem sweep.
	StemTopBand    float64
	StemBottomBand float64

	// HeaderBand is the top zone excluded from top-content detection;
	// TopSearchLimit bounds how far down the page that search goes.
	HeaderBand     float64
	TopSearchLimit float64

	// TopMinChars is the minimum length for a line to count as top
	// content rather than stray furniture.
	TopMinChars int

	// FooterBand is the normalized y at which the footer zone begins.
	FooterBand float64

	// FooterDotMinChars guards the dotted-line exclusion in the footer
	// zone: writing lines that reach into the bottom of the page must not
	// be mistaken for footers.
	FooterDotMinChars int

	// MinBottomContent is the least normalized bottom extent for body
	// text to register at all.
	MinBottomContent float64

	Rules RuleConfig
}

// DefaultGeometryConfig returns the default geometry scan bands.
func DefaultGeometryConfig() GeometryConfig {
	return GeometryConfig{
		StemTopBand:       0.03,
		StemBottomBand:    0.97,
		HeaderBand:        0.035,
		TopSearchLimit:    0.25,
		TopMinChars:       6,
		FooterBand:        0.92,
		FooterDotMinChars: 5,
		MinBottomContent:  0.1,
		Rules:             DefaultRuleConfig(),
	}
}

// GeometryExtractor gathers the per-page geometric evidence consulted by
// the region assembler.
type GeometryExtractor struct {
	config GeometryConfig
	rules  *RuleDetector
}

// NewGeometryExtractor creates a geometry extractor with default
// configuration.
func NewGeometryExtractor() *GeometryExtractor {
	return NewGeometryExtractorWithConfig(DefaultGeometryConfig())
}

// NewGeometryExtractorWithConfig creates a geometry extractor with the
// given configuration.
func NewGeometryExtractorWithConfig(config GeometryConfig) *GeometryExtractor {
	return &GeometryExtractor{
		config: config,
		rules:  NewRuleDetectorWithConfig(config.Rules),
	}
}

// Scan collects the geometry of one page. lines are the left-column lines
// already selected by the LineExtractor; the full page content is consulted
// for the sweeps that need the whole width.
func (g *GeometryExtractor) Scan(pc source.PageContent, lines []model.TextLine) model.PageGeometry {
	var geo model.PageGeometry
	if pc.Width <= 0 || pc.Height <= 0 {
		return geo
	}
	geo.StemLines = g.stemLines(pc)
	geo.FooterY, geo.HasFooter = g.footerY(pc)
	geo.TopContentY, geo.HasTopContent = g.topContentY(pc)
	geo.BottomContentY, geo.HasBottomContent = g.bottomContentY(pc, lines, geo)
	geo.Rules = g.rules.Detect(pc, lines)
	return geo
}

var bareNumberRe = regexp.MustCompile(`^\d{1,3}$`)

// stemLines sweeps the full page width for question-stem candidates. The
// assembler walks these upward from a subpart marker to recover the stem
// text printed above it.
func (g *GeometryExtractor) stemLines(pc source.PageContent) []model.StemLine {
	var stems []model.StemLine
	for _, ln := range pc.Lines {
		y := marker.ClampY(ln.Y0 / pc.Height)
		if y < g.config.StemTopBand || y > g.config.StemBottomBand {
			continue
		}
		text := strings.TrimSpace(clean.Sanitize(ln.Text))
		if text == "" {
			continue
		}
		if clean.IsWritingLine(text) {
			continue
		}
		if marker.MatchesBareMarker(text) {
			continue
		}
		if bareNumberRe.MatchString(text) {
			continue
		}
		x := ln.X0 / pc.Width
		if x < 0 {
			x = 0
		} else if x > 1 {
			x = 1
		}
		stems = append(stems, model.StemLine{Y: y, XRatio: x, Text: text})
	}
	sort.SliceStable(stems, func(i, j int) bool {
		if stems[i].Y != stems[j].Y {
			return stems[i].Y < stems[j].Y
		}
		return stems[i].XRatio < stems[j].XRatio
	})
	return stems
}

// topContentY finds the first substantial content line below the header
// band, used to extend a page-opening subpart region up to the stem printed
// above it.
func (g *GeometryExtractor) topContentY(pc source.PageContent) (float64, bool) {
	best := math.Inf(1)
	for _, ln := range pc.Lines {
		y := ln.Y0 / pc.Height
		if y < g.config.HeaderBand || y > g.config.TopSearchLimit {
			continue
		}
		text := strings.TrimSpace(clean.Sanitize(ln.Text))
		if utf8.RuneCountInString(text) < g.config.TopMinChars {
			continue
		}
		if clean.IsWritingLine(text) {
			continue
		}
		if bareNumberRe.MatchString(text) {
			continue
		}
		if y < best {
			best = y
		}
	}
	if math.IsInf(best, 1) {
		return 0, false
	}
	return marker.ClampY(best), true
}

// footerY finds where the footer zone begins: the topmost non-empty line in
// the bottom stripe of the page, ignoring dotted writing lines that reach
// down there.
func (g *GeometryExtractor) footerY(pc source.PageContent) (float64, bool) {
	best := math.Inf(1)
	for _, ln := range pc.Lines {
		y := ln.Y0 / pc.Height
		if y < g.config.FooterBand {
			continue
		}
		text := strings.TrimSpace(ln.Text)
		if text == "" {
			continue
		}
		if utf8.RuneCountInString(text) > g.config.FooterDotMinChars && clean.DotLikeRatio(text) > 0.6 {
			continue
		}
		if y < best {
			best = y
		}
	}
	if math.IsInf(best, 1) {
		return 0, false
	}
	return best, true
}

// bottomContentY finds the lowest extent of body text above the footer.
func (g *GeometryExtractor) bottomContentY(pc source.PageContent, lines []model.TextLine, geo model.PageGeometry) (float64, bool) {
	best := 0.0
	for _, ln := range lines {
		y := marker.ClampY(ln.Y1 / pc.Height)
		if geo.HasFooter && y > geo.FooterY {
			continue
		}
		if y > best {
			best = y
		}
	}
	if best <= g.config.MinBottomContent {
		return 0, false
	}
	return best, true
}
