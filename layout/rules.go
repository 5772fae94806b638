package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/laurens1995s/paper-labeler/internal/clean"
	"github.com/laurens1995s/paper-labeler/marker"
	"github.com/laurens1995s/paper-labeler/model"
	"github.com/laurens1995s/paper-labeler/source"
)

// RuleConfig holds the horizontal-rule detection thresholds.
type RuleConfig struct {
	// YBin is the normalized bucket height for grouping near-collinear
	// segments. Dashed rules arrive as many short segments at almost the
	// same y.
	YBin float64

	// GapBridgeRatio is the horizontal gap, as a fraction of page width,
	// bridged when measuring a bucket's merged coverage.
	GapBridgeRatio float64

	// MaxSlope is the maximum vertical extent, in absolute page units,
	// for a segment to count as horizontal.
	MaxSlope float64

	// SolidWidthRatio accepts a bucket whose longest single segment spans
	// at least this fraction of the page width.
	SolidWidthRatio float64

	// DashedMinSegments and DashedCoverageRatio together accept a bucket
	// of many short segments whose merged spans cover most of the width.
	DashedMinSegments   int
	DashedCoverageRatio float64

	// TextRuleWidthRatio and TextRuleMinChars accept rows of dot-like
	// characters typeset as text instead of drawn.
	TextRuleWidthRatio float64
	TextRuleMinChars   int

	// MinY and MaxY bound the vertical zone in which rules are kept.
	MinY float64
	MaxY float64

	// DedupeTolerance collapses rules closer together than this.
	DedupeTolerance float64
}

// DefaultRuleConfig returns the default rule detection thresholds.
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		YBin:                0.003,
		GapBridgeRatio:      0.030,
		MaxSlope:            2.2,
		SolidWidthRatio:     0.45,
		DashedMinSegments:   6,
		DashedCoverageRatio: 0.55,
		TextRuleWidthRatio:  0.55,
		TextRuleMinChars:    16,
		MinY:                0.06,
		MaxY:                0.98,
		DedupeTolerance:     0.002,
	}
}

// RuleDetector finds the horizontal rules of a page: drawn lines, dashed
// lines, and rows of dots typeset as text.
type RuleDetector struct {
	config RuleConfig
}

// NewRuleDetector creates a rule detector with default configuration.
func NewRuleDetector() *RuleDetector {
	return NewRuleDetectorWithConfig(DefaultRuleConfig())
}

// NewRuleDetectorWithConfig creates a rule detector with the given
// configuration.
func NewRuleDetectorWithConfig(config RuleConfig) *RuleDetector {
	return &RuleDetector{config: config}
}

type ruleBucket struct {
	ySum   float64
	count  int
	maxSeg float64
	spans  [][2]float64
}

// Detect returns the normalized y positions of the page's horizontal
// rules, sorted ascending and deduplicated. lines are the left-column text
// lines; dotted writing lines among them contribute rules keyed by their
// top edge.
func (d *RuleDetector) Detect(pc source.PageContent, lines []model.TextLine) []float64 {
	if pc.Width <= 0 || pc.Height <= 0 {
		return nil
	}
	cfg := d.config

	buckets := make(map[int]*ruleBucket)
	for _, s := range pc.Segments {
		if math.Abs(s.Y1-s.Y0) > cfg.MaxSlope {
			continue
		}
		x0, x1 := s.X0, s.X1
		if x1 < x0 {
			x0, x1 = x1, x0
		}
		length := x1 - x0
		if length <= 0 {
			continue
		}
		y := marker.ClampY((s.Y0 + s.Y1) / 2 / pc.Height)
		if y < cfg.MinY || y > cfg.MaxY {
			continue
		}
		key := int(math.Round(y / cfg.YBin))
		b := buckets[key]
		if b == nil {
			b = &ruleBucket{}
			buckets[key] = b
		}
		b.ySum += y
		b.count++
		if length > b.maxSeg {
			b.maxSeg = length
		}
		b.spans = append(b.spans, [2]float64{x0, x1})
	}

	var ys []float64
	for _, b := range buckets {
		covered := mergedCoverage(b.spans, pc.Width*cfg.GapBridgeRatio)
		solid := b.maxSeg >= pc.Width*cfg.SolidWidthRatio
		dashed := b.count >= cfg.DashedMinSegments && covered >= pc.Width*cfg.DashedCoverageRatio
		if solid || dashed {
			ys = append(ys, b.ySum/float64(b.count))
		}
	}

	// Rows of dots typeset as text instead of drawn.
	for _, ln := range pc.Lines {
		if ln.X1-ln.X0 < pc.Width*cfg.TextRuleWidthRatio {
			continue
		}
		if !isTextRule(strings.TrimSpace(ln.Text), cfg.TextRuleMinChars) {
			continue
		}
		y := marker.ClampY((ln.Y0 + ln.Y1) / 2 / pc.Height)
		if y >= cfg.MinY && y <= cfg.MaxY {
			ys = append(ys, y)
		}
	}

	// Dotted writing lines in the left column, keyed by their top edge so
	// clipping lands above the first answer line.
	for _, ln := range lines {
		if !clean.IsWritingLine(strings.TrimSpace(ln.Text)) {
			continue
		}
		y := marker.ClampY(ln.Y0 / pc.Height)
		if y >= cfg.MinY && y <= cfg.MaxY {
			ys = append(ys, y)
		}
	}

	sort.Float64s(ys)
	return dedupeRules(ys, cfg.DedupeTolerance)
}

// mergedCoverage merges spans whose gaps are at most bridge and returns the
// total covered width.
func mergedCoverage(spans [][2]float64, bridge float64) float64 {
	if len(spans) == 0 {
		return 0
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })
	covered := 0.0
	cur := spans[0]
	for _, sp := range spans[1:] {
		if sp[0]-cur[1] <= bridge {
			if sp[1] > cur[1] {
				cur[1] = sp[1]
			}
			continue
		}
		covered += cur[1] - cur[0]
		cur = sp
	}
	return covered + cur[1] - cur[0]
}

// textRuleChars is the character repertoire of typeset rules, wider than
// the writing-line set because leaders and table borders show up here too.
const textRuleChars = ".·•‧⋅∙…_‐-–—－="

func isTextRule(text string, minChars int) bool {
	count := 0
	for _, r := range text {
		if r == ' ' || r == '\t' {
			continue
		}
		if !strings.ContainsRune(textRuleChars, r) {
			return false
		}
		count++
	}
	return count >= minChars
}

func dedupeRules(ys []float64, tol float64) []float64 {
	var out []float64
	for _, y := range ys {
		if len(out) > 0 && y-out[len(out)-1] < tol {
			continue
		}
		out = append(out, y)
	}
	return out
}
