// Package regions assembles a normalized marker stream and per-page
// geometry into per-question bounding regions, then deduplicates and merges
// the result.
package regions

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/laurens1995s/paper-labeler/model"
)

// AssemblerConfig holds the region assembly parameters. The pixel-valued
// fields are expressed against BaselineHeight and normalized internally, so
// callers can keep thinking in rendered-page pixels.
type AssemblerConfig struct {
	// BoxX0 and BoxX1 are the fixed horizontal extents of every suggested
	// box. Exam papers use a common content frame; inferring it per page
	// buys nothing and jitters the output.
	BoxX0 float64
	BoxX1 float64

	// BaselineHeight is the reference page height in pixels for
	// MinHeightPx and YPaddingPx.
	BaselineHeight int

	// MinHeightPx is the minimum box height. Boxes that come out shorter
	// are grown downward.
	MinHeightPx int

	// YPaddingPx is the vertical padding applied above a marker and below
	// the following one.
	YPaddingPx int

	// DefaultBottom is the normalized page bottom used when neither a
	// following marker nor a footer bounds a region.
	DefaultBottom float64

	// BottomSnapOffset pulls a region's bottom up to just below the last
	// content line when the page runs out before the nominal bottom.
	BottomSnapOffset float64
}

// DefaultAssemblerConfig returns the default assembly parameters.
func DefaultAssemblerConfig() AssemblerConfig {
	return AssemblerConfig{
		BoxX0:            0.113,
		BoxX1:            0.891,
		BaselineHeight:   3508,
		MinHeightPx:      70,
		YPaddingPx:       12,
		DefaultBottom:    0.98,
		BottomSnapOffset: 0.04,
	}
}

const (
	// MaxQuestionNumber bounds the labels treated as question numbers;
	// anything larger is kept as an opaque label.
	MaxQuestionNumber = 200

	pendingStemMinGap = 0.010
	pendingStemMaxGap = 0.20

	stemMaxGap    = 0.06
	stemMaxXRatio = 0.75
	stemMinChars  = 5

	topExtendSlack = 0.004
	degenerateGap  = 0.004
	minSegmentGap  = 0.003
	minGrowHeight  = 0.06
	maxGrownBottom = 0.99
)

// Assembler turns markers plus page geometry into question regions with a
// single forward walk over the marker stream.
type Assembler struct {
	config AssemblerConfig
}

// NewAssembler creates an assembler with default configuration.
func NewAssembler() *Assembler {
	return NewAssemblerWithConfig(DefaultAssemblerConfig())
}

// NewAssemblerWithConfig creates an assembler with the given configuration.
func NewAssemblerWithConfig(config AssemblerConfig) *Assembler {
	return &Assembler{config: config}
}

// pendingStem records a question marker whose box has been deferred to the
// marker that follows it on the same page, so the stem text between the two
// lands in one region instead of a sliver of its own.
type pendingStem struct {
	active bool
	page   int
	y      float64
	qIdx   int
}

// Assemble walks the marker stream once, in (page, y) order, opening a
// question on each new label and emitting one or more boxes per marker.
// geo maps page number to that page's geometry; missing pages behave as
// empty. Questions that end up with no boxes are dropped.
func (a *Assembler) Assemble(markers []model.Marker, geo map[int]model.PageGeometry) []model.Question {
	if len(markers) == 0 {
		return nil
	}
	pad, minHeight := a.normalizedParams()

	var questions []model.Question
	curIdx := -1
	var pending pendingStem

	for i, m := range markers {
		if pending.active && pending.page != m.Page {
			pending.active = false
		}
		pg := geo[m.Page]

		if m.Kind == model.MarkerQuestion {
			label := canonicalLabel(m.Value)
			if curIdx < 0 || questions[curIdx].Label != label {
				questions = append(questions, model.Question{Label: label})
				curIdx = len(questions) - 1
			}
			// A question marker closely followed by its first subpart, or
			// by a repeat of itself, is a stem header. Defer the box to
			// the follower so the stem text joins that region.
			if i+1 < len(markers) && markers[i+1].Page == m.Page {
				next := markers[i+1]
				gap := next.Y - m.Y
				if gap >= pendingStemMinGap && gap <= pendingStemMaxGap {
					repeat := next.Kind == model.MarkerQuestion && next.Value == m.Value
					if repeat || next.Kind == model.MarkerSubpart {
						pending = pendingStem{active: true, page: m.Page, y: m.Y, qIdx: curIdx}
						continue
					}
				}
			}
		}
		if curIdx < 0 {
			continue
		}

		nextY := a.config.DefaultBottom
		if pg.HasFooter {
			nextY = pg.FooterY
		}
		if i+1 < len(markers) && markers[i+1].Page == m.Page {
			nextY = markers[i+1].Y
		} else if pg.HasBottomContent && pg.BottomContentY > m.Y {
			// No further marker on this page: pull the bottom up to just
			// below the last content line instead of the nominal bottom.
			if snapped := pg.BottomContentY + a.config.BottomSnapOffset; snapped < nextY {
				nextY = snapped
			}
		}

		y0 := clamp01(m.Y - pad)

		firstOnPage := i == 0 || markers[i-1].Page != m.Page
		if m.Kind == model.MarkerSubpart {
			if firstOnPage && pg.HasTopContent && pg.TopContentY+topExtendSlack < y0 {
				y0 = clamp01(pg.TopContentY - pad)
			}
			limitY := 0.0
			if !firstOnPage {
				limitY = markers[i-1].Y
			}
			if stemY, ok := stemAbove(pg.StemLines, m.Y, limitY); ok && stemY+topExtendSlack < y0 {
				y0 = clamp01(stemY - pad)
			}
		}
		if pending.active && pending.page == m.Page && pending.qIdx == curIdx && pending.y < m.Y {
			y0 = clamp01(pending.y - pad)
			pending.active = false
		}

		y1 := a.config.DefaultBottom
		if nextY <= a.config.DefaultBottom {
			y1 = clamp01(nextY - pad)
		}
		if y1-y0 < minHeight {
			grow := minHeight
			if grow < minGrowHeight {
				grow = minGrowHeight
			}
			y1 = y0 + grow
			if y1 > maxGrownBottom {
				y1 = maxGrownBottom
			}
		}
		if y1 <= y0+degenerateGap {
			continue
		}

		for _, seg := range a.segments(y0, y1, pg.Rules, minHeight) {
			if seg[1] <= seg[0]+minSegmentGap {
				continue
			}
			questions[curIdx].Boxes = append(questions[curIdx].Boxes, model.Box{
				Page: m.Page,
				X0:   a.config.BoxX0,
				Y0:   seg[0],
				X1:   a.config.BoxX1,
				Y1:   seg[1],
			})
		}
	}

	var out []model.Question
	for _, q := range questions {
		if len(q.Boxes) > 0 {
			out = append(out, q)
		}
	}
	return out
}

// normalizedParams converts the pixel-valued knobs to normalized units,
// clamping nonsense values back to their defaults and bounds.
func (a *Assembler) normalizedParams() (pad, minHeight float64) {
	base := float64(a.config.BaselineHeight)
	if base <= 0 {
		base = 3508
	}

	mh := float64(a.config.MinHeightPx)
	if mh < 0 {
		mh = 70
	}
	if mh > base {
		mh = base
	}

	yp := float64(a.config.YPaddingPx)
	if yp < 0 {
		yp = 12
	}
	if half := base / 2; yp > half {
		yp = half
	}

	return yp / base, mh / base
}

// canonicalLabel normalizes a marker value to a question label. Numbers in
// 1..MaxQuestionNumber lose leading zeros; everything else passes through
// as an opaque label.
func canonicalLabel(value string) string {
	v := strings.TrimSpace(value)
	if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= MaxQuestionNumber {
		return strconv.Itoa(n)
	}
	return v
}

// stemAbove walks the stem lines upward from the marker while consecutive
// gaps stay within stemMaxGap, and returns the topmost reachable stem
// position. The walk is anchored at the marker itself: a nearest candidate
// further than stemMaxGap above it is unreachable and the walk yields
// nothing. limitY fences the walk at the previous marker.
func stemAbove(stems []model.StemLine, markerY, limitY float64) (float64, bool) {
	var candidates []float64
	for _, s := range stems {
		if s.Y >= markerY-0.001 {
			break
		}
		if s.Y <= limitY+0.002 {
			continue
		}
		if s.XRatio > stemMaxXRatio {
			continue
		}
		if utf8.RuneCountInString(strings.TrimSpace(s.Text)) < stemMinChars {
			continue
		}
		candidates = append(candidates, s.Y)
	}
	if len(candidates) == 0 {
		return 0, false
	}

	best := candidates[len(candidates)-1]
	if markerY-best > stemMaxGap {
		return 0, false
	}
	for k := len(candidates) - 2; k >= 0; k-- {
		if best-candidates[k] > stemMaxGap {
			break
		}
		best = candidates[k]
	}
	return best, true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
