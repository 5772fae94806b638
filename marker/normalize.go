package marker

import (
	"sort"

	"github.com/laurens1995s/paper-labeler/model"
)

// NormalizeConfig holds the tolerances for the marker stream cleanup.
type NormalizeConfig struct {
	// DedupeTolerance is the vertical distance under which two markers of
	// the same kind on the same page count as one detection.
	DedupeTolerance float64

	// CollapseTolerance is the vertical distance under which a subpart
	// marker collapses into the question marker directly above it. The
	// layout "4  (a) ..." is typically extracted as two lines at nearly
	// the same y.
	CollapseTolerance float64

	// NoisyQuestionCount is the per-page question-marker count at which
	// the stream is treated as polluted by mark schemes or numbered
	// notes, triggering topmost-only suppression.
	NoisyQuestionCount int
}

// DefaultNormalizeConfig returns the default normalization tolerances.
func DefaultNormalizeConfig() NormalizeConfig {
	return NormalizeConfig{
		DedupeTolerance:    0.006,
		CollapseTolerance:  0.004,
		NoisyQuestionCount: 3,
	}
}

// Normalizer applies the cross-page cleanup passes to a raw marker stream.
type Normalizer struct {
	config NormalizeConfig
}

// NewNormalizer creates a normalizer with default configuration.
func NewNormalizer() *Normalizer {
	return NewNormalizerWithConfig(DefaultNormalizeConfig())
}

// NewNormalizerWithConfig creates a normalizer with the given configuration.
func NewNormalizerWithConfig(config NormalizeConfig) *Normalizer {
	return &Normalizer{config: config}
}

// Normalize sorts the marker stream by (page, y) and applies three cleanup
// passes in order: near-duplicate removal, question/subpart collapsing, and
// per-page noise suppression. The input slice is not modified.
func (n *Normalizer) Normalize(markers []model.Marker) []model.Marker {
	if len(markers) == 0 {
		return nil
	}

	sorted := make([]model.Marker, len(markers))
	copy(sorted, markers)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Page != sorted[j].Page {
			return sorted[i].Page < sorted[j].Page
		}
		return sorted[i].Y < sorted[j].Y
	})

	sorted = n.dedupe(sorted)
	sorted = n.collapse(sorted)
	sorted = n.suppressNoise(sorted)
	return sorted
}

// dedupe drops a marker when the previously kept marker has the same page
// and kind within DedupeTolerance. Fancy layouts sometimes emit the same
// visual marker as two overlapping text lines.
func (n *Normalizer) dedupe(markers []model.Marker) []model.Marker {
	out := markers[:0:0]
	for _, m := range markers {
		if len(out) > 0 {
			prev := out[len(out)-1]
			if prev.Page == m.Page && prev.Kind == m.Kind && m.Y-prev.Y < n.config.DedupeTolerance {
				continue
			}
		}
		out = append(out, m)
	}
	return out
}

// collapse removes a subpart marker that sits within CollapseTolerance
// below a question marker on the same page; the pair is one visual marker
// split across two extracted lines, and the question wins.
func (n *Normalizer) collapse(markers []model.Marker) []model.Marker {
	out := markers[:0:0]
	for _, m := range markers {
		if len(out) > 0 && m.Kind == model.MarkerSubpart {
			prev := out[len(out)-1]
			if prev.Page == m.Page && prev.Kind == model.MarkerQuestion && m.Y-prev.Y < n.config.CollapseTolerance {
				continue
			}
		}
		out = append(out, m)
	}
	return out
}

// suppressNoise handles pages where numbered list items or mark-scheme rows
// were misread as question markers. When any page carries
// NoisyQuestionCount or more question markers, only the topmost question
// marker per page survives and everything above it is dropped.
func (n *Normalizer) suppressNoise(markers []model.Marker) []model.Marker {
	perPage := make(map[int]int)
	topmost := make(map[int]int)
	for i, m := range markers {
		if m.Kind != model.MarkerQuestion {
			continue
		}
		perPage[m.Page]++
		if j, ok := topmost[m.Page]; !ok || m.Y < markers[j].Y {
			topmost[m.Page] = i
		}
	}

	noisy := false
	for _, count := range perPage {
		if count >= n.config.NoisyQuestionCount {
			noisy = true
			break
		}
	}
	if !noisy {
		return markers
	}

	out := markers[:0:0]
	for i, m := range markers {
		keep, hasQ := topmost[m.Page]
		switch m.Kind {
		case model.MarkerQuestion:
			if hasQ && i != keep {
				continue
			}
		case model.MarkerSubpart:
			if hasQ && m.Y < markers[keep].Y {
				continue
			}
		}
		out = append(out, m)
	}
	return out
}
