package regions

import (
	"fmt"
	"math"
	"sort"

	"github.com/laurens1995s/paper-labeler/model"
)

// MergeConfig holds the box merging tolerances.
type MergeConfig struct {
	// HorizontalTolerance is the maximum difference in either horizontal
	// edge for two boxes to be merge candidates.
	HorizontalTolerance float64

	// MinOverlap is the vertical overlap two boxes must share to merge.
	// Boxes that merely touch stay separate; a shared edge usually marks
	// a deliberate split at a rule.
	MinOverlap float64
}

// DefaultMergeConfig returns the default merging tolerances.
func DefaultMergeConfig() MergeConfig {
	return MergeConfig{
		HorizontalTolerance: 0.02,
		MinOverlap:          0.002,
	}
}

// Merger deduplicates and merges the boxes of each question.
type Merger struct {
	config MergeConfig
}

// NewMerger creates a merger with default configuration.
func NewMerger() *Merger {
	return NewMergerWithConfig(DefaultMergeConfig())
}

// NewMergerWithConfig creates a merger with the given configuration.
func NewMergerWithConfig(config MergeConfig) *Merger {
	return &Merger{config: config}
}

// Merge normalizes every question's boxes: sorted by (page, y), exact
// duplicates dropped, and overlapping boxes with matching horizontal
// extents merged. Questions left without boxes are dropped.
func (m *Merger) Merge(questions []model.Question) []model.Question {
	var out []model.Question
	for _, q := range questions {
		boxes := m.mergeBoxes(q.Boxes)
		if len(boxes) == 0 {
			continue
		}
		out = append(out, model.Question{Label: q.Label, Boxes: boxes})
	}
	return out
}

func (m *Merger) mergeBoxes(boxes []model.Box) []model.Box {
	if len(boxes) == 0 {
		return nil
	}

	sorted := make([]model.Box, len(boxes))
	copy(sorted, boxes)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if a.Y0 != b.Y0 {
			return a.Y0 < b.Y0
		}
		if a.Y1 != b.Y1 {
			return a.Y1 < b.Y1
		}
		return a.X0 < b.X0
	})

	seen := make(map[string]bool, len(sorted))
	var out []model.Box
	for _, b := range sorted {
		key := fmt.Sprintf("%d|%.4f|%.4f|%.4f|%.4f", b.Page, b.X0, b.Y0, b.X1, b.Y1)
		if seen[key] {
			continue
		}
		seen[key] = true

		if len(out) > 0 {
			prev := &out[len(out)-1]
			if prev.Page == b.Page &&
				math.Abs(b.X0-prev.X0) < m.config.HorizontalTolerance &&
				math.Abs(b.X1-prev.X1) < m.config.HorizontalTolerance &&
				prev.OverlapY(b) > m.config.MinOverlap {
				if b.Y1 > prev.Y1 {
					prev.Y1 = b.Y1
				}
				continue
			}
		}
		out = append(out, b)
	}
	return out
}
