package regions

const (
	ruleInset = 0.010

	writingBandTop    = 0.030
	writingBandBottom = 0.02
	writingMinRules   = 6
	writingGoodGapLo  = 0.02
	writingGoodGapHi  = 0.12
	writingClipInset  = 0.020
	writingClipAbove  = 0.003

	maxSplitRules = 2
	splitBand     = 0.002
	splitEdge     = 0.001
	minSplitSeg   = 0.010
)

// segments decides how the rules inside a region shape its boxes. A block
// of evenly spaced rules is an answer-writing area, so the region is
// clipped just above its first rule. One or two stray rules split the
// region instead. More than two rules without the writing-lines cadence
// means a table or a figure, which is left intact.
func (a *Assembler) segments(y0, y1 float64, rules []float64, minHeight float64) [][2]float64 {
	full := [][2]float64{{y0, y1}}

	var inside []float64
	for _, r := range rules {
		if r > y0+ruleInset && r < y1-ruleInset {
			inside = append(inside, r)
		}
	}
	if len(inside) == 0 {
		return full
	}

	if clipY, ok := writingLinesClip(inside, y0, y1); ok {
		bottom := clipY
		if y1 < bottom {
			bottom = y1
		}
		return [][2]float64{{y0, bottom}}
	}

	if len(inside) > maxSplitRules {
		return full
	}

	var segs [][2]float64
	cur := y0
	for _, r := range inside {
		if r <= y0+splitEdge || r >= y1-splitEdge {
			continue
		}
		segs = append(segs, [2]float64{cur, r - splitBand})
		cur = r + splitBand
	}
	segs = append(segs, [2]float64{cur, y1})

	minSeg := minSplitSeg
	if h := minHeight * 0.5; h > minSeg {
		minSeg = h
	}
	kept := segs[:0]
	for _, s := range segs {
		if s[1]-s[0] >= minSeg {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return full
	}
	return kept
}

// writingLinesClip reports whether the rules inside a region form an
// answer-writing block and, when they do, where the region should be
// clipped: just above the first rule, but never tighter than a small inset
// below the marker.
func writingLinesClip(inside []float64, y0, y1 float64) (float64, bool) {
	var rr []float64
	for _, r := range inside {
		if r >= y0+writingBandTop && r <= y1-writingBandBottom {
			rr = append(rr, r)
		}
	}

	writing := false
	switch {
	case len(rr) >= writingMinRules:
		writing = true
	case len(rr) >= 3:
		good := 0
		for k := 1; k < len(rr); k++ {
			gap := rr[k] - rr[k-1]
			if gap >= writingGoodGapLo && gap <= writingGoodGapHi {
				good++
			}
		}
		writing = (len(rr) == 3 && good >= 2) || (len(rr) >= 4 && good >= 3)
	}
	if !writing {
		return 0, false
	}

	clip := rr[0] - writingClipAbove
	if floor := y0 + writingClipInset; clip < floor {
		clip = floor
	}
	return clip, true
}
