package model

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBox_Height(t *testing.T) {
	b := Box{Page: 2, Y0: 0.1, Y1: 0.4}
	if got := b.Height(); !approx(got, 0.3) {
		t.Errorf("Expected height 0.3, got %v", got)
	}
}

func TestBox_OverlapY(t *testing.T) {
	a := Box{Y0: 0.1, Y1: 0.4}

	if got := a.OverlapY(Box{Y0: 0.3, Y1: 0.6}); !approx(got, 0.1) {
		t.Errorf("Expected overlap 0.1, got %v", got)
	}
	if got := a.OverlapY(Box{Y0: 0.4, Y1: 0.6}); !approx(got, 0) {
		t.Errorf("Expected touching boxes to overlap 0, got %v", got)
	}
	if got := a.OverlapY(Box{Y0: 0.5, Y1: 0.6}); got >= -1e-9 {
		t.Errorf("Expected negative overlap for disjoint boxes, got %v", got)
	}
}

func TestMarkerKind_String(t *testing.T) {
	if MarkerQuestion.String() != "question" {
		t.Errorf("Expected 'question', got %q", MarkerQuestion.String())
	}
	if MarkerSubpart.String() != "subpart" {
		t.Errorf("Expected 'subpart', got %q", MarkerSubpart.String())
	}
}
