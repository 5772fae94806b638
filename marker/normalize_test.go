package marker

import (
	"testing"

	"github.com/laurens1995s/paper-labeler/model"
)

func qm(page int, y float64, value string) model.Marker {
	return model.Marker{Page: page, Y: y, Kind: model.MarkerQuestion, Value: value}
}

func sm(page int, y float64, value string) model.Marker {
	return model.Marker{Page: page, Y: y, Kind: model.MarkerSubpart, Value: value}
}

func TestNormalizer_Empty(t *testing.T) {
	n := NewNormalizer()
	if got := n.Normalize(nil); got != nil {
		t.Errorf("Expected nil for empty input, got %+v", got)
	}
}

func TestNormalizer_SortsAcrossPages(t *testing.T) {
	n := NewNormalizer()
	got := n.Normalize([]model.Marker{
		qm(3, 0.10, "2"),
		qm(2, 0.50, "1"),
		sm(2, 0.08, "a"),
	})
	if len(got) != 3 {
		t.Fatalf("Expected 3 markers, got %d", len(got))
	}
	if got[0].Page != 2 || got[0].Y != 0.08 {
		t.Errorf("Expected page 2 y 0.08 first, got %+v", got[0])
	}
	if got[2].Page != 3 {
		t.Errorf("Expected page 3 last, got %+v", got[2])
	}
}

func TestNormalizer_DedupesNearDuplicates(t *testing.T) {
	n := NewNormalizer()
	got := n.Normalize([]model.Marker{
		qm(2, 0.100, "1"),
		qm(2, 0.103, "1"),
	})
	if len(got) != 1 {
		t.Fatalf("Expected 1 marker after dedupe, got %d", len(got))
	}
	if got[0].Y != 0.100 {
		t.Errorf("Expected the topmost duplicate kept, got y %v", got[0].Y)
	}
}

func TestNormalizer_KeepsDistinctMarkers(t *testing.T) {
	n := NewNormalizer()
	got := n.Normalize([]model.Marker{
		qm(2, 0.10, "1"),
		qm(2, 0.40, "2"),
	})
	if len(got) != 2 {
		t.Fatalf("Expected 2 markers, got %d", len(got))
	}
}

func TestNormalizer_CollapsesSplitMarker(t *testing.T) {
	// "4  (a) ..." extracted as two lines at nearly the same y.
	n := NewNormalizer()
	got := n.Normalize([]model.Marker{
		qm(2, 0.100, "4"),
		sm(2, 0.102, "a"),
	})
	if len(got) != 1 {
		t.Fatalf("Expected the subpart to collapse into the question, got %d markers", len(got))
	}
	if got[0].Kind != model.MarkerQuestion || got[0].Value != "4" {
		t.Errorf("Expected question 4 to survive, got %+v", got[0])
	}
}

func TestNormalizer_SubpartBelowToleranceSurvives(t *testing.T) {
	n := NewNormalizer()
	got := n.Normalize([]model.Marker{
		qm(2, 0.100, "4"),
		sm(2, 0.110, "a"),
	})
	if len(got) != 2 {
		t.Fatalf("Expected both markers kept, got %d", len(got))
	}
}

func TestNormalizer_SuppressesNoisyPages(t *testing.T) {
	// Three question markers on page 2 trip the noise rule: only the
	// topmost survives per page, and markers above it are dropped.
	n := NewNormalizer()
	got := n.Normalize([]model.Marker{
		sm(2, 0.03, "a"),
		qm(2, 0.05, "1"),
		qm(2, 0.40, "7"),
		sm(2, 0.50, "b"),
		qm(2, 0.75, "12"),
		qm(3, 0.10, "2"),
	})

	want := []model.Marker{
		qm(2, 0.05, "1"),
		sm(2, 0.50, "b"),
		qm(3, 0.10, "2"),
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d markers, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Marker %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestNormalizer_TwoQuestionsNotNoisy(t *testing.T) {
	n := NewNormalizer()
	got := n.Normalize([]model.Marker{
		qm(2, 0.10, "1"),
		qm(2, 0.60, "2"),
	})
	if len(got) != 2 {
		t.Fatalf("Expected both questions kept below the noise threshold, got %d", len(got))
	}
}
