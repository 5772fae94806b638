package layout

import (
	"testing"

	"github.com/laurens1995s/paper-labeler/source"
)

// makeSourceLine creates a test line on a notional 1000x2000 page.
func makeSourceLine(text string, x0, y0 float64) source.Line {
	return source.Line{X0: x0, Y0: y0, X1: x0 + 200, Y1: y0 + 24, Text: text}
}

func makePage(lines ...source.Line) source.PageContent {
	return source.PageContent{Width: 1000, Height: 2000, Lines: lines}
}

func TestLineExtractor_LeftColumnOnly(t *testing.T) {
	e := NewLineExtractor()
	pc := makePage(
		makeSourceLine("1. Define momentum.", 100, 200),
		makeSourceLine("[Total 10 marks]", 600, 200),
	)

	got := e.Extract(pc)
	if len(got) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(got))
	}
	if got[0].Text != "1. Define momentum." {
		t.Errorf("Expected the left-column line, got %q", got[0].Text)
	}
}

func TestLineExtractor_Bands(t *testing.T) {
	e := NewLineExtractor()
	pc := makePage(
		makeSourceLine("PHYSICS 9702/21", 100, 10),   // above the top band
		makeSourceLine("A cell of emf 1.5 V", 100, 1000),
		makeSourceLine("Turn over", 100, 1960), // below the bottom band
	)

	got := e.Extract(pc)
	if len(got) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(got))
	}
	if got[0].Text != "A cell of emf 1.5 V" {
		t.Errorf("Expected the body line, got %q", got[0].Text)
	}
}

func TestLineExtractor_VeryTopMarkerRescue(t *testing.T) {
	// Between 2% and 5% only marker-looking lines survive.
	e := NewLineExtractor()
	pc := makePage(
		makeSourceLine("2. A wave travels along a string.", 100, 60),
		makeSourceLine("Physics Paper 1", 100, 60),
		makeSourceLine("14.4 shows the result", 100, 60),
	)

	got := e.Extract(pc)
	if len(got) != 1 {
		t.Fatalf("Expected only the marker-looking line, got %d lines", len(got))
	}
	if got[0].Text != "2. A wave travels along a string." {
		t.Errorf("Expected the rescued marker line, got %q", got[0].Text)
	}
}

func TestLineExtractor_BlankLinesDropped(t *testing.T) {
	e := NewLineExtractor()
	pc := makePage(makeSourceLine("   ", 100, 1000))

	if got := e.Extract(pc); len(got) != 0 {
		t.Errorf("Expected no lines, got %d", len(got))
	}
}

func TestLineExtractor_EmptyPage(t *testing.T) {
	e := NewLineExtractor()
	if got := e.Extract(source.PageContent{}); got != nil {
		t.Errorf("Expected nil for an empty page, got %+v", got)
	}
}

func TestLooksLikeMarkerHead(t *testing.T) {
	tests := []struct {
		head string
		want bool
	}{
		{"1.", true},
		{"12)", true},
		{"3、", true},
		{"5 A ball", true},
		{"(a) State", true},
		{"(iv)", true},
		{"14.4 shows", false},
		{"Physics", false},
	}
	for _, tc := range tests {
		if got := looksLikeMarkerHead(tc.head); got != tc.want {
			t.Errorf("looksLikeMarkerHead(%q) = %v, want %v", tc.head, got, tc.want)
		}
	}
}
