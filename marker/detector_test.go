package marker

import (
	"math"
	"testing"

	"github.com/laurens1995s/paper-labeler/model"
)

// makeLine creates a test text line at the given position on a notional
// 1000x2000 page.
func makeLine(text string, x0, y0 float64) model.TextLine {
	return model.TextLine{X0: x0, Y0: y0, X1: x0 + 100, Y1: y0 + 20, Text: text}
}

func TestDetector_MarkerForms(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		x0        float64
		wantMatch bool
		wantKind  model.MarkerKind
		wantValue string
	}{
		{"dot form", "1.", 100, true, model.MarkerQuestion, "1"},
		{"paren form", "12) Define inertia.", 100, true, model.MarkerQuestion, "12"},
		{"ideographic comma", "12、", 100, true, model.MarkerQuestion, "12"},
		{"colon form", "3: State the law.", 100, true, model.MarkerQuestion, "3"},
		{"decimal is not a marker", "14.4 shows the result", 100, false, 0, ""},
		{"combined alpha", "4(a) State the law.", 100, true, model.MarkerQuestion, "4"},
		{"combined roman", "3 (ii) Explain.", 100, true, model.MarkerQuestion, "3"},
		{"subpart alpha", "(b)", 400, true, model.MarkerSubpart, "b"},
		{"subpart alpha uppercase", "(B) Then find the ratio.", 400, true, model.MarkerSubpart, "b"},
		{"subpart roman", "(iv) Calculate the mass.", 400, true, model.MarkerSubpart, "iv"},
		{"subpart x", "(x)", 400, true, model.MarkerSubpart, "x"},
		{"fullwidth subpart", "（a）", 400, true, model.MarkerSubpart, "a"},
		{"space form near margin", "5 The circuit below", 100, true, model.MarkerQuestion, "5"},
		{"space form gated", "5 marks are awarded", 400, false, 0, ""},
		{"standalone near margin", "7", 120, true, model.MarkerQuestion, "7"},
		{"standalone gated", "7", 500, false, 0, ""},
		{"zero width stripped", "1\u200B.", 100, true, model.MarkerQuestion, "1"},
		{"empty parens", "( )", 100, false, 0, ""},
		{"plain text", "The candle burns steadily.", 100, false, 0, ""},
		{"blank", "   ", 100, false, 0, ""},
	}

	d := NewDetector()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lines := []model.TextLine{makeLine(tc.text, tc.x0, 200)}
			got := d.DetectPage(lines, 2, 1000, 2000)

			if !tc.wantMatch {
				if len(got) != 0 {
					t.Fatalf("Expected no markers, got %+v", got)
				}
				return
			}
			if len(got) != 1 {
				t.Fatalf("Expected 1 marker, got %d", len(got))
			}
			m := got[0]
			if m.Kind != tc.wantKind {
				t.Errorf("Expected kind %v, got %v", tc.wantKind, m.Kind)
			}
			if m.Value != tc.wantValue {
				t.Errorf("Expected value %q, got %q", tc.wantValue, m.Value)
			}
			if m.Page != 2 {
				t.Errorf("Expected page 2, got %d", m.Page)
			}
			if math.Abs(m.Y-0.1) > 1e-9 {
				t.Errorf("Expected y 0.1, got %v", m.Y)
			}
		})
	}
}

func TestDetector_CombinedFormWinsOverSubpart(t *testing.T) {
	d := NewDetector()
	got := d.DetectPage([]model.TextLine{makeLine("7(a) A ball is thrown.", 100, 400)}, 3, 1000, 2000)
	if len(got) != 1 {
		t.Fatalf("Expected 1 marker, got %d", len(got))
	}
	if got[0].Kind != model.MarkerQuestion || got[0].Value != "7" {
		t.Errorf("Expected question 7, got %v %q", got[0].Kind, got[0].Value)
	}
}

func TestDetector_InvalidPageDimensions(t *testing.T) {
	d := NewDetector()
	if got := d.DetectPage([]model.TextLine{makeLine("1.", 100, 200)}, 2, 0, 0); got != nil {
		t.Errorf("Expected nil for zero-size page, got %+v", got)
	}
}

func TestClampY(t *testing.T) {
	if got := ClampY(-0.5); got != 0 {
		t.Errorf("Expected 0, got %v", got)
	}
	if got := ClampY(1.5); got != 0.999 {
		t.Errorf("Expected 0.999, got %v", got)
	}
	if got := ClampY(0.5); got != 0.5 {
		t.Errorf("Expected 0.5, got %v", got)
	}
}

func TestMatchesBareMarker(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"1.", true},
		{"(a)", true},
		{"7", true}, // gating ignored here
		{"12 The diagram shows", true},
		{"4(a) The diagram shows", false}, // combined form carries its own stem
		{"The candle burns.", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := MatchesBareMarker(tc.text); got != tc.want {
			t.Errorf("MatchesBareMarker(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}
