package quality

import (
	"errors"
	"strings"
	"testing"

	"github.com/laurens1995s/paper-labeler/source"
)

// fakeDoc serves canned page text for assessment tests.
type fakeDoc struct {
	pages []string
	errs  map[int]error
}

func (d *fakeDoc) PageCount() int { return len(d.pages) }

func (d *fakeDoc) Page(int) (source.PageContent, error) {
	return source.PageContent{}, nil
}

func (d *fakeDoc) PlainText(n int) (string, error) {
	if err := d.errs[n]; err != nil {
		return "", err
	}
	return d.pages[n-1], nil
}

func (d *fakeDoc) Close() error { return nil }

const cleanPage = "The specific heat capacity of water is 4200 joules per kilogram per kelvin. " +
	"A student heats 500 grams of water from 20 degrees to 80 degrees."

func TestAssessor_CleanText(t *testing.T) {
	a := NewAssessor()
	doc := &fakeDoc{pages: []string{"cover", cleanPage, cleanPage, cleanPage}}

	status, msg := a.Assess(doc)
	if status != StatusOK {
		t.Fatalf("Expected StatusOK, got %v (%s)", status, msg)
	}
	if msg != "" {
		t.Errorf("Expected empty message for ok status, got %q", msg)
	}
}

func TestAssessor_NoText(t *testing.T) {
	a := NewAssessor()
	doc := &fakeDoc{pages: []string{"", "", ""}}

	status, msg := a.Assess(doc)
	if status != StatusNoText {
		t.Fatalf("Expected StatusNoText, got %v", status)
	}
	if msg == "" {
		t.Error("Expected a warning message")
	}
}

func TestAssessor_PrivateUseGlyphs(t *testing.T) {
	a := NewAssessor()
	garbled := cleanPage + strings.Repeat("\uE000", 50)
	doc := &fakeDoc{pages: []string{"cover", garbled, garbled}}

	status, _ := a.Assess(doc)
	if status != StatusGarbled {
		t.Fatalf("Expected StatusGarbled, got %v", status)
	}
}

func TestAssessor_ReplacementChar(t *testing.T) {
	a := NewAssessor()
	doc := &fakeDoc{pages: []string{"cover", cleanPage + "�", cleanPage}}

	status, _ := a.Assess(doc)
	if status != StatusGarbled {
		t.Fatalf("Expected StatusGarbled for replacement char, got %v", status)
	}
}

func TestAssessor_SkipsCoverPage(t *testing.T) {
	// A garbled cover must not poison the sample.
	a := NewAssessor()
	doc := &fakeDoc{pages: []string{strings.Repeat("\uE000", 200), cleanPage, cleanPage, cleanPage}}

	status, _ := a.Assess(doc)
	if status != StatusOK {
		t.Fatalf("Expected StatusOK with garbled cover skipped, got %v", status)
	}
}

func TestAssessor_SampleCapCountsRunes(t *testing.T) {
	// 2000 CJK characters occupy 6000 bytes; the sample cap is a character
	// count, so the next page must still be sampled and its garbled text
	// detected.
	a := NewAssessor()
	cjk := strings.Repeat("光合作用", 500)
	garbled := strings.Repeat("\uE000", 300)
	doc := &fakeDoc{pages: []string{"cover", cjk, garbled}}

	status, _ := a.Assess(doc)
	if status != StatusGarbled {
		t.Fatalf("Expected StatusGarbled, got %v", status)
	}
}

func TestAssessor_ReadFailure(t *testing.T) {
	a := NewAssessor()
	boom := errors.New("broken xref")
	doc := &fakeDoc{
		pages: []string{"", "", "", "", ""},
		errs:  map[int]error{2: boom, 3: boom, 4: boom, 5: boom},
	}

	status, msg := a.Assess(doc)
	if status != StatusGarbled {
		t.Fatalf("Expected StatusGarbled when no page is readable, got %v", status)
	}
	if msg == "" {
		t.Error("Expected a diagnostic message")
	}
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusOK, "ok"},
		{StatusNoText, "no_text"},
		{StatusGarbled, "garbled"},
	}
	for _, tc := range tests {
		if got := tc.status.String(); got != tc.want {
			t.Errorf("Status(%d).String() = %q, want %q", tc.status, got, tc.want)
		}
	}
}
