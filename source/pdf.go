package source

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"

	pdflib "github.com/ledongthuc/pdf"
)

// pdfDocument adapts a ledongthuc/pdf reader to the Document interface. The
// library reports glyph positions in PDF user space (origin bottom-left),
// which are converted here to the engine's top-down convention.
type pdfDocument struct {
	f *os.File
	r *pdflib.Reader
}

// Open opens the PDF at path and returns a Document backed by it. The file
// is sniffed for the %PDF magic before parsing.
func Open(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	head := make([]byte, 4)
	n, _ := io.ReadFull(f, head)
	f.Close()
	if DetectFromMagic(head[:n]) != PDF {
		return nil, fmt.Errorf("%s: not a PDF document", filepath.Base(path))
	}

	file, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &pdfDocument{f: file, r: reader}, nil
}

func (d *pdfDocument) PageCount() int {
	return d.r.NumPage()
}

func (d *pdfDocument) Close() error {
	return d.f.Close()
}

func (d *pdfDocument) PlainText(n int) (text string, err error) {
	// The underlying content-stream interpreter panics on some malformed
	// streams. A bad page must not take the document down with it.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("page %d: text extraction failed: %v", n, r)
		}
	}()

	p := d.r.Page(n)
	if p.V.IsNull() {
		return "", fmt.Errorf("page %d: missing page object", n)
	}
	return p.GetPlainText(nil)
}

func (d *pdfDocument) Page(n int) (pc PageContent, err error) {
	defer func() {
		if r := recover(); r != nil {
			pc = PageContent{}
			err = fmt.Errorf("page %d: content extraction failed: %v", n, r)
		}
	}()

	p := d.r.Page(n)
	if p.V.IsNull() {
		return PageContent{}, fmt.Errorf("page %d: missing page object", n)
	}

	w, h := pageSize(p)
	if w <= 0 || h <= 0 {
		return PageContent{}, fmt.Errorf("page %d: invalid media box", n)
	}

	content := p.Content()
	pc = PageContent{
		Width:  w,
		Height: h,
		Lines:  assembleLines(content.Text, h),
	}
	for _, r := range content.Rect {
		pc.Segments = append(pc.Segments, Segment{
			X0: r.Min.X,
			Y0: h - r.Max.Y,
			X1: r.Max.X,
			Y1: h - r.Min.Y,
		})
	}
	return pc, nil
}

// pageSize resolves the page's MediaBox, walking up to the page tree root
// for inherited entries.
func pageSize(p pdflib.Page) (w, h float64) {
	mb := inherited(p.V, "MediaBox")
	if mb.Kind() != pdflib.Array || mb.Len() < 4 {
		return 0, 0
	}
	x0 := mb.Index(0).Float64()
	y0 := mb.Index(1).Float64()
	x1 := mb.Index(2).Float64()
	y1 := mb.Index(3).Float64()
	return math.Abs(x1 - x0), math.Abs(y1 - y0)
}

func inherited(v pdflib.Value, key string) pdflib.Value {
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		if r := v.Key(key); !r.IsNull() {
			return r
		}
		v = v.Key("Parent")
	}
	return pdflib.Value{}
}

// baselineTolerance is the maximum baseline difference, in page units, for
// two glyph runs to be treated as parts of the same line.
const baselineTolerance = 2.5

// assembleLines groups positioned glyph runs into visual lines, top to
// bottom, converting baseline coordinates to top-down line boxes.
func assembleLines(texts []pdflib.Text, pageH float64) []Line {
	if len(texts) == 0 {
		return nil
	}

	sorted := make([]pdflib.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var lines []Line
	var group []pdflib.Text
	flush := func() {
		if len(group) == 0 {
			return
		}
		lines = append(lines, buildLine(group, pageH))
		group = group[:0]
	}

	for _, t := range sorted {
		if len(group) > 0 && math.Abs(t.Y-group[0].Y) > baselineTolerance {
			flush()
		}
		group = append(group, t)
	}
	flush()
	return lines
}

func buildLine(group []pdflib.Text, pageH float64) Line {
	sort.SliceStable(group, func(i, j int) bool {
		return group[i].X < group[j].X
	})

	x0 := group[0].X
	x1 := group[0].X + group[0].W
	fontSize := group[0].FontSize
	var text []byte
	prevEnd := math.Inf(-1)

	for _, t := range group {
		if t.X < x0 {
			x0 = t.X
		}
		if end := t.X + t.W; end > x1 {
			x1 = end
		}
		if t.FontSize > fontSize {
			fontSize = t.FontSize
		}
		// Insert a space when the glyph runs are visually separated but
		// the content stream omitted the space character.
		if len(text) > 0 && text[len(text)-1] != ' ' && t.X-prevEnd > 0.25*t.FontSize {
			text = append(text, ' ')
		}
		text = append(text, t.S...)
		prevEnd = t.X + t.W
	}

	baseline := group[0].Y
	return Line{
		X0:   x0,
		Y0:   pageH - (baseline + fontSize),
		X1:   x1,
		Y1:   pageH - baseline + 0.2*fontSize,
		Text: string(text),
	}
}
