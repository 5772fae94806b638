// Package source defines the read-only document contract the suggestion
// engine consumes, together with the PDF-backed implementation used in
// production. The engine itself never touches a decoder; everything it
// needs from a document flows through the Document interface, which keeps
// the pipeline testable against handcrafted page content.
package source

// Line is one extracted text line in absolute page units, origin at the
// top-left corner.
type Line struct {
	X0, Y0, X1, Y1 float64
	Text           string
}

// Segment is one vector drawing primitive reduced to a line segment, in the
// same top-down coordinate space as Line.
type Segment struct {
	X0, Y0, X1, Y1 float64
}

// PageContent is everything the engine reads from one page. A zero value
// (Width and Height both 0) marks a page that could not be decoded.
type PageContent struct {
	Width, Height float64
	Lines         []Line
	Segments      []Segment
}

// Document is the engine's view of an opened exam paper. Page numbers are
// 1-based throughout.
type Document interface {
	// PageCount returns the number of pages in the document.
	PageCount() int

	// Page returns the decoded content of one page. Implementations
	// return an error only for failures scoped to that page; callers
	// treat any error as an empty page and continue.
	Page(n int) (PageContent, error)

	// PlainText returns the page's raw text layer, used for quality
	// assessment only.
	PlainText(n int) (string, error)

	// Close releases the underlying resources.
	Close() error
}
