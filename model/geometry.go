package model

// TextLine is one visually contiguous line of extracted text. Coordinates
// are absolute page units with the origin at the top-left corner, so Y0 is
// the top of the line and Y1 its bottom.
type TextLine struct {
	X0, Y0, X1, Y1 float64
	Text           string
}

// StemLine is a line from the page-wide stem sweep, reduced to what the
// region assembler needs when walking upward from a subpart marker.
type StemLine struct {
	// Y is the normalized top of the line (0 at the page top, 1 at the
	// bottom).
	Y float64

	// XRatio is the left edge of the line as a fraction of page width.
	XRatio float64

	Text string
}

// Box is a suggested region on one page. All coordinates are normalized to
// the page, x growing right and y growing down.
type Box struct {
	Page           int
	X0, Y0, X1, Y1 float64
}

// Height returns the normalized vertical extent of the box.
func (b Box) Height() float64 {
	return b.Y1 - b.Y0
}

// OverlapY returns the vertical overlap between b and other, which may be
// negative when the boxes are disjoint.
func (b Box) OverlapY(other Box) float64 {
	lo := b.Y0
	if other.Y0 > lo {
		lo = other.Y0
	}
	hi := b.Y1
	if other.Y1 < hi {
		hi = other.Y1
	}
	return hi - lo
}

// PageGeometry caches the geometric evidence gathered for one page during
// extraction. The assembler consults it read-only.
type PageGeometry struct {
	// Rules holds the normalized y positions of horizontal rules, sorted
	// ascending and deduplicated.
	Rules []float64

	// FooterY is the normalized top of the footer zone when HasFooter is
	// set.
	FooterY   float64
	HasFooter bool

	// TopContentY is the first substantial content line below the header
	// band when HasTopContent is set.
	TopContentY   float64
	HasTopContent bool

	// BottomContentY is the lowest extent of body text above the footer
	// when HasBottomContent is set.
	BottomContentY   float64
	HasBottomContent bool

	// StemLines holds every candidate stem line on the page, sorted by
	// (Y, XRatio).
	StemLines []StemLine
}
