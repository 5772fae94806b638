// Package model defines the value types shared across the question-region
// suggestion pipeline: extracted text lines, detected markers, per-page
// geometry, and the suggested regions themselves.
package model

import "strconv"

// MarkerKind distinguishes top-level question markers from subpart markers.
type MarkerKind int

const (
	// MarkerQuestion is a top-level numbered question marker such as "3."
	// or "12、".
	MarkerQuestion MarkerKind = iota

	// MarkerSubpart is a parenthesized subpart marker such as "(a)" or
	// "(iv)".
	MarkerSubpart
)

// String returns a short human-readable name for the marker kind.
func (k MarkerKind) String() string {
	switch k {
	case MarkerQuestion:
		return "question"
	case MarkerSubpart:
		return "subpart"
	default:
		return "unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// Marker is one recognized question or subpart marker.
type Marker struct {
	// Page is 1-based.
	Page int

	// Y is the normalized top of the marker's line.
	Y float64

	Kind MarkerKind

	// Value is the question number for MarkerQuestion, or the lowercased
	// subpart token for MarkerSubpart.
	Value string
}

// Question groups the suggested boxes belonging to one question. An empty
// Label marks a fallback region with no recognized number.
type Question struct {
	Label string
	Boxes []Box
}
