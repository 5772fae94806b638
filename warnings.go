package paperlabeler

import "strings"

// WarningCode identifies the class of a non-fatal problem.
type WarningCode string

const (
	// WarnUnreadable means the document could not be opened or parsed.
	WarnUnreadable WarningCode = "unreadable"

	// WarnNoText means the document has little or no copyable text.
	WarnNoText WarningCode = "no_text"

	// WarnGarbled means the text layer is dominated by replacement or
	// private-use glyphs.
	WarnGarbled WarningCode = "garbled"

	// WarnNoMarkers means no question markers were recognized.
	WarnNoMarkers WarningCode = "no_markers"

	// WarnEmptyResult means markers were found but every region
	// degenerated during assembly.
	WarnEmptyResult WarningCode = "empty_result"

	// WarnControlChars means invisible control characters were found
	// inside marker-looking lines.
	WarnControlChars WarningCode = "control_chars"
)

// Warning describes a non-fatal problem encountered while producing
// suggestions. Suggestions are still returned alongside warnings; a warning
// never implies an empty result.
type Warning struct {
	Code    WarningCode
	Message string
}

// String returns the warning message.
func (w Warning) String() string {
	return w.Message
}

// FormatWarnings joins warning messages into a single human-readable
// string, or returns the empty string when there are none.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	msgs := make([]string, len(warnings))
	for i, w := range warnings {
		msgs[i] = w.Message
	}
	return strings.Join(msgs, "; ")
}
