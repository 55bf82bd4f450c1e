// ABOUTME: public API: Slice extracts a half-open visible-column range from an ANSI-styled string
// ABOUTME: thin wrapper over internal/width's C1-C4 engine; see spec.md for the full contract

package ansislice

import "github.com/mauromedda/ansislice/internal/width"

// Slice extracts the substring of input occupying the visible-column range
// [start, end), preserving SGR styling and OSC-8 hyperlink semantics so the
// result renders identically to the corresponding region of input in a
// terminal. end == math.Inf(1) means "to end of input". Negative start or end
// count back from the input's total visible width.
//
// The second return value reports whether the caller may reuse input
// verbatim instead of copying the returned string (true exactly when the
// call is equivalent to the identity slice, start == 0 && end == +Inf with no
// ellipsis).
func Slice(input string, start, end float64, opts ...Option) (string, bool) {
	c := resolve(opts)
	return width.Slice(input, start, end, c.ellipsis, c.ambiguousIsNarrow)
}
