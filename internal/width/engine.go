// ABOUTME: C4 slice engine: single-pass streaming walk over ANSI + grapheme clusters
// ABOUTME: drives C1-C3, resolves bounds/ellipsis, emits opens at entry and closes at exit

package width

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/graphemes"
)

// hyperlinkState is the single-slot "at most one hyperlink active" state
// spec.md §3 describes.
type hyperlinkState struct {
	active      bool
	open        string
	closePrefix string
	terminator  string
}

// Slice is the C4 entry point: extract the substring of input occupying the
// half-open visible-column range [start, end), preserving SGR styling and
// OSC-8 hyperlink semantics per spec.md §4.4. end == +Inf means "to EOF".
// The second return value is the identity signal: true means the caller may
// reuse input verbatim rather than copy the returned string.
func Slice(input string, start, end float64, ellipsis string, ambiguousIsNarrow bool) (string, bool) {
	if ellipsis == "" && start == 0 && math.IsInf(end, 1) {
		return input, true
	}
	if isPlainASCIIPrintable(input) {
		return sliceASCIIFast(input, start, end, ellipsis, ambiguousIsNarrow), false
	}

	s, e, endInf, needStart, needEnd, degenerate := resolveSliceParams(input, start, end, ellipsis, ambiguousIsNarrow)
	if degenerate {
		return ellipsis, false
	}
	return sliceStream(input, s, e, endInf, needStart, needEnd, ellipsis, ambiguousIsNarrow), false
}

// isPlainASCIIPrintable reports whether every byte of input is a printable
// ASCII byte (0x20-0x7E), spec.md §4.4's "all-ASCII-printable" fast-path
// gate: when true, byte positions equal column positions.
func isPlainASCIIPrintable(input string) bool {
	for i := 0; i < len(input); i++ {
		b := input[i]
		if b < 0x20 || b > 0x7e {
			return false
		}
	}
	return true
}

// resolveIndex applies spec.md §6's "negative means from end" and §4.4's
// "resolve in double-precision space, clamp before casting" rules.
func resolveIndex(v float64, total int) int {
	if math.IsInf(v, -1) || math.IsNaN(v) {
		return 0
	}
	if v < 0 {
		v += float64(total)
		if v < 0 {
			v = 0
		}
	}
	const maxIndex = float64(1 << 31)
	if v > maxIndex {
		v = maxIndex
	}
	return int(v)
}

// totalVisibleWidth is the negative-index / end-ellipsis pre-pass: strip ANSI,
// then sum grapheme-cluster widths over the remainder using the uax29/v2
// whole-string grapheme segmenter. Unlike the streaming walk, this pass has no
// ANSI-interleaving constraint, so a single forward pass over the pre-cleaned
// string is sufficient.
func totalVisibleWidth(s string, ambiguousIsNarrow bool) int {
	stripped := stripANSI(s)
	if stripped == "" {
		return 0
	}
	total := 0
	segs := graphemes.FromString(stripped)
	for segs.Next() {
		total += ClusterWidth(segs.Value(), ambiguousIsNarrow)
	}
	return total
}

// resolveSliceParams resolves start/end to non-negative column bounds and
// decides whether start- and/or end-ellipsis apply, per spec.md §4.4's
// ellipsis resolution. Operating over an in-memory string (rather than a true
// byte stream) lets this resolve "is there more past end" with one upfront
// width pass instead of the reference's speculative-zone buffering: both
// give the same answer, but this avoids a second output buffer.
func resolveSliceParams(input string, start, end float64, ellipsis string, ambiguousIsNarrow bool) (s, e int, endInf, needStart, needEnd, degenerate bool) {
	endInf = math.IsInf(end, 1)
	ellW := 0
	if ellipsis != "" {
		ellW = PlainTextWidth(ellipsis, ambiguousIsNarrow)
	}

	needTotal := start < 0 || (!endInf && end < 0) || (!endInf && ellW > 0)
	var total int
	if needTotal {
		total = totalVisibleWidth(input, ambiguousIsNarrow)
	}

	s = resolveIndex(start, total)
	if endInf {
		e = 0
	} else {
		e = resolveIndex(end, total)
		if e < s {
			e = s
		}
	}

	cutStart := s > 0
	cutEnd := !endInf && e < total

	if cutStart && ellW > 0 && (endInf || ellW < e-s) {
		s += ellW
		needStart = true
	}
	if cutEnd && ellW > 0 && ellW < e-s {
		e -= ellW
		needEnd = true
	}
	if needStart && needEnd && e <= s {
		degenerate = true
	}
	return s, e, endInf, needStart, needEnd, degenerate
}

// sliceASCIIFast is spec.md §4.4's "all-ASCII-printable" fast path: byte
// position equals column position, so bounds resolve and the substring is
// taken directly with no grapheme or ANSI processing.
func sliceASCIIFast(input string, start, end float64, ellipsis string, ambiguousIsNarrow bool) string {
	total := len(input)
	ellW := 0
	if ellipsis != "" {
		ellW = PlainTextWidth(ellipsis, ambiguousIsNarrow)
	}

	s := resolveIndex(start, total)
	endInf := math.IsInf(end, 1)
	e := total
	if !endInf {
		e = resolveIndex(end, total)
	}
	if e < s {
		e = s
	}

	cutStart := s > 0
	cutEnd := e < total
	needStart, needEnd := false, false
	if cutStart && ellW > 0 && (endInf || ellW < e-s) {
		s += ellW
		needStart = true
	}
	if cutEnd && ellW > 0 && ellW < e-s {
		e -= ellW
		needEnd = true
	}
	if needStart && needEnd && e <= s {
		return ellipsis
	}

	if s > total {
		s = total
	}
	if e > total {
		e = total
	}
	if e < s {
		e = s
	}

	var b strings.Builder
	if needStart {
		b.WriteString(ellipsis)
	}
	b.WriteString(input[s:e])
	if needEnd {
		b.WriteString(ellipsis)
	}
	return b.String()
}

// sliceStream is the C4 single-pass streaming walk: it maintains a cursor, a
// visible-column position, an "opened" flag (the window has been entered),
// the C2 style tracker, the single-slot hyperlink state, and a per-cluster
// raw-byte buffer used to make each grapheme cluster's inclusion decision
// atomic (spec.md §8's boundary behavior: a cluster is either wholly included
// or wholly excluded, never partially).
func sliceStream(s string, start, end int, endInf, needStart, needEnd bool, ellipsis string, ambiguousIsNarrow bool) string {
	var out strings.Builder
	var styles StyleSet
	var hl hyperlinkState
	var gs GraphemeState
	var clusterText strings.Builder
	var clusterRaw strings.Builder
	hasCluster := false
	position := 0
	opened := false

	openWindow := func() {
		if opened {
			return
		}
		opened = true
		styles.EmitOpens(&out)
		if needStart {
			out.WriteString(ellipsis)
		}
		if hl.active {
			out.WriteString(hl.open)
		}
	}
	if start == 0 {
		openWindow()
	}

	// withinWindow reports whether position (the column at which the next
	// unfinished cluster or free-floating token sits) is still strictly
	// before the window's close, i.e. whether raw bytes seen here should be
	// replayed verbatim rather than filtered to closing effect only.
	withinWindow := func() bool { return endInf || position < end }

	finalizeCluster := func() {
		w := gs.Width()
		included := position >= start && (endInf || position+w <= end)
		if included {
			openWindow()
			out.WriteString(clusterRaw.String())
		}
		position += w
	}

	routeSGR := func(tok Token) {
		switch {
		case hasCluster:
			styles.Apply(tok.Raw, tok.Params, tok.Flavor)
			clusterRaw.WriteString(tok.Raw)
		case !opened:
			styles.Apply(tok.Raw, tok.Params, tok.Flavor)
		case withinWindow():
			styles.Apply(tok.Raw, tok.Params, tok.Flavor)
			out.WriteString(tok.Raw)
		default:
			if styles.ClosingEligible(tok.Params) {
				styles.Apply(tok.Raw, tok.Params, tok.Flavor)
				out.WriteString(tok.Raw)
			}
		}
	}

	routeHyperlinkOpen := func(tok Token) {
		next := hyperlinkState{active: true, open: tok.HyperlinkOpen, closePrefix: tok.HyperlinkClosePrefix, terminator: tok.HyperlinkTerminator}
		switch {
		case hasCluster:
			hl = next
			clusterRaw.WriteString(tok.Raw)
		case !opened:
			hl = next
		case withinWindow():
			hl = next
			out.WriteString(tok.Raw)
		default:
			// Opening a hyperlink past the cut has no closing effect; drop.
		}
	}

	routeHyperlinkClose := func(tok Token) {
		switch {
		case hasCluster:
			hl = hyperlinkState{}
			clusterRaw.WriteString(tok.Raw)
		case !opened:
			hl = hyperlinkState{}
		case withinWindow():
			hl = hyperlinkState{}
			out.WriteString(tok.Raw)
		default:
			if hl.active {
				out.WriteString(tok.Raw)
				hl = hyperlinkState{}
			}
		}
	}

	routeControl := func(tok Token) {
		switch {
		case hasCluster:
			clusterRaw.WriteString(tok.Raw)
		case !opened:
			// dropped: no closing effect, and window never entered here
		case withinWindow():
			out.WriteString(tok.Raw)
		default:
			// opaque Control sequences are never closing-eligible
		}
	}

	i := 0
	n := len(s)
	for i < n {
		if isAnsiIntroducerByte(s[i]) {
			if tok, ok := Tokenize(s, i); ok {
				switch tok.Kind {
				case TokenSGR:
					routeSGR(tok)
				case TokenHyperlinkOpen:
					routeHyperlinkOpen(tok)
				case TokenHyperlinkClose:
					routeHyperlinkClose(tok)
				default:
					routeControl(tok)
				}
				i = tok.End
				continue
			}
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		i += size

		if hasCluster && ExtendsCluster(clusterText.String(), r) {
			clusterText.WriteRune(r)
			gs.Add(r, ambiguousIsNarrow)
			clusterRaw.WriteRune(r)
			continue
		}

		if hasCluster {
			finalizeCluster()
			hasCluster = false
		}
		if opened && !endInf && position >= end {
			break
		}

		hasCluster = true
		clusterText.Reset()
		clusterText.WriteRune(r)
		gs.Reset()
		gs.Add(r, ambiguousIsNarrow)
		clusterRaw.Reset()
		clusterRaw.WriteRune(r)
	}
	if hasCluster {
		finalizeCluster()
	}

	if opened {
		if hl.active {
			out.WriteString(hl.closePrefix)
			out.WriteString(hl.terminator)
		}
		if needEnd {
			out.WriteString(ellipsis)
		}
		styles.EmitCloses(&out)
	}
	return out.String()
}
