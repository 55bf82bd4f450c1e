// ABOUTME: C3 grapheme width accumulator: cluster break decisions and per-cluster width
// ABOUTME: adapted from pkg/tui/width's uniseg+go-runewidth stepping into spec.md §3/§4.3's accumulator

package width

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const (
	cr = 0x0D
	lf = 0x0A

	maxNonEmojiWidth = 1023
	maxCount         = 255
)

// widthCondNarrow and widthCondWide are the shared go-runewidth conditions, matching the teacher's own
// width.go oracle usage. East-Asian-ambiguous handling is set per call site
// since spec.md's ambiguous_is_narrow is a per-Slice option, not global.
var (
	widthCondNarrow = &runewidth.Condition{EastAsianWidth: false}
	widthCondWide   = &runewidth.Condition{EastAsianWidth: true}
)

func runeWidth(r rune, ambiguousIsNarrow bool) int {
	if ambiguousIsNarrow {
		return widthCondNarrow.RuneWidth(r)
	}
	return widthCondWide.RuneWidth(r)
}

// ExtendsCluster reports whether appending next to the codepoints already
// accumulated in clusterSoFar (the cluster's text so far, in codepoint
// order) keeps them in the same grapheme cluster, per spec.md §4.3's
// break(prev, cur, &break_state) decision. clusterSoFar never contains ANSI
// bytes — C4 tokenizes and skips those before calling this — so an ANSI
// sequence between a codepoint and its continuation joiner is correctly
// transparent to the break decision, matching spec.md §4.4's requirement
// that such sequences belong inside the emitted cluster.
func ExtendsCluster(clusterSoFar string, next rune) bool {
	if clusterSoFar == "" {
		return true
	}
	combined := clusterSoFar + string(next)
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(combined, -1)
	return len(cluster) == len(combined)
}

// GraphemeState accumulates one cluster's codepoints per spec.md §3's
// grapheme-width state: saturating counters, a handful of presentation
// flags, and the first/last codepoints needed to resolve width precedence.
type GraphemeState struct {
	firstCP  rune
	lastCP   rune
	hasFirst bool

	nonEmojiWidth int
	firstBaseW    int
	count         int

	emojiBase bool
	keycap    bool
	ri        bool
	skinTone  bool
	zwj       bool
	vs15      bool
	vs16      bool
}

// Reset clears the accumulator for a new cluster; the caller seeds it with Add.
func (g *GraphemeState) Reset() {
	*g = GraphemeState{}
}

// Add folds one more codepoint of the current cluster into the accumulator,
// per spec.md §3/§4.3. ambiguousIsNarrow selects the East-Asian-Ambiguous
// width convention for the base-width oracle.
func (g *GraphemeState) Add(r rune, ambiguousIsNarrow bool) {
	if !g.hasFirst {
		g.hasFirst = true
		g.firstCP = r
		g.firstBaseW = runeWidth(r, ambiguousIsNarrow)
		g.emojiBase = isEmojiPresentationBase(r)
	}
	g.lastCP = r

	switch {
	case isKeycapMark(r):
		g.keycap = true
	case isRegionalIndicator(r):
		g.ri = true
	case isSkinTone(r):
		g.skinTone = true
	case isZWJ(r):
		g.zwj = true
	case isVS15(r):
		g.vs15 = true
	case isVS16(r):
		g.vs16 = true
	default:
		w := runeWidth(r, ambiguousIsNarrow)
		if w > 0 && g.nonEmojiWidth < maxNonEmojiWidth {
			g.nonEmojiWidth += w
			if g.nonEmojiWidth > maxNonEmojiWidth {
				g.nonEmojiWidth = maxNonEmojiWidth
			}
		}
	}
	if g.count < maxCount {
		g.count++
	}
}

// Width resolves the finished cluster's display width per spec.md §4.3's
// precedence: empty, RI pairing, keycap, emoji+modifier, variation
// selectors, then the accumulated fallback.
func (g *GraphemeState) Width() int {
	if g.count == 0 {
		return 0
	}
	if g.firstCP == cr || g.firstCP == lf {
		// CR, LF, and the CRLF pair are all width 1 per spec.md §8's
		// boundary behaviors; the break rules never let anything else
		// join a cluster that starts with one.
		return 1
	}
	if g.ri {
		if g.count >= 2 {
			return 2
		}
		return 1
	}
	if g.keycap {
		return 2
	}
	if g.emojiBase && (g.skinTone || g.zwj) {
		return 2
	}
	if g.vs15 || g.vs16 {
		if g.firstBaseW == 2 {
			return 2
		}
		if g.vs16 {
			if isASCIIDigitHashStar(g.firstCP) || g.firstCP < 0x80 {
				return 1
			}
			return 2
		}
		return 1
	}
	return g.nonEmojiWidth
}

func isASCIIDigitHashStar(r rune) bool {
	if r >= '0' && r <= '9' {
		return true
	}
	return r == '#' || r == '*'
}

// ClusterWidth computes a finished cluster's width directly, for callers
// (the negative-index total-width pre-pass, tests) that have the whole
// cluster text at hand and don't need the engine's incremental accumulator.
func ClusterWidth(cluster string, ambiguousIsNarrow bool) int {
	if cluster == "" {
		return 0
	}
	var g GraphemeState
	for _, r := range cluster {
		g.Add(r, ambiguousIsNarrow)
	}
	return g.Width()
}

// PlainTextWidth sums grapheme-cluster widths over s, assumed to carry no
// ANSI sequences (the engine's ellipsis string, per spec.md §6, is emitted
// with the caller's exact bytes and is not itself ANSI-aware).
func PlainTextWidth(s string, ambiguousIsNarrow bool) int {
	total := 0
	for len(s) > 0 {
		cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
		total += ClusterWidth(cluster, ambiguousIsNarrow)
		s = rest
	}
	return total
}
