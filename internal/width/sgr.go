// ABOUTME: ordered active-SGR-style tracker keyed by close code, adapted from ansitrack.Tracker
// ABOUTME: supports 256-color/truecolor extended params and the open/close code table

package width

import (
	"strconv"
	"strings"
)

// endCodes is the set of SGR codes that cancel a previously opened style.
var endCodes = map[int]bool{
	0: true, 22: true, 23: true, 24: true, 25: true,
	27: true, 28: true, 29: true, 39: true, 49: true, 55: true,
}

func isEndCode(code int) bool { return endCodes[code] }

// closeCodeFor returns the SGR code that cancels an opening code, or 0
// ("use full reset") for anything not in the open→close table.
func closeCodeFor(code int) int {
	switch {
	case code == 1 || code == 2:
		return 22
	case code == 3:
		return 23
	case code == 4:
		return 24
	case code == 5 || code == 6:
		return 25
	case code == 7:
		return 27
	case code == 8:
		return 28
	case code == 9:
		return 29
	case code >= 30 && code <= 38, code >= 90 && code <= 97:
		return 39
	case code >= 40 && code <= 48, code >= 100 && code <= 107:
		return 49
	case code == 53:
		return 55
	default:
		return 0
	}
}

type styleEntry struct {
	open      string
	closeCode int
	flavor    byte
}

// StyleSet is the ordered set of active SGR styles, keyed by close code, that
// spec.md §3 and §4.2 describe: at most one entry per close code, insertion
// order preserved, opens replayed forward and closes replayed in reverse.
type StyleSet struct {
	entries []styleEntry
}

func (s *StyleSet) indexOf(closeCode int) int {
	for i := range s.entries {
		if s.entries[i].closeCode == closeCode {
			return i
		}
	}
	return -1
}

func (s *StyleSet) set(open string, closeCode int, flavor byte) {
	if idx := s.indexOf(closeCode); idx >= 0 {
		s.entries[idx].open = open
		s.entries[idx].flavor = flavor
		return
	}
	s.entries = append(s.entries, styleEntry{open: open, closeCode: closeCode, flavor: flavor})
}

func (s *StyleSet) remove(closeCode int) {
	idx := s.indexOf(closeCode)
	if idx < 0 {
		return
	}
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
}

func (s *StyleSet) clear() { s.entries = s.entries[:0] }

// Active reports whether any style is currently open.
func (s *StyleSet) Active() bool { return len(s.entries) > 0 }

// EmitOpens appends every active style's open sequence in insertion order.
func (s *StyleSet) EmitOpens(buf *strings.Builder) {
	for _, e := range s.entries {
		buf.WriteString(e.open)
	}
}

// EmitCloses appends every active style's close sequence in reverse
// insertion order, reversing the nesting the opens established.
func (s *StyleSet) EmitCloses(buf *strings.Builder) {
	for i := len(s.entries) - 1; i >= 0; i-- {
		buf.WriteString(closeSeq(s.entries[i].closeCode, s.entries[i].flavor))
	}
}

func csiPrefix(flavor byte) string {
	if flavor == 1 {
		return "\x9b"
	}
	return "\x1b["
}

func closeSeq(code int, flavor byte) string {
	return csiPrefix(flavor) + strconv.Itoa(code) + "m"
}

func synthOpen(flavor byte, codes ...int) string {
	var b strings.Builder
	b.WriteString(csiPrefix(flavor))
	for i, c := range codes {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strconv.Itoa(c))
	}
	b.WriteByte('m')
	return b.String()
}

// Apply parses an SGR sequence's parameter bytes and updates the active set,
// per spec.md §4.2's application rules. raw is the full original sequence
// (used verbatim as the open text for opaque, non-decomposed entries).
func (s *StyleSet) Apply(raw, params string, flavor byte) {
	if strings.ContainsRune(params, ':') {
		s.applyOpaque(raw, params, flavor)
		return
	}
	parts, ok := splitParams(params)
	if !ok || len(parts) > 32 {
		s.applyOpaque(raw, params, flavor)
		return
	}
	if len(parts) == 0 {
		parts = []int{0}
	}
	for i := 0; i < len(parts); i++ {
		code := parts[i]
		switch {
		case code == 0:
			s.clear()
		case (code == 38 || code == 48) && i+1 < len(parts) && parts[i+1] == 5 && i+2 < len(parts):
			closeCode := 39
			if code == 48 {
				closeCode = 49
			}
			s.set(synthOpen(flavor, code, 5, parts[i+2]), closeCode, flavor)
			i += 2
		case (code == 38 || code == 48) && i+1 < len(parts) && parts[i+1] == 2 && i+4 < len(parts):
			closeCode := 39
			if code == 48 {
				closeCode = 49
			}
			s.set(synthOpen(flavor, code, 2, parts[i+2], parts[i+3], parts[i+4]), closeCode, flavor)
			i += 4
		case isEndCode(code):
			s.remove(code)
		default:
			s.set(synthOpen(flavor, code), closeCodeFor(code), flavor)
		}
	}
}

// applyOpaque records a colon-bearing or overflowed sequence as a single
// non-decomposed style entry, per spec.md §4.2.
func (s *StyleSet) applyOpaque(raw, params string, flavor byte) {
	closeCode := 0
	if first, ok := firstParam(params); ok {
		closeCode = closeCodeFor(first)
	}
	s.set(raw, closeCode, flavor)
}

// ClosingEligible reports whether an SGR sequence, encountered past the
// slice's last included cluster, has pure closing effect on the currently
// active styles and should therefore still be emitted (spec.md §4.2's
// pending-close filter). Opaque sequences are never eligible.
func (s *StyleSet) ClosingEligible(params string) bool {
	if strings.ContainsRune(params, ':') {
		return false
	}
	parts, ok := splitParams(params)
	if !ok || len(parts) > 32 {
		return false
	}
	if len(parts) == 0 {
		parts = []int{0}
	}
	for _, code := range parts {
		if code == 0 {
			if !s.Active() {
				return false
			}
			continue
		}
		if isEndCode(code) && s.indexOf(code) >= 0 {
			continue
		}
		return false
	}
	return true
}

func splitParams(params string) ([]int, bool) {
	if params == "" {
		return nil, true
	}
	fields := strings.Split(params, ";")
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			out = append(out, 0)
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

// firstParam extracts the leading decimal number from params, stopping at
// the first ';' or ':' (colon-bearing opaque sequences separate fields with
// ':', so this must not route through splitParams, which only understands
// ';'). Used by applyOpaque to infer a best-guess close code from the
// opening SGR code even when the full sequence isn't decomposed.
func firstParam(params string) (int, bool) {
	end := len(params)
	for i := 0; i < len(params); i++ {
		if params[i] == ';' || params[i] == ':' {
			end = i
			break
		}
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(params[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
