// ABOUTME: Tests for the C1 ANSI tokenizer: CSI/OSC/DCS/SOS/PM/APC/ST dispatch and OSC-8 hyperlinks
// ABOUTME: Covers 7-bit and 8-bit introducers, malformed sequences, and unterminated control strings

package width

import "testing"

func TestTokenizeSGR(t *testing.T) {
	t.Parallel()

	tok, ok := Tokenize("\x1b[31mred", 0)
	if !ok {
		t.Fatal("expected match")
	}
	if tok.Kind != TokenSGR {
		t.Errorf("Kind = %v, want TokenSGR", tok.Kind)
	}
	if tok.Params != "31" {
		t.Errorf("Params = %q, want %q", tok.Params, "31")
	}
	if tok.Raw != "\x1b[31m" {
		t.Errorf("Raw = %q, want %q", tok.Raw, "\x1b[31m")
	}
	if tok.End != len("\x1b[31m") {
		t.Errorf("End = %d, want %d", tok.End, len("\x1b[31m"))
	}
}

func TestTokenizeSGR8Bit(t *testing.T) {
	t.Parallel()

	tok, ok := Tokenize("\x9b31mred", 0)
	if !ok {
		t.Fatal("expected match")
	}
	if tok.Kind != TokenSGR || tok.Flavor != 1 {
		t.Errorf("Kind/Flavor = %v/%d, want TokenSGR/1", tok.Kind, tok.Flavor)
	}
}

func TestTokenizeOpaqueControl(t *testing.T) {
	t.Parallel()

	tok, ok := Tokenize("\x1b[10;20Hhere", 0)
	if !ok {
		t.Fatal("expected match")
	}
	if tok.Kind != TokenControl {
		t.Errorf("Kind = %v, want TokenControl", tok.Kind)
	}
	if tok.Raw != "\x1b[10;20H" {
		t.Errorf("Raw = %q, want %q", tok.Raw, "\x1b[10;20H")
	}
}

func TestTokenizeColonSGRIsStillSGRKind(t *testing.T) {
	t.Parallel()

	// A colon-bearing SGR is classified SGR by the tokenizer (opaqueness is
	// C2's concern, applied via StyleSet.Apply), per spec.md §4.1/§4.2.
	tok, ok := Tokenize("\x1b[38:5:196mx", 0)
	if !ok {
		t.Fatal("expected match")
	}
	if tok.Kind != TokenSGR {
		t.Errorf("Kind = %v, want TokenSGR", tok.Kind)
	}
}

func TestTokenizeHyperlinkOpenAndClose(t *testing.T) {
	t.Parallel()

	s := "\x1b]8;;https://example.com\x07link\x1b]8;;\x07tail"
	tok, ok := Tokenize(s, 0)
	if !ok {
		t.Fatal("expected hyperlink open match")
	}
	if tok.Kind != TokenHyperlinkOpen {
		t.Errorf("Kind = %v, want TokenHyperlinkOpen", tok.Kind)
	}
	wantOpen := "\x1b]8;;https://example.com\x07"
	if tok.HyperlinkOpen != wantOpen {
		t.Errorf("HyperlinkOpen = %q, want %q", tok.HyperlinkOpen, wantOpen)
	}
	if tok.End != len(wantOpen) {
		t.Errorf("End = %d, want %d", tok.End, len(wantOpen))
	}

	closeStart := len(wantOpen) + len("link")
	closeTok, ok := Tokenize(s, closeStart)
	if !ok {
		t.Fatal("expected hyperlink close match")
	}
	if closeTok.Kind != TokenHyperlinkClose {
		t.Errorf("Kind = %v, want TokenHyperlinkClose", closeTok.Kind)
	}
	if closeTok.HyperlinkClosePrefix != "\x1b]8;;" {
		t.Errorf("HyperlinkClosePrefix = %q, want %q", closeTok.HyperlinkClosePrefix, "\x1b]8;;")
	}
	if closeTok.HyperlinkTerminator != "\x07" {
		t.Errorf("HyperlinkTerminator = %q, want BEL", closeTok.HyperlinkTerminator)
	}
}

func TestTokenizeHyperlink8BitCSTTerminator(t *testing.T) {
	t.Parallel()

	s := "\x9d8;;https://example.com\x9clink"
	tok, ok := Tokenize(s, 0)
	if !ok {
		t.Fatal("expected match")
	}
	if tok.Kind != TokenHyperlinkOpen || tok.Flavor != 1 {
		t.Errorf("Kind/Flavor = %v/%d, want TokenHyperlinkOpen/1", tok.Kind, tok.Flavor)
	}
	if tok.HyperlinkTerminator != "\x9c" {
		t.Errorf("HyperlinkTerminator = %q, want C1 ST", tok.HyperlinkTerminator)
	}
}

func TestTokenizeUnterminatedHyperlinkNoMatch(t *testing.T) {
	t.Parallel()

	_, ok := Tokenize("\x1b]8;;https://example.com", 0)
	if ok {
		t.Error("expected no-match for unterminated hyperlink")
	}
}

func TestTokenizeUnterminatedControlStringNoMatch(t *testing.T) {
	t.Parallel()

	// A lone DCS introducer must not swallow the rest of the string.
	_, ok := Tokenize("\x90unterminated", 0)
	if ok {
		t.Error("expected no-match for unterminated DCS")
	}
}

func TestTokenizeMalformedCSINoMatch(t *testing.T) {
	t.Parallel()

	// A byte outside parameter/intermediate/final ranges marks the sequence malformed.
	_, ok := Tokenize("\x1b[1\x00m", 0)
	if ok {
		t.Error("expected no-match for malformed CSI")
	}
}

func TestTokenizeUnterminatedCSIConsumesToEOF(t *testing.T) {
	t.Parallel()

	tok, ok := Tokenize("\x1b[1;2", 0)
	if !ok {
		t.Fatal("expected match")
	}
	if tok.Kind != TokenControl || tok.End != 5 {
		t.Errorf("got Kind=%v End=%d, want TokenControl/5", tok.Kind, tok.End)
	}
}

func TestTokenizeStandaloneST(t *testing.T) {
	t.Parallel()

	tok, ok := Tokenize("\x9cafter", 0)
	if !ok || tok.Kind != TokenControl || tok.Raw != "\x9c" {
		t.Errorf("got %+v, ok=%v, want standalone ST control", tok, ok)
	}
}

func TestTokenizeNonIntroducerByte(t *testing.T) {
	t.Parallel()

	_, ok := Tokenize("plain", 0)
	if ok {
		t.Error("expected no-match on a plain byte")
	}
}

func TestStripANSI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "no ansi", input: "plain text", want: "plain text"},
		{name: "sgr color", input: "\x1b[31mred\x1b[0m", want: "red"},
		{name: "osc title", input: "\x1b]0;title\x07text", want: "text"},
		{name: "cursor move", input: "\x1b[10;20Hhere", want: "here"},
		{name: "empty", input: "", want: ""},
		{name: "only escape", input: "\x1b[0m", want: ""},
		{name: "hyperlink", input: "\x1b]8;;https://x\x07link\x1b]8;;\x07", want: "link"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := stripANSI(tt.input)
			if got != tt.want {
				t.Errorf("stripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
