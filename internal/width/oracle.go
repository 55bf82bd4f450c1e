// ABOUTME: small Unicode range oracles spec.md's GLOSSARY names by codepoint
// ABOUTME: regional indicator, skin tone, keycap, variation selectors, emoji presentation

package width

const (
	zwj  rune = 0x200D
	vs15 rune = 0xFE0E
	vs16 rune = 0xFE0F
	// keycapCombining is U+20E3, the combining enclosing keycap mark.
	keycapCombining rune = 0x20E3
)

func isRegionalIndicator(r rune) bool {
	return r >= 0x1F1E6 && r <= 0x1F1FF
}

func isSkinTone(r rune) bool {
	return r >= 0x1F3FB && r <= 0x1F3FF
}

func isVS15(r rune) bool { return r == vs15 }
func isVS16(r rune) bool { return r == vs16 }
func isZWJ(r rune) bool  { return r == zwj }
func isKeycapMark(r rune) bool {
	return r == keycapCombining
}

// isEmojiPresentationBase reports whether r defaults to emoji presentation
// absent a variation selector, covering the ranges spec.md's
// is_emoji_presentation oracle is described as providing. This is a
// conservative subset of the Unicode emoji-presentation property: the blocks
// that actually occur as "emoji base + modifier/ZWJ" starting points.
func isEmojiPresentationBase(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF:
		return true
	case r >= 0x2600 && r <= 0x27BF:
		return true
	case r == 0x2764, r == 0x2B50, r == 0x2B55:
		return true
	case isRegionalIndicator(r):
		return true
	}
	return false
}
