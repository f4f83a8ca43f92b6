// Package textutil keeps untrusted names safe and aligned on a terminal.
package textutil

import "strings"

// Entry names come straight from the filesystem, so bidi overrides and
// zero-width runes are shown as labels instead of reordering the row.
var invisibleRuneLabels = map[rune]string{
	0x00AD: "⟪SHY⟫",
	0x061C: "⟪ALM⟫",
	0x200B: "⟪ZWSP⟫",
	0x200C: "⟪ZWNJ⟫",
	0x200D: "⟪ZWJ⟫",
	0x200E: "⟪LRM⟫",
	0x200F: "⟪RLM⟫",
	0x2028: "⟪LSEP⟫",
	0x2029: "⟪PSEP⟫",
	0x202A: "⟪LRE⟫",
	0x202B: "⟪RLE⟫",
	0x202C: "⟪PDF⟫",
	0x202D: "⟪LRO⟫",
	0x202E: "⟪RLO⟫",
	0x2060: "⟪WJ⟫",
	0x2066: "⟪LRI⟫",
	0x2067: "⟪RLI⟫",
	0x2068: "⟪FSI⟫",
	0x2069: "⟪PDI⟫",
	0xFEFF: "⟪BOM⟫",
}

// SanitizeTerminalText returns text with control characters and invisible
// formatting runes replaced, so a file name cannot emit escape sequences or
// reorder the surrounding row. Safe input is returned unchanged.
func SanitizeTerminalText(text string) string {
	if strings.IndexFunc(text, needsReplacement) < 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if label, ok := invisibleRuneLabels[r]; ok {
			b.WriteString(label)
			continue
		}
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteByte(' ')
		case isControl(r):
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HasInvisibleRunes reports whether text contains bidi or zero-width runes.
func HasInvisibleRunes(text string) bool {
	return strings.IndexFunc(text, func(r rune) bool {
		_, ok := invisibleRuneLabels[r]
		return ok
	}) >= 0
}

func needsReplacement(r rune) bool {
	if _, ok := invisibleRuneLabels[r]; ok {
		return true
	}
	return isControl(r)
}

func isControl(r rune) bool {
	return (r >= 0 && r < 0x20) || r == 0x7f
}
