package textutil

import "github.com/mattn/go-runewidth"

const ellipsis = "…"

// DisplayWidth reports the number of terminal cells text occupies.
func DisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// Truncate shortens text to at most width cells, marking the cut with an
// ellipsis. Wide runes are never split.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	if width <= runewidth.StringWidth(ellipsis) {
		return runewidth.Truncate(text, width, "")
	}
	return runewidth.Truncate(text, width, ellipsis)
}

// PadRight truncates or pads text with spaces to exactly width cells.
func PadRight(text string, width int) string {
	return runewidth.FillRight(Truncate(text, width), width)
}

// Fit sanitizes text and fits it to width cells, the form every rendered
// name goes through.
func Fit(text string, width int) string {
	return PadRight(SanitizeTerminalText(text), width)
}
