package textutil

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// RuneDisplayWidth reports the terminal column width of a single rune,
// never less than 1 so cursor math cannot stall on zero-width input.
func RuneDisplayWidth(ru rune) int {
	w := runewidth.RuneWidth(ru)
	if w < 1 {
		return 1
	}
	return w
}

// DisplayWidth reports the printable width of text. Widths are computed per
// grapheme cluster, so ZWJ emoji sequences and variation selectors count as
// one glyph rather than a sum of their runes.
func DisplayWidth(text string) int {
	return uniseg.StringWidth(text)
}

// Truncate shortens text to at most width columns, appending an ellipsis
// when anything was cut. Width below 2 returns the bare cut.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if DisplayWidth(text) <= width {
		return text
	}
	if width < 2 {
		return runewidth.Truncate(text, width, "")
	}
	return runewidth.Truncate(text, width, "…")
}
