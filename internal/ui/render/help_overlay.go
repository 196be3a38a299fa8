package render

import (
	"fmt"
	"strings"

	"github.com/tailfold/rbook/internal/textutil"
)

// HelpEntry is one key binding line in the help overlay.
type HelpEntry struct {
	Keys string
	Desc string
}

// HelpSection groups related bindings under a title.
type HelpSection struct {
	Title   string
	Entries []HelpEntry
}

func formatHelpEntry(entry HelpEntry) string {
	key := textutil.SanitizeTerminalText(entry.Keys)
	desc := textutil.SanitizeTerminalText(entry.Desc)
	return fmt.Sprintf("  %-14s %s", key, desc)
}

func helpOverlayLines(sections []HelpSection) []string {
	lines := make([]string, 0, 32)
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.Title)
		for _, entry := range section.Entries {
			lines = append(lines, formatHelpEntry(entry))
		}
	}
	return lines
}

// DrawHelpOverlay paints a full-screen key reference over whatever was on
// screen. Callers supply the sections; the renderer only lays them out.
func (r *Renderer) DrawHelpOverlay(sections []HelpSection) {
	if r.screen == nil {
		return
	}
	w, h := r.screen.Size()

	baseStyle := r.theme.BaseStyle()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.screen.SetContent(x, y, ' ', nil, baseStyle)
		}
	}

	title := " Help "
	headerStyle := r.theme.FooterStyle().Bold(true)
	titleStart := 0
	titleWidth := r.MeasureTextWidth(title)
	if w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	row := 2
	maxRow := h - 1
	for _, line := range helpOverlayLines(sections) {
		if row >= maxRow {
			break
		}
		text := strings.TrimRight(line, " ")
		text = r.TruncateToWidth(text, w-4)
		r.drawTextLine(2, row, w-4, text, baseStyle)
		row++
	}

	footer := "? toggle · Esc/q close"
	if h > 0 {
		r.drawTextLine(0, h-1, w, r.TruncateToWidth(footer, w), headerStyle)
	}
}
