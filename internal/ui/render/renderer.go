package render

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Renderer wraps the terminal screen with the drawing primitives the UI
// components share: rect fills, clipped text, width measurement. Screens
// never touch the tcell surface directly.
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// Theme returns the active color theme.
func (r *Renderer) Theme() ColorTheme { return r.theme }

// Size returns the screen dimensions in cells.
func (r *Renderer) Size() (int, int) {
	if r.screen == nil {
		return 0, 0
	}
	return r.screen.Size()
}

// Clear wipes the whole screen to the default style.
func (r *Renderer) Clear() {
	if r.screen != nil {
		r.screen.Clear()
	}
}

// Show flushes pending drawing to the terminal.
func (r *Renderer) Show() {
	if r.screen != nil {
		r.screen.Show()
	}
}

// DrawRect draws a w×h rectangle at (x, y). Filled rects paint every cell
// with the style's background; unfilled ones paint only the border cells.
// Off-screen parts are clipped.
func (r *Renderer) DrawRect(x, y, w, h int, style tcell.Style, filled bool) {
	if r.screen == nil || w <= 0 || h <= 0 {
		return
	}
	sw, sh := r.screen.Size()

	for row := y; row < y+h; row++ {
		if row < 0 || row >= sh {
			continue
		}
		for col := x; col < x+w; col++ {
			if col < 0 || col >= sw {
				continue
			}
			if !filled && row != y && row != y+h-1 && col != x && col != x+w-1 {
				continue
			}
			r.screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

// FillRow paints cells [x, endX) on row y with the style.
func (r *Renderer) FillRow(x, y, endX int, style tcell.Style) {
	if r.screen == nil {
		return
	}
	for ; x < endX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// DrawText draws text at (x, y) clipped to maxWidth cells, returning the x
// position after the last drawn cell. Wide characters advance by their
// display width.
func (r *Renderer) DrawText(x, y, maxWidth int, text string, style tcell.Style) int {
	if r.screen == nil {
		return x
	}
	return r.drawTextLine(x, y, maxWidth, text, style)
}

// DrawTextRight draws text ending at endX on row y, clipped on the left to
// minX. Returns the x position the text starts at.
func (r *Renderer) DrawTextRight(endX, y, minX int, text string, style tcell.Style) int {
	if r.screen == nil {
		return endX
	}
	startX := endX - r.MeasureTextWidth(text)
	if startX < minX {
		startX = minX
	}
	r.drawTextLine(startX, y, endX-startX, text, style)
	return startX
}
