package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

func (r *Renderer) cachedRuneWidth(ru rune) int {
	if ru >= 0 && ru < 128 {
		r.runeWidthCacheMu.RLock()
		width := r.runeWidthCache[ru]
		r.runeWidthCacheMu.RUnlock()

		if width == 0 && ru != 0 {
			actualWidth := runewidth.RuneWidth(ru)
			if actualWidth < 0 {
				actualWidth = 0
			}
			r.runeWidthCacheMu.Lock()
			r.runeWidthCache[ru] = actualWidth + 1
			r.runeWidthCacheMu.Unlock()
			return actualWidth
		}
		return width - 1
	}

	if cached, ok := r.runeWidthWide.Load(ru); ok {
		return cached.(int)
	}

	width := runewidth.RuneWidth(ru)
	if width < 0 {
		width = 0
	}
	r.runeWidthWide.Store(ru, width)
	return width
}

// MeasureTextWidth returns the display width of text in terminal cells.
func (r *Renderer) MeasureTextWidth(text string) int {
	width := 0
	for _, ru := range text {
		runeWidth := r.cachedRuneWidth(ru)
		if runeWidth < 0 {
			runeWidth = 0
		}
		width += runeWidth
	}
	return width
}

// TruncateToWidth trims text so its display width fits maxWidth, appending
// an ellipsis when anything was cut.
func (r *Renderer) TruncateToWidth(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}

	if r.MeasureTextWidth(text) <= maxWidth {
		return text
	}

	const ellipsis = "…"
	ellipsisWidth := r.cachedRuneWidth([]rune(ellipsis)[0])
	if ellipsisWidth <= 0 {
		ellipsisWidth = 1
	}
	if maxWidth <= ellipsisWidth {
		return ellipsis
	}

	available := maxWidth - ellipsisWidth
	var builder strings.Builder
	currentWidth := 0

	for _, ru := range text {
		runeWidth := r.cachedRuneWidth(ru)
		if runeWidth < 0 {
			runeWidth = 0
		}
		if currentWidth+runeWidth > available {
			break
		}
		builder.WriteRune(ru)
		currentWidth += runeWidth
	}

	builder.WriteString(ellipsis)
	return builder.String()
}

func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	i := 0

	for i < len(runes) {
		if x-startX >= maxWidth {
			break
		}

		mainc := runes[i]
		i++

		var combc []rune
		for i < len(runes) && r.cachedRuneWidth(runes[i]) == 0 && runes[i] >= 0x0300 {
			combc = append(combc, runes[i])
			i++
		}

		r.screen.SetContent(x, y, mainc, combc, style)

		w := r.cachedRuneWidth(mainc)
		if w < 0 {
			w = 0
		}
		x += w
	}

	return x
}

