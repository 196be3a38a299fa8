// Package menu implements a paginated selection list: a page/selection
// state machine driven by navigation operations, drawn one slot per
// visible item through a pluggable renderer. It holds no item data itself;
// labels come from an ItemSource and cells are painted through a Surface,
// so the same component backs every list screen in the application.
package menu

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// ErrInvalidConfig reports an unusable menu configuration.
var ErrInvalidConfig = errors.New("invalid menu configuration")

// Surface is the drawing capability the menu needs. *render.Renderer
// satisfies it.
type Surface interface {
	Size() (int, int)
	DrawRect(x, y, w, h int, style tcell.Style, filled bool)
	DrawText(x, y, maxWidth int, text string, style tcell.Style) int
	MeasureTextWidth(text string) int
}

// ItemSource supplies item labels by absolute index. Marked items are
// rendered emphasized by the default slot renderer (a checked setting, the
// currently open book).
type ItemSource interface {
	Item(index int) (label string, marked bool)
}

// Slot describes one visible list position handed to the slot renderer.
type Slot struct {
	Index     int // position within the page
	ItemIndex int // absolute item index
	X, Y      int
	Width     int
	Height    int
	Selected  bool
}

// SlotRenderer draws one visible item. Supplying one in Config replaces
// the default label-and-selection-bar rendering.
type SlotRenderer func(s Surface, slot Slot)

// Button is a navigation input already mapped from the raw key event.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonUp
	ButtonDown
)

// Config fixes the menu's geometry and styling. Negative hint coordinates
// mean automatic placement (page hint bottom-right, footer bottom-left).
type Config struct {
	StartY       int
	ItemHeight   int
	ItemsPerPage int
	Width        int // 0 means full screen width

	ShowPageHint bool
	PageHintX    int
	PageHintY    int

	BaseStyle     tcell.Style
	SelectedStyle tcell.Style
	HintStyle     tcell.Style

	Render SlotRenderer
}

// DefaultConfig returns the standard list layout.
func DefaultConfig() Config {
	return Config{
		StartY:       1,
		ItemHeight:   1,
		ItemsPerPage: 10,
		ShowPageHint: true,
		PageHintX:    -1,
		PageHintY:    -1,
	}
}

// Menu is the paginated selection state machine. Construct with New; a
// Menu belongs to one screen and is not safe for concurrent use.
//
// Invariant after every navigation operation: currentPage equals
// selectedIndex divided by itemsPerPage. SetTotalCount is the one reset
// that may leave the view on page 0 with the selection elsewhere; the next
// navigation re-establishes the invariant.
type Menu struct {
	surface Surface
	items   ItemSource
	cfg     Config
	render  SlotRenderer

	totalCount    int
	itemsPerPage  int
	totalPages    int
	currentPage   int
	selectedIndex int
}

// New builds a menu over the given surface and item source. The surface
// may be nil for a headless menu (drawing becomes a no-op); the item
// source must not be.
func New(surface Surface, items ItemSource, cfg Config) (*Menu, error) {
	if items == nil {
		return nil, fmt.Errorf("%w: item source required", ErrInvalidConfig)
	}
	if cfg.ItemsPerPage <= 0 {
		return nil, fmt.Errorf("%w: items per page must be positive, got %d", ErrInvalidConfig, cfg.ItemsPerPage)
	}
	if cfg.ItemHeight <= 0 {
		cfg.ItemHeight = 1
	}
	if cfg.StartY < 0 {
		cfg.StartY = 0
	}

	m := &Menu{
		surface:      surface,
		items:        items,
		cfg:          cfg,
		itemsPerPage: cfg.ItemsPerPage,
		totalPages:   1,
	}
	m.render = cfg.Render
	if m.render == nil {
		m.render = m.defaultSlot
	}
	return m, nil
}

func totalPagesFor(totalCount, itemsPerPage int) int {
	if itemsPerPage <= 0 {
		return 1
	}
	pages := (totalCount + itemsPerPage - 1) / itemsPerPage
	if pages < 1 {
		pages = 1
	}
	return pages
}

// SetTotalCount resizes the list. The view resets to the first page; the
// selection is clamped only when it falls out of range, so re-entering a
// screen keeps its selection when the list did not shrink past it.
func (m *Menu) SetTotalCount(n int) {
	if n < 0 {
		n = 0
	}
	m.totalCount = n
	m.totalPages = totalPagesFor(n, m.itemsPerPage)
	m.currentPage = 0

	if m.selectedIndex >= n {
		if n > 0 {
			m.selectedIndex = n - 1
		} else {
			m.selectedIndex = 0
		}
	}
}

// TotalCount returns the configured item count.
func (m *Menu) TotalCount() int { return m.totalCount }

// SetSelectedIndex selects an absolute item, turning to its page. Fails on
// an out-of-range index.
func (m *Menu) SetSelectedIndex(index int) bool {
	if index < 0 || index >= m.totalCount {
		return false
	}
	m.selectedIndex = index
	m.currentPage = index / m.itemsPerPage
	return true
}

// SelectedIndex returns the current absolute selection.
func (m *Menu) SelectedIndex() int { return m.selectedIndex }

// CurrentPage returns the 1-based page number for display.
func (m *Menu) CurrentPage() int { return m.currentPage + 1 }

// TotalPages returns the page count, at least 1 even for an empty list.
func (m *Menu) TotalPages() int { return m.totalPages }

// ItemsPerPage returns the page capacity.
func (m *Menu) ItemsPerPage() int { return m.itemsPerPage }

// GotoPage turns to a 1-based page and selects its first item. Fails when
// the page is out of range or the list is empty.
func (m *Menu) GotoPage(page int) bool {
	if m.totalCount == 0 {
		return false
	}
	target := page - 1
	if target < 0 || target >= m.totalPages {
		return false
	}

	m.currentPage = target
	m.selectedIndex = m.clampToCount(target * m.itemsPerPage)
	return true
}

// PrevPage turns back one page, selecting its first item. Fails on the
// first page.
func (m *Menu) PrevPage() bool {
	if m.totalCount == 0 || m.currentPage <= 0 {
		return false
	}
	m.currentPage--
	m.selectedIndex = m.clampToCount(m.currentPage * m.itemsPerPage)
	return true
}

// NextPage turns forward one page, selecting its first item. Fails on the
// last page.
func (m *Menu) NextPage() bool {
	if m.totalCount == 0 || m.currentPage >= m.totalPages-1 {
		return false
	}
	m.currentPage++
	m.selectedIndex = m.clampToCount(m.currentPage * m.itemsPerPage)
	return true
}

// MoveSelection shifts the selection by delta, clamped to the list bounds,
// turning pages as the selection crosses them. It reports whether the
// selection actually moved; hitting an edge is a no-op returning false.
func (m *Menu) MoveSelection(delta int) bool {
	if m.totalCount == 0 {
		return false
	}

	oldIndex := m.selectedIndex
	newIndex := oldIndex + delta
	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex >= m.totalCount {
		newIndex = m.totalCount - 1
	}

	m.selectedIndex = newIndex
	m.currentPage = newIndex / m.itemsPerPage
	return newIndex != oldIndex
}

// HandleButton applies one navigation input: left/right turn pages,
// up/down move the selection. Returns whether any state changed.
func (m *Menu) HandleButton(btn Button) bool {
	switch btn {
	case ButtonLeft:
		return m.PrevPage()
	case ButtonRight:
		return m.NextPage()
	case ButtonUp:
		return m.MoveSelection(-1)
	case ButtonDown:
		return m.MoveSelection(1)
	default:
		return false
	}
}

func (m *Menu) clampToCount(index int) int {
	if index >= m.totalCount {
		index = m.totalCount - 1
	}
	if index < 0 {
		index = 0
	}
	return index
}

// Draw renders the current page: one slot per visible item, then the page
// hint when enabled. A nil surface draws nothing.
func (m *Menu) Draw() {
	if m.surface == nil {
		return
	}

	screenW, _ := m.surface.Size()
	width := m.cfg.Width
	if width <= 0 || width > screenW {
		width = screenW
	}
	x := (screenW - width) / 2

	pageStart := m.currentPage * m.itemsPerPage
	pageEnd := pageStart + m.itemsPerPage
	if pageEnd > m.totalCount {
		pageEnd = m.totalCount
	}

	for i := 0; i < pageEnd-pageStart; i++ {
		itemIndex := pageStart + i
		m.render(m.surface, Slot{
			Index:     i,
			ItemIndex: itemIndex,
			X:         x,
			Y:         m.cfg.StartY + i*m.cfg.ItemHeight,
			Width:     width,
			Height:    m.cfg.ItemHeight,
			Selected:  itemIndex == m.selectedIndex,
		})
	}

	if m.cfg.ShowPageHint {
		m.DrawPageHint()
	}
}

// defaultSlot draws a selection bar plus the item label; marked items are
// emphasized.
func (m *Menu) defaultSlot(s Surface, slot Slot) {
	label, marked := m.items.Item(slot.ItemIndex)

	style := m.cfg.BaseStyle
	if slot.Selected {
		s.DrawRect(slot.X, slot.Y, slot.Width, slot.Height, m.cfg.SelectedStyle, true)
		style = m.cfg.SelectedStyle
	}
	if marked {
		style = style.Bold(true)
	}

	s.DrawText(slot.X+1, slot.Y, slot.Width-2, label, style)
}

// DrawPageHint draws "current/total" in the hint position. Single-page
// lists draw nothing.
func (m *Menu) DrawPageHint() {
	if m.surface == nil || m.totalPages <= 1 {
		return
	}

	hint := fmt.Sprintf("%d/%d", m.CurrentPage(), m.TotalPages())
	w, h := m.surface.Size()

	x := m.cfg.PageHintX
	y := m.cfg.PageHintY
	if x < 0 {
		x = w - m.surface.MeasureTextWidth(hint) - 2
	}
	if y < 0 {
		y = h - 2
	}

	m.surface.DrawText(x, y, w-x, hint, m.cfg.HintStyle)
}

// DrawFooterHint draws a key-help line, defaulting to the bottom-left
// corner when given negative coordinates.
func (m *Menu) DrawFooterHint(text string, x, y int) {
	if m.surface == nil || text == "" {
		return
	}

	w, h := m.surface.Size()
	if x < 0 {
		x = 1
	}
	if y < 0 {
		y = h - 2
	}

	m.surface.DrawText(x, y, w-x, text, m.cfg.HintStyle)
}
