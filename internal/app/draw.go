package app

import (
	"fmt"

	statepkg "github.com/tailfold/rbook/internal/state"
	renderui "github.com/tailfold/rbook/internal/ui/render"
)

// listStartY is the first list row: the header row and a blank row sit
// above it.
const listStartY = 2

func (app *Application) render() {
	app.renderer.Clear()

	if app.state.HelpVisible {
		app.renderer.DrawHelpOverlay(helpSections())
		app.renderer.Show()
		return
	}

	switch app.state.Screen {
	case statepkg.ScreenReading:
		if app.reading != nil {
			app.reading.Draw()
		}
	case statepkg.ScreenRecent:
		app.drawRecent()
	default:
		app.drawLibrary()
	}

	app.renderer.Show()
}

func (app *Application) drawLibrary() {
	w, _ := app.renderer.Size()
	theme := app.renderer.Theme()

	app.renderer.FillRow(0, 0, w, theme.HeaderStyle())
	app.renderer.DrawText(1, 0, w-2, "rbook", theme.HeaderStyle())
	count := fmt.Sprintf("%d books", len(app.books))
	if len(app.books) == 1 {
		count = "1 book"
	}
	app.renderer.DrawTextRight(w-1, 0, 1, count, theme.HeaderStyle())

	if len(app.books) == 0 {
		msg := "No books found in " + app.cfg.BooksDir
		app.renderer.DrawText(1, listStartY, w-2, msg, theme.DimStyle())
	}

	app.library.DrawFooterHint("Enter read · Tab recent · r rescan · ? help", -1, -1)
	app.library.Draw()
}

func (app *Application) drawRecent() {
	w, _ := app.renderer.Size()
	theme := app.renderer.Theme()

	app.renderer.FillRow(0, 0, w, theme.HeaderStyle())
	app.renderer.DrawText(1, 0, w-2, "rbook", theme.HeaderStyle())
	app.renderer.DrawTextRight(w-1, 0, 1, "recent", theme.HeaderStyle())

	if app.hist.Len() == 0 {
		app.renderer.DrawText(1, listStartY, w-2, "Nothing read yet", theme.DimStyle())
	}

	app.recent.DrawFooterHint("Enter resume · Tab library · Esc back", -1, -1)
	app.recent.Draw()
}

func helpSections() []renderui.HelpSection {
	return []renderui.HelpSection{
		{
			Title: "Library & Recent",
			Entries: []renderui.HelpEntry{
				{Keys: "↑/↓", Desc: "Move selection"},
				{Keys: "←/→", Desc: "Turn list pages"},
				{Keys: "Enter", Desc: "Open the selected book"},
				{Keys: "Tab", Desc: "Switch between library and recent"},
				{Keys: "r", Desc: "Rescan the books directory"},
			},
		},
		{
			Title: "Reading",
			Entries: []renderui.HelpEntry{
				{Keys: "↓/→/PgDn", Desc: "Next page"},
				{Keys: "↑/←/PgUp", Desc: "Previous page"},
				{Keys: "0-9 then ↵", Desc: "Go to a page"},
				{Keys: "g", Desc: "Back to the first page"},
				{Keys: "Esc", Desc: "Close the book"},
			},
		},
		{
			Title: "Application",
			Entries: []renderui.HelpEntry{
				{Keys: "?", Desc: "Toggle this help"},
				{Keys: "Ctrl+Z", Desc: "Suspend to the shell"},
				{Keys: "q or Ctrl+C", Desc: "Quit"},
			},
		},
	}
}
