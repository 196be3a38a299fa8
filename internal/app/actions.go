package app

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/tailfold/rbook/internal/fs"
	"github.com/tailfold/rbook/internal/menu"
	statepkg "github.com/tailfold/rbook/internal/state"
	"github.com/tailfold/rbook/internal/textutil"
	readingui "github.com/tailfold/rbook/internal/ui/reading"
)

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	case statepkg.ResizeAction:
		return true
	case statepkg.HelpToggleAction:
		app.state.HelpVisible = !app.state.HelpVisible
		return true
	case statepkg.HelpHideAction:
		app.state.HelpVisible = false
		return true
	}

	switch app.state.Screen {
	case statepkg.ScreenReading:
		return app.handleReadingAction(action)
	case statepkg.ScreenRecent:
		return app.handleRecentAction(action)
	default:
		return app.handleLibraryAction(action)
	}
}

func (app *Application) handleLibraryAction(action statepkg.Action) bool {
	switch action.(type) {
	case statepkg.NavigateUpAction:
		return app.library.HandleButton(menu.ButtonUp)
	case statepkg.NavigateDownAction:
		return app.library.HandleButton(menu.ButtonDown)
	case statepkg.PrevPageAction:
		return app.library.HandleButton(menu.ButtonLeft)
	case statepkg.NextPageAction:
		return app.library.HandleButton(menu.ButtonRight)
	case statepkg.SelectAction:
		return app.openSelectedBook()
	case statepkg.SwitchListAction:
		app.state.Screen = statepkg.ScreenRecent
		return true
	case statepkg.RefreshAction:
		return app.refreshBooks()
	case statepkg.BackAction:
		app.shouldQuit = true
		return false
	}
	return false
}

func (app *Application) handleRecentAction(action statepkg.Action) bool {
	switch action.(type) {
	case statepkg.NavigateUpAction:
		return app.recent.HandleButton(menu.ButtonUp)
	case statepkg.NavigateDownAction:
		return app.recent.HandleButton(menu.ButtonDown)
	case statepkg.PrevPageAction:
		return app.recent.HandleButton(menu.ButtonLeft)
	case statepkg.NextPageAction:
		return app.recent.HandleButton(menu.ButtonRight)
	case statepkg.SelectAction:
		return app.openRecentBook()
	case statepkg.SwitchListAction, statepkg.BackAction:
		app.state.Screen = statepkg.ScreenLibrary
		return true
	case statepkg.RefreshAction:
		return app.refreshBooks()
	}
	return false
}

func (app *Application) handleReadingAction(action statepkg.Action) bool {
	if app.reading == nil {
		app.state.Screen = statepkg.ScreenLibrary
		return true
	}

	switch act := action.(type) {
	case statepkg.NextPageAction:
		return app.reading.NextPage()
	case statepkg.PrevPageAction:
		return app.reading.PrevPage()
	case statepkg.SeekStartAction:
		return app.reading.SeekToStart()
	case statepkg.JumpDigitAction:
		return app.reading.JumpDigit(act.Digit)
	case statepkg.JumpBackspaceAction:
		return app.reading.JumpBackspace()
	case statepkg.SelectAction:
		if app.reading.JumpCommit() {
			return true
		}
		return app.reading.NextPage()
	case statepkg.BackAction:
		if app.reading.JumpCancel() {
			return true
		}
		app.closeReading()
		return true
	}
	return false
}

func (app *Application) openSelectedBook() bool {
	idx := app.library.SelectedIndex()
	if idx < 0 || idx >= len(app.books) {
		return false
	}
	return app.openBook(app.books[idx])
}

func (app *Application) openRecentBook() bool {
	records := app.hist.Records()
	idx := app.recent.SelectedIndex()
	if idx < 0 || idx >= len(records) {
		return false
	}
	rec := records[idx]
	if app.openBook(fs.Entry{Name: filepath.Base(rec.Path), Path: rec.Path}) {
		return true
	}
	// The file behind the record is gone or unreadable; drop the record.
	if app.hist.Remove(rec.Path) {
		app.recent.SetTotalCount(app.hist.Len())
		app.saveHistory()
		return true
	}
	return false
}

func (app *Application) openBook(entry fs.Entry) bool {
	reading, err := readingui.Open(app.renderer, app.kv, app.hist, entry, app.cfg.MaxChars)
	if err != nil {
		log.Warn().Err(err).Str("book", entry.Name).Msg("book not opened")
		return false
	}
	app.reading = reading
	app.state.Screen = statepkg.ScreenReading
	return true
}

// closeReading saves the open book's position and returns to the library.
// Safe to call with no book open.
func (app *Application) closeReading() {
	if app.reading != nil {
		app.reading.Close()
		app.reading = nil
	}
	app.state.Screen = statepkg.ScreenLibrary
	app.recent.SetTotalCount(app.hist.Len())
	app.saveHistory()
}

func (app *Application) refreshBooks() bool {
	books, err := fs.ScanBooks(app.cfg.BooksDir)
	if err != nil {
		log.Warn().Err(err).Str("dir", app.cfg.BooksDir).Msg("rescan failed")
		return false
	}
	app.books = books
	app.library.SetTotalCount(len(books))
	return true
}

func (app *Application) saveHistory() {
	if err := app.hist.Save(app.cfg.HistoryPath()); err != nil {
		log.Warn().Err(err).Str("path", app.cfg.HistoryPath()).Msg("history not saved")
	}
}

// bookSource feeds the library menu from the scanned book list. Books with a
// history record are marked.
type bookSource struct {
	app *Application
}

func (s bookSource) Item(index int) (string, bool) {
	if index < 0 || index >= len(s.app.books) {
		return "", false
	}
	entry := s.app.books[index]
	label := fmt.Sprintf("%s  %s", entry.Title(), formatSize(entry.Size))
	_, marked := s.app.hist.Lookup(entry.Path)
	return textutil.SanitizeTerminalText(label), marked
}

// recentSource feeds the recent menu from the history list, most recent
// first.
type recentSource struct {
	app *Application
}

func (s recentSource) Item(index int) (string, bool) {
	records := s.app.hist.Records()
	if index < 0 || index >= len(records) {
		return "", false
	}
	rec := records[index]
	label := fmt.Sprintf("%s  %.0f%%", rec.Title, rec.Percent)
	return textutil.SanitizeTerminalText(label), false
}

func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
