package app

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tailfold/rbook/internal/config"
	"github.com/tailfold/rbook/internal/fs"
	"github.com/tailfold/rbook/internal/history"
	"github.com/tailfold/rbook/internal/menu"
	statepkg "github.com/tailfold/rbook/internal/state"
	"github.com/tailfold/rbook/internal/store"
	inputui "github.com/tailfold/rbook/internal/ui/input"
	readingui "github.com/tailfold/rbook/internal/ui/reading"
	renderui "github.com/tailfold/rbook/internal/ui/render"
)

// Application represents the running app.
type Application struct {
	screen   tcell.Screen
	cfg      *config.Config
	state    *statepkg.AppState
	renderer *renderui.Renderer
	input    *inputui.InputHandler
	actionCh chan statepkg.Action

	kv   store.KV
	hist *history.List

	books   []fs.Entry
	library *menu.Menu
	recent  *menu.Menu
	reading *readingui.Screen

	shouldQuit    bool
	lastClickKey  string
	lastClickTime time.Time
}

// Close saves the reading position and history, then releases the terminal.
func (app *Application) Close() error {
	app.closeReading()
	err := app.kv.Close()
	close(app.actionCh)
	app.screen.Fini()
	return err
}
