package app

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/tailfold/rbook/internal/config"
	"github.com/tailfold/rbook/internal/fs"
	"github.com/tailfold/rbook/internal/history"
	"github.com/tailfold/rbook/internal/menu"
	statepkg "github.com/tailfold/rbook/internal/state"
	"github.com/tailfold/rbook/internal/store"
	"github.com/tailfold/rbook/internal/ui/input"
	renderui "github.com/tailfold/rbook/internal/ui/render"
)

const doubleClickThreshold = 300 * time.Millisecond

// NewApplication opens the terminal screen and builds the application on it.
func NewApplication(cfg *config.Config) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	// Parse mouse sequences so modified clicks don't leak as key events.
	screen.EnableMouse()

	app, err := newApplication(cfg, screen)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return app, nil
}

// newApplication wires the application over an existing screen. Tests drive
// it with a simulation screen.
func newApplication(cfg *config.Config, screen tcell.Screen) (*Application, error) {
	books, err := fs.ScanBooks(cfg.BooksDir)
	if err != nil {
		return nil, fmt.Errorf("scan books dir: %w", err)
	}

	hist := history.NewList(cfg.HistorySize)
	if err := hist.Load(cfg.HistoryPath()); err != nil {
		log.Warn().Err(err).Str("path", cfg.HistoryPath()).Msg("history not loaded")
	}

	state := &statepkg.AppState{Screen: statepkg.ScreenLibrary}
	actionCh := make(chan statepkg.Action, 10)
	renderer := renderui.NewRenderer(screen)
	inputHandler := input.NewInputHandler(actionCh)

	app := &Application{
		screen:   screen,
		cfg:      cfg,
		state:    state,
		renderer: renderer,
		input:    inputHandler,
		actionCh: actionCh,
		kv:       openStore(cfg),
		hist:     hist,
		books:    books,
	}

	theme := renderer.Theme()
	menuCfg := menu.DefaultConfig()
	menuCfg.StartY = listStartY
	menuCfg.ItemsPerPage = cfg.ItemsPerPage
	menuCfg.BaseStyle = theme.BaseStyle()
	menuCfg.SelectedStyle = theme.SelectionStyle()
	menuCfg.HintStyle = theme.FooterStyle()

	library, err := menu.New(renderer, bookSource{app: app}, menuCfg)
	if err != nil {
		return nil, err
	}
	recent, err := menu.New(renderer, recentSource{app: app}, menuCfg)
	if err != nil {
		return nil, err
	}
	library.SetTotalCount(len(books))
	recent.SetTotalCount(hist.Len())
	app.library = library
	app.recent = recent

	inputHandler.SetState(state)
	return app, nil
}

// openStore picks the position store: Redis when configured, the positions
// file otherwise, process memory when neither can be opened.
func openStore(cfg *config.Config) store.KV {
	if cfg.RedisURL != "" {
		kv, err := store.NewRedis(cfg.RedisURL)
		if err == nil {
			return kv
		}
		log.Warn().Err(err).Msg("redis store unavailable, using positions file")
	}
	kv, err := store.NewFile(cfg.PositionsPath())
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.PositionsPath()).Msg("positions file unavailable, positions will not persist")
		return store.NewMemory()
	}
	return kv
}

func (app *Application) Run() {
	defer app.screen.Fini()

	app.render()
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			eventChan <- app.screen.PollEvent()
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	for !app.shouldQuit {
		if renderPending {
			app.render()
			renderPending = false
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventMouse:
		if !app.handleMouse(ev) {
			app.shouldQuit = true
		}
		return true
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

// handleMouse maps wheel and primary-click input for the active screen.
func (app *Application) handleMouse(ev *tcell.EventMouse) bool {
	if app.state == nil || app.state.HelpVisible {
		return true
	}
	reading := app.state.Screen == statepkg.ScreenReading

	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		if reading {
			app.actionCh <- statepkg.PrevPageAction{}
		} else {
			app.actionCh <- statepkg.NavigateUpAction{}
		}
		return true
	case buttons&tcell.WheelDown != 0:
		if reading {
			app.actionCh <- statepkg.NextPageAction{}
		} else {
			app.actionCh <- statepkg.NavigateDownAction{}
		}
		return true
	}

	if buttons&tcell.Button1 == 0 {
		return true
	}

	x, y := ev.Position()
	if reading {
		// Tap zones: the left third turns back, the rest turns forward.
		w, _ := app.renderer.Size()
		if x < w/3 {
			app.actionCh <- statepkg.PrevPageAction{}
		} else {
			app.actionCh <- statepkg.NextPageAction{}
		}
		return true
	}

	app.handleListClick(y)
	return true
}

// handleListClick selects the clicked row; a double click opens it.
func (app *Application) handleListClick(y int) {
	m := app.activeMenu()
	if m == nil {
		return
	}
	_, h := app.renderer.Size()
	if y >= h-2 { // footer rows
		return
	}
	row := y - listStartY
	if row < 0 || row >= m.ItemsPerPage() {
		return
	}
	idx := (m.CurrentPage()-1)*m.ItemsPerPage() + row
	if idx >= m.TotalCount() {
		return
	}

	clickKey := fmt.Sprintf("%s-%d", app.state.Screen, idx)
	doubleClick := app.lastClickKey == clickKey && time.Since(app.lastClickTime) <= doubleClickThreshold
	app.lastClickKey = clickKey
	app.lastClickTime = time.Now()

	m.SetSelectedIndex(idx)
	if doubleClick {
		app.actionCh <- statepkg.SelectAction{}
	}
}

func (app *Application) activeMenu() *menu.Menu {
	switch app.state.Screen {
	case statepkg.ScreenLibrary:
		return app.library
	case statepkg.ScreenRecent:
		return app.recent
	default:
		return nil
	}
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}
