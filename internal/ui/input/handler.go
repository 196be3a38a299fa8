package input

import (
	"github.com/gdamore/tcell/v2"

	statepkg "github.com/tailfold/rbook/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for screen routing
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for screen routing
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

// processKeyEvent handles keyboard input
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	reading := ih.state != nil && ih.state.Screen == statepkg.ScreenReading
	helpVisible := ih.state != nil && ih.state.HelpVisible

	if helpVisible {
		switch ev.Key() {
		case tcell.KeyCtrlC:
			ih.actionChan <- statepkg.QuitAction{}
			return false
		case tcell.KeyEscape:
			ih.actionChan <- statepkg.HelpHideAction{}
			return true
		case tcell.KeyRune:
			r := ev.Rune()
			if r == '?' || r == 'q' || r == 'Q' {
				ih.actionChan <- statepkg.HelpHideAction{}
			}
			return true
		default:
			return true
		}
	}

	switch ev.Key() {
	case tcell.KeyCtrlC:
		ih.actionChan <- statepkg.QuitAction{}
		return false

	case tcell.KeyCtrlZ:
		ih.actionChan <- statepkg.SuspendAction{}
		return true

	case tcell.KeyEscape:
		ih.actionChan <- statepkg.BackAction{}
		return true

	case tcell.KeyUp:
		if reading {
			ih.actionChan <- statepkg.PrevPageAction{}
		} else {
			ih.actionChan <- statepkg.NavigateUpAction{}
		}
		return true

	case tcell.KeyDown:
		if reading {
			ih.actionChan <- statepkg.NextPageAction{}
		} else {
			ih.actionChan <- statepkg.NavigateDownAction{}
		}
		return true

	case tcell.KeyLeft, tcell.KeyPgUp:
		ih.actionChan <- statepkg.PrevPageAction{}
		return true

	case tcell.KeyRight, tcell.KeyPgDn:
		ih.actionChan <- statepkg.NextPageAction{}
		return true

	case tcell.KeyEnter:
		ih.actionChan <- statepkg.SelectAction{}
		return true

	case tcell.KeyTab:
		if !reading {
			ih.actionChan <- statepkg.SwitchListAction{}
		}
		return true

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if reading {
			ih.actionChan <- statepkg.JumpBackspaceAction{}
		}
		return true

	case tcell.KeyRune:
		return ih.processRune(ev.Rune(), reading)

	default:
		return true
	}
}

// processRune handles printable keys
func (ih *InputHandler) processRune(r rune, reading bool) bool {
	if reading && r >= '0' && r <= '9' {
		ih.actionChan <- statepkg.JumpDigitAction{Digit: r}
		return true
	}

	switch r {
	case 'q', 'Q':
		ih.actionChan <- statepkg.QuitAction{}
		return false

	case 'g':
		if reading {
			ih.actionChan <- statepkg.SeekStartAction{}
		}
		return true

	case 'r', 'R':
		if !reading {
			ih.actionChan <- statepkg.RefreshAction{}
		}
		return true

	case '?':
		ih.actionChan <- statepkg.HelpToggleAction{}
		return true
	}

	return true
}
