package state

// Action is the base interface for everything the event loop processes.
type Action interface{}

// ===== NAVIGATION ACTIONS =====

type NavigateUpAction struct{}
type NavigateDownAction struct{}
type PrevPageAction struct{}
type NextPageAction struct{}
type SelectAction struct{}     // Enter: open the selection, or commit a page jump
type BackAction struct{}       // Escape: cancel a jump, leave a screen
type SwitchListAction struct{} // Tab between the library and recent lists
type RefreshAction struct{}    // rescan the books directory

// ===== READING ACTIONS =====

type JumpDigitAction struct {
	Digit rune
}
type JumpBackspaceAction struct{}
type SeekStartAction struct{}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}
type HelpToggleAction struct{}
type HelpHideAction struct{}

// ===== APPLICATION ACTIONS =====

type QuitAction struct{}
type SuspendAction struct{} // Ctrl+Z: hand the terminal back to the shell
