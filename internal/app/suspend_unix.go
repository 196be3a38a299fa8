//go:build !windows

package app

import (
	"syscall"

	"github.com/gdamore/tcell/v2"
)

func (app *Application) suspendToShell() {
	// Return terminal control to the shell before stopping the process.
	_ = app.screen.Suspend()
	// Stop only this process; signalling the whole group would also stop
	// the shell that launched rbook and break job control like `fg`.
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)
}

func (app *Application) resumeAfterStop() bool {
	if err := app.screen.Resume(); err != nil {
		return false
	}
	// Re-enable mouse reporting after resume
	app.screen.EnableMouse()
	app.screen.Sync()
	_ = app.screen.PostEvent(tcell.NewEventInterrupt("resume"))
	return true
}
