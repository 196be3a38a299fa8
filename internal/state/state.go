package state

// Screen identifies which view owns the next key press.
type Screen int

const (
	ScreenLibrary Screen = iota
	ScreenRecent
	ScreenReading
)

func (s Screen) String() string {
	switch s {
	case ScreenLibrary:
		return "library"
	case ScreenRecent:
		return "recent"
	case ScreenReading:
		return "reading"
	default:
		return "unknown"
	}
}

// AppState carries the flags the input handler routes keys on. The
// application mutates it from the processing loop only.
type AppState struct {
	Screen      Screen
	HelpVisible bool
}
