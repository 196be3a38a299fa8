package fs

import (
	"path/filepath"
	"strings"
	"time"
)

// Entry is one book in the library: a plain-text file plus the metadata the
// list screens display.
type Entry struct {
	Name     string
	Path     string
	Size     int64
	Modified time.Time
	Encoding Encoding
}

// Title is the display name of the book: the file name without its extension.
func (e Entry) Title() string {
	return strings.TrimSuffix(e.Name, filepath.Ext(e.Name))
}

// IsHidden reports whether the entry should be treated as hidden.
func (e Entry) IsHidden() bool {
	return IsHidden(e.Path, e.Name)
}
