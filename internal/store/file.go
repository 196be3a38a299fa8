package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// File is a KV persisted as one JSON object on disk. Every Set rewrites the
// file, mirroring the commit-per-save behavior expected of position storage
// on a device that can lose power any time.
type File struct {
	path   string
	values map[string]int32
}

// NewFile loads the store at path, starting empty when the file does not
// exist yet. A corrupt file is logged and treated as empty rather than
// blocking startup; saved positions degrade to "start from the beginning".
func NewFile(path string) (*File, error) {
	f := &File{
		path:   path,
		values: make(map[string]int32),
	}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return f, nil
	case err != nil:
		return nil, fmt.Errorf("load position store %s: %w", path, err)
	}

	if err := json.Unmarshal(raw, &f.values); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("position store corrupt; starting empty")
		f.values = make(map[string]int32)
	}
	return f, nil
}

func (f *File) Set(key string, value int32) error {
	f.values[key] = value
	return f.persist()
}

func (f *File) Get(key string) (int32, bool, error) {
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *File) Close() error { return nil }

func (f *File) persist() error {
	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store dir %s: %w", dir, err)
		}
	}

	raw, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode position store: %w", err)
	}

	if err := os.WriteFile(f.path, raw, 0o644); err != nil {
		return fmt.Errorf("write position store %s: %w", f.path, err)
	}
	return nil
}
