package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "positions.json")

	first, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if err := first.Set("pos_alpha.txt", 1234); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := first.Set("pos_beta.txt", 99); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := first.Set("pos_alpha.txt", 2048); err != nil {
		t.Fatalf("overwrite Set: %v", err)
	}

	second, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile reload: %v", err)
	}
	v, ok, err := second.Get("pos_alpha.txt")
	if err != nil || !ok || v != 2048 {
		t.Fatalf("Get(pos_alpha.txt) = (%d, %v, %v), want (2048, true, nil)", v, ok, err)
	}
	v, ok, _ = second.Get("pos_beta.txt")
	if !ok || v != 99 {
		t.Fatalf("Get(pos_beta.txt) = (%d, %v), want (99, true)", v, ok)
	}
	if _, ok, _ := second.Get("pos_gamma.txt"); ok {
		t.Fatalf("Get found a key that was never set")
	}
}

func TestFileMissingStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "positions.json")

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile on missing path: %v", err)
	}
	if _, ok, _ := f.Get("anything"); ok {
		t.Fatalf("empty store reported a value")
	}

	// First Set creates the parent directory.
	if err := f.Set("pos_x", 7); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("store file not written: %v", err)
	}
}

func TestFileCorruptStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "positions.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile on corrupt file: %v", err)
	}
	if _, ok, _ := f.Get("pos_x"); ok {
		t.Fatalf("corrupt store produced a value")
	}

	// The store recovers on the next write.
	if err := f.Set("pos_x", 5); err != nil {
		t.Fatalf("Set after corruption: %v", err)
	}
	reloaded, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile reload: %v", err)
	}
	if v, ok, _ := reloaded.Get("pos_x"); !ok || v != 5 {
		t.Fatalf("Get after recovery = (%d, %v), want (5, true)", v, ok)
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	if _, ok, _ := m.Get("pos_x"); ok {
		t.Fatalf("fresh memory store reported a value")
	}
	if err := m.Set("pos_x", -12); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := m.Get("pos_x")
	if err != nil || !ok || v != -12 {
		t.Fatalf("Get = (%d, %v, %v), want (-12, true, nil)", v, ok, err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
