package book

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tailfold/rbook/internal/fs"
	"github.com/tailfold/rbook/internal/store"
)

type failingKV struct{}

func (failingKV) Set(string, int32) error         { return errors.New("backend down") }
func (failingKV) Get(string) (int32, bool, error) { return 0, false, errors.New("backend down") }
func (failingKV) Close() error                    { return nil }

func TestSaveRestorePositionRoundTrip(t *testing.T) {
	path := writeTemp(t, []byte("0123456789abcdefghij"))
	kv := store.NewMemory()

	r := &Reader{}
	if err := r.Open(path, fs.EncodingAuto); err != nil {
		t.Fatalf("Open: %v", err)
	}

	buf := make([]byte, 64)
	if _, _, err := r.ReadPage(buf, 8); err != nil {
		t.Fatalf("ReadPage: %v", err)
	}
	saved := r.ByteOffset()

	if !r.SavePosition(kv) {
		t.Fatalf("SavePosition = false")
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := &Reader{}
	if err := reopened.Open(path, fs.EncodingAuto); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	if !reopened.RestorePosition(kv) {
		t.Fatalf("RestorePosition = false")
	}
	if reopened.ByteOffset() != saved {
		t.Fatalf("restored offset = %d, want %d", reopened.ByteOffset(), saved)
	}

	chars, n, err := reopened.ReadPage(buf, 8)
	if err != nil || chars == 0 {
		t.Fatalf("ReadPage after restore: %d, %v", chars, err)
	}
	if got := string(buf[:n]); got != "89abcdef" {
		t.Fatalf("page after restore = %q, want %q", got, "89abcdef")
	}
}

func TestSavePositionKeyUsesBasename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "novel.txt")
	if err := os.WriteFile(path, []byte("words"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	kv := store.NewMemory()
	r := &Reader{}
	if err := r.Open(path, fs.EncodingAuto); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	r.Seek(3)
	if !r.SavePosition(kv) {
		t.Fatalf("SavePosition = false")
	}

	v, ok, err := kv.Get("pos_novel.txt")
	if err != nil || !ok || v != 3 {
		t.Fatalf("Get(pos_novel.txt) = (%d, %v, %v), want (3, true, nil)", v, ok, err)
	}
}

func TestSavePositionTruncatesLongNames(t *testing.T) {
	dir := t.TempDir()
	longName := strings.Repeat("a", 60) + ".txt"
	path := filepath.Join(dir, longName)
	if err := os.WriteFile(path, []byte("words"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	kv := store.NewMemory()
	r := &Reader{}
	if err := r.Open(path, fs.EncodingAuto); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	r.Seek(2)
	if !r.SavePosition(kv) {
		t.Fatalf("SavePosition = false")
	}

	wantKey := "pos_" + strings.Repeat("a", 50)
	v, ok, err := kv.Get(wantKey)
	if err != nil || !ok || v != 2 {
		t.Fatalf("Get(%q) = (%d, %v, %v), want (2, true, nil)", wantKey, v, ok, err)
	}
}

func TestRestorePositionAbsent(t *testing.T) {
	r := openTemp(t, []byte("some words"))

	if r.RestorePosition(store.NewMemory()) {
		t.Fatalf("RestorePosition = true with nothing stored")
	}
	if r.ByteOffset() != 0 {
		t.Fatalf("offset moved to %d on a failed restore", r.ByteOffset())
	}
}

func TestRestorePositionIgnoresNonPositive(t *testing.T) {
	for _, stored := range []int32{0, -7} {
		r := openTemp(t, []byte("some words"))
		kv := store.NewMemory()
		if err := kv.Set(positionKey(r.Path()), stored); err != nil {
			t.Fatalf("seed store: %v", err)
		}

		if r.RestorePosition(kv) {
			t.Fatalf("RestorePosition = true for stored %d", stored)
		}
		if r.ByteOffset() != 0 {
			t.Fatalf("offset moved to %d for stored %d", r.ByteOffset(), stored)
		}
	}
}

func TestPositionStoreFailuresAreSoft(t *testing.T) {
	r := openTemp(t, []byte("some words"))

	if r.SavePosition(failingKV{}) {
		t.Fatalf("SavePosition = true on a failing store")
	}
	if r.RestorePosition(failingKV{}) {
		t.Fatalf("RestorePosition = true on a failing store")
	}
	if r.ByteOffset() != 0 {
		t.Fatalf("offset moved to %d on store failure", r.ByteOffset())
	}
}

func TestPositionClosedReader(t *testing.T) {
	r := &Reader{}
	kv := store.NewMemory()
	if r.SavePosition(kv) {
		t.Fatalf("SavePosition = true on a closed reader")
	}
	if r.RestorePosition(kv) {
		t.Fatalf("RestorePosition = true on a closed reader")
	}

	open := openTemp(t, []byte("x"))
	if open.SavePosition(nil) {
		t.Fatalf("SavePosition = true with a nil store")
	}
}
