package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTouchInsertsMostRecentFirst(t *testing.T) {
	l := NewList(5)
	l.Touch(Record{Path: "/books/a.txt", Title: "a"})
	l.Touch(Record{Path: "/books/b.txt", Title: "b"})
	l.Touch(Record{Path: "/books/c.txt", Title: "c"})

	front, ok := l.Front()
	if !ok || front.Path != "/books/c.txt" {
		t.Fatalf("Front = (%q, %v), want c.txt first", front.Path, ok)
	}
	if l.Len() != 3 {
		t.Fatalf("Len = %d, want 3", l.Len())
	}

	recs := l.Records()
	wantOrder := []string{"/books/c.txt", "/books/b.txt", "/books/a.txt"}
	for i, want := range wantOrder {
		if recs[i].Path != want {
			t.Fatalf("records[%d] = %q, want %q", i, recs[i].Path, want)
		}
	}
}

func TestTouchMovesExistingToFrontAndAccumulates(t *testing.T) {
	l := NewList(5)
	l.Touch(Record{Path: "/books/a.txt", TotalReadTime: 10 * time.Minute})
	l.Touch(Record{Path: "/books/b.txt"})

	l.Touch(Record{
		Path:          "/books/a.txt",
		ByteOffset:    4096,
		Page:          9,
		Percent:       37.5,
		TotalReadTime: 5 * time.Minute,
	})

	if l.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (no duplicate entry)", l.Len())
	}
	front, _ := l.Front()
	if front.Path != "/books/a.txt" {
		t.Fatalf("Front = %q, want a.txt moved to front", front.Path)
	}
	if front.TotalReadTime != 15*time.Minute {
		t.Fatalf("TotalReadTime = %v, want accumulated 15m", front.TotalReadTime)
	}
	if front.ByteOffset != 4096 || front.Page != 9 || front.Percent != 37.5 {
		t.Fatalf("position fields not updated: %+v", front)
	}
}

func TestTouchEvictsBeyondCapacity(t *testing.T) {
	l := NewList(3)
	for _, p := range []string{"/1", "/2", "/3", "/4"} {
		l.Touch(Record{Path: p})
	}

	if l.Len() != 3 {
		t.Fatalf("Len = %d, want capacity 3", l.Len())
	}
	if _, ok := l.Lookup("/1"); ok {
		t.Fatalf("oldest record survived eviction")
	}
	front, _ := l.Front()
	if front.Path != "/4" {
		t.Fatalf("Front = %q, want /4", front.Path)
	}
}

func TestTouchStampsZeroTime(t *testing.T) {
	l := NewList(3)
	before := time.Now()
	l.Touch(Record{Path: "/books/a.txt"})

	front, _ := l.Front()
	if front.LastReadAt.Before(before) {
		t.Fatalf("LastReadAt = %v, want stamped at touch time", front.LastReadAt)
	}

	explicit := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	l.Touch(Record{Path: "/books/b.txt", LastReadAt: explicit})
	front, _ = l.Front()
	if !front.LastReadAt.Equal(explicit) {
		t.Fatalf("explicit LastReadAt overwritten: %v", front.LastReadAt)
	}
}

func TestTouchIgnoresEmptyPath(t *testing.T) {
	l := NewList(3)
	l.Touch(Record{Title: "no path"})
	if l.Len() != 0 {
		t.Fatalf("Len = %d, want empty path ignored", l.Len())
	}
}

func TestRemove(t *testing.T) {
	l := NewList(3)
	l.Touch(Record{Path: "/a"})
	l.Touch(Record{Path: "/b"})

	if !l.Remove("/a") {
		t.Fatalf("Remove(/a) = false")
	}
	if l.Remove("/a") {
		t.Fatalf("second Remove(/a) = true")
	}
	if l.Len() != 1 {
		t.Fatalf("Len = %d, want 1", l.Len())
	}
}

func TestFrontEmpty(t *testing.T) {
	l := NewList(3)
	if _, ok := l.Front(); ok {
		t.Fatalf("Front on empty list = true")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "history.json")

	l := NewList(5)
	l.Touch(Record{
		Path:          "/books/novel.txt",
		Title:         "novel",
		ByteOffset:    1 << 20,
		Page:          240,
		Percent:       61.2,
		LastReadAt:    time.Date(2024, 5, 20, 21, 30, 0, 0, time.UTC),
		TotalReadTime: 3 * time.Hour,
	})
	l.Touch(Record{Path: "/books/other.txt", Title: "other"})

	if err := l.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := NewList(5)
	if err := loaded.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("loaded Len = %d, want 2", loaded.Len())
	}

	rec, ok := loaded.Lookup("/books/novel.txt")
	if !ok {
		t.Fatalf("novel.txt missing after reload")
	}
	want := Record{
		Path:          "/books/novel.txt",
		Title:         "novel",
		ByteOffset:    1 << 20,
		Page:          240,
		Percent:       61.2,
		LastReadAt:    time.Date(2024, 5, 20, 21, 30, 0, 0, time.UTC),
		TotalReadTime: 3 * time.Hour,
	}
	if rec.Path != want.Path || rec.Title != want.Title ||
		rec.ByteOffset != want.ByteOffset || rec.Page != want.Page ||
		rec.Percent != want.Percent || !rec.LastReadAt.Equal(want.LastReadAt) ||
		rec.TotalReadTime != want.TotalReadTime {
		t.Fatalf("reloaded record = %+v, want %+v", rec, want)
	}

	front, _ := loaded.Front()
	if front.Path != "/books/other.txt" {
		t.Fatalf("order lost on reload: front = %q", front.Path)
	}
}

func TestLoadMissingFile(t *testing.T) {
	l := NewList(5)
	l.Touch(Record{Path: "/stale"})

	if err := l.Load(filepath.Join(t.TempDir(), "absent.json")); err != nil {
		t.Fatalf("Load missing file: %v", err)
	}
	if l.Len() != 0 {
		t.Fatalf("Len = %d, want stale contents replaced by empty", l.Len())
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("[{broken"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := NewList(5)
	if err := l.Load(path); err != nil {
		t.Fatalf("Load corrupt file: %v", err)
	}
	if l.Len() != 0 {
		t.Fatalf("Len = %d, want empty after corrupt load", l.Len())
	}
}

func TestLoadTrimsBeyondCapacity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	big := NewList(10)
	for _, p := range []string{"/1", "/2", "/3", "/4", "/5"} {
		big.Touch(Record{Path: p})
	}
	if err := big.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	small := NewList(2)
	if err := small.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if small.Len() != 2 {
		t.Fatalf("Len = %d, want trimmed to 2", small.Len())
	}
	front, _ := small.Front()
	if front.Path != "/5" {
		t.Fatalf("front after trim = %q, want the most recent kept", front.Path)
	}
}
