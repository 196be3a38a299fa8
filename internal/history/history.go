// Package history keeps the most-recently-read book list: which books were
// opened, where reading stopped, and how long they were read. The list is
// bounded and most-recent first, so its head is always the "continue
// reading" candidate.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultCapacity bounds the list when no explicit size is configured.
const DefaultCapacity = 10

// Record is one remembered book with the state needed to resume it.
type Record struct {
	Path          string        `json:"path"`
	Title         string        `json:"title"`
	ByteOffset    int64         `json:"byteOffset"`
	Page          int           `json:"page"`
	Percent       float64       `json:"percent"`
	LastReadAt    time.Time     `json:"lastReadAt"`
	TotalReadTime time.Duration `json:"totalReadTime"`
}

// List is a bounded most-recently-used book list. The zero value is not
// usable; construct with NewList. Like the rest of the application state it
// is single-owner and not safe for concurrent use.
type List struct {
	capacity int
	records  []Record
}

// NewList builds an empty list holding at most capacity records.
// Non-positive capacities get the default.
func NewList(capacity int) *List {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &List{capacity: capacity}
}

// Touch inserts rec at the front, or moves the record with the same path to
// the front. On a move the stored read time grows by rec.TotalReadTime and
// the remaining fields take rec's values, so callers pass the session's
// reading duration, not a running total. Records beyond capacity fall off
// the tail. A zero LastReadAt is stamped with the current time.
func (l *List) Touch(rec Record) {
	if rec.Path == "" {
		return
	}
	if rec.LastReadAt.IsZero() {
		rec.LastReadAt = time.Now()
	}

	for i, existing := range l.records {
		if existing.Path != rec.Path {
			continue
		}
		rec.TotalReadTime += existing.TotalReadTime
		l.records = append(l.records[:i], l.records[i+1:]...)
		break
	}

	l.records = append([]Record{rec}, l.records...)
	if len(l.records) > l.capacity {
		l.records = l.records[:l.capacity]
	}
}

// Remove drops the record for path, reporting whether one existed.
func (l *List) Remove(path string) bool {
	for i, rec := range l.records {
		if rec.Path == path {
			l.records = append(l.records[:i], l.records[i+1:]...)
			return true
		}
	}
	return false
}

// Front returns the most recently touched record.
func (l *List) Front() (Record, bool) {
	if len(l.records) == 0 {
		return Record{}, false
	}
	return l.records[0], true
}

// Lookup returns the record for path wherever it sits in the list.
func (l *List) Lookup(path string) (Record, bool) {
	for _, rec := range l.records {
		if rec.Path == path {
			return rec, true
		}
	}
	return Record{}, false
}

// Records returns the list in most-recent-first order. The slice is a copy;
// mutating it does not affect the list.
func (l *List) Records() []Record {
	return append([]Record(nil), l.records...)
}

// Len reports how many records the list holds.
func (l *List) Len() int { return len(l.records) }

// Capacity reports the list bound.
func (l *List) Capacity() int { return l.capacity }

// Load replaces the list contents from the JSON file at path. A missing
// file loads as empty; a corrupt one is logged and treated as empty so a
// damaged history never blocks startup. Entries beyond capacity are dropped
// from the tail.
func (l *List) Load(path string) error {
	l.records = nil

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("load history %s: %w", path, err)
	}

	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("history file corrupt; starting empty")
		return nil
	}

	if len(records) > l.capacity {
		records = records[:l.capacity]
	}
	l.records = records
	return nil
}

// Save writes the list as a JSON array to path, creating parent directories
// as needed.
func (l *List) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create history dir %s: %w", dir, err)
		}
	}

	raw, err := json.MarshalIndent(l.records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write history %s: %w", path, err)
	}
	return nil
}
