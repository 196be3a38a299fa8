package book

import "fmt"

// DefaultPageOffsetCapacity bounds the registry the application attaches to
// its Reader; at the default page size that covers multi-megabyte books.
const DefaultPageOffsetCapacity = 4096

// PageOffsets is a bounded registry of page-start byte offsets, keyed by
// 1-based page number. It is owned by whoever constructs it and passed to
// the Reader that fills it; there is no process-wide instance. Offsets are
// only comparable while the page geometry feeding them stays fixed; change
// the character budget and the registry must be Reset.
type PageOffsets struct {
	capacity int
	offsets  map[int]int64
	last     int
}

// NewPageOffsets builds a registry holding at most capacity entries.
// Non-positive capacities get the default.
func NewPageOffsets(capacity int) *PageOffsets {
	if capacity <= 0 {
		capacity = DefaultPageOffsetCapacity
	}
	return &PageOffsets{
		capacity: capacity,
		offsets:  make(map[int]int64),
	}
}

// Record stores the byte offset page starts at. Re-recording a known page
// overwrites it; a new page beyond capacity fails with ErrResourceExhausted
// and the registry is left unchanged.
func (p *PageOffsets) Record(page int, offset int64) error {
	if page < 1 || offset < 0 {
		return fmt.Errorf("record page %d at %d: %w", page, offset, ErrInvalidArgument)
	}
	if _, exists := p.offsets[page]; !exists && len(p.offsets) >= p.capacity {
		return fmt.Errorf("record page %d: %w: capacity %d", page, ErrResourceExhausted, p.capacity)
	}
	p.offsets[page] = offset
	if page > p.last {
		p.last = page
	}
	return nil
}

// Lookup returns the recorded offset for page.
func (p *PageOffsets) Lookup(page int) (int64, bool) {
	off, ok := p.offsets[page]
	return off, ok
}

// NearestAtOrBefore returns the highest recorded page that is at most the
// target, with its offset.
func (p *PageOffsets) NearestAtOrBefore(target int) (int, int64, bool) {
	if target > p.last {
		target = p.last
	}
	for page := target; page >= 1; page-- {
		if off, ok := p.offsets[page]; ok {
			return page, off, true
		}
	}
	return 0, 0, false
}

// InvalidateFrom drops every recorded page numbered at or after page.
// Callers use it when a scan proves the document no longer reaches that far,
// so offsets recorded against longer content cannot misdirect later jumps.
func (p *PageOffsets) InvalidateFrom(page int) {
	if page < 1 {
		page = 1
	}
	for recorded := range p.offsets {
		if recorded >= page {
			delete(p.offsets, recorded)
		}
	}
	p.last = 0
	for recorded := range p.offsets {
		if recorded > p.last {
			p.last = recorded
		}
	}
}

// Len reports how many pages are recorded.
func (p *PageOffsets) Len() int { return len(p.offsets) }

// Capacity reports the registry bound.
func (p *PageOffsets) Capacity() int { return p.capacity }

// Reset drops every recorded offset, keeping the capacity.
func (p *PageOffsets) Reset() {
	p.offsets = make(map[int]int64)
	p.last = 0
}
