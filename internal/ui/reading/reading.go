// Package reading implements the reading view: one page of an open book
// filling the terminal, a title bar above it and a footer carrying the key
// help and the "page/total~" hint. Page turns, jumps and position saving all
// go through the book Reader owned by the screen.
package reading

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tailfold/rbook/internal/book"
	"github.com/tailfold/rbook/internal/fs"
	"github.com/tailfold/rbook/internal/history"
	"github.com/tailfold/rbook/internal/store"
	"github.com/tailfold/rbook/internal/textutil"
	"github.com/tailfold/rbook/internal/ui/render"
)

// pageOffsetCapacity bounds the per-book registry of page starts; pages past
// it are reachable through rescans from the last recorded page.
const pageOffsetCapacity = 512

const jumpDigitLimit = 7

// Screen is the reading view for one open book. It owns the Reader and the
// displayed page; position persistence and the reading history are shared
// collaborators owned by the application.
type Screen struct {
	renderer *render.Renderer
	reader   *book.Reader
	kv       store.KV
	hist     *history.List

	entry    fs.Entry
	maxChars int
	buf      []byte
	estPages int

	page      int   // page currently on screen, 1-based
	pageStart int64 // byte offset the displayed page starts at
	text      string
	lines     []string
	wrapWidth int

	jump     string // digits typed for a page jump, "" while inactive
	openedAt time.Time
}

// Open opens the book behind entry and shows its first page, or the page the
// position store remembers for it. The history is touched so the book moves
// to the front of the recent list immediately, not only on close.
func Open(renderer *render.Renderer, kv store.KV, hist *history.List, entry fs.Entry, maxChars int) (*Screen, error) {
	if maxChars <= 0 {
		maxChars = 512
	}

	s := &Screen{
		renderer: renderer,
		reader:   &book.Reader{},
		kv:       kv,
		hist:     hist,
		entry:    entry,
		maxChars: maxChars,
		buf:      make([]byte, book.PageBufferLen(maxChars)),
		openedAt: time.Now(),
	}

	if err := s.reader.Open(entry.Path, entry.Encoding); err != nil {
		return nil, err
	}

	po := book.NewPageOffsets(pageOffsetCapacity)
	s.reader.AttachPageOffsets(po)
	s.estPages = s.reader.EstimateTotalPages(maxChars)

	s.restore(po)

	ok := s.showNext()
	if !ok && s.reader.ByteOffset() > 0 {
		// A saved position can sit past the end of a shrunk file; fall
		// back to the first page rather than a blank screen.
		ok = s.SeekToStart()
	}
	if !ok {
		s.page = 1
		s.pageStart = s.reader.ByteOffset()
		s.setText(nil)
	}

	s.hist.Touch(s.record(0))
	return s, nil
}

// restore moves the Reader to the position the store remembers. When the
// history still knows which page that offset belongs to, the page counter
// resumes there too; otherwise it restarts at 1 from the saved offset.
func (s *Screen) restore(po *book.PageOffsets) {
	if !s.reader.RestorePosition(s.kv) {
		return
	}
	off := s.reader.ByteOffset()
	if off <= 0 {
		return
	}

	rec, ok := s.hist.Lookup(s.entry.Path)
	if !ok || rec.ByteOffset != off || rec.Page <= 1 {
		return
	}
	if err := po.Record(rec.Page, off); err != nil {
		return
	}
	s.reader.GotoPage(rec.Page, s.maxChars)
}

// Close saves the reading position and history entry, then releases the
// book. The screen must not be used afterwards.
func (s *Screen) Close() {
	if s.reader.IsOpen() {
		s.save()
	}
	if err := s.reader.Close(); err != nil {
		log.Warn().Err(err).Str("book", s.entry.Path).Msg("closing book")
	}
}

func (s *Screen) save() {
	if s.reader.Seek(s.pageStart) {
		s.reader.SavePosition(s.kv)
	}
	s.hist.Touch(s.record(time.Since(s.openedAt)))
}

func (s *Screen) record(session time.Duration) history.Record {
	return history.Record{
		Path:          s.entry.Path,
		Title:         s.entry.Title(),
		ByteOffset:    s.pageStart,
		Page:          s.page,
		Percent:       readPercent(s.pageStart, s.reader.Size()),
		TotalReadTime: session,
	}
}

func readPercent(off, size int64) float64 {
	if size <= 0 {
		return 0
	}
	p := float64(off) * 100 / float64(size)
	if p > 100 {
		p = 100
	}
	return p
}

// Title returns the display name of the open book.
func (s *Screen) Title() string { return s.entry.Title() }

// Page returns the page currently on screen, 1-based.
func (s *Screen) Page() int { return s.page }

// NextPage turns to the next page; false at the end of the book. Trailing
// bytes that decode to nothing count as the end.
func (s *Screen) NextPage() bool {
	if !s.reader.IsOpen() || s.reader.ByteOffset() >= s.reader.Size() {
		return false
	}
	return s.showNext()
}

// PrevPage turns back one page; false on the first page.
func (s *Screen) PrevPage() bool {
	if s.page <= 1 {
		return false
	}
	return s.showPage(s.page - 1)
}

// SeekToStart reopens the book at its first page.
func (s *Screen) SeekToStart() bool {
	if err := s.reader.Open(s.entry.Path, s.reader.Encoding()); err != nil {
		log.Error().Err(err).Str("book", s.entry.Path).Msg("reopen at start failed")
		return false
	}
	s.estPages = s.reader.EstimateTotalPages(s.maxChars)
	if !s.showNext() {
		s.page = 1
		s.pageStart = s.reader.ByteOffset()
		s.setText(nil)
	}
	return true
}

// JumpActive reports whether a page-jump is being typed.
func (s *Screen) JumpActive() bool { return s.jump != "" }

// JumpDigit appends one digit to the pending page jump.
func (s *Screen) JumpDigit(r rune) bool {
	if r < '0' || r > '9' || len(s.jump) >= jumpDigitLimit {
		return false
	}
	s.jump += string(r)
	return true
}

// JumpBackspace removes the last typed jump digit.
func (s *Screen) JumpBackspace() bool {
	if s.jump == "" {
		return false
	}
	s.jump = s.jump[:len(s.jump)-1]
	return true
}

// JumpCancel abandons the pending page jump.
func (s *Screen) JumpCancel() bool {
	if s.jump == "" {
		return false
	}
	s.jump = ""
	return true
}

// JumpCommit turns to the typed page. Jumps past the end leave the current
// page on screen. Reports whether a jump was pending at all.
func (s *Screen) JumpCommit() bool {
	if s.jump == "" {
		return false
	}
	target, err := strconv.Atoi(s.jump)
	s.jump = ""
	if err != nil {
		return true
	}
	s.showPage(target)
	return true
}

// showPage rescans to the target page and displays it. When the book ends
// before the target the previously shown page is restored.
func (s *Screen) showPage(target int) bool {
	if target < 1 {
		target = 1
	}
	if target == s.page {
		return true
	}
	if s.reader.GotoPage(target, s.maxChars) && s.showNext() {
		return true
	}
	if s.reader.GotoPage(s.page, s.maxChars) {
		s.showNext()
	}
	return false
}

// showNext reads the page under the cursor onto the screen. A read that
// yields bytes but no counted characters still displays; mis-encoded
// content passes through raw rather than ending the book early.
func (s *Screen) showNext() bool {
	start := s.reader.ByteOffset()
	chars, n, err := s.reader.ReadPage(s.buf, s.maxChars)
	if err != nil {
		log.Error().Err(err).Str("book", s.entry.Path).Msg("page read failed")
		return false
	}
	if chars == 0 && n == 0 {
		return false
	}
	s.page = s.reader.PageNumber()
	s.pageStart = start
	s.setText(s.buf[:n])
	return true
}

func (s *Screen) setText(raw []byte) {
	if s.reader.Encoding() == fs.EncodingGB18030 {
		s.text = fs.TranscodeGB18030(raw)
	} else {
		s.text = string(raw)
	}
	s.lines = nil
	s.wrapWidth = 0
}

// Draw paints the title bar, the wrapped page text and the footer. The
// caller owns Clear and Show.
func (s *Screen) Draw() {
	w, h := s.renderer.Size()
	if w <= 0 || h < 3 {
		return
	}
	theme := s.renderer.Theme()

	contentW := w - 2
	if contentW < 1 {
		contentW = 1
	}
	if s.lines == nil || s.wrapWidth != contentW {
		s.lines = textutil.WrapLines(s.text, contentW)
		s.wrapWidth = contentW
	}

	s.renderer.FillRow(0, 0, w, theme.HeaderStyle())
	encX := s.renderer.DrawTextRight(w-1, 0, 0, s.reader.Encoding().String(), theme.HeaderStyle())
	s.renderer.DrawText(1, 0, encX-2, textutil.SanitizeTerminalText(s.entry.Title()), theme.HeaderStyle())

	y := 1
	for _, line := range s.lines {
		if y > h-2 {
			break
		}
		s.renderer.DrawText(1, y, contentW, textutil.SanitizeTerminalText(line), theme.ReadingStyle())
		y++
	}

	s.drawFooter(w, h)
}

func (s *Screen) drawFooter(w, h int) {
	style := s.renderer.Theme().FooterStyle()
	row := h - 1
	s.renderer.FillRow(0, row, w, style)

	total := s.estPages
	if total < s.page {
		total = s.page
	}
	hint := fmt.Sprintf("%d/%d~", s.page, total)
	hintX := s.renderer.DrawTextRight(w-1, row, 0, hint, style)

	help := "←/→ page  g start  0-9 goto  Esc back  q quit"
	helpStyle := style
	if s.JumpActive() {
		help = "go to page: " + s.jump + "_  (Enter jumps, Esc cancels)"
		helpStyle = s.renderer.Theme().AccentStyle()
	}
	s.renderer.DrawText(1, row, hintX-2, help, helpStyle)
}
