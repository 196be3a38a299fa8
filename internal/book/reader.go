package book

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/tailfold/rbook/internal/fs"
)

const (
	// writeReserve is the tail margin ReadPage keeps free in the caller's
	// buffer; the decode loop stops once fewer than writeReserve+1 bytes
	// remain so a 4-byte sequence can never clip the buffer end.
	writeReserve = 4

	// defaultPageChars is the page size rescans fall back to when the
	// caller passes a non-positive budget.
	defaultPageChars = 512

	rescanBufMin = 128
	rescanBufMax = 8192
)

// Reader paginates one text document, decoding forward byte by byte. The
// zero value is ready to use; Open it before anything else. A Reader is
// exclusively owned by one caller and is not safe for concurrent use.
type Reader struct {
	path string
	enc  fs.Encoding
	file *os.File
	br   *bufio.Reader
	size int64

	// offset counts consumed input bytes from the file start; pushed-back
	// bytes are not consumed. page counts ReadPage calls since the last
	// rewind to the start.
	offset int64
	page   int

	// aligned is true while offset sits on a page boundary reached by
	// forward reads from the start; raw Seek clears it until the next
	// rewind, which pauses page-offset recording.
	aligned bool

	offsets     *PageOffsets
	offsetsFull bool
}

// Open prepares the Reader for path. When enc is EncodingAuto the content is
// sampled and classified; any other value is adopted unconditionally, even
// if the content disagrees. An already-open Reader closes its previous
// document first, so a Reader never leaks a handle. After Open the cursor
// sits past any UTF-8 BOM and the page count is zero.
func (r *Reader) Open(path string, enc fs.Encoding) error {
	if r.file != nil {
		r.Close()
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open book %s: %w: %w", path, ErrIO, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("stat book %s: %w: %w", path, ErrIO, err)
	}

	if enc == fs.EncodingAuto {
		enc = fs.DetectFileEncoding(path)
	}

	r.path = path
	r.enc = enc
	r.file = f
	r.br = bufio.NewReader(f)
	r.size = info.Size()
	r.offset = 0
	r.page = 0
	r.aligned = true
	r.offsetsFull = false

	r.skipBOM()

	log.Info().Str("book", path).Stringer("encoding", enc).
		Int64("size", r.size).Msg("opened book")
	return nil
}

// Close releases the file handle. Further calls are no-ops.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	r.br = nil
	if err != nil {
		return fmt.Errorf("close book %s: %w: %w", r.path, ErrIO, err)
	}
	return nil
}

// IsOpen reports whether a document is currently open.
func (r *Reader) IsOpen() bool { return r.file != nil }

// Path returns the open document's path, or "" when closed.
func (r *Reader) Path() string { return r.path }

// Encoding returns the encoding fixed at open time.
func (r *Reader) Encoding() fs.Encoding { return r.enc }

// Size returns the document's byte length captured at open time.
func (r *Reader) Size() int64 { return r.size }

// ByteOffset returns the cursor position in consumed input bytes.
func (r *Reader) ByteOffset() int64 { return r.offset }

// PageNumber returns how many pages have been read since the last rewind.
func (r *Reader) PageNumber() int { return r.page }

// AttachPageOffsets gives the Reader a bounded registry of page-start
// offsets recorded during forward reads; GotoPage then rewinds to the
// nearest recorded page instead of the document start. Offsets are only
// meaningful while every ReadPage call uses the same character budget and
// a buffer of at least PageBufferLen of it.
func (r *Reader) AttachPageOffsets(po *PageOffsets) {
	r.offsets = po
	r.offsetsFull = false
}

// PageBufferLen is the buffer size that holds any page of maxChars decoded
// characters without the byte budget cutting in before the character one.
func PageBufferLen(maxChars int) int {
	if maxChars <= 0 {
		maxChars = defaultPageChars
	}
	n := maxChars*4 + 8
	if n < rescanBufMin {
		return rescanBufMin
	}
	if n > rescanBufMax {
		return rescanBufMax
	}
	return n
}

// ReadPage decodes forward from the cursor into buf until maxChars
// characters are decoded, the buffer nears capacity, or the stream ends.
// It returns the decoded character count and the bytes written into buf.
//
// CR bytes are consumed without being copied or counted; LF and other ASCII
// bytes copy as one character each. A 2-4 byte UTF-8 sequence is copied
// whole or not at all: when it cannot fit in the remaining buffer, its lead
// byte is pushed back and the call ends, so a page never splits a character.
// An invalid continuation byte is pushed back for re-examination and the
// partially written sequence stays in buf uncounted; an unrecognized lead
// byte is consumed and dropped. The same policy applies whatever the
// document encoding; non-UTF-8 multi-byte text passes through as raw bytes
// at best.
//
// A zero count means end-of-stream or a buffer too full to hold a single
// character; callers must test the count, not PageNumber, because the page
// counter increments on every call either way.
func (r *Reader) ReadPage(buf []byte, maxChars int) (chars int, n int, err error) {
	if r.file == nil {
		return 0, 0, fmt.Errorf("read page: %w: reader not open", ErrInvalidArgument)
	}
	if len(buf) < 2 {
		return 0, 0, fmt.Errorf("read page: %w: buffer too small", ErrInvalidArgument)
	}

	r.recordPageStart()

	for chars < maxChars && n < len(buf)-writeReserve {
		b, rerr := r.br.ReadByte()
		if rerr != nil {
			if rerr == io.EOF {
				break
			}
			r.page++
			return chars, n, fmt.Errorf("read page: %w: %w", ErrIO, rerr)
		}
		r.offset++

		switch {
		case b == '\r':
			continue

		case b == '\n', b < 0x80:
			buf[n] = b
			n++
			chars++

		default:
			seqLen := utf8SeqLen(b)
			if seqLen == 0 {
				// Not a recognized lead byte; drop it and resync on
				// the next one.
				continue
			}

			if n+seqLen >= len(buf)-1 {
				_ = r.br.UnreadByte()
				r.offset--
				r.page++
				return chars, n, nil
			}

			buf[n] = b
			n++

			valid := true
			for i := 1; i < seqLen; i++ {
				c, cerr := r.br.ReadByte()
				if cerr != nil {
					valid = false
					break
				}
				if c&0xC0 != 0x80 {
					_ = r.br.UnreadByte()
					valid = false
					break
				}
				r.offset++
				buf[n] = c
				n++
			}
			if valid {
				chars++
			}
		}
	}

	r.page++
	return chars, n, nil
}

// GotoPage positions the Reader so the next ReadPage returns the target
// page. Navigation is a sequential rescan: backwards targets rewind to the
// start (or the nearest registered page offset) and pages are re-read
// forward with the given character budget, discarding the text. A recorded
// page between the cursor and a forward target shortens the scan the same
// way. Targets below 1 mean page 1; a non-positive maxChars falls back to
// the default page size. Returns false when the stream ends before the
// target page; registry entries from the failed page on are invalidated,
// since the scan just proved the document does not reach them.
func (r *Reader) GotoPage(page int, maxChars int) bool {
	if r.file == nil {
		return false
	}
	if maxChars <= 0 {
		maxChars = defaultPageChars
	}
	if page <= 0 {
		page = 1
	}

	if page < r.page {
		r.rewindFor(page)
	} else if r.offsets != nil {
		if p, off, ok := r.offsets.NearestAtOrBefore(page); ok && p-1 > r.page {
			_ = r.seekRecorded(p, off)
		}
	}

	scratch := make([]byte, PageBufferLen(maxChars))
	for r.page < page-1 {
		chars, _, err := r.ReadPage(scratch, maxChars)
		if err != nil || chars <= 0 {
			if r.offsets != nil {
				r.offsets.InvalidateFrom(r.page)
				r.offsetsFull = false
			}
			return false
		}
	}
	return true
}

// Seek clamps pos into [0, Size] and moves the cursor there directly. No
// attempt is made to land on a character boundary; after seeking into the
// middle of a multi-byte sequence the next ReadPage starts mid-character.
// The page counter is left untouched.
func (r *Reader) Seek(pos int64) bool {
	if r.file == nil {
		return false
	}
	if pos < 0 {
		pos = 0
	} else if pos > r.size {
		pos = r.size
	}

	if _, err := r.file.Seek(pos, io.SeekStart); err != nil {
		log.Error().Err(err).Str("book", r.path).Int64("pos", pos).Msg("seek failed")
		return false
	}
	r.br.Reset(r.file)
	r.offset = pos
	r.aligned = false
	return true
}

// EstimateTotalPages guesses the page count for the given characters per
// page: the byte length divided up, inflated 20% because newlines and
// multi-byte characters make pages span more bytes than characters. Never
// exact; zero when closed or charsPerPage is non-positive.
func (r *Reader) EstimateTotalPages(charsPerPage int) int {
	if r.file == nil || charsPerPage <= 0 {
		return 0
	}
	pages := (r.size + int64(charsPerPage) - 1) / int64(charsPerPage)
	return int(pages * 12 / 10)
}

// rewindFor resets the cursor for a backwards rescan. With a page-offset
// registry attached it restarts at the nearest recorded page at or before
// the target; otherwise at the document start, re-skipping any BOM.
func (r *Reader) rewindFor(target int) {
	if r.offsets != nil {
		if p, off, ok := r.offsets.NearestAtOrBefore(target); ok && r.seekRecorded(p, off) {
			return
		}
	}

	if _, err := r.file.Seek(0, io.SeekStart); err != nil {
		log.Error().Err(err).Str("book", r.path).Msg("rewind failed")
		return
	}
	r.br.Reset(r.file)
	r.offset = 0
	r.page = 0
	r.aligned = true
	r.skipBOM()
}

// seekRecorded moves the cursor straight to a registered page start, so the
// next ReadPage returns that page.
func (r *Reader) seekRecorded(page int, off int64) bool {
	if _, err := r.file.Seek(off, io.SeekStart); err != nil {
		return false
	}
	r.br.Reset(r.file)
	r.offset = off
	r.page = page - 1
	r.aligned = true
	return true
}

// skipBOM advances past a UTF-8 byte order mark so it never reaches a page.
func (r *Reader) skipBOM() {
	if r.enc != fs.EncodingUTF8 {
		return
	}
	head, err := r.br.Peek(3)
	if err != nil || !fs.HasUTF8BOM(head) {
		return
	}
	_, _ = r.br.Discard(3)
	r.offset += 3
}

// recordPageStart registers the byte offset the upcoming page starts at.
func (r *Reader) recordPageStart() {
	if r.offsets == nil || !r.aligned || r.offsetsFull {
		return
	}
	if err := r.offsets.Record(r.page+1, r.offset); err != nil {
		r.offsetsFull = true
		log.Debug().Str("book", r.path).Int("page", r.page+1).
			Msg("page offset registry full; backward navigation rescans from start")
	}
}

// utf8SeqLen maps a lead byte to its sequence length, or 0 when the byte
// cannot start a multi-byte sequence.
func utf8SeqLen(b byte) int {
	switch {
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	default:
		return 0
	}
}

// clampInt32 saturates an offset into int32 range for persistence.
func clampInt32(v int64) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < 0 {
		return 0
	}
	return int32(v)
}
