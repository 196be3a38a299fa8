package book

import (
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/tailfold/rbook/internal/store"
)

const (
	positionKeyPrefix = "pos_"

	// positionKeyBaseMax truncates the basename component so keys stay
	// small and fixed-length for any backend. The cut is by bytes and may
	// land mid-rune; two books whose names share their first 50 bytes
	// share a key.
	positionKeyBaseMax = 50
)

// positionKey derives the storage key for a document from its basename,
// ignoring directory components so a book keeps its position when the
// library moves.
func positionKey(path string) string {
	base := filepath.Base(path)
	if len(base) > positionKeyBaseMax {
		base = base[:positionKeyBaseMax]
	}
	return positionKeyPrefix + base
}

// SavePosition writes the current byte offset through kv, keyed by the
// document's basename. Store failures are logged and reported as false,
// never surfaced further; losing a bookmark must not break reading.
func (r *Reader) SavePosition(kv store.KV) bool {
	if r.file == nil || kv == nil {
		return false
	}

	key := positionKey(r.path)
	if err := kv.Set(key, clampInt32(r.offset)); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("could not save reading position")
		return false
	}
	log.Debug().Str("key", key).Int64("offset", r.offset).Msg("saved reading position")
	return true
}

// RestorePosition seeks to the offset stored for this document, with the
// same no-realignment caveat as Seek. An absent or non-positive value
// means "start from the beginning": the cursor stays put and the result
// is false.
func (r *Reader) RestorePosition(kv store.KV) bool {
	if r.file == nil || kv == nil {
		return false
	}

	key := positionKey(r.path)
	v, ok, err := kv.Get(key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("could not load reading position")
		return false
	}
	if !ok || v <= 0 {
		return false
	}

	if !r.Seek(int64(v)) {
		return false
	}
	log.Debug().Str("key", key).Int32("offset", v).Msg("restored reading position")
	return true
}
