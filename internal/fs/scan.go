package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
)

// ScanBooks lists the plain-text books in dir, sorted by name. Directories,
// hidden files and files whose content does not sniff as text are skipped.
// Unreadable entries are dropped with a log line instead of failing the scan.
func ScanBooks(dir string) ([]Entry, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan books in %s: %w", dir, err)
	}

	var books []Entry
	for _, de := range dirents {
		if de.IsDir() {
			continue
		}

		name := de.Name()
		path := filepath.Join(dir, name)
		if IsHidden(path, name) || isSystemEntry(path, name) {
			continue
		}

		info, err := de.Info()
		if err != nil {
			log.Warn().Err(err).Str("file", name).Msg("skipping unreadable entry")
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		sample, err := ReadTextSample(path)
		if err != nil {
			log.Warn().Err(err).Str("file", name).Msg("skipping unreadable entry")
			continue
		}
		if !sniffsAsText(path, sample) {
			continue
		}

		books = append(books, Entry{
			Name:     name,
			Path:     path,
			Size:     info.Size(),
			Modified: info.ModTime(),
			Encoding: DetectEncoding(sample),
		})
	}

	sort.Slice(books, func(i, j int) bool {
		return strings.ToLower(books[i].Name) < strings.ToLower(books[j].Name)
	})

	return books, nil
}

// sniffsAsText accepts a file when magic-byte detection says text, falling
// back to the byte-level heuristic for content mimetype cannot place.
func sniffsAsText(path string, sample []byte) bool {
	if len(sample) == 0 {
		return false
	}

	mtype := mimetype.Detect(sample)
	if strings.HasPrefix(mtype.String(), "text/") {
		return true
	}

	return IsTextFile(path, sample)
}
