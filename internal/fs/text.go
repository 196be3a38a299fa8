package fs

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const nonPrintableThresholdPercent = 30

// Extensions that never hold book text; they short-circuit content sniffing
// so a cluttered books directory scans quickly.
var binaryExtensions = map[string]struct{}{
	".7z":   {},
	".avi":  {},
	".bin":  {},
	".bmp":  {},
	".bz2":  {},
	".dat":  {},
	".db":   {},
	".doc":  {},
	".docx": {},
	".epub": {},
	".exe":  {},
	".flac": {},
	".gif":  {},
	".gz":   {},
	".ico":  {},
	".iso":  {},
	".jpeg": {},
	".jpg":  {},
	".mkv":  {},
	".mobi": {},
	".mov":  {},
	".mp3":  {},
	".mp4":  {},
	".ogg":  {},
	".otf":  {},
	".pdf":  {},
	".png":  {},
	".rar":  {},
	".tar":  {},
	".tgz":  {},
	".ttf":  {},
	".wav":  {},
	".xz":   {},
	".zip":  {},
}

// IsTextFile determines if content is text or binary.
// The path (if provided) is used to short-circuit obvious binary extensions
// before sniffing.
func IsTextFile(path string, content []byte) bool {
	if looksBinaryByExtension(path) {
		return false
	}

	if len(content) == 0 {
		return true
	}

	sample := content
	if len(sample) > encodingSampleSize {
		sample = sample[:encodingSampleSize]
	}

	if hasUnicodeBOM(sample) {
		return true
	}

	if bytes.IndexByte(sample, 0x00) != -1 {
		return false
	}

	if utf8.Valid(sample) {
		return true
	}

	printable := 0
	nonPrintable := 0
	for _, b := range sample {
		if isCommonTextByte(b) {
			printable++
		} else {
			nonPrintable++
		}
	}

	if printable == 0 {
		return false
	}

	return nonPrintable*100/len(sample) < nonPrintableThresholdPercent
}

// ReadFileHead returns up to limit bytes from the beginning of path.
func ReadFileHead(path string, limit int64) ([]byte, error) {
	if limit <= 0 {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	return io.ReadAll(io.LimitReader(f, limit))
}

// ReadTextSample returns a small sample of the file for sniffing and
// encoding detection.
func ReadTextSample(path string) ([]byte, error) {
	return ReadFileHead(path, encodingSampleSize)
}

func looksBinaryByExtension(path string) bool {
	if path == "" {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := binaryExtensions[ext]
	return ok
}

func isCommonTextByte(b byte) bool {
	switch {
	case b == 0x09 || b == 0x0A || b == 0x0D:
		return true
	case b >= 0x20 && b <= 0x7E:
		return true
	case b >= 0x80:
		return true
	default:
		return false
	}
}

// hasUnicodeBOM recognizes UTF-8 and UTF-16 byte order marks. UTF-16 books
// are listed as text even though the reader treats their bytes opaquely.
func hasUnicodeBOM(sample []byte) bool {
	if HasUTF8BOM(sample) {
		return true
	}
	if len(sample) >= 2 {
		if sample[0] == 0xFF && sample[1] == 0xFE {
			return true
		}
		if sample[0] == 0xFE && sample[1] == 0xFF {
			return true
		}
	}
	return false
}
