package fs

// encodingSampleSize bounds how much of a file the detector inspects.
const encodingSampleSize = 4096

// Encoding identifies the byte-level text encoding of a document.
type Encoding uint8

const (
	// EncodingAuto asks the opener to run detection; it is never the
	// result of detection itself.
	EncodingAuto Encoding = iota
	EncodingUTF8
	EncodingGB18030
	EncodingASCII
)

func (e Encoding) String() string {
	switch e {
	case EncodingUTF8:
		return "UTF-8"
	case EncodingGB18030:
		return "GB18030"
	case EncodingASCII:
		return "ASCII"
	case EncodingAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// utf8BOM is the 3-byte marker some editors place at the start of UTF-8 files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// HasUTF8BOM reports whether the sample starts with the UTF-8 byte order mark.
func HasUTF8BOM(sample []byte) bool {
	return len(sample) >= 3 &&
		sample[0] == utf8BOM[0] && sample[1] == utf8BOM[1] && sample[2] == utf8BOM[2]
}

// DetectEncoding classifies a content sample as UTF-8, GB18030 or ASCII.
// It is a best-effort heuristic and always produces an answer:
//
//  1. a UTF-8 BOM wins over everything else;
//  2. a sample with no high bytes is ASCII;
//  3. a lead byte in [0x81,0xFE] followed by a byte in [0x40,0xFE]
//     anywhere in the sample suggests the GB double-byte family;
//  4. anything else defaults to UTF-8.
//
// The sample is not validated as well-formed UTF-8; the result only picks
// the decoding strategy, it does not guarantee the content matches it.
func DetectEncoding(sample []byte) Encoding {
	if HasUTF8BOM(sample) {
		return EncodingUTF8
	}

	if len(sample) > encodingSampleSize {
		sample = sample[:encodingSampleSize]
	}

	allASCII := true
	for _, b := range sample {
		if b >= 0x80 {
			allASCII = false
			break
		}
	}
	if allASCII {
		return EncodingASCII
	}

	for i := 0; i+1 < len(sample); i++ {
		if sample[i] >= 0x81 && sample[i] <= 0xFE &&
			sample[i+1] >= 0x40 && sample[i+1] <= 0xFE {
			return EncodingGB18030
		}
	}

	return EncodingUTF8
}

// DetectFileEncoding samples the start of path and classifies it.
// Unreadable files fall back to UTF-8, the safe default for display.
func DetectFileEncoding(path string) Encoding {
	sample, err := ReadFileHead(path, encodingSampleSize)
	if err != nil {
		return EncodingUTF8
	}
	return DetectEncoding(sample)
}
