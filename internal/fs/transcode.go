package fs

import (
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// TranscodeGB18030 converts GB18030-encoded bytes into a UTF-8 string for
// display. Byte sequences that do not decode are replaced rather than
// failing the whole buffer; callers get best-effort text either way.
func TranscodeGB18030(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	out, _, err := transform.Bytes(simplifiedchinese.GB18030.NewDecoder(), b)
	if err != nil {
		return string(b)
	}
	return string(out)
}
