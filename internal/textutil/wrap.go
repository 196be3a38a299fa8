package textutil

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// WrapLines splits text into display lines no wider than width columns.
// Tabs are expanded first; each paragraph is word-wrapped, then hard-wrapped
// so space-free runs (CJK prose, long URLs) still break at the margin.
func WrapLines(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	text = ExpandTabs(text, DefaultTabWidth)
	text = strings.ReplaceAll(text, "\r", "")

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		if para == "" {
			lines = append(lines, "")
			continue
		}
		wrapped := wrap.String(wordwrap.String(para, width), width)
		lines = append(lines, strings.Split(wrapped, "\n")...)
	}
	return lines
}
