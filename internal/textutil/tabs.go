package textutil

import "strings"

const DefaultTabWidth = 4

// ExpandTabs replaces tab characters with spaces respecting terminal column width.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var builder strings.Builder
	column := 0
	for _, ru := range text {
		switch ru {
		case '\t':
			spaces := tabWidth - (column % tabWidth)
			for i := 0; i < spaces; i++ {
				builder.WriteByte(' ')
			}
			column += spaces
		case '\n', '\r':
			builder.WriteRune(ru)
			column = 0
		default:
			builder.WriteRune(ru)
			column += RuneDisplayWidth(ru)
		}
	}
	return builder.String()
}
