package domain

import (
	"strings"
)

// NormalizeContent prepares user-submitted text for storage:
//   - converts CRLF and lone CR line endings to LF
//   - trims leading/trailing whitespace
//
// Inner whitespace and line breaks are preserved.
func NormalizeContent(text string) string {
	if strings.ContainsRune(text, '\r') {
		text = strings.ReplaceAll(text, "\r\n", "\n")
		text = strings.ReplaceAll(text, "\r", "\n")
	}
	return strings.TrimSpace(text)
}
