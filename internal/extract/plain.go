package extract

import (
	"strings"
	"unicode/utf8"
)

// extractPlain returns content as a string. Invalid UTF-8 sequences are
// replaced with the replacement character so downstream rune-based chunking
// never sees broken encodings.
func extractPlain(content []byte) string {
	if !utf8.Valid(content) {
		return strings.ToValidUTF8(string(content), "�")
	}
	return string(content)
}
