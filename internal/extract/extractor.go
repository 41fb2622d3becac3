// Package extract reads the corpus source document as plain text.
// Plain text and Markdown are read directly; PDF and DOCX are converted.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/kotae/internal/errs"
)

// ReadFile reads the document at path and returns its text content,
// dispatching on the file extension. Unknown extensions are treated as
// plain text. A missing or unreadable file is an InputFile error.
func ReadFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", errs.InputFile(path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err := extractPDF(content)
		if err != nil {
			return "", fmt.Errorf("extract %s: %w", path, err)
		}
		return text, nil
	case ".docx":
		text, err := extractDOCX(content)
		if err != nil {
			return "", fmt.Errorf("extract %s: %w", path, err)
		}
		return text, nil
	default:
		return extractPlain(content), nil
	}
}
