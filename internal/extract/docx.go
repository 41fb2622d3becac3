package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// docxDocumentXMLPath is the main document body inside a .docx zip.
const docxDocumentXMLPath = "word/document.xml"

// wtTag matches <w:t>text</w:t> including variants with attributes such as
// <w:t xml:space="preserve">. Matching text nodes directly keeps content
// extractable regardless of paragraph/run attributes.
var wtTag = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)

// extractDOCX extracts text from .docx bytes. DOCX is a ZIP containing
// word/document.xml (OOXML); all <w:t> text nodes are joined with spaces.
func extractDOCX(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("extract DOCX: not a zip: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != docxDocumentXMLPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("extract DOCX: open %s: %w", f.Name, err)
		}
		var buf bytes.Buffer
		_, err = buf.ReadFrom(rc)
		_ = rc.Close()
		if err != nil {
			return "", fmt.Errorf("extract DOCX: read %s: %w", f.Name, err)
		}
		parts := wtTag.FindAllStringSubmatch(buf.String(), -1)
		texts := make([]string, 0, len(parts))
		for _, p := range parts {
			if t := decodeXMLEntities(p[1]); t != "" {
				texts = append(texts, t)
			}
		}
		return strings.Join(texts, " "), nil
	}
	return "", fmt.Errorf("extract DOCX: %s not found", docxDocumentXMLPath)
}

var xmlEntityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
)

func decodeXMLEntities(s string) string {
	return xmlEntityReplacer.Replace(s)
}
