package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperjump/kotae/internal/errs"
)

func TestReadFile_plain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.txt")
	if err := os.WriteFile(path, []byte("안녕하세요 hello"), 0644); err != nil {
		t.Fatal(err)
	}
	text, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if text != "안녕하세요 hello" {
		t.Errorf("got %q", text)
	}
}

func TestReadFile_missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var e *errs.Error
	if !errors.As(err, &e) || e.Kind != errs.KindInputFile {
		t.Errorf("want KindInputFile, got %v", err)
	}
}

func TestReadFile_invalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(path, []byte{'a', 0xff, 'b'}, 0644); err != nil {
		t.Fatal(err)
	}
	text, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if text != "a�b" {
		t.Errorf("got %q", text)
	}
}

func TestReadFile_docx(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = w.Write([]byte(`<w:document><w:p w:rsidR="x"><w:r><w:t>first</w:t></w:r>` +
		`<w:r><w:t xml:space="preserve">second &amp; third</w:t></w:r></w:p></w:document>`))
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "doc.docx")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	text, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if text != "first second & third" {
		t.Errorf("got %q", text)
	}
}

func TestReadFile_docxMissingDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if _, err := zw.Create("other.xml"); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "doc.docx")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(path); err == nil {
		t.Error("expected error for docx without word/document.xml")
	}
}
