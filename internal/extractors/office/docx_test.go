package office

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/resumelift/resume-enhancer/internal/extract"
)

func TestExtractKeepsNonBlankParagraphsInOrder(t *testing.T) {
	t.Parallel()

	path := writeDOCX(t, "Jane Smith", "", "   ", "Skills: Go, Python")

	res, err := NewDOCX().Extract(context.Background(), extract.Job{LocalPath: path})
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if res.Text != "Jane Smith\nSkills: Go, Python" {
		t.Fatalf("unexpected text %q", res.Text)
	}
	if res.Method != "native" {
		t.Fatalf("unexpected method %q", res.Method)
	}
}

func TestExtractTrimsParagraphWhitespace(t *testing.T) {
	t.Parallel()

	path := writeDOCX(t, "  Experienced engineer.  ")

	res, err := NewDOCX().Extract(context.Background(), extract.Job{LocalPath: path})
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if res.Text != "Experienced engineer." {
		t.Fatalf("unexpected text %q", res.Text)
	}
}

func TestExtractRejectsNonZipPayload(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.docx")
	if err := os.WriteFile(path, []byte("this is not a zip archive"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := NewDOCX().Extract(context.Background(), extract.Job{LocalPath: path}); err == nil {
		t.Fatalf("expected malformed package to fail")
	}
}

func TestExtractRejectsZipWithoutDocumentXML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.docx")
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if _, err := zw.Create("word/other.xml"); err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := NewDOCX().Extract(context.Background(), extract.Job{LocalPath: path}); err == nil {
		t.Fatalf("expected missing document.xml to fail")
	}
}

func writeDOCX(t *testing.T, paragraphs ...string) string {
	t.Helper()

	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t xml:space="preserve">` + p + `</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	path := filepath.Join(t.TempDir(), "fixture.docx")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}
