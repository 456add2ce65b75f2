package office

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/resumelift/resume-enhancer/internal/extract"
)

type DOCXExtractor struct{}

func NewDOCX() *DOCXExtractor {
	return &DOCXExtractor{}
}

func (e *DOCXExtractor) Name() string { return "document/docx" }
func (e *DOCXExtractor) SupportedTypes() []string {
	return []string{"application/vnd.openxmlformats-officedocument.wordprocessingml.document"}
}
func (e *DOCXExtractor) SupportedExtensions() []string { return []string{".docx"} }

// Extract keeps each paragraph of word/document.xml that is non-empty after
// trimming, joined with newlines in document order.
func (e *DOCXExtractor) Extract(ctx context.Context, job extract.Job) (extract.Result, error) {
	select {
	case <-ctx.Done():
		return extract.Result{}, ctx.Err()
	default:
	}

	zr, err := zip.OpenReader(job.LocalPath)
	if err != nil {
		return extract.Result{}, fmt.Errorf("open docx: %w", err)
	}
	defer zr.Close()

	body, err := readZipFile(&zr.Reader, "word/document.xml")
	if err != nil {
		return extract.Result{}, fmt.Errorf("read docx body: %w", err)
	}

	text := docxParagraphs(body)
	words, chars := extract.BuildCounts(text)
	return extract.Result{
		Text:      text,
		Method:    "native",
		FileType:  e.Name(),
		WordCount: words,
		CharCount: chars,
	}, nil
}

// docxParagraphs walks <w:p> elements in word/document.xml and returns the
// surviving paragraph texts joined with newlines.
func docxParagraphs(b []byte) string {
	dec := xml.NewDecoder(strings.NewReader(string(b)))

	var paras []string
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "p" {
			continue
		}
		if p := docxParagraph(dec); p != "" {
			paras = append(paras, p)
		}
	}
	return strings.Join(paras, "\n")
}

// docxParagraph reads one <w:p> element and returns its trimmed text.
func docxParagraph(dec *xml.Decoder) string {
	var runs []string
	depth := 1

	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "t":
				runs = append(runs, readCharData(dec, &depth))
			case "tab":
				runs = append(runs, "\t")
			case "br":
				runs = append(runs, " ")
			}
		case xml.EndElement:
			depth--
		}
	}

	return strings.TrimSpace(strings.Join(runs, ""))
}

// readCharData reads character data inside a text element, tracking depth.
func readCharData(dec *xml.Decoder, depth *int) string {
	var sb strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			*depth++
		case xml.EndElement:
			*depth--
			return sb.String()
		}
	}
	return sb.String()
}

func readZipFile(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("missing %s", name)
}
