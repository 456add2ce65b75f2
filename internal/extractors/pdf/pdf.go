package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/resumelift/resume-enhancer/internal/extract"
)

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Name() string { return "document/pdf" }

func (e *Extractor) SupportedTypes() []string {
	return []string{"application/pdf"}
}

func (e *Extractor) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Extract walks the document's pages in order. A page with no text layer
// (scanned image, empty page) contributes nothing; only a malformed stream or
// a document with zero extractable characters overall is an error.
func (e *Extractor) Extract(ctx context.Context, job extract.Job) (extract.Result, error) {
	select {
	case <-ctx.Done():
		return extract.Result{}, ctx.Err()
	default:
	}

	f, reader, err := pdf.Open(job.LocalPath)
	if err != nil {
		return extract.Result{}, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	total := reader.NumPage()
	var pages []string
	for i := 1; i <= total; i++ {
		text := pageText(reader, i)
		text = extract.JoinLines(text)
		if text != "" {
			pages = append(pages, text)
		}
	}

	joined := strings.Join(pages, "\n")
	if joined == "" {
		return extract.Result{}, fmt.Errorf("pdf contains no extractable text (%d pages)", total)
	}

	words, chars := extract.BuildCounts(joined)
	return extract.Result{
		Text:      joined,
		Method:    "text-layer",
		FileType:  e.Name(),
		PageCount: total,
		WordCount: words,
		CharCount: chars,
	}, nil
}

// pageText extracts one page, swallowing per-page failures. The pdf package
// panics on some malformed content streams, so the recover is load-bearing.
func pageText(reader *pdf.Reader, n int) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	page := reader.Page(n)
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}
