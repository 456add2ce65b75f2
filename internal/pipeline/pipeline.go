// Package pipeline sequences a resume upload through classification,
// extraction, keyword analysis, rendering, and storage. Each stage either
// advances the request or fails it; there is no compensation for artifacts
// already uploaded when a later stage fails.
package pipeline

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/resumelift/resume-enhancer/internal/extract"
	"github.com/resumelift/resume-enhancer/internal/render"
	"github.com/resumelift/resume-enhancer/internal/scratch"
)

// EntityAnalyzer is the semantic-analysis collaborator boundary.
type EntityAnalyzer interface {
	AnalyzeEntities(ctx context.Context, text string) ([]string, error)
}

// ObjectStore is the blob-storage collaborator boundary.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, object string, r io.Reader, contentType string) error
	PublicURL(bucket, object string) string
}

type Pipeline struct {
	extractors *extract.Registry
	analyzer   EntityAnalyzer
	store      ObjectStore
	renderer   *render.Renderer

	uploadBucket   string
	outputBucket   string
	maxUploadBytes int64
}

func New(extractors *extract.Registry, analyzer EntityAnalyzer, store ObjectStore, renderer *render.Renderer, uploadBucket, outputBucket string, maxUploadBytes int64) *Pipeline {
	return &Pipeline{
		extractors:     extractors,
		analyzer:       analyzer,
		store:          store,
		renderer:       renderer,
		uploadBucket:   uploadBucket,
		outputBucket:   outputBucket,
		maxUploadBytes: maxUploadBytes,
	}
}

type Upload struct {
	Source Source
	Body   io.Reader
}

type Outcome struct {
	Message     string
	DownloadURL string
	Keywords    int
}

// Process runs one upload to completion. The returned error, when non-nil, is
// always a *Error carrying the failure kind and a user-facing message.
func (p *Pipeline) Process(ctx context.Context, up Upload) (Outcome, error) {
	cls, perr := Classify(up.Source)
	if perr != nil {
		return Outcome{}, perr
	}

	sf, err := scratch.Save(up.Body, cls.FileName, p.maxUploadBytes)
	if err != nil {
		return Outcome{}, failure(KindUnreadableDocument, "Unable to read uploaded file", err)
	}
	defer sf.Cleanup()

	extractor, err := p.extractors.Resolve(cls.Format.MIMEType(), cls.Format.Extension())
	if err != nil {
		return Outcome{}, failure(KindUnsupportedFormat, "Only PDF or DOCX resumes are supported", err)
	}

	res, err := extractor.Extract(ctx, extract.Job{
		LocalPath: sf.Path,
		FileName:  cls.FileName,
		MIMEType:  cls.Format.MIMEType(),
		FileSize:  sf.Size,
	})
	if err != nil {
		return Outcome{}, failure(KindUnreadableDocument, "Unable to read resume content", err)
	}

	if err := p.uploadFile(ctx, p.uploadBucket, cls.FileName, sf.Path, originalContentType(sf.MIMEType, cls.Format)); err != nil {
		return Outcome{}, failure(KindStorageUnavailable, "Resume storage is currently unavailable", err)
	}

	keywords, err := p.analyzer.AnalyzeEntities(ctx, res.Text)
	if err != nil {
		return Outcome{}, failure(KindAnalysisUnavailable, "Keyword analysis is currently unavailable", err)
	}

	outputName := OutputFileName(cls.FileName)
	rf, err := p.renderer.Render(EnhancedText(res.Text, keywords), outputName)
	if err != nil {
		return Outcome{}, failure(KindRenderError, "Failed to generate enhanced resume", err)
	}
	defer rf.Cleanup()

	if err := p.uploadFile(ctx, p.outputBucket, outputName, rf.Path, "application/pdf"); err != nil {
		return Outcome{}, failure(KindStorageUnavailable, "Resume storage is currently unavailable", err)
	}

	return Outcome{
		Message:     "Resume uploaded and processed",
		DownloadURL: p.store.PublicURL(p.outputBucket, outputName),
		Keywords:    len(keywords),
	}, nil
}

func (p *Pipeline) uploadFile(ctx context.Context, bucket, object, path, contentType string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return p.store.Upload(ctx, bucket, object, f, contentType)
}

// EnhancedText appends the keyword-suggestion section to the extracted text.
// Keyword order and duplicates are whatever the analyzer returned.
func EnhancedText(text string, keywords []string) string {
	return text + "\n\nSuggested Keywords to Include:\n" + strings.Join(keywords, ", ")
}

func originalContentType(sniffed string, f Format) string {
	if sniffed != "" {
		return sniffed
	}
	return f.MIMEType()
}
