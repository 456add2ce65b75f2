package extract

import "context"

// Extractor is implemented by every document-format handler.
type Extractor interface {
	Extract(ctx context.Context, job Job) (Result, error)
	SupportedTypes() []string
	SupportedExtensions() []string
	Name() string
}
