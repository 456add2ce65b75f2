package pipeline

import (
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	defaultPDFName  = "raw_resume.pdf"
	defaultDOCXName = "raw_resume.docx"
)

func (f Format) MIMEType() string {
	if f == FormatDOCX {
		return mimeDOCX
	}
	return mimePDF
}

func (f Format) Extension() string {
	if f == FormatDOCX {
		return ".docx"
	}
	return ".pdf"
}

// Source carries everything classification is allowed to look at. Dispatch is
// a pure function of content type and filename, never of the payload bytes.
type Source struct {
	ContentType string
	Multipart   bool
	HasFile     bool
	FileName    string
}

type Classification struct {
	Format   Format
	FileName string
}

// Classify resolves an incoming request to exactly one supported format or
// rejects it, before any extraction work is spent on it.
func Classify(src Source) (Classification, *Error) {
	if src.Multipart {
		if !src.HasFile {
			return Classification{}, failure(KindMissingFile, "No file uploaded", nil)
		}

		name := SanitizeFileName(src.FileName)
		lower := strings.ToLower(name)
		switch {
		case strings.HasSuffix(lower, ".pdf"):
			return Classification{Format: FormatPDF, FileName: name}, nil
		case strings.HasSuffix(lower, ".docx"):
			return Classification{Format: FormatDOCX, FileName: name}, nil
		}
		return Classification{}, failure(KindUnsupportedFormat, "Only PDF or DOCX resumes are supported", nil)
	}

	switch strings.TrimSpace(src.ContentType) {
	case mimePDF:
		return Classification{Format: FormatPDF, FileName: defaultPDFName}, nil
	case mimeDOCX:
		return Classification{Format: FormatDOCX, FileName: defaultDOCXName}, nil
	}
	return Classification{}, failure(KindUnsupportedFormat, "Unsupported file format or content type", nil)
}

// SanitizeFileName flattens a client-supplied filename to a safe object key:
// base name only, whitespace collapsed to underscores, anything outside
// [A-Za-z0-9._-] dropped.
func SanitizeFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			sb.WriteRune(r)
		case r == ' ' || r == '\t':
			sb.WriteRune('_')
		}
	}
	return strings.Trim(sb.String(), "._")
}

// OutputFileName derives the enhanced artifact's name the same way the
// service always has: plain substring substitution. A name with neither
// suffix passes through unchanged.
func OutputFileName(name string) string {
	name = strings.ReplaceAll(name, ".pdf", "_enhanced.pdf")
	return strings.ReplaceAll(name, ".docx", "_enhanced.pdf")
}
