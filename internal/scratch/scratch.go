// Package scratch manages per-request temp files. Every request gets its own
// directory so concurrent uploads can never collide on a shared path.
package scratch

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type File struct {
	TempDir  string
	Path     string
	MIMEType string
	Size     int64
}

func (f File) Cleanup() {
	if f.TempDir != "" {
		_ = os.RemoveAll(f.TempDir)
	}
}

// Save writes body to a fresh temp directory under fileName, sniffs the MIME
// type of what actually landed on disk, and returns a handle. The caller owns
// Cleanup on every exit path.
func Save(body io.Reader, fileName string, maxBytes int64) (File, error) {
	tmpDir, err := os.MkdirTemp("", "resume-*")
	if err != nil {
		return File{}, fmt.Errorf("temp dir: %w", err)
	}

	safeName := strings.TrimSpace(fileName)
	if safeName == "" {
		safeName = "input.bin"
	}
	outPath := filepath.Join(tmpDir, filepath.Base(safeName))

	f, err := os.Create(outPath)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return File{}, fmt.Errorf("create: %w", err)
	}
	defer f.Close()

	lr := &io.LimitedReader{R: body, N: maxBytes + 1}
	n, err := io.Copy(f, lr)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return File{}, fmt.Errorf("write: %w", err)
	}
	if n > maxBytes {
		_ = os.RemoveAll(tmpDir)
		return File{}, fmt.Errorf("file exceeds %dMB limit", maxBytes/(1<<20))
	}

	if err := f.Sync(); err != nil {
		_ = os.RemoveAll(tmpDir)
		return File{}, fmt.Errorf("sync: %w", err)
	}

	return File{
		TempDir:  tmpDir,
		Path:     outPath,
		MIMEType: sniffMIMEType(outPath),
		Size:     n,
	}, nil
}

// Dir creates a fresh scratch directory for callers that produce their own
// files (e.g. the renderer). Remove it with os.RemoveAll when done.
func Dir() (string, error) {
	dir, err := os.MkdirTemp("", "resume-*")
	if err != nil {
		return "", fmt.Errorf("temp dir: %w", err)
	}
	return dir, nil
}

func sniffMIMEType(path string) string {
	m, err := mimetype.DetectFile(path)
	if err == nil && m != nil {
		return strings.ToLower(strings.TrimSpace(m.String()))
	}

	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, _ := f.Read(buf)
	if n <= 0 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(http.DetectContentType(buf[:n])))
}
