// Package render produces the enhanced-resume PDF. The layout is fixed:
// US Letter, a title block near the top, then one line of content per input
// line until the page runs out. Overflow is truncated, never an error.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/resumelift/resume-enhancer/internal/scratch"
)

const (
	pageHeightPt = 792 // US Letter, points

	marginLeft   = 100
	titleY       = 750 // measured from the page bottom, reportlab-style
	dateY        = 735
	headerY      = 700
	bodyStartY   = 680
	lineHeightPt = 15
	bottomMargin = 100

	maxLineRunes = 100
)

type File struct {
	TempDir string
	Path    string
}

func (f File) Cleanup() {
	if f.TempDir != "" {
		_ = os.RemoveAll(f.TempDir)
	}
}

type Renderer struct {
	now func() time.Time
}

func New() *Renderer {
	return &Renderer{now: time.Now}
}

// Render writes a single-page PDF for text into a fresh scratch directory
// under fileName and returns a handle for upload. The caller owns Cleanup.
func (r *Renderer) Render(text, fileName string) (File, error) {
	dir, err := scratch.Dir()
	if err != nil {
		return File{}, fmt.Errorf("render scratch: %w", err)
	}
	outPath := filepath.Join(dir, filepath.Base(fileName))

	doc := gofpdf.New("P", "pt", "Letter", "")
	doc.SetCreationDate(r.now())
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)

	doc.Text(marginLeft, fromBottom(titleY), "AI-Enhanced Resume")
	doc.Text(marginLeft, fromBottom(dateY), "Generated on "+r.now().Format("2006-01-02"))
	doc.Text(marginLeft, fromBottom(headerY), "Content Preview:")

	y := float64(bodyStartY)
	for _, line := range strings.Split(text, "\n") {
		if y < bottomMargin {
			break
		}
		doc.Text(marginLeft, fromBottom(y), truncateLine(line))
		y -= lineHeightPt
	}

	if err := doc.OutputFileAndClose(outPath); err != nil {
		_ = os.RemoveAll(dir)
		return File{}, fmt.Errorf("write pdf: %w", err)
	}

	return File{TempDir: dir, Path: outPath}, nil
}

// fromBottom converts a bottom-origin y coordinate to gofpdf's top-origin.
func fromBottom(y float64) float64 {
	return pageHeightPt - y
}

func truncateLine(line string) string {
	runes := []rune(line)
	if len(runes) <= maxLineRunes {
		return line
	}
	return string(runes[:maxLineRunes])
}
