// Package pdf renders exported markdown as PDF.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"
)

type Options struct {
	// Orientation is "P" or "L". Defaults to portrait.
	Orientation string
	// PaperSize defaults to A4.
	PaperSize string
	Dark      bool
}

// ConvertMarkdownFile writes a PDF next to markdownPath and returns its absolute path.
func ConvertMarkdownFile(markdownPath string, opts Options) (string, error) {
	if !strings.HasSuffix(markdownPath, ".md") {
		return "", fmt.Errorf("input file must have .md extension: %s", markdownPath)
	}
	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", markdownPath, err)
	}

	pdfPath := strings.TrimSuffix(markdownPath, ".md") + ".pdf"
	if err := Render(content, pdfPath, opts); err != nil {
		return "", err
	}
	if abs, err := filepath.Abs(pdfPath); err == nil {
		return abs, nil
	}
	return pdfPath, nil
}

// Render writes markdown to pdfPath.
func Render(markdown []byte, pdfPath string, opts Options) error {
	orientation := opts.Orientation
	if orientation == "" {
		orientation = "P"
	}
	paper := opts.PaperSize
	if paper == "" {
		paper = "A4"
	}
	theme := mdtopdf.LIGHT
	if opts.Dark {
		theme = mdtopdf.DARK
	}

	renderer := mdtopdf.NewPdfRenderer(orientation, paper, pdfPath, "", nil, theme)
	if err := renderer.Process(markdown); err != nil {
		return fmt.Errorf("render %s: %w", pdfPath, err)
	}
	return nil
}
