// Package export writes the save history of a notebook, with the flashcards of every save, to files.
package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/at-ishikawa/flashnote/internal/assets"
	"github.com/at-ishikawa/flashnote/internal/logger"
	"github.com/at-ishikawa/flashnote/internal/notebook"
	"github.com/at-ishikawa/flashnote/internal/pdf"
	"github.com/at-ishikawa/flashnote/internal/saving"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

type Options struct {
	OutputDir string
	PDF       bool
}

type Result struct {
	MarkdownPath string
	// PDFPath is empty unless a PDF was requested.
	PDFPath string
	Saves   int
}

type Exporter struct {
	notebooks    notebook.NotebookRepository
	history      *saving.History
	templatePath string
	logger       logger.Logger
	now          func() time.Time
}

// NewExporter creates an Exporter. templatePath may be empty to use the embedded template.
func NewExporter(notebooks notebook.NotebookRepository, history *saving.History, templatePath string, log logger.Logger) *Exporter {
	return &Exporter{
		notebooks:    notebooks,
		history:      history,
		templatePath: templatePath,
		logger:       log,
		now:          time.Now,
	}
}

func (e *Exporter) Export(ctx context.Context, notebookID int64, opts Options) (*Result, error) {
	data, err := e.collect(ctx, notebookID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := assets.WriteSaveHistory(&buf, e.templatePath, *data, e.logger); err != nil {
		return nil, fmt.Errorf("render notebook %d: %w", notebookID, err)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	mdPath := filepath.Join(opts.OutputDir, fileName(notebookID, data.Title))
	if err := os.WriteFile(mdPath, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("write %s: %w", mdPath, err)
	}
	result := &Result{MarkdownPath: mdPath, Saves: len(data.Saves)}

	if opts.PDF {
		pdfPath, err := pdf.ConvertMarkdownFile(mdPath, pdf.Options{})
		if err != nil {
			return nil, err
		}
		result.PDFPath = pdfPath
	}

	e.logger.Info("notebook exported",
		logger.Int64("notebook_id", notebookID),
		logger.String("path", mdPath),
		logger.Int("saves", len(data.Saves)))
	return result, nil
}

func (e *Exporter) collect(ctx context.Context, notebookID int64) (*assets.SaveHistory, error) {
	nb, err := e.notebooks.FindByID(ctx, notebookID)
	if err != nil {
		return nil, err
	}
	studySet, err := e.notebooks.FindStudySet(ctx, nb.StudySetID)
	if err != nil {
		return nil, err
	}
	saves, err := e.history.ListSaves(ctx, notebookID)
	if err != nil {
		return nil, err
	}

	data := &assets.SaveHistory{
		Title:      nb.Title,
		StudySet:   studySet.Name,
		ExportedAt: e.now(),
		Saves:      make([]assets.SaveHistoryEntry, 0, len(saves)),
	}
	for _, s := range saves {
		cards, err := e.history.LinkedFlashcards(ctx, s.ID)
		if err != nil {
			return nil, fmt.Errorf("load flashcards of save %d: %w", s.ID, err)
		}
		entry := assets.SaveHistoryEntry{
			ID:      s.ID,
			SavedAt: s.SavedAt,
			Delta:   s.Delta,
		}
		for _, c := range cards {
			entry.Flashcards = append(entry.Flashcards, assets.SaveHistoryCard{
				Question: c.Question,
				Answer:   c.Answer,
				Category: c.Category,
			})
		}
		data.Saves = append(data.Saves, entry)
	}
	return data, nil
}

func fileName(notebookID int64, title string) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if slug == "" {
		return fmt.Sprintf("notebook-%d.md", notebookID)
	}
	return fmt.Sprintf("notebook-%d-%s.md", notebookID, slug)
}
