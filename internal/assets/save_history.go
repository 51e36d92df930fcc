package assets

import (
	_ "embed"
	"fmt"
	"io"
	"time"

	"github.com/at-ishikawa/flashnote/internal/logger"
)

const saveHistoryTemplateName = "save-history.md.go.tmpl"

//go:embed templates/save-history.md.go.tmpl
var fallbackSaveHistoryTemplate string

// SaveHistory is the data of an exported notebook history.
type SaveHistory struct {
	Title      string
	StudySet   string
	ExportedAt time.Time
	Saves      []SaveHistoryEntry
}

type SaveHistoryEntry struct {
	ID         int64
	SavedAt    time.Time
	Delta      string
	Flashcards []SaveHistoryCard
}

type SaveHistoryCard struct {
	Question string
	Answer   string
	Category string
}

// WriteSaveHistory renders data with the template at templatePath, or the embedded one.
func WriteSaveHistory(output io.Writer, templatePath string, data SaveHistory, log logger.Logger) error {
	tmpl, err := parseTemplateWithFallback(templatePath, saveHistoryTemplateName, fallbackSaveHistoryTemplate, log)
	if err != nil {
		return err
	}
	if err := tmpl.Execute(output, data); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}
	return nil
}
