// Package notebook provides the persisted notebook, save, and flashcard models and their repositories.
package notebook

import (
	"errors"
	"time"
	"unicode/utf8"
)

const (
	// DefaultCategory is used for flashcards created without a category.
	DefaultCategory = "General"
	// SourceLabel marks flashcards that were derived from notebook content.
	SourceLabel = "notebook"

	maxLabelLength = 255
)

var (
	ErrNotFound         = errors.New("not found")
	ErrRevisionConflict = errors.New("notebook revision changed")
)

// StudySet is the collection that owns notebooks and flashcards.
type StudySet struct {
	ID        int64     `db:"id" yaml:"id"`
	Name      string    `db:"name" yaml:"name"`
	CreatedAt time.Time `db:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `db:"updated_at" yaml:"updated_at"`
}

// Notebook holds the live content and the baseline of the last flashcard-generating save.
// LastSavedContent is nil until the first save.
type Notebook struct {
	ID                  int64      `db:"id" yaml:"id"`
	StudySetID          int64      `db:"study_set_id" yaml:"study_set_id"`
	Title               string     `db:"title" yaml:"title"`
	Content             string     `db:"content" yaml:"content"`
	LastSavedContent    *string    `db:"last_saved_content" yaml:"last_saved_content,omitempty"`
	LastSavedAt         *time.Time `db:"last_saved_at" yaml:"last_saved_at,omitempty"`
	FlashcardsGenerated int        `db:"flashcards_generated" yaml:"flashcards_generated"`
	Revision            int64      `db:"revision" yaml:"revision"`
	CreatedAt           time.Time  `db:"created_at" yaml:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" yaml:"updated_at"`
}

// IsFirstSave reports whether the notebook has never been saved with flashcard generation.
func (n Notebook) IsFirstSave() bool {
	return n.LastSavedContent == nil
}

// Save is an immutable record of one flashcard-generating save.
type Save struct {
	ID                  int64     `db:"id" yaml:"id"`
	NotebookID          int64     `db:"notebook_id" yaml:"notebook_id"`
	ContentSnapshot     string    `db:"content_snapshot" yaml:"content_snapshot"`
	NewContentDelta     *string   `db:"new_content_delta" yaml:"new_content_delta,omitempty"`
	FlashcardsGenerated int       `db:"flashcards_generated" yaml:"flashcards_generated"`
	SavedAt             time.Time `db:"saved_at" yaml:"saved_at"`
}

// Delta returns the stored delta, or "" when none was recorded.
func (s Save) Delta() string {
	if s.NewContentDelta == nil {
		return ""
	}
	return *s.NewContentDelta
}

type Flashcard struct {
	ID            int64     `db:"id" yaml:"id"`
	StudySetID    int64     `db:"study_set_id" yaml:"study_set_id"`
	Question      string    `db:"question" yaml:"question"`
	Answer        string    `db:"answer" yaml:"answer"`
	Category      string    `db:"category" yaml:"category"`
	IsAIGenerated bool      `db:"is_ai_generated" yaml:"is_ai_generated"`
	SourceLabel   string    `db:"source_label" yaml:"source_label"`
	CreatedAt     time.Time `db:"created_at" yaml:"created_at"`
}

type FlashcardLink struct {
	ID          int64 `db:"id" yaml:"id"`
	SaveID      int64 `db:"save_id" yaml:"save_id"`
	FlashcardID int64 `db:"flashcard_id" yaml:"flashcard_id"`
}

// NewFlashcard is a flashcard about to be inserted by a save.
type NewFlashcard struct {
	StudySetID  int64
	Question    string
	Answer      string
	Category    string
	SourceLabel string
}

// SourceLabelFor returns the source label stored on flashcards generated from a notebook.
func SourceLabelFor(title string) string {
	label := SourceLabel + ":" + title
	if utf8.RuneCountInString(label) <= maxLabelLength {
		return label
	}
	runes := []rune(label)
	return string(runes[:maxLabelLength])
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
