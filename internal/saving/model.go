package saving

import "time"

// FlashcardPreview is an unpersisted candidate flashcard shown for edit and approval.
type FlashcardPreview struct {
	TempID   string `json:"tempId" yaml:"temp_id"`
	Question string `json:"question" yaml:"question" validate:"required"`
	Answer   string `json:"answer" yaml:"answer" validate:"required"`
	Category string `json:"category" yaml:"category"`
}

type PrepareRequest struct {
	NotebookID int64  `json:"notebookId" validate:"gt=0"`
	Content    string `json:"content"`
}

type PrepareResult struct {
	NotebookID     int64              `json:"notebookId"`
	StudySetID     int64              `json:"studySetId"`
	HasNewContent  bool               `json:"hasNewContent"`
	IsFirstSave    bool               `json:"isFirstSave"`
	Delta          string             `json:"delta"`
	SuggestedCount int                `json:"suggestedCount"`
	Flashcards     []FlashcardPreview `json:"flashcards"`
	// BaseRevision is the notebook revision the delta was computed against. Pass it back to Confirm.
	BaseRevision int64 `json:"baseRevision"`
}

type ConfirmRequest struct {
	NotebookID int64  `json:"notebookId" validate:"gt=0"`
	StudySetID int64  `json:"studySetId" validate:"gt=0"`
	Content    string `json:"content"`
	// Delta is recomputed from the notebook baseline when empty.
	Delta          string             `json:"delta"`
	Flashcards     []FlashcardPreview `json:"flashcards" validate:"dive"`
	BaseRevision   int64              `json:"baseRevision" validate:"gte=0"`
	IdempotencyKey string             `json:"-" validate:"omitempty,max=128"`
}

type ConfirmResult struct {
	SaveID       int64   `json:"saveId"`
	FlashcardIDs []int64 `json:"flashcardIds"`
}

type RegenerateRequest struct {
	SaveID     int64 `json:"saveId" validate:"gt=0"`
	StudySetID int64 `json:"studySetId" validate:"gt=0"`
}

type RegenerateResult struct {
	SaveID         int64              `json:"saveId"`
	NotebookID     int64              `json:"notebookId"`
	StudySetID     int64              `json:"studySetId"`
	Delta          string             `json:"delta"`
	SuggestedCount int                `json:"suggestedCount"`
	Flashcards     []FlashcardPreview `json:"flashcards"`
}

type ConfirmRegenerationRequest struct {
	SaveID     int64              `json:"saveId" validate:"gt=0"`
	StudySetID int64              `json:"studySetId" validate:"gt=0"`
	Flashcards []FlashcardPreview `json:"flashcards" validate:"dive"`
}

// NotebookEntry summarizes a notebook for listings.
type NotebookEntry struct {
	ID                  int64      `json:"id" yaml:"id"`
	StudySetID          int64      `json:"studySetId" yaml:"study_set_id"`
	Title               string     `json:"title" yaml:"title"`
	FlashcardsGenerated int        `json:"flashcardsGenerated" yaml:"flashcards_generated"`
	Revision            int64      `json:"revision" yaml:"revision"`
	LastSavedAt         *time.Time `json:"lastSavedAt,omitempty" yaml:"last_saved_at,omitempty"`
}

// SaveEntry is one row of a notebook's save history.
type SaveEntry struct {
	ID                  int64     `json:"id" yaml:"id"`
	NotebookID          int64     `json:"notebookId" yaml:"notebook_id"`
	SavedAt             time.Time `json:"savedAt" yaml:"saved_at"`
	FlashcardsGenerated int       `json:"flashcardsGenerated" yaml:"flashcards_generated"`
	Delta               string    `json:"delta" yaml:"delta"`
	// CanRegenerate is false for saves without a stored delta.
	CanRegenerate bool `json:"canRegenerate" yaml:"can_regenerate"`
}
