package saving

import (
	"context"
	"strings"

	"github.com/at-ishikawa/flashnote/internal/notebook"
)

// History reads the save history of notebooks.
type History struct {
	notebooks  notebook.NotebookRepository
	saves      notebook.SaveRepository
	flashcards notebook.FlashcardRepository
}

func NewHistory(notebooks notebook.NotebookRepository, saves notebook.SaveRepository, flashcards notebook.FlashcardRepository) *History {
	return &History{
		notebooks:  notebooks,
		saves:      saves,
		flashcards: flashcards,
	}
}

// ListNotebooks returns the notebooks of a study set, or of every study set when studySetID is zero.
func (h *History) ListNotebooks(ctx context.Context, studySetID int64) ([]NotebookEntry, error) {
	if studySetID != 0 {
		if _, err := h.notebooks.FindStudySet(ctx, studySetID); err != nil {
			return nil, err
		}
	}
	notebooks, err := h.notebooks.List(ctx, studySetID)
	if err != nil {
		return nil, err
	}

	entries := make([]NotebookEntry, 0, len(notebooks))
	for _, n := range notebooks {
		entries = append(entries, NotebookEntry{
			ID:                  n.ID,
			StudySetID:          n.StudySetID,
			Title:               n.Title,
			FlashcardsGenerated: n.FlashcardsGenerated,
			Revision:            n.Revision,
			LastSavedAt:         n.LastSavedAt,
		})
	}
	return entries, nil
}

// ListSaves returns the saves of a notebook, newest first.
func (h *History) ListSaves(ctx context.Context, notebookID int64) ([]SaveEntry, error) {
	if _, err := h.notebooks.FindByID(ctx, notebookID); err != nil {
		return nil, err
	}
	saves, err := h.saves.ListByNotebook(ctx, notebookID)
	if err != nil {
		return nil, err
	}

	entries := make([]SaveEntry, 0, len(saves))
	for _, s := range saves {
		delta := s.Delta()
		entries = append(entries, SaveEntry{
			ID:                  s.ID,
			NotebookID:          s.NotebookID,
			SavedAt:             s.SavedAt,
			FlashcardsGenerated: s.FlashcardsGenerated,
			Delta:               delta,
			CanRegenerate:       strings.TrimSpace(delta) != "",
		})
	}
	return entries, nil
}

// LinkedFlashcardIDs returns the ids of the flashcards a save produced.
func (h *History) LinkedFlashcardIDs(ctx context.Context, saveID int64) ([]int64, error) {
	if _, err := h.saves.FindByID(ctx, saveID); err != nil {
		return nil, err
	}
	ids, err := h.saves.LinkedFlashcardIDs(ctx, saveID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

// LinkedFlashcards returns the flashcards a save produced.
func (h *History) LinkedFlashcards(ctx context.Context, saveID int64) ([]notebook.Flashcard, error) {
	if _, err := h.saves.FindByID(ctx, saveID); err != nil {
		return nil, err
	}
	cards, err := h.flashcards.FindBySave(ctx, saveID)
	if err != nil {
		return nil, err
	}
	if cards == nil {
		cards = []notebook.Flashcard{}
	}
	return cards, nil
}
