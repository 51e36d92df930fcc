package saving

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=draft.go -destination=../mocks/saving/mock_draft_store.go -package=mock_saving

type DraftKind string

const (
	DraftKindSave         DraftKind = "save"
	DraftKindRegeneration DraftKind = "regeneration"
)

var ErrPreviewNotFound = errors.New("preview not found")

// Draft keeps the previews of a prepare or regenerate call while the user edits them.
type Draft struct {
	ID             string             `json:"id"`
	Kind           DraftKind          `json:"kind"`
	NotebookID     int64              `json:"notebookId"`
	SaveID         int64              `json:"saveId,omitempty"`
	StudySetID     int64              `json:"studySetId"`
	Content        string             `json:"content,omitempty"`
	Delta          string             `json:"delta"`
	BaseRevision   int64              `json:"baseRevision"`
	SuggestedCount int                `json:"suggestedCount"`
	Flashcards     []FlashcardPreview `json:"flashcards"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// DraftStore keeps drafts between requests.
type DraftStore interface {
	Put(ctx context.Context, draft *Draft) error
	Get(ctx context.Context, id string) (*Draft, error)
	Delete(ctx context.Context, id string) error
}

// PreviewEdit holds the fields to change on a preview. Nil fields are left as they are.
type PreviewEdit struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
	Category *string `json:"category"`
}

// NewSaveDraft builds a draft from a prepare call. content is the rich content that was prepared.
func NewSaveDraft(result *PrepareResult, content string, now time.Time) *Draft {
	return &Draft{
		ID:             uuid.NewString(),
		Kind:           DraftKindSave,
		NotebookID:     result.NotebookID,
		StudySetID:     result.StudySetID,
		Content:        content,
		Delta:          result.Delta,
		BaseRevision:   result.BaseRevision,
		SuggestedCount: result.SuggestedCount,
		Flashcards:     result.Flashcards,
		CreatedAt:      now,
	}
}

// NewRegenerationDraft builds a draft from a regenerate call.
func NewRegenerationDraft(result *RegenerateResult, now time.Time) *Draft {
	return &Draft{
		ID:             uuid.NewString(),
		Kind:           DraftKindRegeneration,
		NotebookID:     result.NotebookID,
		SaveID:         result.SaveID,
		StudySetID:     result.StudySetID,
		Delta:          result.Delta,
		SuggestedCount: result.SuggestedCount,
		Flashcards:     result.Flashcards,
		CreatedAt:      now,
	}
}

// EditPreview applies edit to the preview with tempID.
func (d *Draft) EditPreview(tempID string, edit PreviewEdit) error {
	for i := range d.Flashcards {
		if d.Flashcards[i].TempID != tempID {
			continue
		}
		p := d.Flashcards[i]
		if edit.Question != nil {
			p.Question = strings.TrimSpace(*edit.Question)
		}
		if edit.Answer != nil {
			p.Answer = strings.TrimSpace(*edit.Answer)
		}
		if edit.Category != nil {
			p.Category = strings.TrimSpace(*edit.Category)
		}
		if p.Question == "" || p.Answer == "" {
			return fmt.Errorf("%w: question and answer must not be empty", ErrInvalidRequest)
		}
		d.Flashcards[i] = p
		return nil
	}
	return fmt.Errorf("preview %s: %w", tempID, ErrPreviewNotFound)
}

// RemovePreview drops the preview with tempID.
func (d *Draft) RemovePreview(tempID string) error {
	for i := range d.Flashcards {
		if d.Flashcards[i].TempID == tempID {
			d.Flashcards = append(d.Flashcards[:i], d.Flashcards[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("preview %s: %w", tempID, ErrPreviewNotFound)
}

// ConfirmRequest turns a save draft into the request that persists it.
func (d *Draft) ConfirmRequest(idempotencyKey string) ConfirmRequest {
	return ConfirmRequest{
		NotebookID:     d.NotebookID,
		StudySetID:     d.StudySetID,
		Content:        d.Content,
		Delta:          d.Delta,
		Flashcards:     d.Flashcards,
		BaseRevision:   d.BaseRevision,
		IdempotencyKey: idempotencyKey,
	}
}

// ConfirmRegenerationRequest turns a regeneration draft into the request that persists it.
func (d *Draft) ConfirmRegenerationRequest() ConfirmRegenerationRequest {
	return ConfirmRegenerationRequest{
		SaveID:     d.SaveID,
		StudySetID: d.StudySetID,
		Flashcards: d.Flashcards,
	}
}
