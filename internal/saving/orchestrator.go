// Package saving runs the two-phase save workflow that turns new notebook text into flashcards,
// and the history operations that regenerate flashcards of a past save.
package saving

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/at-ishikawa/flashnote/internal/content"
	"github.com/at-ishikawa/flashnote/internal/inference"
	"github.com/at-ishikawa/flashnote/internal/logger"
	"github.com/at-ishikawa/flashnote/internal/notebook"
)

const (
	// minimum trimmed runes of new text before flashcards are generated
	firstSaveThreshold = 5
	resaveThreshold    = 10

	existingFlashcardSample = 50
)

// Orchestrator drives a save through its states:
//
//	Idle -> Preparing -> Previewing -> Confirming -> Saved
//	Previewing -> Regenerating -> Previewing
//	Previewing -> Idle (cancel)
//
// The states live with the caller. Prepare and Regenerate only read; Confirm and
// ConfirmRegeneration write inside a single transaction each.
type Orchestrator struct {
	notebooks   notebook.NotebookRepository
	saves       notebook.SaveRepository
	flashcards  notebook.FlashcardRepository
	generator   inference.Client
	idempotency IdempotencyStore
	validate    *validator.Validate
	logger      logger.Logger

	now   func() time.Time
	newID func() string
}

// NewOrchestrator creates an Orchestrator. idempotency may be nil, in which case
// idempotency keys are accepted but not enforced.
func NewOrchestrator(
	notebooks notebook.NotebookRepository,
	saves notebook.SaveRepository,
	flashcards notebook.FlashcardRepository,
	generator inference.Client,
	idempotency IdempotencyStore,
	log logger.Logger,
) *Orchestrator {
	if idempotency == nil {
		idempotency = noopIdempotencyStore{}
	}
	return &Orchestrator{
		notebooks:   notebooks,
		saves:       saves,
		flashcards:  flashcards,
		generator:   generator,
		idempotency: idempotency,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		logger:      log,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Prepare computes what is new since the last save and asks the AI for preview flashcards.
// Nothing is persisted.
func (o *Orchestrator) Prepare(ctx context.Context, req PrepareRequest) (*PrepareResult, error) {
	if err := o.validateRequest(req); err != nil {
		return nil, err
	}

	nb, err := o.notebooks.FindByID(ctx, req.NotebookID)
	if err != nil {
		return nil, err
	}

	delta := content.ComputeDelta(req.Content, nb.LastSavedContent)
	result := &PrepareResult{
		NotebookID:   nb.ID,
		StudySetID:   nb.StudySetID,
		IsFirstSave:  nb.IsFirstSave(),
		BaseRevision: nb.Revision,
		Flashcards:   []FlashcardPreview{},
	}

	threshold := resaveThreshold
	if nb.IsFirstSave() {
		threshold = firstSaveThreshold
	}
	if utf8.RuneCountInString(strings.TrimSpace(delta)) < threshold {
		o.logger.Debug("no new content to generate flashcards from",
			logger.Int64("notebook_id", nb.ID),
			logger.Int("delta_length", utf8.RuneCountInString(delta)))
		return result, nil
	}

	suggested := content.SuggestCount(delta)
	var previous string
	if nb.LastSavedContent != nil {
		previous = content.Normalize(*nb.LastSavedContent)
	}
	previews, err := o.generate(ctx, nb, nb.StudySetID, delta, previous, suggested)
	if err != nil {
		return nil, err
	}

	result.HasNewContent = true
	result.Delta = delta
	result.SuggestedCount = suggested
	result.Flashcards = previews
	return result, nil
}

// Confirm persists the approved flashcards, the save record, their links and the new notebook baseline
// in one transaction. A retried request with the same idempotency key returns the first result.
func (o *Orchestrator) Confirm(ctx context.Context, req ConfirmRequest) (*ConfirmResult, error) {
	if err := o.validateRequest(req); err != nil {
		return nil, err
	}
	if req.IdempotencyKey == "" {
		return o.confirm(ctx, req)
	}

	key := confirmKey(req.NotebookID, req.IdempotencyKey)
	completed, acquired, err := o.idempotency.Reserve(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("reserve idempotency key: %w", err)
	}
	if completed != nil {
		return o.storedResult(req.NotebookID, completed)
	}
	if !acquired {
		return nil, ErrConfirmInProgress
	}

	result, err := o.confirm(ctx, req)
	if err != nil {
		if releaseErr := o.idempotency.Release(ctx, key); releaseErr != nil {
			o.logger.Warn("failed to release idempotency key", logger.String("key", key), logger.Error(releaseErr))
		}
		return nil, err
	}

	payload, err := json.Marshal(result)
	if err == nil {
		err = o.idempotency.Complete(ctx, key, payload)
	}
	if err != nil {
		o.logger.Warn("failed to record confirm result", logger.String("key", key), logger.Error(err))
	}
	return result, nil
}

// ConfirmedResult returns the result recorded by an earlier Confirm with the same idempotency key.
// It returns ErrNotFound when no confirm with that key has finished.
func (o *Orchestrator) ConfirmedResult(ctx context.Context, notebookID int64, idempotencyKey string) (*ConfirmResult, error) {
	key := confirmKey(notebookID, idempotencyKey)
	completed, acquired, err := o.idempotency.Reserve(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("reserve idempotency key: %w", err)
	}
	if completed != nil {
		return o.storedResult(notebookID, completed)
	}
	if !acquired {
		return nil, ErrConfirmInProgress
	}
	if err := o.idempotency.Release(ctx, key); err != nil {
		o.logger.Warn("failed to release idempotency key", logger.String("key", key), logger.Error(err))
	}
	return nil, fmt.Errorf("confirm %q for notebook %d: %w", idempotencyKey, notebookID, ErrNotFound)
}

func confirmKey(notebookID int64, idempotencyKey string) string {
	return fmt.Sprintf("confirm:%d:%s", notebookID, idempotencyKey)
}

func (o *Orchestrator) storedResult(notebookID int64, completed []byte) (*ConfirmResult, error) {
	var previous ConfirmResult
	if err := json.Unmarshal(completed, &previous); err != nil {
		return nil, fmt.Errorf("decode stored confirm result: %w", err)
	}
	o.logger.Info("returning stored confirm result",
		logger.Int64("notebook_id", notebookID),
		logger.Int64("save_id", previous.SaveID))
	return &previous, nil
}

func (o *Orchestrator) confirm(ctx context.Context, req ConfirmRequest) (*ConfirmResult, error) {
	nb, err := o.notebooks.FindByID(ctx, req.NotebookID)
	if err != nil {
		return nil, err
	}
	if err := checkStudySet(nb, req.StudySetID); err != nil {
		return nil, err
	}
	if nb.Revision != req.BaseRevision {
		return nil, fmt.Errorf("notebook %d is at revision %d, not %d: %w", nb.ID, nb.Revision, req.BaseRevision, ErrBaselineConflict)
	}

	delta := req.Delta
	if delta == "" {
		delta = content.ComputeDelta(req.Content, nb.LastSavedContent)
	}

	committed, err := o.saves.Commit(ctx, notebook.SaveCommit{
		NotebookID:   nb.ID,
		BaseRevision: req.BaseRevision,
		Content:      req.Content,
		Delta:        delta,
		Flashcards:   newFlashcards(req.Flashcards, nb),
		SavedAt:      o.now(),
	})
	if err != nil {
		if errors.Is(err, notebook.ErrRevisionConflict) {
			return nil, fmt.Errorf("confirm notebook %d: %w", nb.ID, ErrBaselineConflict)
		}
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	o.adjustCounter(ctx, nb.ID, len(committed.FlashcardIDs))
	o.logger.Info("notebook saved",
		logger.Int64("notebook_id", nb.ID),
		logger.Int64("save_id", committed.SaveID),
		logger.Int("flashcards", len(committed.FlashcardIDs)))

	return &ConfirmResult{SaveID: committed.SaveID, FlashcardIDs: committed.FlashcardIDs}, nil
}

// SaveContentOnly stores the live content without generating flashcards.
// The baseline used for the next delta stays where it was.
func (o *Orchestrator) SaveContentOnly(ctx context.Context, notebookID int64, content string) error {
	if notebookID <= 0 {
		return fmt.Errorf("%w: notebook id must be positive", ErrInvalidRequest)
	}
	return o.notebooks.UpdateContent(ctx, notebookID, content, o.now())
}

// Regenerate asks the AI for new previews from the delta stored on a past save.
// Nothing is deleted or written until ConfirmRegeneration.
func (o *Orchestrator) Regenerate(ctx context.Context, req RegenerateRequest) (*RegenerateResult, error) {
	if err := o.validateRequest(req); err != nil {
		return nil, err
	}

	save, err := o.saves.FindByID(ctx, req.SaveID)
	if err != nil {
		return nil, err
	}
	delta := strings.TrimSpace(save.Delta())
	if delta == "" {
		return nil, fmt.Errorf("save %d: %w", save.ID, ErrNothingToRegenerate)
	}

	nb, err := o.notebooks.FindByID(ctx, save.NotebookID)
	if err != nil {
		return nil, err
	}
	if err := checkStudySet(nb, req.StudySetID); err != nil {
		return nil, err
	}

	suggested := content.SuggestCount(delta)
	previews, err := o.generate(ctx, nb, req.StudySetID, delta, "", suggested)
	if err != nil {
		return nil, err
	}

	return &RegenerateResult{
		SaveID:         save.ID,
		NotebookID:     nb.ID,
		StudySetID:     req.StudySetID,
		Delta:          delta,
		SuggestedCount: suggested,
		Flashcards:     previews,
	}, nil
}

// ConfirmRegeneration replaces every flashcard linked to the save with the approved ones.
func (o *Orchestrator) ConfirmRegeneration(ctx context.Context, req ConfirmRegenerationRequest) ([]int64, error) {
	if err := o.validateRequest(req); err != nil {
		return nil, err
	}

	save, err := o.saves.FindByID(ctx, req.SaveID)
	if err != nil {
		return nil, err
	}
	nb, err := o.notebooks.FindByID(ctx, save.NotebookID)
	if err != nil {
		return nil, err
	}
	if err := checkStudySet(nb, req.StudySetID); err != nil {
		return nil, err
	}

	cards := newFlashcards(req.Flashcards, nb)
	for i := range cards {
		cards[i].StudySetID = req.StudySetID
	}
	replaced, err := o.saves.ReplaceFlashcards(ctx, save.ID, cards, o.now())
	if err != nil {
		if errors.Is(err, notebook.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	o.adjustCounter(ctx, nb.ID, len(replaced.FlashcardIDs)-replaced.Previous)
	o.logger.Info("save flashcards regenerated",
		logger.Int64("save_id", save.ID),
		logger.Int("previous", replaced.Previous),
		logger.Int("flashcards", len(replaced.FlashcardIDs)))
	return replaced.FlashcardIDs, nil
}

func checkStudySet(nb *notebook.Notebook, studySetID int64) error {
	if nb.StudySetID != studySetID {
		return fmt.Errorf("%w: notebook %d does not belong to study set %d", ErrInvalidRequest, nb.ID, studySetID)
	}
	return nil
}

func (o *Orchestrator) generate(ctx context.Context, nb *notebook.Notebook, studySetID int64, delta, previous string, count int) ([]FlashcardPreview, error) {
	studySet, err := o.notebooks.FindStudySet(ctx, studySetID)
	if err != nil {
		return nil, err
	}
	sample, err := o.flashcards.SampleByStudySet(ctx, studySetID, existingFlashcardSample)
	if err != nil {
		return nil, err
	}
	existing := make([]inference.ExistingFlashcard, 0, len(sample))
	for _, f := range sample {
		existing = append(existing, inference.ExistingFlashcard{Question: f.Question, Answer: f.Answer})
	}

	response, err := o.generator.GenerateFlashcards(ctx, inference.GenerateFlashcardsRequest{
		NewContent:         delta,
		PreviousContent:    previous,
		ExistingFlashcards: existing,
		CollectionName:     studySet.Name,
		DocumentTitle:      nb.Title,
		Count:              count,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	if len(response.Flashcards) == 0 {
		return nil, fmt.Errorf("%w: no flashcards returned", ErrGenerationFailed)
	}

	generated := response.Flashcards
	if len(generated) > count {
		generated = generated[:count]
	}
	previews := make([]FlashcardPreview, 0, len(generated))
	for _, g := range generated {
		category := g.Category
		if category == "" {
			category = notebook.DefaultCategory
		}
		previews = append(previews, FlashcardPreview{
			TempID:   o.newID(),
			Question: g.Question,
			Answer:   g.Answer,
			Category: category,
		})
	}
	return previews, nil
}

// adjustCounter updates the denormalized flashcard counter. Links stay the source of truth,
// so a failure here is logged and ignored.
func (o *Orchestrator) adjustCounter(ctx context.Context, notebookID int64, delta int) {
	if err := o.notebooks.IncrementFlashcardsGenerated(ctx, notebookID, delta); err != nil {
		o.logger.Warn("failed to update notebook flashcard counter",
			logger.Int64("notebook_id", notebookID),
			logger.Int("delta", delta),
			logger.Error(err))
	}
}

func (o *Orchestrator) validateRequest(req interface{}) error {
	if err := o.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

func newFlashcards(previews []FlashcardPreview, nb *notebook.Notebook) []notebook.NewFlashcard {
	label := notebook.SourceLabelFor(nb.Title)
	cards := make([]notebook.NewFlashcard, 0, len(previews))
	for _, p := range previews {
		cards = append(cards, notebook.NewFlashcard{
			StudySetID:  nb.StudySetID,
			Question:    strings.TrimSpace(p.Question),
			Answer:      strings.TrimSpace(p.Answer),
			Category:    strings.TrimSpace(p.Category),
			SourceLabel: label,
		})
	}
	return cards
}
