package saving

import (
	"errors"

	"github.com/at-ishikawa/flashnote/internal/notebook"
)

var (
	// ErrNotFound is returned when the notebook, save or draft does not exist.
	ErrNotFound = notebook.ErrNotFound
	// ErrInvalidRequest wraps request validation failures.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrGenerationFailed means the AI collaborator failed or produced no usable flashcards. Nothing was written.
	ErrGenerationFailed = errors.New("flashcard generation failed")
	// ErrPersistence means a confirm transaction failed and was rolled back. Nothing was written.
	ErrPersistence = errors.New("save was not completed; nothing was written")
	// ErrBaselineConflict means the notebook was saved by someone else after the preview was prepared.
	ErrBaselineConflict = errors.New("notebook was saved concurrently; prepare again")
	// ErrNothingToRegenerate is returned for saves without a stored delta.
	ErrNothingToRegenerate = errors.New("save has no new content to regenerate from")
	// ErrConfirmInProgress is returned while another confirm with the same idempotency key is running.
	ErrConfirmInProgress = errors.New("confirm with this idempotency key is in progress")
)
