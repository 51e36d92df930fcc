package assist

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/flashnote/internal/logger"
)

// Runner applies a command to a document: insert a placeholder, run the handler,
// then replace the placeholder with the result or remove it on failure.
type Runner struct {
	handler Handler
	logger  logger.Logger
}

func NewRunner(handler Handler, log logger.Logger) *Runner {
	return &Runner{
		handler: handler,
		logger:  log,
	}
}

// Run returns the updated content. On error the returned content is the original one.
func (r *Runner) Run(ctx context.Context, content string, offset int, cmd Command) (string, Result, error) {
	withPlaceholder, h, err := InsertPlaceholder(content, offset)
	if err != nil {
		return content, Result{}, fmt.Errorf("%w: %w", ErrInvalidCommand, err)
	}

	result, err := r.handler.Handle(ctx, cmd)
	if err != nil {
		restored, removeErr := RemovePlaceholder(withPlaceholder, h)
		if removeErr != nil {
			r.logger.Warn("failed to remove assist placeholder", logger.String("handle", string(h)), logger.Error(removeErr))
			restored = content
		}
		return restored, Result{}, err
	}

	updated, err := ReplacePlaceholder(withPlaceholder, h, result.Text)
	if err != nil {
		return content, Result{}, err
	}
	r.logger.Debug("assist command applied",
		logger.String("action", string(cmd.Action)),
		logger.Int("result_length", len(result.Text)))
	return updated, result, nil
}
