// Package assist runs AI-assisted text commands on notebook content.
// A command goes straight to an injected Handler and the result lands at a placeholder
// identified by an opaque Handle.
package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/at-ishikawa/flashnote/internal/inference"
)

//go:generate mockgen -source=handler.go -destination=../mocks/assist/mock_handler.go -package=mock_assist

var (
	ErrInvalidCommand = errors.New("invalid assist command")
	// ErrAssistFailed means the assistant failed or answered with no text.
	ErrAssistFailed = errors.New("assist command failed")
)

// Command is what the user asked for and the text it applies to.
type Command struct {
	Action        inference.AssistAction `json:"action"`
	ContextText   string                 `json:"contextText"`
	DocumentTitle string                 `json:"documentTitle,omitempty"`
}

func (c Command) validate() error {
	if !c.Action.Valid() {
		return fmt.Errorf("%w: unknown action %q", ErrInvalidCommand, c.Action)
	}
	if strings.TrimSpace(c.ContextText) == "" {
		return fmt.Errorf("%w: context text is empty", ErrInvalidCommand)
	}
	return nil
}

type Result struct {
	Text string `json:"text"`
}

// Handler executes a command.
type Handler interface {
	Handle(ctx context.Context, cmd Command) (Result, error)
}

// InferenceHandler executes commands with the AI client.
type InferenceHandler struct {
	client inference.Client
}

func NewInferenceHandler(client inference.Client) *InferenceHandler {
	return &InferenceHandler{client: client}
}

func (h *InferenceHandler) Handle(ctx context.Context, cmd Command) (Result, error) {
	if err := cmd.validate(); err != nil {
		return Result{}, err
	}
	res, err := h.client.AssistText(ctx, inference.AssistTextRequest{
		Action:        cmd.Action,
		ContextText:   cmd.ContextText,
		DocumentTitle: cmd.DocumentTitle,
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %w", ErrAssistFailed, cmd.Action, err)
	}
	text := strings.TrimSpace(res.Text)
	if text == "" {
		return Result{}, fmt.Errorf("%w: empty response", ErrAssistFailed)
	}
	return Result{Text: text}, nil
}
