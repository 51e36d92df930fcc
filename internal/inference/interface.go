package inference

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Client interface defines the methods for AI inference operations
type Client interface {
	GenerateFlashcards(ctx context.Context, params GenerateFlashcardsRequest) (GenerateFlashcardsResponse, error)
	AssistText(ctx context.Context, params AssistTextRequest) (AssistTextResponse, error)
}

// ExistingFlashcard is a flashcard the study set already has. Sent so the model avoids duplicates.
type ExistingFlashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// GenerateFlashcardsRequest holds the new notebook text and the context around it
type GenerateFlashcardsRequest struct {
	NewContent string `json:"new_content"`
	// PreviousContent is empty when regenerating from a stored delta
	PreviousContent    string              `json:"previous_content,omitempty"`
	ExistingFlashcards []ExistingFlashcard `json:"existing_flashcards,omitempty"`
	CollectionName     string              `json:"collection_name"`
	DocumentTitle      string              `json:"document_title"`
	Count              int                 `json:"count"`
}

type GenerateFlashcardsResponse struct {
	Flashcards []GeneratedFlashcard
}

type GeneratedFlashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category,omitempty"`
}

// AssistAction is what the user asked the assistant to do with the selected text
type AssistAction string

const (
	AssistActionExpand    AssistAction = "expand"
	AssistActionSummarize AssistAction = "summarize"
	AssistActionExplain   AssistAction = "explain"
)

// Valid reports whether the action is one the assistant understands
func (a AssistAction) Valid() bool {
	switch a {
	case AssistActionExpand, AssistActionSummarize, AssistActionExplain:
		return true
	}
	return false
}

type AssistTextRequest struct {
	Action        AssistAction `json:"action"`
	ContextText   string       `json:"context_text"`
	DocumentTitle string       `json:"document_title,omitempty"`
}

type AssistTextResponse struct {
	Text string `json:"text"`
}

const (
	DefaultMaxRetryAttempts = 3
)
