package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/at-ishikawa/flashnote/internal/config"
	"github.com/at-ishikawa/flashnote/internal/inference"
	"github.com/at-ishikawa/flashnote/internal/logger"
)

const (
	defaultBaseURL    = "https://api.openai.com/v1"
	defaultRetryDelay = 500 * time.Millisecond
)

type Client struct {
	httpClient       *resty.Client
	model            string
	maxRetryAttempts uint
	retryDelay       time.Duration
	logger           logger.Logger
}

func NewClient(cfg config.OpenAIConfig, log logger.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		model:            cfg.Model,
		maxRetryAttempts: cfg.MaxRetryAttempts,
		retryDelay:       defaultRetryDelay,
		logger:           log,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client
func (client *Client) GetModel() string {
	return client.model
}

type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float32         `json:"temperature,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

type ResponseFormat struct {
	Type string `json:"type"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ResponseError is a non-2xx reply from the API.
type ResponseError struct {
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("response error %d: %s", e.StatusCode, e.Body)
}

var errMalformedContent = errors.New("malformed response content")

// isRetryableError reports whether another attempt could succeed
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Incomplete JSON is usually a truncated completion
	if errors.Is(err, errMalformedContent) {
		return true
	}

	var respErr *ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode >= http.StatusInternalServerError || respErr.StatusCode == http.StatusTooManyRequests
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout")
}

func (client *Client) withRetry(ctx context.Context, fn func() error) error {
	return retry.Do(
		func() error {
			err := fn()
			if err != nil && !isRetryableError(err) {
				return retry.Unrecoverable(err)
			}
			return err
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.Delay(client.retryDelay),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
		retry.OnRetry(func(n uint, err error) {
			client.logger.Info("retrying OpenAI API call",
				logger.Int("attempt", int(n)+1),
				logger.Error(err))
		}),
	)
}

const generateFlashcardsPrompt = `You write study flashcards from a learner's notes.

INPUT
A JSON object with:
- "new_content": the text the learner just wrote. Write flashcards ONLY about this text.
- "previous_content": what the notebook already contained. Use it to resolve references, never as a source of cards.
- "existing_flashcards": cards the collection already has. Do not duplicate them.
- "collection_name" and "document_title": where the notes live.
- "count": the number of flashcards to write.

RULES
- Write exactly "count" flashcards unless the new content cannot support that many.
- One fact per card. Questions must be answerable without seeing the notes.
- Answers are short: a phrase or one sentence.
- "category" is a one or two word topic label.

OUTPUT
Return ONLY a JSON object:
{"flashcards": [{"question": "...", "answer": "...", "category": "..."}]}`

type flashcardsEnvelope struct {
	Flashcards []inference.GeneratedFlashcard `json:"flashcards"`
}

// GenerateFlashcards implements the inference.Client interface
func (client *Client) GenerateFlashcards(
	ctx context.Context,
	params inference.GenerateFlashcardsRequest,
) (inference.GenerateFlashcardsResponse, error) {
	if params.Count <= 0 || strings.TrimSpace(params.NewContent) == "" {
		return inference.GenerateFlashcardsResponse{}, nil
	}

	userContent := bytes.NewBuffer(nil)
	if err := json.NewEncoder(userContent).Encode(params); err != nil {
		return inference.GenerateFlashcardsResponse{}, fmt.Errorf("encode flashcard request: %w", err)
	}
	requestBody := ChatCompletionRequest{
		Model:          client.model,
		Temperature:    0.3,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
		Messages: []Message{
			{Role: RoleSystem, Content: generateFlashcardsPrompt},
			{Role: RoleUser, Content: userContent.String()},
		},
	}

	var result inference.GenerateFlashcardsResponse
	err := client.withRetry(ctx, func() error {
		content, err := client.complete(ctx, requestBody)
		if err != nil {
			return err
		}
		cards, err := decodeFlashcards(content)
		if err != nil {
			return err
		}
		result = inference.GenerateFlashcardsResponse{Flashcards: cleanFlashcards(cards, params.Count)}
		return nil
	})
	if err != nil {
		return inference.GenerateFlashcardsResponse{}, err
	}
	return result, nil
}

const assistTextPrompt = `You help a learner edit their notes.
The user message is a JSON object with "action", "context_text" and optionally "document_title".
- "expand": continue or elaborate on the context text with accurate, study-worthy detail.
- "summarize": condense the context text into a short summary.
- "explain": explain the context text in simpler terms.
Return ONLY a JSON object: {"text": "..."}. The text is plain prose without markup.`

// AssistText implements the inference.Client interface
func (client *Client) AssistText(
	ctx context.Context,
	params inference.AssistTextRequest,
) (inference.AssistTextResponse, error) {
	userContent := bytes.NewBuffer(nil)
	if err := json.NewEncoder(userContent).Encode(params); err != nil {
		return inference.AssistTextResponse{}, fmt.Errorf("encode assist request: %w", err)
	}
	requestBody := ChatCompletionRequest{
		Model:          client.model,
		Temperature:    0.5,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
		Messages: []Message{
			{Role: RoleSystem, Content: assistTextPrompt},
			{Role: RoleUser, Content: userContent.String()},
		},
	}

	var result inference.AssistTextResponse
	err := client.withRetry(ctx, func() error {
		content, err := client.complete(ctx, requestBody)
		if err != nil {
			return err
		}
		var decoded inference.AssistTextResponse
		if err := json.Unmarshal([]byte(extractJSON(content)), &decoded); err != nil {
			return fmt.Errorf("json.Unmarshal(%s) > %w: %v", content, errMalformedContent, err)
		}
		result = inference.AssistTextResponse{Text: strings.TrimSpace(decoded.Text)}
		return nil
	})
	if err != nil {
		return inference.AssistTextResponse{}, err
	}
	return result, nil
}

// complete sends one chat completion request and returns the first choice's content
func (client *Client) complete(ctx context.Context, requestBody ChatCompletionRequest) (string, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return "", &ResponseError{StatusCode: response.StatusCode(), Body: response.String()}
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return "", fmt.Errorf("empty response body or choices: %s", response.String())
	}

	content := responseBody.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty response content: %s", response.String())
	}
	client.logger.Debug("openai response content",
		logger.String("model", requestBody.Model),
		logger.String("response", content))
	return content, nil
}

// decodeFlashcards accepts {"flashcards": [...]} or a bare array, with or without prose around it
func decodeFlashcards(content string) ([]inference.GeneratedFlashcard, error) {
	raw := extractJSON(content)
	if strings.HasPrefix(raw, "[") {
		var cards []inference.GeneratedFlashcard
		if err := json.Unmarshal([]byte(raw), &cards); err != nil {
			return nil, fmt.Errorf("json.Unmarshal(%s) > %w: %v", content, errMalformedContent, err)
		}
		return cards, nil
	}

	var envelope flashcardsEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, fmt.Errorf("json.Unmarshal(%s) > %w: %v", content, errMalformedContent, err)
	}
	return envelope.Flashcards, nil
}

// cleanFlashcards drops cards without a question or answer and keeps at most limit of them
func cleanFlashcards(cards []inference.GeneratedFlashcard, limit int) []inference.GeneratedFlashcard {
	result := make([]inference.GeneratedFlashcard, 0, len(cards))
	for _, c := range cards {
		c.Question = strings.TrimSpace(c.Question)
		c.Answer = strings.TrimSpace(c.Answer)
		c.Category = strings.TrimSpace(c.Category)
		if c.Question == "" || c.Answer == "" {
			continue
		}
		result = append(result, c)
		if len(result) == limit {
			break
		}
	}
	return result
}

// extractJSON returns the first balanced JSON object or array in content.
// Brackets inside strings are ignored. Content without a complete value is returned unchanged.
func extractJSON(content string) string {
	start := -1
	depth := 0
	inString := false
	escapeNext := false

	for i, ch := range content {
		if escapeNext {
			escapeNext = false
			continue
		}
		if ch == '\\' && inString {
			escapeNext = true
			continue
		}
		if ch == '"' && start != -1 {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch ch {
		case '{', '[':
			if start == -1 {
				start = i
			}
			depth++
		case '}', ']':
			if start == -1 {
				continue
			}
			depth--
			if depth == 0 {
				return content[start : i+1]
			}
		}
	}
	return content
}
