package assist

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/flashnote/internal/inference"
	"github.com/at-ishikawa/flashnote/internal/logger"
	mock_inference "github.com/at-ishikawa/flashnote/internal/mocks/inference"
)

func TestInsertPlaceholder(t *testing.T) {
	tests := []struct {
		name    string
		content string
		offset  int
		wantErr bool
	}{
		{name: "start", content: "<p>abc</p>", offset: 0},
		{name: "middle", content: "<p>abc</p>", offset: 6},
		{name: "end", content: "<p>abc</p>", offset: 10},
		{name: "negative", content: "abc", offset: -1, wantErr: true},
		{name: "past the end", content: "abc", offset: 4, wantErr: true},
		{name: "inside a multibyte character", content: "日本", offset: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, h, err := InsertPlaceholder(tt.content, tt.offset)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.content, got)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, h)
			assert.Equal(t, tt.content[:tt.offset]+h.marker()+tt.content[tt.offset:], got)
		})
	}
}

func TestPlaceholder_ReplaceAndRemove(t *testing.T) {
	content := "<p>Cells</p>"
	first, h1, err := InsertPlaceholder(content, len(content))
	require.NoError(t, err)
	second, h2, err := InsertPlaceholder(first, 0)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)

	replaced, err := ReplacePlaceholder(second, h1, "Cells are <small>.\n\nThey divide.")
	require.NoError(t, err)
	assert.Equal(t, h2.marker()+"<p>Cells</p><p>Cells are &lt;small&gt;.</p><p>They divide.</p>", replaced)

	removed, err := RemovePlaceholder(replaced, h2)
	require.NoError(t, err)
	assert.Equal(t, "<p>Cells</p><p>Cells are &lt;small&gt;.</p><p>They divide.</p>", removed)

	_, err = RemovePlaceholder(removed, h2)
	assert.ErrorIs(t, err, ErrPlaceholderNotFound)
}

func TestPlaceholder_SameTextDifferentHandles(t *testing.T) {
	// two placeholders render the same loading text; only the handle decides which is replaced
	content, h1, err := InsertPlaceholder("", 0)
	require.NoError(t, err)
	content, h2, err := InsertPlaceholder(content, len(content))
	require.NoError(t, err)

	got, err := ReplacePlaceholder(content, h2, "second")
	require.NoError(t, err)
	assert.Equal(t, h1.marker()+"<p>second</p>", got)
}

func TestInferenceHandler_Handle(t *testing.T) {
	tests := []struct {
		name    string
		cmd     Command
		setup   func(client *mock_inference.MockClient)
		want    Result
		wantErr error
	}{
		{
			name: "expand",
			cmd:  Command{Action: inference.AssistActionExpand, ContextText: "ATP", DocumentTitle: "Cells"},
			setup: func(client *mock_inference.MockClient) {
				client.EXPECT().AssistText(gomock.Any(), inference.AssistTextRequest{
					Action:        inference.AssistActionExpand,
					ContextText:   "ATP",
					DocumentTitle: "Cells",
				}).Return(inference.AssistTextResponse{Text: "  ATP stores energy.  "}, nil)
			},
			want: Result{Text: "ATP stores energy."},
		},
		{
			name: "client error",
			cmd:  Command{Action: inference.AssistActionExplain, ContextText: "ATP"},
			setup: func(client *mock_inference.MockClient) {
				client.EXPECT().AssistText(gomock.Any(), gomock.Any()).Return(inference.AssistTextResponse{}, errors.New("response error 500: boom"))
			},
			wantErr: ErrAssistFailed,
		},
		{
			name:    "unknown action",
			cmd:     Command{Action: "translate", ContextText: "ATP"},
			setup:   func(client *mock_inference.MockClient) {},
			wantErr: ErrInvalidCommand,
		},
		{
			name:    "empty context",
			cmd:     Command{Action: inference.AssistActionSummarize, ContextText: " "},
			setup:   func(client *mock_inference.MockClient) {},
			wantErr: ErrInvalidCommand,
		},
		{
			name: "blank response",
			cmd:  Command{Action: inference.AssistActionExplain, ContextText: "ATP"},
			setup: func(client *mock_inference.MockClient) {
				client.EXPECT().AssistText(gomock.Any(), gomock.Any()).Return(inference.AssistTextResponse{Text: "\n"}, nil)
			},
			wantErr: ErrAssistFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mock_inference.NewMockClient(ctrl)
			tt.setup(client)

			got, err := NewInferenceHandler(client).Handle(context.Background(), tt.cmd)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type handlerFunc func(ctx context.Context, cmd Command) (Result, error)

func (f handlerFunc) Handle(ctx context.Context, cmd Command) (Result, error) {
	return f(ctx, cmd)
}

func TestRunner_Run(t *testing.T) {
	cmd := Command{Action: inference.AssistActionSummarize, ContextText: "long text"}

	t.Run("result replaces the placeholder", func(t *testing.T) {
		r := NewRunner(handlerFunc(func(_ context.Context, got Command) (Result, error) {
			assert.Equal(t, cmd, got)
			return Result{Text: "Short."}, nil
		}), logger.NewNop())

		content, result, err := r.Run(context.Background(), "<p>long text</p>", len("<p>long text</p>"), cmd)
		require.NoError(t, err)
		assert.Equal(t, "Short.", result.Text)
		assert.Equal(t, "<p>long text</p><p>Short.</p>", content)
	})

	t.Run("failure leaves the content unchanged", func(t *testing.T) {
		r := NewRunner(handlerFunc(func(context.Context, Command) (Result, error) {
			return Result{}, errors.New("timeout")
		}), logger.NewNop())

		content, _, err := r.Run(context.Background(), "<p>long text</p>", 0, cmd)
		assert.EqualError(t, err, "timeout")
		assert.Equal(t, "<p>long text</p>", content)
		assert.False(t, strings.Contains(content, "data-assist-placeholder"))
	})

	t.Run("invalid offset", func(t *testing.T) {
		r := NewRunner(handlerFunc(func(context.Context, Command) (Result, error) {
			t.Fatal("handler must not be called")
			return Result{}, nil
		}), logger.NewNop())

		_, _, err := r.Run(context.Background(), "abc", 10, cmd)
		assert.ErrorIs(t, err, ErrInvalidCommand)
	})
}
