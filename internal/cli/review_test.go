package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/flashnote/internal/saving"
)

func newDraft() *saving.Draft {
	return &saving.Draft{
		ID:             "draft-1",
		Kind:           saving.DraftKindSave,
		NotebookID:     1,
		StudySetID:     3,
		Delta:          "Mitochondria produce ATP through cellular respiration.",
		SuggestedCount: 2,
		Flashcards: []saving.FlashcardPreview{
			{TempID: "t1", Question: "What do mitochondria produce?", Answer: "ATP", Category: "Biology"},
			{TempID: "t2", Question: "Through which process?", Answer: "Cellular respiration", Category: "Biology"},
		},
	}
}

func TestReviewCLI_Review(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name      string
		input     string
		wantSave  bool
		wantCards []saving.FlashcardPreview
		wantOut   []string
	}{
		{
			name:      "confirm",
			input:     "y\n",
			wantSave:  true,
			wantCards: newDraft().Flashcards,
			wantOut:   []string{"2 flashcard(s) suggested", " 1. What do mitochondria produce?", "ATP  [Biology]"},
		},
		{
			name:      "cancel",
			input:     "n\n",
			wantCards: newDraft().Flashcards,
		},
		{
			name:      "end of input cancels",
			input:     "",
			wantCards: newDraft().Flashcards,
		},
		{
			name:     "delete then confirm",
			input:    "d 1\ny\n",
			wantSave: true,
			wantCards: []saving.FlashcardPreview{
				{TempID: "t2", Question: "Through which process?", Answer: "Cellular respiration", Category: "Biology"},
			},
			wantOut: []string{"1 flashcard(s) suggested"},
		},
		{
			name:     "edit keeps empty fields",
			input:    "e 2\nWhich process makes ATP?\n\nCells\nyes\n",
			wantSave: true,
			wantCards: []saving.FlashcardPreview{
				{TempID: "t1", Question: "What do mitochondria produce?", Answer: "ATP", Category: "Biology"},
				{TempID: "t2", Question: "Which process makes ATP?", Answer: "Cellular respiration", Category: "Cells"},
			},
		},
		{
			name:      "out of range index",
			input:     "d 5\nn\n",
			wantCards: newDraft().Flashcards,
			wantOut:   []string{"no flashcard 5"},
		},
		{
			name:      "unknown command prints help",
			input:     "what\nn\n",
			wantCards: newDraft().Flashcards,
			wantOut:   []string{"Commands:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			draft := newDraft()
			r := NewReviewCLI(strings.NewReader(tt.input), &out)

			got, err := r.Review(context.Background(), draft)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSave, got)
			assert.Equal(t, tt.wantCards, draft.Flashcards)
			for _, want := range tt.wantOut {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestReviewCLI_Review_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewReviewCLI(strings.NewReader("y\n"), &bytes.Buffer{})
	got, err := r.Review(ctx, newDraft())
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, got)
}
