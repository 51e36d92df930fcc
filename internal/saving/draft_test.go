package saving_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/flashnote/internal/saving"
)

func newDraft() *saving.Draft {
	return saving.NewSaveDraft(&saving.PrepareResult{
		NotebookID:     1,
		StudySetID:     3,
		HasNewContent:  true,
		Delta:          "Mitochondria are the powerhouse of the cell.",
		SuggestedCount: 2,
		BaseRevision:   4,
		Flashcards: []saving.FlashcardPreview{
			{TempID: "a", Question: "What is the powerhouse of the cell?", Answer: "Mitochondria", Category: "General"},
			{TempID: "b", Question: "Where is ATP made?", Answer: "In mitochondria", Category: "General"},
		},
	}, "<p>Mitochondria are the powerhouse of the cell.</p>", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
}

func TestDraft_EditPreview(t *testing.T) {
	tests := []struct {
		name    string
		tempID  string
		edit    saving.PreviewEdit
		want    saving.FlashcardPreview
		wantErr error
	}{
		{
			name:   "changes only the given fields",
			tempID: "b",
			edit:   saving.PreviewEdit{Answer: ptr("  Mitochondria  "), Category: ptr("Organelles")},
			want:   saving.FlashcardPreview{TempID: "b", Question: "Where is ATP made?", Answer: "Mitochondria", Category: "Organelles"},
		},
		{
			name:    "empty question",
			tempID:  "a",
			edit:    saving.PreviewEdit{Question: ptr("   ")},
			wantErr: saving.ErrInvalidRequest,
		},
		{
			name:    "unknown preview",
			tempID:  "z",
			edit:    saving.PreviewEdit{Question: ptr("q")},
			wantErr: saving.ErrPreviewNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDraft()
			err := d.EditPreview(tt.tempID, tt.edit)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, newDraft().Flashcards, d.Flashcards)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Flashcards[1])
		})
	}
}

func TestDraft_RemovePreview(t *testing.T) {
	d := newDraft()
	require.NoError(t, d.RemovePreview("a"))
	require.Len(t, d.Flashcards, 1)
	assert.Equal(t, "b", d.Flashcards[0].TempID)

	assert.ErrorIs(t, d.RemovePreview("a"), saving.ErrPreviewNotFound)
}

func TestDraft_ConfirmRequest(t *testing.T) {
	d := newDraft()
	assert.NotEmpty(t, d.ID)
	assert.Equal(t, saving.DraftKindSave, d.Kind)

	got := d.ConfirmRequest("key-1")
	assert.Equal(t, saving.ConfirmRequest{
		NotebookID:     1,
		StudySetID:     3,
		Content:        "<p>Mitochondria are the powerhouse of the cell.</p>",
		Delta:          "Mitochondria are the powerhouse of the cell.",
		Flashcards:     d.Flashcards,
		BaseRevision:   4,
		IdempotencyKey: "key-1",
	}, got)
}

func TestDraft_ConfirmRegenerationRequest(t *testing.T) {
	d := saving.NewRegenerationDraft(&saving.RegenerateResult{
		SaveID:     11,
		NotebookID: 1,
		StudySetID: 3,
		Delta:      "Ribosomes build proteins.",
		Flashcards: []saving.FlashcardPreview{{TempID: "x", Question: "q", Answer: "a"}},
	}, time.Now())

	assert.Equal(t, saving.DraftKindRegeneration, d.Kind)
	assert.Equal(t, saving.ConfirmRegenerationRequest{
		SaveID:     11,
		StudySetID: 3,
		Flashcards: []saving.FlashcardPreview{{TempID: "x", Question: "q", Answer: "a"}},
	}, d.ConfirmRegenerationRequest())
}
