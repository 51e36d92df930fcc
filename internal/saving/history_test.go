package saving_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_notebook "github.com/at-ishikawa/flashnote/internal/mocks/notebook"
	"github.com/at-ishikawa/flashnote/internal/notebook"
	"github.com/at-ishikawa/flashnote/internal/saving"
)

func newHistory(t *testing.T) (*saving.History, *mock_notebook.MockNotebookRepository, *mock_notebook.MockSaveRepository, *mock_notebook.MockFlashcardRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	notebooks := mock_notebook.NewMockNotebookRepository(ctrl)
	saves := mock_notebook.NewMockSaveRepository(ctrl)
	flashcards := mock_notebook.NewMockFlashcardRepository(ctrl)
	return saving.NewHistory(notebooks, saves, flashcards), notebooks, saves, flashcards
}

func TestHistory_ListNotebooks(t *testing.T) {
	savedAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("every study set", func(t *testing.T) {
		h, notebooks, _, _ := newHistory(t)
		notebooks.EXPECT().List(gomock.Any(), int64(0)).Return([]notebook.Notebook{
			{ID: 1, StudySetID: 3, Title: "Cells", FlashcardsGenerated: 2, Revision: 1, LastSavedAt: &savedAt},
			{ID: 2, StudySetID: 4, Title: "Rome"},
		}, nil)

		got, err := h.ListNotebooks(context.Background(), 0)
		require.NoError(t, err)
		assert.Equal(t, []saving.NotebookEntry{
			{ID: 1, StudySetID: 3, Title: "Cells", FlashcardsGenerated: 2, Revision: 1, LastSavedAt: &savedAt},
			{ID: 2, StudySetID: 4, Title: "Rome"},
		}, got)
	})

	t.Run("empty study set", func(t *testing.T) {
		h, notebooks, _, _ := newHistory(t)
		notebooks.EXPECT().FindStudySet(gomock.Any(), int64(3)).Return(&notebook.StudySet{ID: 3}, nil)
		notebooks.EXPECT().List(gomock.Any(), int64(3)).Return([]notebook.Notebook{}, nil)

		got, err := h.ListNotebooks(context.Background(), 3)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})

	t.Run("unknown study set", func(t *testing.T) {
		h, notebooks, _, _ := newHistory(t)
		notebooks.EXPECT().FindStudySet(gomock.Any(), int64(9)).Return(nil, notebook.ErrNotFound)

		_, err := h.ListNotebooks(context.Background(), 9)
		assert.ErrorIs(t, err, saving.ErrNotFound)
	})
}

func TestHistory_ListSaves(t *testing.T) {
	savedAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("maps saves to entries", func(t *testing.T) {
		h, notebooks, saves, _ := newHistory(t)
		notebooks.EXPECT().FindByID(gomock.Any(), int64(1)).Return(&notebook.Notebook{ID: 1}, nil)
		saves.EXPECT().ListByNotebook(gomock.Any(), int64(1)).Return([]notebook.Save{
			{ID: 12, NotebookID: 1, NewContentDelta: ptr("Ribosomes build proteins."), FlashcardsGenerated: 2, SavedAt: savedAt.Add(time.Hour)},
			{ID: 11, NotebookID: 1, NewContentDelta: ptr("  "), SavedAt: savedAt},
			{ID: 10, NotebookID: 1, SavedAt: savedAt.Add(-time.Hour)},
		}, nil)

		got, err := h.ListSaves(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, []saving.SaveEntry{
			{ID: 12, NotebookID: 1, SavedAt: savedAt.Add(time.Hour), FlashcardsGenerated: 2, Delta: "Ribosomes build proteins.", CanRegenerate: true},
			{ID: 11, NotebookID: 1, SavedAt: savedAt, Delta: "  "},
			{ID: 10, NotebookID: 1, SavedAt: savedAt.Add(-time.Hour)},
		}, got)
	})

	t.Run("notebook without saves", func(t *testing.T) {
		h, notebooks, saves, _ := newHistory(t)
		notebooks.EXPECT().FindByID(gomock.Any(), int64(1)).Return(&notebook.Notebook{ID: 1}, nil)
		saves.EXPECT().ListByNotebook(gomock.Any(), int64(1)).Return(nil, nil)

		got, err := h.ListSaves(context.Background(), 1)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})

	t.Run("notebook not found", func(t *testing.T) {
		h, notebooks, _, _ := newHistory(t)
		notebooks.EXPECT().FindByID(gomock.Any(), int64(1)).Return(nil, notebook.ErrNotFound)

		_, err := h.ListSaves(context.Background(), 1)
		assert.ErrorIs(t, err, saving.ErrNotFound)
	})
}

func TestHistory_LinkedFlashcardIDs(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(saves *mock_notebook.MockSaveRepository)
		want    []int64
		wantErr error
	}{
		{
			name: "linked ids",
			setup: func(saves *mock_notebook.MockSaveRepository) {
				saves.EXPECT().FindByID(gomock.Any(), int64(11)).Return(&notebook.Save{ID: 11}, nil)
				saves.EXPECT().LinkedFlashcardIDs(gomock.Any(), int64(11)).Return([]int64{21, 22}, nil)
			},
			want: []int64{21, 22},
		},
		{
			name: "save without flashcards",
			setup: func(saves *mock_notebook.MockSaveRepository) {
				saves.EXPECT().FindByID(gomock.Any(), int64(11)).Return(&notebook.Save{ID: 11}, nil)
				saves.EXPECT().LinkedFlashcardIDs(gomock.Any(), int64(11)).Return(nil, nil)
			},
			want: []int64{},
		},
		{
			name: "save not found",
			setup: func(saves *mock_notebook.MockSaveRepository) {
				saves.EXPECT().FindByID(gomock.Any(), int64(11)).Return(nil, notebook.ErrNotFound)
			},
			wantErr: saving.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, saves, _ := newHistory(t)
			tt.setup(saves)

			got, err := h.LinkedFlashcardIDs(context.Background(), 11)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHistory_LinkedFlashcards(t *testing.T) {
	h, _, saves, flashcards := newHistory(t)
	saves.EXPECT().FindByID(gomock.Any(), int64(11)).Return(&notebook.Save{ID: 11}, nil)
	flashcards.EXPECT().FindBySave(gomock.Any(), int64(11)).Return([]notebook.Flashcard{
		{ID: 21, Question: "What do ribosomes build?", Answer: "Proteins"},
	}, nil)

	got, err := h.LinkedFlashcards(context.Background(), 11)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(21), got[0].ID)
}
