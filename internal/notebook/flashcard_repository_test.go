package notebook

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/flashnote/internal/testutil"
)

var flashcardColumns = []string{"id", "study_set_id", "question", "answer", "category", "is_ai_generated", "source_label", "created_at"}

func TestDBFlashcardRepository_SampleByStudySet(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta("SELECT * FROM flashcards WHERE study_set_id = ? ORDER BY created_at DESC, id DESC LIMIT ?")

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantLen   int
		wantErr   bool
	}{
		{
			name: "returns the most recent flashcards",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(flashcardColumns).
					AddRow(2, 7, "What is DNA?", "Genetic material", "General", true, "notebook:Cells", now).
					AddRow(1, 7, "What is RNA?", "Messenger", "General", false, "", now)
				mock.ExpectQuery(query).WithArgs(int64(7), 50).WillReturnRows(rows)
			},
			wantLen: 2,
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := testutil.NewMockDB(t)
			tt.setupMock(mock)

			got, err := NewDBFlashcardRepository(db).SampleByStudySet(context.Background(), 7, 50)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, tt.wantLen)
			assert.Equal(t, "What is DNA?", got[0].Question)
			assert.True(t, got[0].IsAIGenerated)
		})
	}
}

func TestDBFlashcardRepository_FindBySave(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	db, mock := testutil.NewMockDB(t)
	mock.ExpectQuery("SELECT f\\.\\* FROM flashcards f\\s+JOIN flashcard_links l ON l\\.flashcard_id = f\\.id\\s+WHERE l\\.save_id = \\?").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(flashcardColumns).
			AddRow(10, 7, "Q1", "A1", "General", true, "notebook:Cells", now))

	got, err := NewDBFlashcardRepository(db).FindBySave(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(10), got[0].ID)
}
