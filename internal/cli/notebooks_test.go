package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/flashnote/internal/saving"
)

func TestWriteNotebooks(t *testing.T) {
	savedAt := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	entries := []saving.NotebookEntry{
		{ID: 1, StudySetID: 3, Title: "Cells", FlashcardsGenerated: 2, Revision: 1, LastSavedAt: &savedAt},
		{ID: 2, StudySetID: 4, Title: "Rome"},
	}

	tests := []struct {
		name    string
		entries []saving.NotebookEntry
		format  HistoryFormat
		want    []string
	}{
		{
			name:    "table",
			entries: entries,
			format:  HistoryFormatTable,
			want: []string{
				"ID  STUDY SET  TITLE  FLASHCARDS  LAST SAVED\n",
				"1   3          Cells  2           2024-03-01 10:30\n",
				"2   4          Rome   0           never\n",
			},
		},
		{
			name:   "empty table",
			format: HistoryFormatTable,
			want:   []string{"No notebooks yet."},
		},
		{
			name:    "yaml",
			entries: entries,
			format:  HistoryFormatYAML,
			want:    []string{"- id: 1", "  study_set_id: 3", "  title: Cells", "  last_saved_at: 2024-03-01T10:30:00Z", "- id: 2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, WriteNotebooks(&out, tt.entries, tt.format))
			for _, want := range tt.want {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}
