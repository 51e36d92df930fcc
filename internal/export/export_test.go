package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/flashnote/internal/logger"
	mock_notebook "github.com/at-ishikawa/flashnote/internal/mocks/notebook"
	"github.com/at-ishikawa/flashnote/internal/notebook"
	"github.com/at-ishikawa/flashnote/internal/saving"
)

func TestExporter_Export(t *testing.T) {
	delta := "Ribosomes build proteins."

	tests := []struct {
		name    string
		opts    func(dir string) Options
		setup   func(nbs *mock_notebook.MockNotebookRepository, saves *mock_notebook.MockSaveRepository, cards *mock_notebook.MockFlashcardRepository)
		want    func(t *testing.T, dir string, got *Result)
		wantErr error
	}{
		{
			name: "markdown with saves and flashcards",
			opts: func(dir string) Options { return Options{OutputDir: filepath.Join(dir, "out")} },
			setup: func(nbs *mock_notebook.MockNotebookRepository, saves *mock_notebook.MockSaveRepository, cards *mock_notebook.MockFlashcardRepository) {
				nbs.EXPECT().FindByID(gomock.Any(), int64(1)).Return(&notebook.Notebook{ID: 1, StudySetID: 3, Title: "Cell Biology 101"}, nil).Times(2)
				nbs.EXPECT().FindStudySet(gomock.Any(), int64(3)).Return(&notebook.StudySet{ID: 3, Name: "Biology"}, nil)
				saves.EXPECT().ListByNotebook(gomock.Any(), int64(1)).Return([]notebook.Save{
					{ID: 11, NotebookID: 1, NewContentDelta: &delta, SavedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
				}, nil)
				saves.EXPECT().FindByID(gomock.Any(), int64(11)).Return(&notebook.Save{ID: 11}, nil)
				cards.EXPECT().FindBySave(gomock.Any(), int64(11)).Return([]notebook.Flashcard{
					{ID: 21, Question: "What do ribosomes build?", Answer: "Proteins", Category: "General"},
				}, nil)
			},
			want: func(t *testing.T, dir string, got *Result) {
				assert.Equal(t, filepath.Join(dir, "out", "notebook-1-cell-biology-101.md"), got.MarkdownPath)
				assert.Empty(t, got.PDFPath)
				assert.Equal(t, 1, got.Saves)

				content, err := os.ReadFile(got.MarkdownPath)
				require.NoError(t, err)
				assert.Contains(t, string(content), "# Cell Biology 101")
				assert.Contains(t, string(content), "> Ribosomes build proteins.")
				assert.Contains(t, string(content), "| What do ribosomes build? | Proteins | General |")
			},
		},
		{
			name: "pdf",
			opts: func(dir string) Options { return Options{OutputDir: dir, PDF: true} },
			setup: func(nbs *mock_notebook.MockNotebookRepository, saves *mock_notebook.MockSaveRepository, cards *mock_notebook.MockFlashcardRepository) {
				nbs.EXPECT().FindByID(gomock.Any(), int64(1)).Return(&notebook.Notebook{ID: 1, StudySetID: 3, Title: "Cells"}, nil).Times(2)
				nbs.EXPECT().FindStudySet(gomock.Any(), int64(3)).Return(&notebook.StudySet{ID: 3, Name: "Biology"}, nil)
				saves.EXPECT().ListByNotebook(gomock.Any(), int64(1)).Return(nil, nil)
			},
			want: func(t *testing.T, dir string, got *Result) {
				assert.Equal(t, 0, got.Saves)
				assert.Equal(t, ".pdf", filepath.Ext(got.PDFPath))
				_, err := os.Stat(got.PDFPath)
				assert.NoError(t, err)
			},
		},
		{
			name: "unknown notebook",
			opts: func(dir string) Options { return Options{OutputDir: dir} },
			setup: func(nbs *mock_notebook.MockNotebookRepository, saves *mock_notebook.MockSaveRepository, cards *mock_notebook.MockFlashcardRepository) {
				nbs.EXPECT().FindByID(gomock.Any(), int64(1)).Return(nil, notebook.ErrNotFound)
			},
			wantErr: saving.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			nbs := mock_notebook.NewMockNotebookRepository(ctrl)
			saves := mock_notebook.NewMockSaveRepository(ctrl)
			cards := mock_notebook.NewMockFlashcardRepository(ctrl)
			tt.setup(nbs, saves, cards)

			e := NewExporter(nbs, saving.NewHistory(nbs, saves, cards), "", logger.NewNop())
			e.now = func() time.Time { return time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC) }

			dir := t.TempDir()
			got, err := e.Export(context.Background(), 1, tt.opts(dir))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.want(t, dir, got)
		})
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "notebook-7-cells-atp.md", fileName(7, "  Cells & ATP! "))
	assert.Equal(t, "notebook-7.md", fileName(7, "日本語"))
}
