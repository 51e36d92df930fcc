package notebook

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/flashnote/internal/database"
)

//go:generate mockgen -source=flashcard_repository.go -destination=../mocks/notebook/mock_flashcard_repository.go -package=mock_notebook

// FlashcardRepository reads flashcards of a study set.
type FlashcardRepository interface {
	SampleByStudySet(ctx context.Context, studySetID int64, limit int) ([]Flashcard, error)
	FindBySave(ctx context.Context, saveID int64) ([]Flashcard, error)
}

type DBFlashcardRepository struct {
	db *sqlx.DB
}

func NewDBFlashcardRepository(db *sqlx.DB) *DBFlashcardRepository {
	return &DBFlashcardRepository{db: db}
}

// SampleByStudySet returns at most limit flashcards of the study set, most recent first.
func (r *DBFlashcardRepository) SampleByStudySet(ctx context.Context, studySetID int64, limit int) ([]Flashcard, error) {
	var cards []Flashcard
	query := "SELECT * FROM flashcards WHERE study_set_id = ? ORDER BY created_at DESC, id DESC LIMIT ?"
	if err := r.db.SelectContext(ctx, &cards, query, studySetID, limit); err != nil {
		return nil, fmt.Errorf("load flashcards of study set %d: %w", studySetID, err)
	}
	return cards, nil
}

// FindBySave returns the flashcards linked to a save ordered by id.
func (r *DBFlashcardRepository) FindBySave(ctx context.Context, saveID int64) ([]Flashcard, error) {
	var cards []Flashcard
	query := `SELECT f.* FROM flashcards f
		JOIN flashcard_links l ON l.flashcard_id = f.id
		WHERE l.save_id = ?
		ORDER BY f.id`
	if err := r.db.SelectContext(ctx, &cards, query, saveID); err != nil {
		return nil, fmt.Errorf("load flashcards of save %d: %w", saveID, err)
	}
	return cards, nil
}

// insertFlashcards inserts the cards one by one so every generated id is known.
func insertFlashcards(ctx context.Context, tx *sqlx.Tx, cards []NewFlashcard, createdAt time.Time) ([]int64, error) {
	ids := make([]int64, 0, len(cards))
	for _, c := range cards {
		category := c.Category
		if category == "" {
			category = DefaultCategory
		}
		result, err := tx.ExecContext(ctx,
			"INSERT INTO flashcards (study_set_id, question, answer, category, is_ai_generated, source_label, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			c.StudySetID, c.Question, c.Answer, category, true, c.SourceLabel, createdAt)
		if err != nil {
			return nil, fmt.Errorf("insert flashcard: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("get flashcard id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func insertLinks(ctx context.Context, tx *sqlx.Tx, saveID int64, flashcardIDs []int64) error {
	if len(flashcardIDs) == 0 {
		return nil
	}
	query := database.BuildMultiRowInsert("flashcard_links", []string{"save_id", "flashcard_id"}, len(flashcardIDs))
	args := make([]interface{}, 0, len(flashcardIDs)*2)
	for _, id := range flashcardIDs {
		args = append(args, saveID, id)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert flashcard links: %w", err)
	}
	return nil
}
