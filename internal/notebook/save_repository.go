package notebook

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/flashnote/internal/database"
)

//go:generate mockgen -source=save_repository.go -destination=../mocks/notebook/mock_save_repository.go -package=mock_notebook

// SaveCommit is everything a confirmed save writes.
type SaveCommit struct {
	NotebookID int64
	// BaseRevision is the notebook revision the delta was computed against.
	BaseRevision int64
	Content      string
	Delta        string
	Flashcards   []NewFlashcard
	SavedAt      time.Time
}

type CommitResult struct {
	SaveID       int64
	FlashcardIDs []int64
}

type ReplaceResult struct {
	FlashcardIDs []int64
	// Previous is the number of flashcards that were linked before the replacement.
	Previous int
}

// SaveRepository defines operations on saves and their flashcard links.
type SaveRepository interface {
	FindByID(ctx context.Context, id int64) (*Save, error)
	ListByNotebook(ctx context.Context, notebookID int64) ([]Save, error)
	LinkedFlashcardIDs(ctx context.Context, saveID int64) ([]int64, error)
	Commit(ctx context.Context, commit SaveCommit) (*CommitResult, error)
	ReplaceFlashcards(ctx context.Context, saveID int64, cards []NewFlashcard, now time.Time) (*ReplaceResult, error)
}

type DBSaveRepository struct {
	db *sqlx.DB
}

func NewDBSaveRepository(db *sqlx.DB) *DBSaveRepository {
	return &DBSaveRepository{db: db}
}

// FindByID returns the save or ErrNotFound.
func (r *DBSaveRepository) FindByID(ctx context.Context, id int64) (*Save, error) {
	var s Save
	err := r.db.GetContext(ctx, &s, "SELECT * FROM saves WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("save %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load save %d: %w", id, err)
	}
	return &s, nil
}

// ListByNotebook returns the saves of a notebook, most recent first.
func (r *DBSaveRepository) ListByNotebook(ctx context.Context, notebookID int64) ([]Save, error) {
	var saves []Save
	query := "SELECT * FROM saves WHERE notebook_id = ? ORDER BY saved_at DESC, id DESC"
	if err := r.db.SelectContext(ctx, &saves, query, notebookID); err != nil {
		return nil, fmt.Errorf("load saves of notebook %d: %w", notebookID, err)
	}
	return saves, nil
}

// LinkedFlashcardIDs returns the ids of the flashcards linked to a save in ascending order.
func (r *DBSaveRepository) LinkedFlashcardIDs(ctx context.Context, saveID int64) ([]int64, error) {
	var ids []int64
	query := "SELECT flashcard_id FROM flashcard_links WHERE save_id = ? ORDER BY flashcard_id"
	if err := r.db.SelectContext(ctx, &ids, query, saveID); err != nil {
		return nil, fmt.Errorf("load flashcard links of save %d: %w", saveID, err)
	}
	return ids, nil
}

// Commit writes the flashcards, the save, its links and the advanced notebook baseline in one transaction.
// If the notebook revision is no longer BaseRevision, nothing is written and ErrRevisionConflict is returned.
func (r *DBSaveRepository) Commit(ctx context.Context, commit SaveCommit) (*CommitResult, error) {
	var result CommitResult
	err := database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		ids, err := insertFlashcards(ctx, tx, commit.Flashcards, commit.SavedAt)
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			"INSERT INTO saves (notebook_id, content_snapshot, new_content_delta, flashcards_generated, saved_at) VALUES (?, ?, ?, ?, ?)",
			commit.NotebookID, commit.Content, nullableString(commit.Delta), len(ids), commit.SavedAt)
		if err != nil {
			return fmt.Errorf("insert save: %w", err)
		}
		saveID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("get save id: %w", err)
		}

		if err := insertLinks(ctx, tx, saveID, ids); err != nil {
			return err
		}

		res, err = tx.ExecContext(ctx,
			"UPDATE notebooks SET content = ?, last_saved_content = ?, last_saved_at = ?, revision = revision + 1, updated_at = ? WHERE id = ? AND revision = ?",
			commit.Content, commit.Content, commit.SavedAt, commit.SavedAt, commit.NotebookID, commit.BaseRevision)
		if err != nil {
			return fmt.Errorf("update notebook baseline: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("get affected rows: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("notebook %d at revision %d: %w", commit.NotebookID, commit.BaseRevision, ErrRevisionConflict)
		}

		result = CommitResult{SaveID: saveID, FlashcardIDs: ids}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ReplaceFlashcards deletes every flashcard linked to the save, inserts cards in their place,
// links them to the same save and updates its flashcard count, all in one transaction.
func (r *DBSaveRepository) ReplaceFlashcards(ctx context.Context, saveID int64, cards []NewFlashcard, now time.Time) (*ReplaceResult, error) {
	var result ReplaceResult
	err := database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		var oldIDs []int64
		if err := tx.SelectContext(ctx, &oldIDs,
			"SELECT flashcard_id FROM flashcard_links WHERE save_id = ? ORDER BY flashcard_id", saveID); err != nil {
			return fmt.Errorf("load flashcard links of save %d: %w", saveID, err)
		}

		if len(oldIDs) > 0 {
			if _, err := tx.ExecContext(ctx, "DELETE FROM flashcard_links WHERE save_id = ?", saveID); err != nil {
				return fmt.Errorf("delete flashcard links of save %d: %w", saveID, err)
			}
			query, args, err := sqlx.In("DELETE FROM flashcards WHERE id IN (?)", oldIDs)
			if err != nil {
				return fmt.Errorf("build flashcard delete: %w", err)
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
				return fmt.Errorf("delete flashcards of save %d: %w", saveID, err)
			}
		}

		ids, err := insertFlashcards(ctx, tx, cards, now)
		if err != nil {
			return err
		}
		if err := insertLinks(ctx, tx, saveID, ids); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, "UPDATE saves SET flashcards_generated = ? WHERE id = ?", len(ids), saveID)
		if err != nil {
			return fmt.Errorf("update save %d: %w", saveID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("get affected rows: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("save %d: %w", saveID, ErrNotFound)
		}

		result = ReplaceResult{FlashcardIDs: ids, Previous: len(oldIDs)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
