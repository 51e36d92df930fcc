package notebook

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=notebook_repository.go -destination=../mocks/notebook/mock_notebook_repository.go -package=mock_notebook

// NotebookRepository defines operations for managing notebooks and study sets.
type NotebookRepository interface {
	FindByID(ctx context.Context, id int64) (*Notebook, error)
	FindStudySet(ctx context.Context, id int64) (*StudySet, error)
	List(ctx context.Context, studySetID int64) ([]Notebook, error)
	Create(ctx context.Context, notebook *Notebook) error
	CreateStudySet(ctx context.Context, studySet *StudySet) error
	UpdateContent(ctx context.Context, id int64, content string, now time.Time) error
	IncrementFlashcardsGenerated(ctx context.Context, id int64, delta int) error
}

// DBNotebookRepository implements NotebookRepository using sqlx.
type DBNotebookRepository struct {
	db *sqlx.DB
}

// NewDBNotebookRepository creates a new DBNotebookRepository.
func NewDBNotebookRepository(db *sqlx.DB) *DBNotebookRepository {
	return &DBNotebookRepository{db: db}
}

// FindByID returns the notebook or ErrNotFound.
func (r *DBNotebookRepository) FindByID(ctx context.Context, id int64) (*Notebook, error) {
	var n Notebook
	err := r.db.GetContext(ctx, &n, "SELECT * FROM notebooks WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("notebook %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load notebook %d: %w", id, err)
	}
	return &n, nil
}

// FindStudySet returns the study set or ErrNotFound.
func (r *DBNotebookRepository) FindStudySet(ctx context.Context, id int64) (*StudySet, error) {
	var s StudySet
	err := r.db.GetContext(ctx, &s, "SELECT * FROM study_sets WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("study set %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load study set %d: %w", id, err)
	}
	return &s, nil
}

// List returns notebooks ordered by ID. A zero studySetID lists every study set.
func (r *DBNotebookRepository) List(ctx context.Context, studySetID int64) ([]Notebook, error) {
	query := "SELECT * FROM notebooks ORDER BY id"
	var args []interface{}
	if studySetID != 0 {
		query = "SELECT * FROM notebooks WHERE study_set_id = ? ORDER BY id"
		args = append(args, studySetID)
	}

	notebooks := []Notebook{}
	if err := r.db.SelectContext(ctx, &notebooks, query, args...); err != nil {
		return nil, fmt.Errorf("list notebooks: %w", err)
	}
	return notebooks, nil
}

// Create inserts an empty notebook and sets its ID.
func (r *DBNotebookRepository) Create(ctx context.Context, notebook *Notebook) error {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO notebooks (study_set_id, title, content) VALUES (?, ?, ?)",
		notebook.StudySetID, notebook.Title, notebook.Content)
	if err != nil {
		return fmt.Errorf("insert notebook: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get notebook id: %w", err)
	}
	notebook.ID = id
	return nil
}

// CreateStudySet inserts a study set and sets its ID.
func (r *DBNotebookRepository) CreateStudySet(ctx context.Context, studySet *StudySet) error {
	result, err := r.db.ExecContext(ctx, "INSERT INTO study_sets (name) VALUES (?)", studySet.Name)
	if err != nil {
		return fmt.Errorf("insert study set: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get study set id: %w", err)
	}
	studySet.ID = id
	return nil
}

// UpdateContent replaces the live content only. The saved baseline and revision are untouched.
func (r *DBNotebookRepository) UpdateContent(ctx context.Context, id int64, content string, now time.Time) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE notebooks SET content = ?, updated_at = ? WHERE id = ?",
		content, now, id)
	if err != nil {
		return fmt.Errorf("update notebook %d content: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("notebook %d: %w", id, ErrNotFound)
	}
	return nil
}

// IncrementFlashcardsGenerated adds delta to the notebook's flashcard counter. delta may be negative.
func (r *DBNotebookRepository) IncrementFlashcardsGenerated(ctx context.Context, id int64, delta int) error {
	if delta == 0 {
		return nil
	}
	_, err := r.db.ExecContext(ctx,
		"UPDATE notebooks SET flashcards_generated = flashcards_generated + ? WHERE id = ?",
		delta, id)
	if err != nil {
		return fmt.Errorf("update notebook %d flashcard counter: %w", id, err)
	}
	return nil
}
