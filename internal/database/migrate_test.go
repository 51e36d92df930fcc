package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/flashnote/internal/config"
)

func TestMigrate_SQLite(t *testing.T) {
	cfg := config.DatabaseConfig{
		Driver: DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "flashnote.db"),
	}

	db, err := Open(cfg)
	require.NoError(t, err)
	applied, err := Migrate(db, DriverSQLite)
	require.NoError(t, err)
	assert.True(t, applied)

	db, err = Open(cfg)
	require.NoError(t, err)
	applied, err = Migrate(db, DriverSQLite)
	require.NoError(t, err)
	assert.False(t, applied, "second run has nothing to apply")

	db, err = Open(cfg)
	require.NoError(t, err)
	defer db.Close()

	var tables []string
	require.NoError(t, db.Select(&tables,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' AND name != 'schema_migrations' ORDER BY name"))
	assert.Equal(t, []string{"flashcard_links", "flashcards", "notebooks", "saves", "study_sets"}, tables)
}

func TestMigrationDir(t *testing.T) {
	tests := []struct {
		driver  string
		want    string
		wantErr bool
	}{
		{driver: "mysql", want: "migrations/mysql"},
		{driver: "", want: "migrations/mysql"},
		{driver: "sqlite3", want: "migrations/sqlite"},
		{driver: "postgres", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			got, err := migrationDir(tt.driver)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
