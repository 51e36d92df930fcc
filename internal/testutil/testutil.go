// Package testutil provides shared test helpers for creating config files and database fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// SetupTestConfig creates a minimal config file backed by a SQLite database under tmpDir.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	dirs := []string{"exports"}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`log:
  level: debug
  pretty: false
database:
  driver: sqlite3
  path: %s
outputs:
  export_directory: %s
`,
		filepath.Join(tmpDir, "flashnote.db"),
		filepath.Join(tmpDir, "exports"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithAPIKey creates a config file with a fake OpenAI API key for tests
// that require API key validation to pass.
func SetupTestConfigWithAPIKey(t *testing.T, tmpDir string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = append(content, []byte("openai:\n  api_key: fake-key-for-testing\n  model: gpt-4o-mini\n")...)
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}

// SetupTestConfigWithOpenAI creates a config file whose OpenAI client talks to baseURL
// with a single attempt per request.
func SetupTestConfigWithOpenAI(t *testing.T, tmpDir string, baseURL string) string {
	t.Helper()
	cfgPath := SetupTestConfigWithAPIKey(t, tmpDir)

	f, err := os.OpenFile(cfgPath, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, f.Close())
	}()
	_, err = fmt.Fprintf(f, "  base_url: %s\n  max_retry_attempts: 1\n", baseURL)
	require.NoError(t, err)
	return cfgPath
}

// NewMockDB returns a sqlx handle backed by sqlmock with the mysql driver name,
// and registers a cleanup that verifies every expectation was met.
func NewMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return sqlx.NewDb(db, "mysql"), mock
}
