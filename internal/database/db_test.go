package database

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/flashnote/internal/config"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.DatabaseConfig
		wantDriver string
		wantErr    bool
	}{
		{
			name: "creates mysql connection with valid config",
			cfg: config.DatabaseConfig{
				Driver:   "mysql",
				Host:     "localhost",
				Port:     3306,
				Database: "testdb",
				Username: "testuser",
				Password: "testpass",
			},
			wantDriver: "mysql",
		},
		{
			name: "defaults to mysql when the driver is empty",
			cfg: config.DatabaseConfig{
				Host:            "db.example.com",
				Port:            3307,
				Database:        "flashnote",
				Username:        "admin",
				Password:        "secret",
				MaxOpenConns:    25,
				MaxIdleConns:    5,
				ConnMaxLifetime: 300,
				TLS:             true,
				Params:          map[string]string{"charset": "utf8mb4"},
			},
			wantDriver: "mysql",
		},
		{
			name: "creates sqlite connection",
			cfg: config.DatabaseConfig{
				Driver: "sqlite3",
				Path:   filepath.Join(t.TempDir(), "flashnote.db"),
			},
			wantDriver: "sqlite3",
		},
		{
			name:    "rejects unknown driver",
			cfg:     config.DatabaseConfig{Driver: "postgres"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Open(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			defer got.Close()

			assert.Equal(t, tt.wantDriver, got.DriverName())
		})
	}
}

var errStaleRevision = errors.New("stale revision")

func TestRunInTx(t *testing.T) {
	tests := []struct {
		name      string
		fn        func(ctx context.Context, tx *sqlx.Tx) error
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
		errMsg    string
		wantIsErr error
	}{
		{
			name: "commits on success",
			fn: func(ctx context.Context, tx *sqlx.Tx) error {
				return nil
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit()
			},
		},
		{
			name: "rolls back on error",
			fn: func(ctx context.Context, tx *sqlx.Tx) error {
				return fmt.Errorf("something failed")
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			wantErr: true,
			errMsg:  "something failed",
		},
		{
			name: "rollback error keeps the original error",
			fn: func(ctx context.Context, tx *sqlx.Tx) error {
				return fmt.Errorf("insert save: %w", errStaleRevision)
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback().WillReturnError(fmt.Errorf("connection lost"))
			},
			wantErr:   true,
			errMsg:    "rollback transaction: connection lost",
			wantIsErr: errStaleRevision,
		},
		{
			name: "begin error",
			fn: func(ctx context.Context, tx *sqlx.Tx) error {
				return nil
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(fmt.Errorf("begin failed"))
			},
			wantErr: true,
			errMsg:  "begin transaction",
		},
		{
			name: "commit error",
			fn: func(ctx context.Context, tx *sqlx.Tx) error {
				return nil
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit().WillReturnError(fmt.Errorf("commit failed"))
			},
			wantErr: true,
			errMsg:  "commit transaction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			sqlxDB := sqlx.NewDb(db, "mysql")
			tt.setupMock(mock)

			err = RunInTx(context.Background(), sqlxDB, tt.fn)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				if tt.wantIsErr != nil {
					assert.ErrorIs(t, err, tt.wantIsErr)
				}
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBuildMultiRowInsert(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		columns []string
		rows    int
		want    string
	}{
		{
			name:    "single row",
			table:   "flashcard_links",
			columns: []string{"save_id", "flashcard_id"},
			rows:    1,
			want:    "INSERT INTO flashcard_links (save_id, flashcard_id) VALUES (?, ?)",
		},
		{
			name:    "three rows",
			table:   "flashcard_links",
			columns: []string{"save_id", "flashcard_id"},
			rows:    3,
			want:    "INSERT INTO flashcard_links (save_id, flashcard_id) VALUES (?, ?), (?, ?), (?, ?)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildMultiRowInsert(tt.table, tt.columns, tt.rows))
		})
	}
}

func TestMySQLDSN(t *testing.T) {
	dsn := mysqlDSN(config.DatabaseConfig{
		Driver:   DriverMySQL,
		Host:     "db.internal",
		Port:     3307,
		Database: "flashnote",
		Username: "app",
		Password: "secret",
		TLS:      true,
	})

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "db.internal:3307", parsed.Addr)
	assert.Equal(t, "flashnote", parsed.DBName)
	assert.Equal(t, "app", parsed.User)
	assert.True(t, parsed.ParseTime)
	assert.True(t, parsed.ClientFoundRows, "revision checks rely on matched rows")
	assert.Equal(t, "true", parsed.TLSConfig)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file:/tmp/flashnote.db?_foreign_keys=on&_busy_timeout=5000", sqliteDSN("/tmp/flashnote.db"))
}
