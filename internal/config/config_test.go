package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
		env           map[string]string

		want        func(t *testing.T, cfg *Config)
		wantErr     bool
		wantErrText string
	}{
		{
			name:          "defaults without a config file",
			configContent: "",
			want: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, "mysql", cfg.Database.Driver)
				assert.Equal(t, 3306, cfg.Database.Port)
				assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
				assert.Equal(t, uint(3), cfg.OpenAI.MaxRetryAttempts)
				assert.Equal(t, 2*time.Hour, cfg.Redis.DraftTTL)
				assert.Equal(t, 24*time.Hour, cfg.Redis.IdempotencyTTL)
				assert.Equal(t, "info", cfg.Log.Level)
			},
		},
		{
			name: "sqlite database with overrides",
			configContent: `database:
  driver: sqlite3
  path: /tmp/flashnote.db
server:
  port: 9090
  request_timeout: 5s
redis:
  addr: localhost:6379
`,
			want: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "sqlite3", cfg.Database.Driver)
				assert.Equal(t, "/tmp/flashnote.db", cfg.Database.Path)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
				assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
			},
		},
		{
			name:          "secrets come from environment variables",
			configContent: "",
			env: map[string]string{
				"OPENAI_API_KEY": "sk-test",
				"DB_PASSWORD":    "db-secret",
				"REDIS_PASSWORD": "redis-secret",
			},
			want: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
				assert.Equal(t, "db-secret", cfg.Database.Password)
				assert.Equal(t, "redis-secret", cfg.Redis.Password)
			},
		},
		{
			name: "sqlite driver requires a path",
			configContent: `database:
  driver: sqlite3
`,
			wantErr:     true,
			wantErrText: "path",
		},
		{
			name: "unknown driver is rejected",
			configContent: `database:
  driver: postgres
`,
			wantErr:     true,
			wantErrText: "driver",
		},
		{
			name: "missing template file is rejected",
			configContent: `templates:
  save_history_template: /non/existent/template.md.go.tmpl
`,
			wantErr:     true,
			wantErrText: "must be an existing and readable file",
		},
		{
			name: "export directory must not be a file",
			configContent: `outputs:
  export_directory: config.go
`,
			wantErr:     true,
			wantErrText: "outputs.export_directory must be a directory or a path that can be created",
		},
		{
			name: "non-positive server timeout is rejected",
			configContent: `server:
  shutdown_timeout: 0s
`,
			wantErr:     true,
			wantErrText: "server.shutdown_timeout must be a positive duration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			configFile := filepath.Join(t.TempDir(), "config.yml")
			require.NoError(t, os.WriteFile(configFile, []byte(tt.configContent), 0644))

			loader, err := NewConfigLoader(configFile)
			require.NoError(t, err)

			got, err := loader.Load()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrText)
				return
			}
			require.NoError(t, err)
			tt.want(t, got)
		})
	}
}
