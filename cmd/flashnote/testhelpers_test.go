package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/flashnote/internal/testutil"
)

func setConfigFile(t *testing.T, cfgPath string) {
	t.Helper()
	oldConfigFile := configFile
	configFile = cfgPath
	t.Cleanup(func() { configFile = oldConfigFile })
}

// setupBrokenConfigFile creates a config file with invalid YAML that causes Load() to fail.
func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{{invalid yaml content"), 0644))
	return cfgPath
}

// setupOpenAIConfig points the OpenAI client at a fake chat completions server that answers with content.
func setupOpenAIConfig(t *testing.T, tmpDir string, content string) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"choices":[{"index":0,"message":{"role":"assistant","content":%q}}]}`, content)
	}))
	t.Cleanup(server.Close)

	return testutil.SetupTestConfigWithOpenAI(t, tmpDir, server.URL)
}

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	// defining the root flags resets configFile
	cfgPath := configFile
	cmd := newRootCommand()
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

// setupNotebook migrates the database and creates study set 1 with notebook 1.
func setupNotebook(t *testing.T) {
	t.Helper()
	_, err := execute(t, "", "migrate")
	require.NoError(t, err)
	_, err = execute(t, "", "study-sets", "create", "Biology")
	require.NoError(t, err)
	_, err = execute(t, "", "notebooks", "create", "1", "Cell Biology")
	require.NoError(t, err)
}

// openTestApp opens the database of the current config file for assertions.
func openTestApp(t *testing.T) *app {
	t.Helper()
	a, err := openApp()
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func writeContent(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "notebook.html")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
