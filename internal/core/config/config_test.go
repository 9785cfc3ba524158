package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load("", dataDir)
	require.NoError(t, err)

	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "tasks", cfg.Storage.Key)
	assert.Equal(t, "dark", cfg.TUI.Theme)
	assert.Equal(t, 5000, cfg.Database.BusyTimeout)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
}

func TestLoad_PartialFile(t *testing.T) {
	path := writeConfig(t, `
storage:
  backend: bolt
tui:
  theme: light
`)

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, BackendBolt, cfg.Storage.Backend)
	assert.Equal(t, "tasks", cfg.Storage.Key, "unset key falls back to default")
	assert.Equal(t, "light", cfg.TUI.Theme)
	assert.Equal(t, 4, cfg.Database.MaxOpenConns)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"malformed yaml", "storage: [", "parse config file"},
		{"unknown backend", "storage:\n  backend: redis\n", "storage.backend"},
		{"unknown theme", "tui:\n  theme: solarized\n", "tui.theme"},
		{"negative timeout", "database:\n  busy_timeout: -1\n", "busy_timeout"},
		{"idle above open", "database:\n  max_open_conns: 1\n  max_idle_conns: 3\n", "max_idle_conns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body), t.TempDir())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_EmptyDataDir(t *testing.T) {
	_, err := Load("", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data directory")
}

func TestWarnings(t *testing.T) {
	cfg := DefaultConfig()
	assert.Empty(t, cfg.Warnings())

	cfg.Storage.Backend = BackendMemory
	warnings := cfg.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "Storage", warnings[0].Category)
}
