// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv makes sure ambient GDINJECT_* variables do not leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"GDINJECT_STATE_FILE", "GDINJECT_HISTORY_DB", "GDINJECT_LOG_LEVEL", "GDINJECT_SUBSTITUTION"} {
		t.Setenv(name, "")
	}
}

// TestConfig_Default tests that Default() returns a valid config with defaults.
func TestConfig_Default(t *testing.T) {
	cfg := Default()

	if cfg.Editor.HideDelayMs != 100 {
		t.Errorf("Expected hide delay 100ms, got %d", cfg.Editor.HideDelayMs)
	}
	if cfg.Editor.Substitution != "offset" {
		t.Errorf("Expected substitution 'offset', got '%s'", cfg.Editor.Substitution)
	}
	if filepath.Base(cfg.Paths.StateFile) != "config.json" {
		t.Errorf("Unexpected state file %s", cfg.Paths.StateFile)
	}
	if filepath.Base(filepath.Dir(cfg.Paths.StateFile)) != DirName {
		t.Errorf("State file should live in %s, got %s", DirName, cfg.Paths.StateFile)
	}
	if cfg.HideDelay() != 100*time.Millisecond {
		t.Errorf("HideDelay() = %v", cfg.HideDelay())
	}
	if cfg.Debounce() != 150*time.Millisecond {
		t.Errorf("Debounce() = %v", cfg.Debounce())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

// TestConfig_Validate tests configuration validation.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid default config", mutate: func(c *Config) {}},
		{name: "text substitution", mutate: func(c *Config) { c.Editor.Substitution = "text" }},
		{name: "zero hide delay", mutate: func(c *Config) { c.Editor.HideDelayMs = 0 }},
		{
			name:    "invalid substitution",
			mutate:  func(c *Config) { c.Editor.Substitution = "regex" },
			wantErr: "editor.substitution",
		},
		{
			name:    "negative hide delay",
			mutate:  func(c *Config) { c.Editor.HideDelayMs = -1 },
			wantErr: "editor.hide_delay_ms",
		},
		{
			name:    "max visible too large",
			mutate:  func(c *Config) { c.Editor.MaxVisible = 500 },
			wantErr: "editor.max_visible",
		},
		{
			name:    "empty state file",
			mutate:  func(c *Config) { c.Paths.StateFile = " " },
			wantErr: "paths.state_file",
		},
		{
			name:    "history enabled without db",
			mutate:  func(c *Config) { c.Paths.HistoryDB = "" },
			wantErr: "paths.history_db",
		},
		{
			name:    "negative history limit",
			mutate:  func(c *Config) { c.History.Limit = -5 },
			wantErr: "history.limit",
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: "log.level",
		},
		{
			name:    "invalid log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: "log.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateErrors_Multiple(t *testing.T) {
	c := Default()
	c.Log.Level = "loud"
	c.Log.Format = "xml"

	err := c.Validate()
	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)
	assert.Equal(t, 2, strings.Count(err.Error(), ";")+1)
	assert.Equal(t, "no validation errors", ValidateErrors(nil).Error())
}

func TestLoadFromPath_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "settings.toml")
	content := `
[editor]
substitution = "text"

[history]
enabled = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Editor.Substitution)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, 100, cfg.Editor.HideDelayMs)
	assert.True(t, cfg.Watch.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromPath_RejectsUnknownKeys(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("[editor]\nhide_delay = 5\n"), 0600))

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "editor.hide_delay")
}

func TestLoadFromPath_Invalid(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"loud\"\n"), 0600))

	_, err := LoadFromPath(path)
	var verrs ValidateErrors
	assert.True(t, errors.As(err, &verrs))
}

func TestLoadFromPath_ExpandsHome(t *testing.T) {
	clearEnv(t)
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("[paths]\nstate_file = \"~/gd/state.json\"\n"), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "gd", "state.json"), cfg.Paths.StateFile)
}

func TestSaveAndReload(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sub", "settings.toml")

	cfg := Default()
	cfg.Editor.MaxVisible = 12
	cfg.Watch.Enabled = false
	require.NoError(t, SaveTOML(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	if info.Mode().Perm()&0077 != 0 && os.Getenv("OS") != "Windows_NT" {
		t.Errorf("settings file should be private, got %o", info.Mode().Perm())
	}

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 12, loaded.Editor.MaxVisible)
	assert.False(t, loaded.Watch.Enabled)
	assert.Equal(t, cfg.Paths.StateFile, loaded.Paths.StateFile)
}

func TestLoadOrDefault(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := LoadOrDefault(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Editor, cfg.Editor)

	path := filepath.Join(dir, "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("[editor]\nmax_visible = 3\n"), 0600))
	cfg, err = LoadOrDefault(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Editor.MaxVisible)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("GDINJECT_STATE_FILE", "/tmp/state.json")
	t.Setenv("GDINJECT_HISTORY_DB", "/tmp/history.db")
	t.Setenv("GDINJECT_LOG_LEVEL", "debug")
	t.Setenv("GDINJECT_SUBSTITUTION", "text")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	assert.Equal(t, "/tmp/state.json", cfg.Paths.StateFile)
	assert.Equal(t, "/tmp/history.db", cfg.Paths.HistoryDB)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Editor.Substitution)
}

func TestSetDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()
	def := Default()
	assert.Equal(t, def.Paths, cfg.Paths)
	assert.Equal(t, "offset", cfg.Editor.Substitution)
	assert.Equal(t, def.Editor.MaxVisible, cfg.Editor.MaxVisible)
	assert.Equal(t, 0, cfg.Editor.HideDelayMs)
}

func TestGetSet(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Set("editor.max_visible", "20"))
	v, err := cfg.Get("editor.max_visible")
	require.NoError(t, err)
	assert.Equal(t, 20, v)

	require.NoError(t, cfg.Set("history.enabled", "false"))
	assert.False(t, cfg.History.Enabled)

	require.NoError(t, cfg.Set("paths.history_db", "/data/h.db"))
	assert.Equal(t, "/data/h.db", cfg.Paths.HistoryDB)

	require.NoError(t, cfg.Set("watch.debounce_ms", 300))
	assert.Equal(t, 300, cfg.Watch.DebounceMs)

	assert.Error(t, cfg.Set("editor.max_visible", "many"))
	assert.Error(t, cfg.Set("history.enabled", "perhaps"))
	assert.Error(t, cfg.Set("editor.nope", "1"))
	_, err = cfg.Get("editor")
	assert.Error(t, err)
	_, err = cfg.Get("")
	assert.Error(t, err)
}

func TestGetAllKeysResolve(t *testing.T) {
	cfg := Default()
	for _, key := range GetAllKeys() {
		_, err := cfg.Get(key)
		assert.NoError(t, err, key)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	cfg := Default()
	clone := cfg.Clone()
	clone.Log.Level = "debug"
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Contains(t, cfg.String(), "[editor]")
}
