// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/gdinject/internal/app"
	"github.com/jeranaias/gdinject/internal/clipboard"
	"github.com/jeranaias/gdinject/internal/config"
	"github.com/jeranaias/gdinject/internal/reference"
	"github.com/jeranaias/gdinject/internal/shortcut"
)

// =============================================================================
// TEST HARNESS
// =============================================================================

type testEnv struct {
	dir      string
	settings string
	state    string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	for _, key := range []string{"GDINJECT_STATE_FILE", "GDINJECT_HISTORY_DB", "GDINJECT_LOG_LEVEL", "GDINJECT_SUBSTITUTION", "NO_COLOR"} {
		t.Setenv(key, "")
	}

	env := &testEnv{
		dir:      dir,
		settings: filepath.Join(dir, "settings.toml"),
		state:    filepath.Join(dir, "config.json"),
	}
	settings := fmt.Sprintf(`[paths]
state_file = %q
history_db = %q
log_file = %q

[watch]
enabled = false
`, env.state, filepath.Join(dir, "history.db"), filepath.Join(dir, "gdinject.log"))
	require.NoError(t, os.WriteFile(env.settings, []byte(settings), 0600))
	return env
}

// run executes one command line and returns stdout and stderr.
func (e *testEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCommand(BuildInfo{Version: "1.2.3", Commit: "abc1234", Date: "2025-01-01"})
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config", e.settings, "--no-clipboard"}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, stderr, err := e.run(t, args...)
	require.NoError(t, err, "gdinject %s\nstderr: %s", strings.Join(args, " "), stderr)
	return out
}

func decodeResponse(t *testing.T, out string, data interface{}) JSONResponse {
	t.Helper()
	resp := JSONResponse{Data: data}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	return resp
}

// =============================================================================
// PID COMMANDS
// =============================================================================

func TestPIDAddAndList(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "pid", "add", "p1")
	assert.Equal(t, "PID p1 selected\n", out)
	env.mustRun(t, "pid", "add", "p2")

	out = env.mustRun(t, "pid", "list")
	assert.Equal(t, " \tp1\n*\tp2\n", out)

	env.mustRun(t, "pid", "use", "p1")
	out = env.mustRun(t, "pid", "list")
	assert.Equal(t, "*\tp1\n \tp2\n", out)
}

func TestPIDListJSON(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "pid", "add", "p1")

	var data struct {
		Current string   `json:"current"`
		Saved   []string `json:"saved"`
	}
	resp := decodeResponse(t, env.mustRun(t, "pid", "list", "--json"), &data)
	assert.True(t, resp.Success)
	assert.Equal(t, "pid list", resp.Command)
	assert.Equal(t, "p1", data.Current)
	assert.Equal(t, []string{"p1"}, data.Saved)
}

func TestPIDErrors(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t, "pid", "use", "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, app.ErrUnknownPID))
	assert.Equal(t, ExitNotFound, ExitCode(err))

	_, _, err = env.run(t, "pid", "add", "   ")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, ExitCode(err))
}

// =============================================================================
// SHORTCUT COMMANDS
// =============================================================================

func TestShortcutAddRequiresPID(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t, "shortcut", "add", "metric", "Revenue", "123")
	require.Error(t, err)
	assert.True(t, errors.Is(err, app.ErrNoPID))
	assert.Equal(t, ExitUsageError, ExitCode(err))
}

func TestShortcutLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "pid", "add", "p1")

	out := env.mustRun(t, "shortcut", "add", "metric", "Revenue", "123")
	assert.Equal(t, "Added metric Revenue (123)\n", out)
	env.mustRun(t, "shortcut", "add", "attr", "Region", "456")
	env.mustRun(t, "shortcut", "add", "dates", "Year", "789")

	out = env.mustRun(t, "shortcut", "list")
	assert.Equal(t, "metric\tRevenue\t123\nattribute\tRegion\t456\ndate\tYear\t789\n", out)

	out = env.mustRun(t, "shortcut", "list", "attribute")
	assert.Equal(t, "attribute\tRegion\t456\n", out)

	out = env.mustRun(t, "shortcut", "edit", "metric", "Revenue", "--id", "124")
	assert.Equal(t, "Updated metric Revenue (124)\n", out)
	env.mustRun(t, "shortcut", "edit", "metric", "Revenue", "--name", "Net Revenue")

	out = env.mustRun(t, "shortcut", "list", "metric")
	assert.Equal(t, "metric\tNet Revenue\t124\n", out)

	out = env.mustRun(t, "shortcut", "rm", "metric", "Net Revenue")
	assert.Equal(t, "Deleted metric Net Revenue\n", out)
	assert.Empty(t, env.mustRun(t, "shortcut", "list", "metric"))
}

func TestShortcutListJSON(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "pid", "add", "p1")
	env.mustRun(t, "shortcut", "add", "metric", "Revenue", "123")

	var items []shortcutJSON
	resp := decodeResponse(t, env.mustRun(t, "shortcut", "list", "--json"), &items)
	assert.True(t, resp.Success)
	require.Len(t, items, 1)
	assert.Equal(t, shortcutJSON{
		Category:  "metric",
		Name:      "Revenue",
		ObjectID:  "123",
		Reference: "[/gdc/md/p1/obj/123]",
	}, items[0])
}

func TestShortcutErrors(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "pid", "add", "p1")

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"unknown category", []string{"shortcut", "add", "fact", "X", "1"}, ExitUsageError},
		{"empty name", []string{"shortcut", "add", "metric", " ", "1"}, ExitUsageError},
		{"empty id", []string{"shortcut", "add", "metric", "X", ""}, ExitUsageError},
		{"missing args", []string{"shortcut", "add", "metric", "X"}, ExitGeneralError},
		{"edit unknown", []string{"shortcut", "edit", "metric", "Nope", "--id", "1"}, ExitNotFound},
		{"edit nothing", []string{"shortcut", "edit", "metric", "Nope"}, ExitUsageError},
		{"rm unknown", []string{"shortcut", "rm", "date", "Nope"}, ExitNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := env.run(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, ExitCode(err), "error: %v", err)
		})
	}
}

func TestStatePersistsAcrossRuns(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "pid", "add", "p1")
	env.mustRun(t, "shortcut", "add", "metric", "Revenue", "123")

	data, err := os.ReadFile(env.state)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Revenue"`)
	assert.Contains(t, string(data), `"p1"`)
}

func TestUnreadableStateIsNotOverwritten(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.state, []byte("{not json"), 0600))

	out, stderr, err := env.run(t, "shortcut", "list")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "Could not read saved state")

	_, _, err = env.run(t, "pid", "add", "p1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to overwrite")

	data, err := os.ReadFile(env.state)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}

// =============================================================================
// REFERENCES AND HISTORY
// =============================================================================

func TestRefPrintsAndRecords(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "pid", "add", "p1")
	env.mustRun(t, "shortcut", "add", "metric", "Revenue", "123")

	out := env.mustRun(t, "ref", "metric", "Revenue")
	assert.Equal(t, "[/gdc/md/p1/obj/123]\n", out)

	out = env.mustRun(t, "history")
	fields := strings.Split(strings.TrimSuffix(out, "\n"), "\t")
	require.Len(t, fields, 4)
	assert.Equal(t, "reference", fields[1])
	assert.Equal(t, "p1", fields[2])
	assert.Equal(t, "[/gdc/md/p1/obj/123]", fields[3])
}

func TestRefNoCopySkipsHistory(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "pid", "add", "p1")
	env.mustRun(t, "shortcut", "add", "attribute", "Region", "456")

	out := env.mustRun(t, "ref", "attribute", "Region", "--no-copy")
	assert.Equal(t, "[/gdc/md/p1/obj/456]\n", out)
	assert.Empty(t, env.mustRun(t, "history"))
}

func TestRefUsesCurrentPID(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "pid", "add", "p1")
	env.mustRun(t, "shortcut", "add", "metric", "Revenue", "123")
	env.mustRun(t, "pid", "add", "p2")

	out := env.mustRun(t, "ref", "metric", "Revenue", "--no-copy")
	assert.Equal(t, "[/gdc/md/p2/obj/123]\n", out)
}

func TestRefErrors(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t, "ref", "metric", "Revenue")
	require.Error(t, err)
	assert.True(t, errors.Is(err, app.ErrNoPID))

	env.mustRun(t, "pid", "add", "p1")
	_, _, err = env.run(t, "ref", "metric", "Revenue")
	assert.Equal(t, ExitNotFound, ExitCode(err))
}

func TestHistoryJSON(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "pid", "add", "p1")
	env.mustRun(t, "shortcut", "add", "metric", "Revenue", "123")
	env.mustRun(t, "ref", "metric", "Revenue")
	env.mustRun(t, "ref", "metric", "Revenue")

	var items []historyJSON
	decodeResponse(t, env.mustRun(t, "history", "--json", "-n", "1"), &items)
	require.Len(t, items, 1)
	assert.Equal(t, "reference", items[0].Kind)
	assert.Equal(t, "[/gdc/md/p1/obj/123]", items[0].Text)
	assert.NotEmpty(t, items[0].ID)
}

func TestHistoryDisabled(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "config", "set", "history.enabled", "false")

	_, _, err := env.run(t, "history")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, ExitCode(err))
}

func TestDecode(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "decode", reference.Encode("abc", "42"))
	assert.Equal(t, "abc\t42\n", out)

	var data map[string]string
	decodeResponse(t, env.mustRun(t, "decode", "--json", "[/gdc/md/abc/obj/42]"), &data)
	assert.Equal(t, map[string]string{"pid": "abc", "object_id": "42"}, data)

	_, _, err := env.run(t, "decode", "Revenue")
	require.Error(t, err)
	assert.True(t, errors.Is(err, reference.ErrMalformed))
	assert.Equal(t, ExitUsageError, ExitCode(err))
}

// =============================================================================
// CONFIG AND VERSION
// =============================================================================

func TestConfigGetSet(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, "8\n", env.mustRun(t, "config", "get", "editor.max_visible"))

	out := env.mustRun(t, "config", "set", "editor.max_visible", "5")
	assert.Equal(t, "[OK] editor.max_visible = 5\n", out)
	assert.Equal(t, "5\n", env.mustRun(t, "config", "get", "editor.max_visible"))

	// Settings from the original file survive the rewrite.
	assert.Equal(t, "false\n", env.mustRun(t, "config", "get", "watch.enabled"))
}

func TestConfigSetDoesNotSaveEnvOverrides(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("GDINJECT_SUBSTITUTION", "text")

	assert.Equal(t, "text\n", env.mustRun(t, "config", "get", "editor.substitution"))
	env.mustRun(t, "config", "set", "history.limit", "10")

	cfg, err := config.LoadFromPath(env.settings)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.History.Limit)

	data, err := os.ReadFile(env.settings)
	require.NoError(t, err)
	assert.Contains(t, string(data), `substitution = "offset"`)
}

func TestConfigErrors(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t, "config", "get", "editor.nope")
	assert.Equal(t, ExitUsageError, ExitCode(err))

	_, _, err = env.run(t, "config", "set", "editor.max_visible", "many")
	assert.Equal(t, ExitUsageError, ExitCode(err))

	_, _, err = env.run(t, "config", "set", "editor.max_visible", "500")
	assert.Equal(t, ExitConfigError, ExitCode(err))
}

func TestBrokenSettings(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.settings, []byte("[editor]\nmax_visible = \"lots\"\n"), 0600))

	_, _, err := env.run(t, "shortcut", "list")
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, ExitCode(err))

	// These still work so the file can be inspected and repaired.
	assert.Equal(t, env.settings+"\n", env.mustRun(t, "config", "path"))
	assert.Equal(t, "1.2.3\n", env.mustRun(t, "version", "--short"))
	env.mustRun(t, "config", "reset")
	env.mustRun(t, "shortcut", "list")
}

func TestConfigShowJSON(t *testing.T) {
	env := newTestEnv(t)

	var values map[string]interface{}
	decodeResponse(t, env.mustRun(t, "config", "show", "--json"), &values)
	assert.Equal(t, env.state, values["paths.state_file"])
	assert.Equal(t, false, values["watch.enabled"])
	assert.Len(t, values, len(config.GetAllKeys()))
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "version")
	assert.True(t, strings.HasPrefix(out, "gdinject version 1.2.3 (commit: abc1234, built: 2025-01-01"), out)

	var data map[string]string
	resp := decodeResponse(t, env.mustRun(t, "version", "--json"), &data)
	assert.Equal(t, "version", resp.Command)
	assert.Equal(t, "1.2.3", data["version"])
	assert.Equal(t, "abc1234", data["commit"])
}

func TestRootWithoutTTY(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t)
	var tty *TTYRequiredError
	require.ErrorAs(t, err, &tty)
	assert.Equal(t, ExitGeneralError, ExitCode(err))
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t, "pid", "list", "--bogus")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, ExitCode(err))
}

// =============================================================================
// EXIT CODES
// =============================================================================

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain", errors.New("boom"), ExitGeneralError},
		{"not found", &NotFoundError{Resource: "metric", ID: "x"}, ExitNotFound},
		{"store not found", fmt.Errorf("wrap: %w", shortcut.ErrNotFound), ExitNotFound},
		{"usage", &UsageError{Reason: "bad"}, ExitUsageError},
		{"validation", &shortcut.ValidationError{Field: "name", Message: "empty"}, ExitUsageError},
		{"config", &ConfigError{Path: "x", Err: errors.New("bad")}, ExitConfigError},
		{"config validation", config.ValidateErrors{{Field: "a", Message: "b"}}, ExitConfigError},
		{"clipboard", &clipboard.WriteError{Err: errors.New("no display")}, ExitClipboard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
