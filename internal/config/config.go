// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/gdinject/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete gdinject configuration.
type Config struct {
	Paths   PathsConfig   `toml:"paths"`
	Editor  EditorConfig  `toml:"editor"`
	History HistoryConfig `toml:"history"`
	Watch   WatchConfig   `toml:"watch"`
	Log     LogConfig     `toml:"log"`
}

// PathsConfig locates the files gdinject reads and writes.
type PathsConfig struct {
	// StateFile is the JSON file holding PIDs and shortcuts.
	StateFile string `toml:"state_file"`
	// HistoryDB is the SQLite copy history database.
	HistoryDB string `toml:"history_db"`
	// LogFile receives the TUI's structured log.
	LogFile string `toml:"log_file"`
}

// EditorConfig tunes the inline reference editor.
type EditorConfig struct {
	// HideDelayMs is how long the suggestion list lingers after focus leaves the editor.
	HideDelayMs int `toml:"hide_delay_ms"`
	// MaxVisible caps the number of suggestion rows drawn at once.
	MaxVisible int `toml:"max_visible"`
	// Substitution is "offset" (default) or "text".
	Substitution string `toml:"substitution"`
}

// HistoryConfig controls the copy history.
type HistoryConfig struct {
	Enabled bool `toml:"enabled"`
	// Limit is the number of entries kept; 0 keeps everything.
	Limit int `toml:"limit"`
}

// WatchConfig controls reloading the state file when another process edits it.
type WatchConfig struct {
	Enabled    bool `toml:"enabled"`
	DebounceMs int  `toml:"debounce_ms"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns a Config with every field set to its default.
func Default() *Config {
	dir, err := ConfigDir()
	if err != nil {
		dir = DirName
	}
	return &Config{
		Paths: PathsConfig{
			StateFile: filepath.Join(dir, "config.json"),
			HistoryDB: filepath.Join(dir, "history.db"),
			LogFile:   filepath.Join(dir, "gdinject.log"),
		},
		Editor: EditorConfig{
			HideDelayMs:  100,
			MaxVisible:   8,
			Substitution: "offset",
		},
		History: HistoryConfig{
			Enabled: true,
			Limit:   500,
		},
		Watch: WatchConfig{
			Enabled:    true,
			DebounceMs: 150,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// HideDelay returns Editor.HideDelayMs as a duration.
func (c *Config) HideDelay() time.Duration {
	return time.Duration(c.Editor.HideDelayMs) * time.Millisecond
}

// Debounce returns Watch.DebounceMs as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMs) * time.Millisecond
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// DirName is the per-user directory, relative to the home directory. It is
// shared with the state file so existing installs keep working.
const DirName = ".gooddata_injector"

// ConfigDir returns the gdinject configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

// ConfigPath returns the path to the settings file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.toml"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads the settings file from its default location. A missing file
// yields the defaults. If the file cannot be decoded the defaults are returned
// together with the decode error, for informational purposes.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return finish(Default())
	}
	if _, statErr := os.Stat(path); statErr != nil {
		return finish(Default())
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		var verrs ValidateErrors
		if errors.As(err, &verrs) {
			return nil, err
		}
		def, ferr := finish(Default())
		if ferr != nil {
			return nil, ferr
		}
		return def, err
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file. Keys absent from the
// file keep their defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	return finish(cfg)
}

// LoadOrDefault is LoadFromPath, except that a missing file yields the
// defaults.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return finish(Default())
	}
	return LoadFromPath(path)
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default settings file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg to path atomically with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# gdinject settings\n")
	buf.WriteString("# Edit with care; unknown keys are rejected on load.\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFileWithDir(path, buf.Bytes(), 0600, 0700); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors as ValidateErrors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if strings.TrimSpace(c.Paths.StateFile) == "" {
		errs = append(errs, ValidationError{Field: "paths.state_file", Message: "must not be empty"})
	}
	if c.History.Enabled && strings.TrimSpace(c.Paths.HistoryDB) == "" {
		errs = append(errs, ValidationError{Field: "paths.history_db", Message: "must not be empty when history is enabled"})
	}

	if c.Editor.HideDelayMs < 0 || c.Editor.HideDelayMs > 5000 {
		errs = append(errs, ValidationError{
			Field:   "editor.hide_delay_ms",
			Message: fmt.Sprintf("must be between 0 and 5000, got %d", c.Editor.HideDelayMs),
		})
	}
	if c.Editor.MaxVisible < 1 || c.Editor.MaxVisible > 50 {
		errs = append(errs, ValidationError{
			Field:   "editor.max_visible",
			Message: fmt.Sprintf("must be between 1 and 50, got %d", c.Editor.MaxVisible),
		})
	}
	switch strings.ToLower(c.Editor.Substitution) {
	case "offset", "text":
	default:
		errs = append(errs, ValidationError{
			Field:   "editor.substitution",
			Message: fmt.Sprintf("invalid mode '%s', must be one of: offset, text", c.Editor.Substitution),
		})
	}

	if c.History.Limit < 0 {
		errs = append(errs, ValidationError{
			Field:   "history.limit",
			Message: fmt.Sprintf("must not be negative, got %d", c.History.Limit),
		})
	}

	if c.Watch.DebounceMs < 0 || c.Watch.DebounceMs > 10000 {
		errs = append(errs, ValidationError{
			Field:   "watch.debounce_ms",
			Message: fmt.Sprintf("must be between 0 and 10000, got %d", c.Watch.DebounceMs),
		})
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Log.Format)] {
		errs = append(errs, ValidationError{
			Field:   "log.format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: text, json", c.Log.Format),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills empty string fields with their defaults. Numeric fields
// are left alone because zero is meaningful for several of them.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Paths.StateFile == "" {
		c.Paths.StateFile = defaults.Paths.StateFile
	}
	if c.Paths.HistoryDB == "" {
		c.Paths.HistoryDB = defaults.Paths.HistoryDB
	}
	if c.Paths.LogFile == "" {
		c.Paths.LogFile = defaults.Paths.LogFile
	}
	if c.Editor.Substitution == "" {
		c.Editor.Substitution = defaults.Editor.Substitution
	}
	if c.Editor.MaxVisible == 0 {
		c.Editor.MaxVisible = defaults.Editor.MaxVisible
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = defaults.Log.Format
	}

	c.Paths.StateFile = expandHome(c.Paths.StateFile)
	c.Paths.HistoryDB = expandHome(c.Paths.HistoryDB)
	c.Paths.LogFile = expandHome(c.Paths.LogFile)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// ApplyEnvOverrides applies environment variable overrides.
//
// Supported environment variables:
//   - GDINJECT_STATE_FILE: overrides paths.state_file
//   - GDINJECT_HISTORY_DB: overrides paths.history_db
//   - GDINJECT_LOG_LEVEL: overrides log.level
//   - GDINJECT_SUBSTITUTION: overrides editor.substitution
func (c *Config) ApplyEnvOverrides() {
	if path := os.Getenv("GDINJECT_STATE_FILE"); path != "" {
		c.Paths.StateFile = path
	}
	if path := os.Getenv("GDINJECT_HISTORY_DB"); path != "" {
		c.Paths.HistoryDB = path
	}
	if level := os.Getenv("GDINJECT_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if mode := os.Getenv("GDINJECT_SUBSTITUTION"); mode != "" {
		c.Editor.Substitution = mode
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "editor.max_visible").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "editor.max_visible").
// String values are converted to the field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("field '%s' is a section, not a value", key)
			}
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			boolVal, err := strconv.ParseBool(strVal)
			if err != nil {
				return fmt.Errorf("invalid boolean value: %v", err)
			}
			field.SetBool(boolVal)
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) && val.Kind() != reflect.String {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"paths.state_file",
		"paths.history_db",
		"paths.log_file",
		"editor.hide_delay_ms",
		"editor.max_visible",
		"editor.substitution",
		"history.enabled",
		"history.limit",
		"watch.enabled",
		"watch.debounce_ms",
		"log.level",
		"log.format",
	}
}

// Clone returns a copy of the configuration. Config holds no reference types.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return buf.String()
}
