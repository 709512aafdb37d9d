// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/gdinject/internal/config"
)

func newConfigCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and change settings",
		Long: `Inspect and change the settings file (settings.toml).

Keys use dot notation, for example editor.hide_delay_ms or history.limit.
Environment variables (GDINJECT_*) override the file; "config show" prints
the effective values and "config set" writes the file only.`,
	}
	cmd.AddCommand(
		newConfigPathCommand(o),
		newConfigShowCommand(o),
		newConfigGetCommand(o),
		newConfigSetCommand(o),
		newConfigResetCommand(o),
	)
	return cmd
}

func newConfigPathCommand(o *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:         "path",
		Short:       "Print the settings file location",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := o.settingsPath()
			if err != nil {
				return &ConfigError{Path: "settings", Err: err}
			}
			_, statErr := os.Stat(path)
			exists := statErr == nil

			if asJSON {
				return NewJSONResponse("config path", map[string]interface{}{
					"path":   path,
					"exists": exists,
				}).Write(cmd.OutOrStdout())
			}

			p := newPrinter(cmd.OutOrStdout())
			p.println(path)
			if !exists {
				e := newPrinter(cmd.ErrOrStderr())
				e.println(e.dim.Render("Note"), "(file does not exist; defaults are used)")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func newConfigShowCommand(o *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				values := make(map[string]interface{}, len(config.GetAllKeys()))
				for _, key := range config.GetAllKeys() {
					v, err := o.cfg.Get(key)
					if err != nil {
						return err
					}
					values[key] = v
				}
				return NewJSONResponse("config show", values).Write(cmd.OutOrStdout())
			}

			p := newPrinter(cmd.OutOrStdout())
			if p.tty {
				path, _ := o.settingsPath()
				p.println(p.title.Render("gdinject settings"), p.dim.Render(path))
				p.println()
			}
			p.printf("%s", o.cfg.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func newConfigGetCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:       "get <key>",
		Short:     "Print one effective setting",
		Args:      cobra.ExactArgs(1),
		ValidArgs: config.GetAllKeys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := o.cfg.Get(args[0])
			if err != nil {
				return &UsageError{Reason: err.Error()}
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func newConfigSetCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:         "set <key> <value>",
		Short:       "Change one setting in the settings file",
		Example:     `  gdinject config set editor.hide_delay_ms 250`,
		Args:        cobra.ExactArgs(2),
		ValidArgs:   config.GetAllKeys(),
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := o.settingsPath()
			if err != nil {
				return &ConfigError{Path: "settings", Err: err}
			}

			// Start from the file alone so environment overrides are not saved.
			cfg := config.Default()
			if _, err := os.Stat(path); err == nil {
				if err := config.LoadTOML(cfg, path); err != nil {
					return &ConfigError{Path: path, Err: err}
				}
			} else if !errors.Is(err, os.ErrNotExist) {
				return &ConfigError{Path: path, Err: err}
			}

			key := strings.TrimSpace(args[0])
			if err := cfg.Set(key, args[1]); err != nil {
				return &UsageError{Reason: err.Error()}
			}
			if err := cfg.Validate(); err != nil {
				return &ConfigError{Path: path, Err: err}
			}
			if err := config.SaveTOML(cfg, path); err != nil {
				return &ConfigError{Path: path, Err: err}
			}

			v, _ := cfg.Get(key)
			p := newPrinter(cmd.OutOrStdout())
			p.println(p.success.Render("[OK]"), key, "=", v)
			return nil
		},
	}
}

func newConfigResetCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:         "reset",
		Short:       "Overwrite the settings file with the defaults",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := o.settingsPath()
			if err != nil {
				return &ConfigError{Path: "settings", Err: err}
			}
			if err := config.SaveTOML(config.Default(), path); err != nil {
				return &ConfigError{Path: path, Err: err}
			}
			p := newPrinter(cmd.OutOrStdout())
			p.println(p.success.Render("[OK]"), "Settings reset to defaults:", path)
			return nil
		},
	}
}
