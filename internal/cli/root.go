// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeranaias/gdinject/internal/config"
	"github.com/jeranaias/gdinject/internal/logging"
)

// BuildInfo is injected via ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// skipConfig marks commands that must work with a broken settings file.
const skipConfig = "gdinject/skip-config"

// options holds the global flags and what PersistentPreRunE derives from them.
type options struct {
	info BuildInfo

	configPath  string
	statePath   string
	noClipboard bool

	cfg *config.Config
	log *logging.Logger
}

// settingsPath returns --config or the default settings file.
func (o *options) settingsPath() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	return config.ConfigPath()
}

// load reads settings and opens the log file.
func (o *options) load() error {
	path, err := o.settingsPath()
	if err != nil {
		return &ConfigError{Path: "settings", Err: err}
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	if o.statePath != "" {
		cfg.Paths.StateFile = o.statePath
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	format, err := logging.ParseFormat(cfg.Log.Format)
	if err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	log, err := logging.New(logging.Config{
		Level:     level,
		Format:    format,
		FilePath:  cfg.Paths.LogFile,
		Component: "gdinject",
	})
	if err != nil {
		// A read-only home should not stop the tool.
		fmt.Fprintf(os.Stderr, "warning: %v; logging disabled\n", err)
		log = logging.Discard()
	}

	o.cfg = cfg
	o.log = log
	return nil
}

func (o *options) close() error {
	if o.log == nil {
		return nil
	}
	return o.log.Close()
}

// NewRootCommand builds the gdinject command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	o := &options{info: info}

	root := &cobra.Command{
		Use:   "gdinject",
		Short: "Compose GoodData MAQL with saved object references",
		Long: `gdinject keeps named shortcuts to GoodData metrics, attributes and dates
per project and helps you type them into MAQL. Names typed in the editor are
suggested after two letters; accepting one inserts the name, and the copied
text carries the encoded [/gdc/md/<pid>/obj/<id>] reference in its place.

Run without a subcommand to open the interactive editor.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipConfig] == "true" {
				return nil
			}
			return o.load()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return o.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, o)
		},
	}

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &UsageError{Reason: err.Error()}
	})

	flags := root.PersistentFlags()
	flags.StringVar(&o.configPath, "config", "", "settings file (default ~/"+config.DirName+"/settings.toml)")
	flags.StringVar(&o.statePath, "state", "", "state file holding PIDs and shortcuts")
	flags.BoolVar(&o.noClipboard, "no-clipboard", false, "do not touch the system clipboard")

	root.AddCommand(
		newShortcutCommand(o),
		newPIDCommand(o),
		newRefCommand(o),
		newDecodeCommand(o),
		newHistoryCommand(o),
		newConfigCommand(o),
		newVersionCommand(o),
	)
	return root
}

// Execute runs the command line and prints any error to stderr. The caller
// maps the returned error to an exit code with ExitCode.
func Execute(info BuildInfo) error {
	root := NewRootCommand(info)
	err := root.Execute()
	if err != nil {
		p := newPrinter(root.ErrOrStderr())
		p.println(p.errorS.Render("Error:"), err)
	}
	return err
}
