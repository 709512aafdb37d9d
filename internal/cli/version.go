// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCommand(o *options) *cobra.Command {
	var short, asJSON bool
	cmd := &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			info := o.info
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), info.Version)
				return nil
			}
			if asJSON {
				return NewJSONResponse("version", map[string]string{
					"version": info.Version,
					"commit":  info.Commit,
					"date":    info.Date,
					"go":      runtime.Version(),
				}).Write(cmd.OutOrStdout())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "gdinject version %s (commit: %s, built: %s, %s)\n",
				info.Version, info.Commit, info.Date, runtime.Version())
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print version number only")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print version info as JSON")
	return cmd
}
