// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/gdinject/internal/app"
	"github.com/jeranaias/gdinject/internal/reference"
)

func newRefCommand(o *options) *cobra.Command {
	var noCopy bool
	cmd := &cobra.Command{
		Use:   "ref <category> <name>",
		Short: "Print a shortcut's encoded reference and copy it",
		Long: `Print the encoded reference of one shortcut using the current PID, and put
it on the clipboard unless --no-copy is given. Copies are recorded in the copy
history; with --no-clipboard they are recorded but the clipboard is untouched.`,
		Example: `  gdinject ref metric Revenue
  gdinject ref attribute Region --no-copy`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseCategory(args[0])
			if err != nil {
				return err
			}

			s, err := openSession(o, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.close()

			if s.app.CurrentPID() == "" {
				return app.ErrNoPID
			}
			sc, err := findShortcut(s, c, args[1])
			if err != nil {
				return err
			}

			ref := reference.Encode(s.app.CurrentPID(), sc.ObjectID)
			if !noCopy {
				if _, ref, err = s.app.CopyReference(cmd.Context(), sc.ID); err != nil {
					return err
				}
			}

			p := newPrinter(cmd.OutOrStdout())
			p.println(ref)
			if !noCopy && !o.noClipboard && p.tty {
				p.println(p.dim.Render(app.CopiedStatus(sc.Name)))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noCopy, "no-copy", false, "print only, leave the clipboard alone")
	return cmd
}

func newDecodeCommand(o *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:         "decode <reference>",
		Short:       "Split an encoded reference into PID and object id",
		Example:     `  gdinject decode "[/gdc/md/abc123/obj/456]"`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, id, err := reference.Decode(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			if asJSON {
				return NewJSONResponse("decode", map[string]string{
					"pid":       pid,
					"object_id": id,
				}).Write(cmd.OutOrStdout())
			}

			p := newPrinter(cmd.OutOrStdout())
			if !p.tty {
				p.printf("%s\t%s\n", pid, id)
				return nil
			}
			p.println(p.label.Render("PID:      "), pid)
			p.println(p.label.Render("Object id:"), id)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}
