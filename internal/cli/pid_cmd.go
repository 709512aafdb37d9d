// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/spf13/cobra"
)

func newPIDCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pid",
		Short: "List, add and select project identifiers",
	}
	cmd.AddCommand(newPIDListCommand(o), newPIDAddCommand(o), newPIDUseCommand(o))
	return cmd
}

func newPIDListCommand(o *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved PIDs; the current one is marked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(o, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.close()

			pids, current := s.app.PIDs(), s.app.CurrentPID()
			if asJSON {
				return NewJSONResponse("pid list", map[string]interface{}{
					"current": current,
					"saved":   pids,
				}).Write(cmd.OutOrStdout())
			}

			p := newPrinter(cmd.OutOrStdout())
			if len(pids) == 0 && p.tty {
				p.println(p.dim.Render("No PIDs saved. Add one with: gdinject pid add <pid>"))
				return nil
			}
			for _, pid := range pids {
				switch {
				case !p.tty && pid == current:
					p.println("*\t" + pid)
				case !p.tty:
					p.println(" \t" + pid)
				case pid == current:
					p.println(p.success.Render("*"), p.label.Render(pid))
				default:
					p.println(" ", pid)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func newPIDAddCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add <pid>",
		Short: "Save a PID and make it current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(o, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.close()
			if err := s.writable(); err != nil {
				return err
			}

			if err := s.app.AddPID(args[0]); err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())
			p.println(p.success.Render("PID"), p.label.Render(s.app.CurrentPID()), "selected")
			return nil
		},
	}
}

func newPIDUseCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "use <pid>",
		Short: "Select a saved PID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(o, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.close()
			if err := s.writable(); err != nil {
				return err
			}

			if err := s.app.UsePID(args[0]); err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())
			p.println(p.success.Render("PID"), p.label.Render(s.app.CurrentPID()), "selected")
			return nil
		},
	}
}
