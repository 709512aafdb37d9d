// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jeranaias/gdinject/internal/reference"
	"github.com/jeranaias/gdinject/internal/shortcut"
)

func newShortcutCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "shortcut",
		Aliases: []string{"shortcuts", "sc"},
		Short:   "List and manage saved shortcuts",
	}
	cmd.AddCommand(
		newShortcutListCommand(o),
		newShortcutAddCommand(o),
		newShortcutEditCommand(o),
		newShortcutRemoveCommand(o),
	)
	return cmd
}

func newShortcutListCommand(o *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list [category]",
		Short: "List shortcuts, optionally of one category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cats := shortcut.Categories
			if len(args) == 1 {
				c, err := parseCategory(args[0])
				if err != nil {
					return err
				}
				cats = []shortcut.Category{c}
			}

			s, err := openSession(o, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.close()

			store := s.app.Store()
			pid := s.app.CurrentPID()

			if asJSON {
				items := []shortcutJSON{}
				for _, c := range cats {
					for _, sc := range store.ByCategory(c) {
						items = append(items, toShortcutJSON(sc, pid))
					}
				}
				return NewJSONResponse("shortcut list", items).Write(cmd.OutOrStdout())
			}

			p := newPrinter(cmd.OutOrStdout())
			if !p.tty {
				// category, name, object id: one shortcut per line for scripts.
				for _, c := range cats {
					for _, sc := range store.ByCategory(c) {
						p.printf("%s\t%s\t%s\n", c, sc.Name, sc.ObjectID)
					}
				}
				return nil
			}

			tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
			for i, c := range cats {
				items := store.ByCategory(c)
				if i > 0 {
					p.println()
				}
				p.println(p.title.Render(c.Title()), p.dim.Render("("+strconv.Itoa(len(items))+")"))
				if len(items) == 0 {
					p.println(p.dim.Render("  none"))
					continue
				}
				for _, sc := range items {
					ref := ""
					if pid != "" {
						ref = reference.Encode(pid, sc.ObjectID)
					}
					tw.Write([]byte("  " + p.styleFor(c).Render(sc.Name) + "\t" + sc.ObjectID + "\t" + p.dim.Render(ref) + "\n"))
				}
				tw.Flush()
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func newShortcutAddCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add <category> <name> <object-id>",
		Short: "Save a new shortcut",
		Long: `Save a new shortcut under the current PID's workspace.

A PID must be selected first (gdinject pid add <pid>).`,
		Example: `  gdinject shortcut add metric Revenue 123
  gdinject shortcut add attribute "Sales Region" 456`,
		Args: cobra.ExactArgs(3),
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
			if err := s.writable(); err != nil {
				return err
			}

			sc, err := s.app.CreateShortcut(c, args[1], args[2])
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())
			p.println(p.success.Render("Added"), c.String(), p.styleFor(c).Render(sc.Name), p.dim.Render("("+sc.ObjectID+")"))
			return nil
		},
	}
}

func newShortcutEditCommand(o *options) *cobra.Command {
	var newName, newID string
	cmd := &cobra.Command{
		Use:     "edit <category> <name>",
		Short:   "Rename a shortcut or change its object id",
		Example: `  gdinject shortcut edit metric Revenue --name "Net Revenue" --id 124`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("name") && !cmd.Flags().Changed("id") {
				return &UsageError{Reason: "nothing to change: pass --name and/or --id"}
			}
			c, err := parseCategory(args[0])
			if err != nil {
				return err
			}

			s, err := openSession(o, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.close()
			if err := s.writable(); err != nil {
				return err
			}

			sc, err := findShortcut(s, c, args[1])
			if err != nil {
				return err
			}
			name, id := sc.Name, sc.ObjectID
			if cmd.Flags().Changed("name") {
				name = newName
			}
			if cmd.Flags().Changed("id") {
				id = newID
			}
			updated, err := s.app.EditShortcut(sc.ID, name, id)
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())
			p.println(p.success.Render("Updated"), c.String(), p.styleFor(c).Render(updated.Name), p.dim.Render("("+updated.ObjectID+")"))
			return nil
		},
	}
	cmd.Flags().StringVar(&newName, "name", "", "new name")
	cmd.Flags().StringVar(&newID, "id", "", "new object id")
	return cmd
}

func newShortcutRemoveCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <category> <name>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a shortcut",
		Args:    cobra.ExactArgs(2),
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
			if err := s.writable(); err != nil {
				return err
			}

			sc, err := findShortcut(s, c, args[1])
			if err != nil {
				return err
			}
			if _, err := s.app.DeleteShortcut(sc.ID); err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())
			p.println(p.success.Render("Deleted"), c.String(), p.styleFor(c).Render(sc.Name))
			return nil
		},
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func parseCategory(s string) (shortcut.Category, error) {
	c, err := shortcut.ParseCategory(s)
	if err != nil {
		return 0, &UsageError{Reason: err.Error()}
	}
	return c, nil
}

// findShortcut looks a shortcut up by exact name.
func findShortcut(s *session, c shortcut.Category, name string) (shortcut.Shortcut, error) {
	sc, ok := s.app.Store().FindByName(c, strings.TrimSpace(name))
	if !ok {
		return shortcut.Shortcut{}, &NotFoundError{Resource: c.String(), ID: name}
	}
	return sc, nil
}

func toShortcutJSON(sc shortcut.Shortcut, pid string) shortcutJSON {
	out := shortcutJSON{
		Category: sc.Category.String(),
		Name:     sc.Name,
		ObjectID: sc.ObjectID,
	}
	if pid != "" {
		out.Reference = reference.Encode(pid, sc.ObjectID)
	}
	return out
}
