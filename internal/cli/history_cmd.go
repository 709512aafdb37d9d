// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/gdinject/internal/history"
	"github.com/jeranaias/gdinject/internal/util"
)

const defaultHistoryLimit = 20

func newHistoryCommand(o *options) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent clipboard copies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !o.cfg.History.Enabled {
				return &UsageError{Reason: "copy history is disabled (history.enabled = false)"}
			}
			h, err := history.Open(o.cfg.Paths.HistoryDB)
			if err != nil {
				return err
			}
			defer h.Close()

			entries, err := h.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if asJSON {
				items := make([]historyJSON, 0, len(entries))
				for _, e := range entries {
					items = append(items, historyJSON{
						ID:        e.ID,
						PID:       e.PID,
						Kind:      string(e.Kind),
						Text:      e.Text,
						CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
					})
				}
				return NewJSONResponse("history", items).Write(cmd.OutOrStdout())
			}

			p := newPrinter(cmd.OutOrStdout())
			if len(entries) == 0 {
				if p.tty {
					p.println(p.dim.Render("Nothing copied yet."))
				}
				return nil
			}
			for _, e := range entries {
				if !p.tty {
					p.printf("%s\t%s\t%s\t%s\n", e.CreatedAt.UTC().Format(time.RFC3339), e.Kind, e.PID, oneLine(e.Text))
					continue
				}
				p.println(
					p.dim.Render(e.CreatedAt.Local().Format("2006-01-02 15:04")),
					p.label.Render(util.PadRight(string(e.Kind), len(history.KindReference))),
					util.TruncateWidth(oneLine(e.Text), 60),
				)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", defaultHistoryLimit, "number of entries (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

// oneLine folds a multi-line snippet onto one line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
