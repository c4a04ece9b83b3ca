package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/trknhr/cardlog/internal/model/entity"
)

func newListCmd(current func() *app) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show recent entries with their rarity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if n <= 0 {
				return fmt.Errorf("-n must be positive, got %d", n)
			}
			a := current()
			entries, scores, err := a.journal.RecentWithRarity(cmd.Context(), n, a.cfg.Engine.HistoryWindow)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tKIND\tTITLE\tRARITY")
			for _, e := range entries {
				score := "-"
				if s, ok := scores[e.ID]; ok {
					score = humanize.FtoaWithDigits(s, 3)
				}
				title := e.Title
				if e.Kind == entity.KindCheck && e.Done {
					title = "[x] " + title
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", humanize.Time(e.CreatedAt()), e.Kind, title, score)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&n, "number", "n", 20, "number of entries to show")
	return cmd
}
