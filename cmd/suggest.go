package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newSuggestCmd(current func() *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest titles for the next entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			if err := a.bootstrap(cmd.Context()); err != nil {
				return err
			}
			cands, err := a.journal.Suggest(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(cands)
			}
			if len(cands) == 0 {
				fmt.Fprintln(out, "no suggestions yet")
				return nil
			}
			for i, c := range cands {
				fmt.Fprintf(out, "%d. %-30s %.2f  (seq %.2f, time %.2f, loc %.2f)\n",
					i+1, c.Title, c.Score, c.Breakdown.Seq, c.Breakdown.Time, c.Breakdown.Loc)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print candidates as JSON")
	return cmd
}
