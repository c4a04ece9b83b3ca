package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func newInspectCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Dump the learned transition, time and location maps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			if err := a.bootstrap(cmd.Context()); err != nil {
				return err
			}
			eng := a.journal.Engine()

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"stats":    eng.Stats(),
				"snapshot": eng.Inspect(),
			})
		},
	}
}
