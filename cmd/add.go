package cmd

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/trknhr/cardlog/internal/model/entity"
)

func newAddCmd(current func() *app) *cobra.Command {
	var (
		body   string
		geo    string
		parent string
		done   bool
	)
	cmd := &cobra.Command{
		Use:   "add <kind> [title...]",
		Short: "Record an entry (card, time, text or check)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := entity.ParseKind(args[0])
			if !ok {
				return fmt.Errorf("unknown kind %q", args[0])
			}
			e := entity.Entry{
				Kind:  kind,
				Title: strings.TrimSpace(strings.Join(args[1:], " ")),
				Body:  body,
				Geo:   geo,
				Done:  done,
			}
			if parent != "" {
				pid, err := uuid.Parse(parent)
				if err != nil {
					return fmt.Errorf("invalid --parent: %w", err)
				}
				e.ParentID = pid
			}

			saved, err := current().journal.Save(cmd.Context(), e)
			if err != nil {
				return fmt.Errorf("save entry: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), saved.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&body, "body", "", "entry body")
	cmd.Flags().StringVar(&geo, "geo", "", `location as "<lat> <lon> <alt>" (default: current location)`)
	cmd.Flags().StringVar(&parent, "parent", "", "ID of the owning card")
	cmd.Flags().BoolVar(&done, "done", false, "mark a check entry as done")
	return cmd
}
