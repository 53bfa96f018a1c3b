package main

import (
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Alp4ka/sqlpager"
)

// NewDialectsCmd creates the dialects command.
func NewDialectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List supported dialects and their pagination templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, d := range sqlpager.Dialects() {
				if _, err := w.Write([]byte(d.Name + "\t" + d.Template + "\n")); err != nil {
					return err
				}
			}

			return w.Flush()
		},
	}
}
