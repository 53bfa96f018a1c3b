package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates the sqlpager command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "sqlpager",
		Short:        "Compose and run paginated SQL statements",
		SilenceUsage: true,
	}

	cmd.AddCommand(
		NewDialectsCmd(),
		NewComposeCmd(),
		NewRunCmd(),
	)

	return cmd
}
