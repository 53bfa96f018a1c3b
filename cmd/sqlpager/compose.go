package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Alp4ka/sqlpager"
)

// NewComposeCmd creates the compose command.
func NewComposeCmd() *cobra.Command {
	var (
		dialectName   string
		pageNumber    int
		size          int
		countTemplate string
	)

	cmd := &cobra.Command{
		Use:   "compose SQL",
		Short: "Print the count and paginated queries of a base query",
		Example: `  # Second page of ten rows for MySQL
  sqlpager compose --dialect mysql --page 2 --size 10 "SELECT * FROM users"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dialect, err := sqlpager.LookupDialect(dialectName)
			if err != nil {
				return err
			}

			page, err := sqlpager.ValidatePage(
				sqlpager.Params{sqlpager.ParamPageNumber: pageNumber, sqlpager.ParamPageSize: size},
				sqlpager.NewSpec(),
			)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, err = fmt.Fprintf(out, "count:     %s\n", sqlpager.ComposeCount(args[0], countTemplate)); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "paginated: %s\n", sqlpager.ComposePaginated(args[0], dialect, page))

			return err
		},
	}

	cmd.Flags().StringVar(&dialectName, "dialect", "", "Dialect identifier (see 'sqlpager dialects')")
	cmd.Flags().IntVar(&pageNumber, "page", 1, "Page number, 1-based")
	cmd.Flags().IntVar(&size, "size", sqlpager.DefaultPageSize, "Page size")
	cmd.Flags().StringVar(&countTemplate, "count-template", sqlpager.DefaultCountTemplate, "Count query template")
	_ = cmd.MarkFlagRequired("dialect")

	return cmd
}
