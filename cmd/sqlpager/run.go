package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Alp4ka/sqlpager"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	var (
		configPath string
		dsn        string
		statement  string
		mode       string
		pageSize   int
		rawParams  []string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute a registered statement and print the result envelope as JSON",
		Example: `  # Second page of active users
  sqlpager run --config paging.yaml --dsn "$DSN" --statement findUsers \
    --param status=active --param pageNumber=2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := sqlpager.LoadConfig(configPath)
			if err != nil {
				return err
			}

			statements, err := cfg.LoadStatementsFile()
			if err != nil {
				return err
			}

			params, err := parseParams(rawParams)
			if err != nil {
				return err
			}

			parsedMode, err := sqlpager.ParseMode(mode)
			if err != nil {
				return err
			}

			logger := newLogger(verbose)

			db, err := openDB(cfg.Dialect, dsn, logger)
			if err != nil {
				return err
			}

			pager := sqlpager.NewPager(db, statements, *cfg, sqlpager.WithLogger(logger))
			spec := sqlpager.NewSpec().
				WithMode(parsedMode).
				WithPageSize(pageSize)

			res, err := sqlpager.PaginateRows(cmd.Context(), pager, statement, spec, params)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			return enc.Encode(res)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "paging.yaml", "Configuration file")
	cmd.Flags().StringVar(&dsn, "dsn", "", "Database DSN")
	cmd.Flags().StringVar(&statement, "statement", "", "Statement identifier")
	cmd.Flags().StringVar(&mode, "mode", sqlpager.ModePagination.String(), "PAGINATION, PURE_DATA or TOTAL_COUNT")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Default page size, overrides configuration")
	cmd.Flags().StringArrayVar(&rawParams, "param", nil, "Statement parameter as name=value, repeatable")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log executed statements")
	_ = cmd.MarkFlagRequired("dsn")
	_ = cmd.MarkFlagRequired("statement")

	return cmd
}

func parseParams(raw []string) (sqlpager.Params, error) {
	params := make(sqlpager.Params, len(raw))
	for _, kv := range raw {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid parameter '%s', expected name=value", kv)
		}

		params[strings.TrimSpace(name)] = value
	}

	return params, nil
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func openDB(dialectName string, dsn string, logger zerolog.Logger) (*gorm.DB, error) {
	dialect, err := sqlpager.LookupDialect(dialectName)
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	switch dialect.Name {
	case "mysql", "mariadb":
		dialector = mysql.Open(dsn)
	case "postgresql":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("no bundled driver for dialect '%s'", dialect.Name)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: sqlpager.NewGORMLogger(logger)})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if name := sqlpager.DialectNameOf(db); name != "" && name != dialect.Name && !(name == "mysql" && dialect.Name == "mariadb") {
		logger.Warn().Str("configured", dialect.Name).Str("driver", name).Msg("configured dialect differs from the driver")
	}

	return db, nil
}
