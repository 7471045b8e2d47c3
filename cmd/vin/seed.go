package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"vinkit/internal/platform/config"
	"vinkit/internal/platform/postgres"
	"vinkit/internal/wmi/catalog"
	"vinkit/internal/wmi/store"
)

type seedResult struct {
	Locale string `yaml:"locale"`
	Names  int    `yaml:"names"`
}

func newSeedCmd(opts *options) *cobra.Command {
	var dsn string
	cmd := &cobra.Command{
		Use:   "seed-db",
		Short: "Load the embedded WMI names into PostgreSQL",
		Long:  `Creates the wmi_names table if needed and upserts every name of every embedded locale.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dsn == "" {
				return fmt.Errorf("--dsn or DATABASE_URL is required")
			}
			ctx := cmd.Context()

			cat, err := catalog.LoadEmbedded()
			if err != nil {
				return err
			}
			db, err := postgres.Open(ctx, config.PostgresConfig{DSN: dsn, MaxOpenConns: 2, MaxIdleConns: 1})
			if err != nil {
				return err
			}
			defer db.Close()

			if _, err := db.ExecContext(ctx, store.Schema); err != nil {
				return fmt.Errorf("create wmi_names: %w", err)
			}
			pg, err := store.NewPostgres(db, catalog.BaseLocale)
			if err != nil {
				return err
			}

			names, results := seedNames(cat)
			if err := pg.Upsert(ctx, names); err != nil {
				return err
			}

			rows := make([]row, 0, len(results))
			for _, r := range results {
				rows = append(rows, row{r.Locale, fmt.Sprintf("%d names", r.Names)})
			}
			return opts.write(results, rows)
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
	return cmd
}

// seedNames flattens the catalog into rows, ordered by locale then key.
func seedNames(cat *catalog.Catalog) ([]store.Name, []seedResult) {
	var names []store.Name
	var results []seedResult
	for _, locale := range cat.Locales() {
		messages := cat.Messages(locale)
		keys := make([]string, 0, len(messages))
		for key := range messages {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			names = append(names, store.Name{Locale: locale, Key: key, Value: messages[key]})
		}
		results = append(results, seedResult{Locale: locale, Names: len(keys)})
	}
	return names, results
}
