package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func MigrateCommand(ctx context.Context, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "create the library tables if they do not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := opts.logger(cmd)

			if err != nil {
				return err
			}

			cfg, err := opts.config()

			if err != nil {
				return err
			}

			db, err := openStore(cfg)

			if err != nil {
				return err
			}

			defer db.Close()

			if err := db.Migrate(ctx); err != nil {
				return err
			}

			logger.Info("migration", "status", "schema is up to date")
			return nil
		},
	}
}
