package cmd

import (
	"context"
	"fmt"

	"github.com/oseayemenre/library/internal/models"
	"github.com/oseayemenre/library/internal/service"
	"github.com/spf13/cobra"
)

func LibrarianCommand(ctx context.Context, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "librarian",
		Short: "manage librarian accounts",
	}

	cmd.AddCommand(createLibrarianCommand(ctx, opts))

	return cmd
}

func createLibrarianCommand(ctx context.Context, opts *rootOptions) *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "register a librarian without going through the api",
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

			librarians := service.NewLibrarianService(db, logger, cfg)

			librarian, err := librarians.Register(ctx, &models.LibrarianInput{Email: email, Password: password})

			if err != nil {
				return fmt.Errorf("error creating librarian: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created librarian %d (%s)\n", librarian.Id, librarian.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "librarian email")
	cmd.Flags().StringVar(&password, "password", "", "librarian password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}
