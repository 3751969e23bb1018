package cmd

import (
	"context"
	"os"

	"github.com/oseayemenre/library/internal/config"
	"github.com/oseayemenre/library/internal/logger"
	"github.com/oseayemenre/library/internal/store"
	"github.com/spf13/cobra"
)

const version = "1.0"

func Run() error {
	ctx := context.Background()

	var configFile string
	var env string

	cmd := &cobra.Command{
		Use:           "library",
		Short:         "library management backend: catalogue, readers and loans",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "optional config file (.env, yaml, json, toml)")
	cmd.PersistentFlags().StringVarP(&env, "env", "e", "dev", "current working environment")

	opts := &rootOptions{configFile: &configFile, env: &env}

	cmd.AddCommand(HTTPCommand(ctx, opts))
	cmd.AddCommand(MigrateCommand(ctx, opts))
	cmd.AddCommand(LibrarianCommand(ctx, opts))

	if err := cmd.Execute(); err != nil {
		return err
	}

	return nil
}

type rootOptions struct {
	configFile *string
	env        *string
}

func (o *rootOptions) logger(cmd *cobra.Command) (*logger.SlogLogger, error) {
	l, err := logger.New(*o.env, os.Stderr, version)

	if err != nil {
		return nil, err
	}

	return l.With("command", cmd.CommandPath()), nil
}

func (o *rootOptions) config() (*config.Config, error) {
	return config.Load(*o.configFile)
}

func openStore(cfg *config.Config) (*store.PostgresStore, error) {
	return store.NewPostgresStore(cfg.Db_conn, store.Options{
		Driver:       cfg.Db_driver,
		MaxOpenConns: cfg.Db_max_open_conns,
		MaxIdleConns: cfg.Db_max_idle_conns,
	})
}
