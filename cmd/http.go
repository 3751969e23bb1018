package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oseayemenre/library/internal/api"
	"github.com/oseayemenre/library/internal/config"
	"github.com/oseayemenre/library/internal/logger"
	"github.com/oseayemenre/library/internal/store"
	"github.com/spf13/cobra"
)

type Server struct {
	logger logger.Logger
	store  store.Store
	config *config.Config
}

func NewServer(logger logger.Logger, store store.Store, config *config.Config) *Server {
	return &Server{
		logger: logger,
		store:  store,
		config: config,
	}
}

func (s *Server) Mount() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	api.New(r, s.logger, s.store, s.config).RegisterRoutes()

	return r
}

func HTTPCommand(ctx context.Context, opts *rootOptions) *cobra.Command {
	var addr int

	cmd := &cobra.Command{
		Use:   "http",
		Short: "run library http server",
		RunE: func(cmd *cobra.Command, args []string) error {
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

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

			httpServer := &http.Server{
				Addr:              fmt.Sprintf(":%d", addr),
				Handler:           NewServer(logger, db, cfg).Mount(),
				ReadHeaderTimeout: 10 * time.Second,
				IdleTimeout:       15 * time.Minute,
			}
			errCh := make(chan error, 1)

			logger.Info("server startup", "status", fmt.Sprintf("server starting on port: %d", addr))
			go func() {
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err

			case <-sig:
				logger.Info("server shutdown", "status", "kill signal received")
				ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return fmt.Errorf("error shutting down server: %v", err)
				}

				logger.Info("server shutdown", "status", "shutdown complete...")
				return nil
			}
		},
	}

	cmd.Flags().IntVarP(&addr, "addr", "a", 8080, "server address")

	return cmd
}
