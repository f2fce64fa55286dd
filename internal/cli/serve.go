package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/docentia/internal/api"
	"github.com/dgallion1/docentia/internal/llm"
	"github.com/dgallion1/docentia/internal/pipeline"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig(cmd)
			log, err := newLogger(cmd.OutOrStdout(), cfg.LogLevel)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				log.Error("invalid configuration", "error", err)
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			dispatcher, err := llm.NewDispatcher(cfg, log)
			if err != nil {
				return err
			}
			defer dispatcher.Close()

			gen := pipeline.NewGenerator(dispatcher, cfg, log)
			orch := pipeline.NewOrchestrator(cfg, gen, log)
			orch.Start(ctx)

			httpServer := &http.Server{
				Addr:         cfg.Addr(),
				Handler:      api.NewServer(cfg, dispatcher, gen, orch, log),
				ReadTimeout:  30 * time.Second,
				WriteTimeout: cfg.RequestTimeout + 30*time.Second,
				IdleTimeout:  60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("starting docentia", "addr", cfg.Addr(), "provider", cfg.AIProvider, "version", cfg.AppVersion)
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				orch.Stop()
				if !errors.Is(err, http.ErrServerClosed) {
					log.Error("server error", "error", err)
					return err
				}
				return nil
			case <-ctx.Done():
			}

			log.Info("shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err = httpServer.Shutdown(shutdownCtx)
			orch.Stop()
			return err
		},
	}
}
