package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/trknhr/cardlog/internal/logger"
	"github.com/trknhr/cardlog/internal/server"
	"github.com/trknhr/cardlog/internal/worker"
)

func newServeCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			worker.LaunchBootstrap(a.journal.Engine())

			addr := a.cfg.ListenAddr()
			httpServer := &http.Server{
				Addr:              addr,
				Handler:           server.New(a.journal, Version),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errc := make(chan error, 1)
			go func() {
				logger.Info("cardlog serving on %s", addr)
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errc <- err
				}
			}()

			done := make(chan os.Signal, 1)
			signal.Notify(done, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(done)

			select {
			case err := <-errc:
				return fmt.Errorf("server error: %w", err)
			case <-done:
			}
			logger.Info("shutting down...")

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpServer.Shutdown(ctx)
		},
	}
}
