package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"urlcheck/internal/api"
	"urlcheck/internal/api/handler/v1handler"
	"urlcheck/internal/checker"
	"urlcheck/internal/config"
	"urlcheck/pkg/logger"
	"urlcheck/pkg/tasks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, cfg *config.Config, chk checker.Checker) func(ctx context.Context) {
	server, err := api.NewServer(api.Deps{
		Deps: v1handler.Deps{Checker: chk},
	}, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...")
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

// drainRechecks waits for in-flight background revalidations, giving up when
// the shutdown context expires. Abandoned rechecks only cost a cache write.
func drainRechecks(ctx context.Context, runner *tasks.Runner) {
	done := make(chan struct{})
	go func() {
		runner.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn(ctx, "abandoning in-flight background rechecks")
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the URL check API server",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			runner := tasks.New()
			chk := buildChecker(cfg, strg, runner)

			stopWebserver := setupServer(ctx, cfg, chk)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
			drainRechecks(shutdownCtx, runner)
		},
	}

	return cmd
}
