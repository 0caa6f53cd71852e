// Package main provides the CLI entrypoint for the URL checker service.
// It wires subcommands (serve, check, migrate, jwt), loads configuration, and
// initializes logging.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"urlcheck/internal/checker"
	"urlcheck/internal/config"
	"urlcheck/pkg/certcheck"
	"urlcheck/pkg/logger"
	"urlcheck/pkg/opinion/groq"
	"urlcheck/pkg/storage"
	"urlcheck/pkg/storage/postgres"
	"urlcheck/pkg/tasks"
	"urlcheck/pkg/threatlist/safebrowsing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// getPostgres creates a PostgreSQL client using configuration values and returns it
// along with a cleanup function to close the connection pool.
func getPostgres(ctx context.Context, cfg *config.Config) (*postgres.PgSQL, func()) {
	pgsql, err := postgres.New(ctx, postgres.Options{
		Username:           cfg.Database.Username,
		Password:           cfg.Database.Password,
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		Database:           cfg.Database.DatabaseName,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime:    cfg.Database.ConnMaxIdleTime,
		MaxOpenConnections: cfg.Database.MaxOpenConnections,
		MaxIdleConnections: cfg.Database.MaxIdleConnections,
		SslMode:            cfg.Database.SslMode,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create postgres storage", zap.Error(err))
	}

	return pgsql, func() {
		logger.Info(ctx, "closing postgres client...")
		if err = pgsql.Close(); err != nil {
			logger.Warn(ctx, "could not close postgres connection", zap.Error(err))
		}
	}
}

// buildChecker assembles the check orchestrator with its signal clients from
// the application configuration.
func buildChecker(cfg *config.Config, store storage.ScanStore, runner *tasks.Runner) checker.Checker {
	threats := safebrowsing.NewWithEndpoint(
		&http.Client{Timeout: cfg.SafeBrowsing.Timeout}, cfg.SafeBrowsing.APIKey, cfg.SafeBrowsing.Endpoint)
	certs := certcheck.New(certcheck.Options{Timeout: cfg.CertCheck.Timeout})
	opinions := groq.NewWithEndpoint(
		&http.Client{Timeout: cfg.Opinion.Timeout}, cfg.Opinion.APIKey, cfg.Opinion.Model, cfg.Opinion.Endpoint)

	return checker.New(store, threats, certs, opinions, runner, checker.NewOptions(cfg))
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use: "urlcheck",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	configPath := flag.String("c", "config.yml", "The config file path")
	flag.Parse()

	log.Println("loading config ...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file", err)
	}

	logger.Setup(cfg.Environment)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		serveCommand(cfg),
		checkCommand(cfg),
		migrateCommand(cfg),
		JWTCommand(cfg),
	)

	err = rootCmd.Execute()
	_ = logger.Get(ctx).Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
