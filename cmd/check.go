package main

import (
	"context"
	"encoding/json"
	"fmt"
	"urlcheck/internal/config"
	"urlcheck/pkg/logger"
	"urlcheck/pkg/tasks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// checkCommand constructs the 'check' subcommand that runs a single URL check
// from the command line and prints the result as JSON.
func checkCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [url]",
		Short: "Checks a single URL and prints the result as JSON",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			force, _ := cmd.Flags().GetBool("force")

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			runner := tasks.New()
			chk := buildChecker(cfg, strg, runner)

			res, err := chk.Check(ctx, args[0], force)
			if err != nil {
				logger.Fatal(ctx, "check failed", zap.Error(err))
			}

			out, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				logger.Fatal(ctx, "could not marshal result", zap.Error(err))
			}
			fmt.Println(string(out)) //nolint: forbidigo

			// a stale hit may have spawned a revalidation; finish it before
			// the store closes
			runner.Wait()
		},
	}

	cmd.Flags().Bool("force", false, "Bypass the cache and run a full check")

	return cmd
}
