// Package tasks runs fire-and-forget background work. Tasks are detached
// from the spawning request: they survive its cancellation, make a single
// attempt, and report failures through logs only.
package tasks

import (
	"context"
	"sync"
	"urlcheck/pkg/logger"

	"go.uber.org/zap"
)

// Runner tracks spawned tasks so they can be drained on shutdown. The zero
// value is not usable; construct with New.
type Runner struct {
	wg sync.WaitGroup
}

// New constructs a Runner.
func New() *Runner {
	return &Runner{}
}

// Go runs fn on its own goroutine. The task context is detached from ctx's
// cancellation but keeps its values, so the logger and its fields carry over.
// Errors and panics are logged and swallowed; a failed task is never retried.
func (r *Runner) Go(ctx context.Context, name string, fn func(ctx context.Context) error) {
	taskCtx := logger.WithFields(context.WithoutCancel(ctx), zap.String("task", name))

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error(taskCtx, "background task panicked", zap.Any("panic", rec))
			}
		}()

		if err := fn(taskCtx); err != nil {
			logger.Error(taskCtx, "background task failed", zap.Error(err))
		}
	}()
}

// Wait blocks until all spawned tasks have finished. Used on shutdown.
func (r *Runner) Wait() {
	r.wg.Wait()
}
