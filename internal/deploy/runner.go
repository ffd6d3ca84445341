package deploy

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Runner executes deploy scripts one after another against an environment
type Runner struct {
	log *slog.Logger
}

// NewRunner creates a new runner
func NewRunner(log *slog.Logger) *Runner {
	return &Runner{log: log}
}

// Run executes the scripts in order and stops at the first failure. Nothing
// is undone on failure: transactions already broadcast stay on chain.
func (r *Runner) Run(ctx context.Context, env *Environment, scripts []Script) error {
	for _, s := range scripts {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		r.log.Debug("running deploy script", "script", s.Name(), "tags", s.Tags(), "network", env.Network().Name)

		if err := s.Run(ctx, env); err != nil {
			return fmt.Errorf("deploy script %s failed: %w", s.Name(), err)
		}

		r.log.Debug("deploy script finished", "script", s.Name(), "took", time.Since(start).Round(time.Millisecond))
	}
	return nil
}
