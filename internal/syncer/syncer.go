// Package syncer periodically re-imports provider launch data so stored
// historical launches pick up upstream corrections.
package syncer

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Importer re-downloads and upserts provider launch data.
type Importer interface {
	Import(ctx context.Context) (int, error)
}

// Config holds configuration for the sync agent.
type Config struct {
	Interval   time.Duration // Time between successful syncs
	MinBackoff time.Duration // First retry delay after a failure (default: 5s)
	MaxBackoff time.Duration // Retry delay cap (default: Interval)
}

// Agent runs the sync loop.
type Agent struct {
	importer Importer
	config   Config
	logger   *slog.Logger
	done     chan struct{}
}

// New creates a sync agent. Interval must be positive.
func New(importer Importer, config Config, logger *slog.Logger) *Agent {
	if config.MinBackoff <= 0 {
		config.MinBackoff = 5 * time.Second
	}
	if config.MaxBackoff <= 0 {
		config.MaxBackoff = config.Interval
	}
	if config.MinBackoff > config.MaxBackoff {
		config.MinBackoff = config.MaxBackoff
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Agent{
		importer: importer,
		config:   config,
		logger:   logger.With("component", "syncer"),
		done:     make(chan struct{}),
	}
}

// Run blocks until ctx is cancelled. The first sync happens one Interval
// after start; failures retry with exponential backoff capped at MaxBackoff.
func (a *Agent) Run(ctx context.Context) error {
	defer close(a.done)

	a.logger.Info("sync agent starting", "interval", a.config.Interval)

	wait := a.config.Interval
	backoff := a.config.MinBackoff

	for {
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			a.logger.Info("sync agent stopped")
			return ctx.Err()
		case <-timer.C:
		}

		n, err := a.importer.Import(ctx)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			a.logger.Warn("launch sync failed", "error", err, "retry_in", backoff)
			wait = backoff
			backoff *= 2
			if backoff > a.config.MaxBackoff {
				backoff = a.config.MaxBackoff
			}
			continue
		}

		a.logger.Info("launch sync completed", "count", n)
		wait = a.config.Interval
		backoff = a.config.MinBackoff
	}
}

// Done returns a channel that is closed when the agent has fully stopped.
func (a *Agent) Done() <-chan struct{} {
	return a.done
}
