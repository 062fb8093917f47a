package schedule

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Ticker regenerates the graph on a fixed interval, so the served
// document tracks the entity tree even without explicit triggers.
type Ticker struct {
	interval time.Duration
	runner   *Runner
	cancel   context.CancelFunc
	done     chan struct{}
	logger   *zap.Logger
}

// NewTicker creates a periodic regeneration trigger.
func NewTicker(interval time.Duration, runner *Runner, logger *zap.Logger) *Ticker {
	return &Ticker{
		interval: interval,
		runner:   runner,
		done:     make(chan struct{}),
		logger:   logger,
	}
}

// Start launches the tick loop. A failed run keeps the previous graph
// and the loop running; the next tick tries again.
func (t *Ticker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel

	go func() {
		defer close(t.done)
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		t.logger.Info("scheduled regeneration started", zap.Duration("interval", t.interval))
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := t.runner.Run(ctx); err != nil {
					t.logger.Warn("scheduled regeneration failed", zap.Error(err))
				}
			}
		}
	}()
}

// Stop halts the tick loop and waits for it to exit.
func (t *Ticker) Stop() {
	if t.cancel == nil {
		return
	}
	t.cancel()
	<-t.done
}
