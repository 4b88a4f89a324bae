// Package schedule runs recurring background jobs on a ticker. Each job is an
// explicitly owned task with a cancellable handle so graceful shutdown and
// tests can stop it deterministically.
package schedule

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is a named recurring task
type Job struct {
	name   string
	every  time.Duration
	run    func(ctx context.Context) error
	logger *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// NewJob creates a job that invokes run every interval once started
func NewJob(name string, every time.Duration, run func(ctx context.Context) error, logger *slog.Logger) *Job {
	return &Job{
		name:   name,
		every:  every,
		run:    run,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Start launches the ticker loop. A failing cycle is logged and never
// terminates the loop or skips subsequent cycles.
func (j *Job) Start(ctx context.Context) {
	ctx, j.cancel = context.WithCancel(ctx)

	go func() {
		defer close(j.done)

		ticker := time.NewTicker(j.every)
		defer ticker.Stop()

		j.logger.Info("background job started", "job", j.name, "interval", j.every)

		for {
			select {
			case <-ticker.C:
				if err := j.run(ctx); err != nil {
					j.logger.Error("background job cycle failed", "job", j.name, "error", err)
				}
			case <-ctx.Done():
				j.logger.Info("background job stopped", "job", j.name)
				return
			}
		}
	}()
}

// Stop cancels the loop and waits for it to exit
func (j *Job) Stop() {
	j.once.Do(func() {
		if j.cancel != nil {
			j.cancel()
		}
		<-j.done
	})
}
