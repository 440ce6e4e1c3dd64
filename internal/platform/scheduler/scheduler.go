// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

/*
Package scheduler provides a minimal in-process job runner for periodic
maintenance tasks.

It exists so that time-triggered work (like the deleted-book purge) stays an
injected collaborator: jobs receive the current time as an argument and never
read the wall clock themselves, which keeps them deterministic under test.

Behavior:

  - RunAtStart jobs execute once immediately when the runner starts.
  - Every job then re-runs on its own ticker interval.
  - Job failures are logged and never stop the ticker.
  - All tickers stop when the runner's context is cancelled.
*/
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job describes a single periodic task.
type Job struct {
	// Name identifies the job in log output.
	Name string

	// Interval is the period between runs.
	Interval time.Duration

	// RunAtStart executes the job once immediately when the runner starts.
	RunAtStart bool

	// Run performs the work. It receives the tick time so the job itself
	// stays a pure function of (now, store state).
	Run func(ctx context.Context, now time.Time) error
}

// Runner owns a set of jobs and their ticker goroutines.
type Runner struct {
	logger *slog.Logger
	jobs   []Job
	wg     sync.WaitGroup
}

// NewRunner constructs an empty job runner.
func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{logger: logger}
}

// Register adds a job. Must be called before Start.
func (runner *Runner) Register(job Job) {
	runner.jobs = append(runner.jobs, job)
}

// Start launches one goroutine per registered job and returns immediately.
//
// The goroutines exit when ctx is cancelled; Wait blocks until they do.
func (runner *Runner) Start(ctx context.Context) {
	for _, job := range runner.jobs {
		runner.wg.Add(1)
		go runner.loop(ctx, job)
	}
}

// Wait blocks until all job goroutines have stopped.
func (runner *Runner) Wait() {
	runner.wg.Wait()
}

// loop drives a single job's lifecycle: optional immediate run, then ticks.
func (runner *Runner) loop(ctx context.Context, job Job) {
	defer runner.wg.Done()

	if job.RunAtStart {
		runner.execute(ctx, job, time.Now())
	}

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case tick := <-ticker.C:
			runner.execute(ctx, job, tick)
		case <-ctx.Done():
			runner.logger.Info("scheduler_job_stopped", slog.String("job", job.Name))
			return
		}
	}
}

// execute runs the job once, logging outcome and duration.
func (runner *Runner) execute(ctx context.Context, job Job, now time.Time) {
	startedAt := time.Now()

	if err := job.Run(ctx, now); err != nil {
		runner.logger.Error("scheduler_job_failed",
			slog.String("job", job.Name),
			slog.Any("error", err),
			slog.Int64("duration_ms", time.Since(startedAt).Milliseconds()),
		)
		return
	}

	runner.logger.Info("scheduler_job_finished",
		slog.String("job", job.Name),
		slog.Int64("duration_ms", time.Since(startedAt).Milliseconds()),
	)
}
