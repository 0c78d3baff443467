package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	// RosterRefreshSpec rebuilds the roster a few times a day.
	RosterRefreshSpec = "@every 6h"
	// MonthStartSpec rebuilds the roster as soon as a new month begins.
	MonthStartSpec = "0 0 1 * *"
)

// PollSpec returns the cron spec for polling every interval.
func PollSpec(interval time.Duration) string {
	return "@every " + interval.String()
}

// Job is one scheduled task. The returned error is logged; it never stops the schedule.
type Job func(ctx context.Context) error

// Runner drives the scheduled tasks. Each job is skipped while its previous
// run is still in progress.
type Runner struct {
	cron   *cron.Cron
	ctx    context.Context
	logger *slog.Logger
	jobs   map[string]cron.Job
}

func New(ctx context.Context, logger *slog.Logger, location *time.Location) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if location == nil {
		location = time.Local
	}

	cl := cronLogger{logger: logger}
	c := cron.New(
		cron.WithLocation(location),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl)),
	)

	return &Runner{
		cron:   c,
		ctx:    ctx,
		logger: logger,
		jobs:   make(map[string]cron.Job),
	}
}

// Add registers job under name for every spec given. All specs of one name
// share a single skip-if-still-running guard.
func (r *Runner) Add(name string, job Job, specs ...string) error {
	wrapped, ok := r.jobs[name]
	if !ok {
		wrapped = cron.NewChain(
			cron.SkipIfStillRunning(cronLogger{logger: r.logger}),
		).Then(cron.FuncJob(func() {
			r.run(name, job)
		}))
		r.jobs[name] = wrapped
	}

	for _, spec := range specs {
		if _, err := r.cron.AddJob(spec, wrapped); err != nil {
			return fmt.Errorf("failed to schedule %s with %q: %w", name, spec, err)
		}
		r.logger.Info("job scheduled",
			slog.String("job", name),
			slog.String("spec", spec),
		)
	}

	return nil
}

// RunNow runs a registered job immediately through its guard.
func (r *Runner) RunNow(name string) error {
	job, ok := r.jobs[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	job.Run()
	return nil
}

func (r *Runner) Start() {
	r.cron.Start()
}

// Stop halts the schedule and returns a context that is done once running jobs finish.
func (r *Runner) Stop() context.Context {
	return r.cron.Stop()
}

func (r *Runner) run(name string, job Job) {
	if r.ctx.Err() != nil {
		return
	}

	start := time.Now()
	err := job(r.ctx)
	attrs := []any{
		slog.String("job", name),
		slog.Duration("duration", time.Since(start)),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		r.logger.WarnContext(r.ctx, "job finished with error", attrs...)
		return
	}
	r.logger.DebugContext(r.ctx, "job finished", attrs...)
}
