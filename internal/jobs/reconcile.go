package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/sbilibin2017/todo-tracker/internal/logger"
)

//go:generate mockgen -source=reconcile.go -destination=mock_reconcile.go -package=jobs

// CounterReconciler recomputes stored task counters from the todos table.
type CounterReconciler interface {
	ReconcileCounters(ctx context.Context) (int64, error)
}

// Reconciler periodically repairs user counters left out of step by a failed
// adjustment after a todo mutation.
type Reconciler struct {
	repo     CounterReconciler
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
}

// NewReconciler creates a Reconciler running on the given cron schedule,
// e.g. "@every 1h" or "0 3 * * *".
func NewReconciler(repo CounterReconciler, schedule string) *Reconciler {
	return &Reconciler{
		repo:     repo,
		schedule: schedule,
		timeout:  time.Minute,
	}
}

// Run performs a single reconciliation pass and returns the number of repaired users.
func (r *Reconciler) Run(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	fixed, err := r.repo.ReconcileCounters(ctx)
	if err != nil {
		logger.Log.Errorw("counter reconciliation failed", "error", err)
		return 0, err
	}
	if fixed > 0 {
		logger.Log.Warnw("repaired drifted user counters", "users", fixed, "duration", time.Since(start))
	} else {
		logger.Log.Debugw("user counters consistent", "duration", time.Since(start))
	}
	return fixed, nil
}

// Start schedules Run on the cron schedule. Overlapping runs are skipped.
func (r *Reconciler) Start(ctx context.Context) error {
	cl := cron.PrintfLogger(zap.NewStdLog(logger.Log.Desugar()))
	r.cron = cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	if _, err := r.cron.AddFunc(r.schedule, func() {
		_, _ = r.Run(ctx)
	}); err != nil {
		return err
	}

	r.cron.Start()
	logger.Log.Infow("counter reconciliation scheduled", "schedule", r.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running pass to finish.
func (r *Reconciler) Stop() {
	if r.cron == nil {
		return
	}
	<-r.cron.Stop().Done()
}
