package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/lcibils/monitor-neuratek/internal/service"
)

// RefreshWorker drives the evaluation service on a cron schedule. Cycles are
// fast and side-effect free inside the core, so an overlapping or failed
// cycle is simply logged and the next tick starts fresh.
type RefreshWorker struct {
	evaluations *service.EvaluationService
	schedule    string
	timeout     time.Duration
	logger      *zap.Logger
	cron        *cron.Cron
}

// NewRefreshWorker constructs the worker. schedule accepts cron syntax
// including descriptors like "@every 30s".
func NewRefreshWorker(evaluations *service.EvaluationService, schedule string, timeout time.Duration, logger *zap.Logger) *RefreshWorker {
	return &RefreshWorker{
		evaluations: evaluations,
		schedule:    schedule,
		timeout:     timeout,
		logger:      logger,
	}
}

// Start runs one immediate cycle, then schedules recurring refreshes.
func (w *RefreshWorker) Start(ctx context.Context) error {
	w.runOnce(ctx)

	c := cron.New()
	if _, err := c.AddFunc(w.schedule, func() { w.runOnce(ctx) }); err != nil {
		return err
	}
	c.Start()
	w.cron = c
	w.logger.Info("refresh worker started", zap.String("schedule", w.schedule))
	return nil
}

// Stop halts the schedule and waits for a running cycle to finish.
func (w *RefreshWorker) Stop() {
	if w.cron == nil {
		return
	}
	<-w.cron.Stop().Done()
}

func (w *RefreshWorker) runOnce(ctx context.Context) {
	cycleCtx := ctx
	if w.timeout > 0 {
		var cancel context.CancelFunc
		cycleCtx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}
	if _, err := w.evaluations.RunCycle(cycleCtx); err != nil {
		w.logger.Error("refresh cycle failed", zap.Error(err))
	}
}

// StartNotificationWorker registers the breach notification handlers.
func StartNotificationWorker(notifications *service.NotificationService) {
	if notifications == nil {
		return
	}
	notifications.RegisterHandlers()
}
