// Package scheduler runs the daily due-alert dispatch job.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/granabot/backend/internal/application/adapter"
	"github.com/granabot/backend/internal/application/usecase/alert"
)

// dispatchLockTTL keeps the per-day dispatch lock alive long enough that
// late-starting replicas in the same day still see it.
const dispatchLockTTL = 48 * time.Hour

// dispatchTimeout bounds one dispatch run.
const dispatchTimeout = 5 * time.Minute

// AlertDispatcher reads the already-generated alerts due today and
// forwards them to the notification channel on a cron schedule. It never
// decides whether a reminder should exist and never mutates alerts; that
// is the recurrence engine's territory.
type AlertDispatcher struct {
	cronEngine *cron.Cron
	dueAlerts  *alert.GetDueAlertsUseCase
	notifier   adapter.AlertNotifier
	clock      adapter.Clock
	redisConn  *redis.Client // Optional; nil disables the multi-instance lock
	cronSpec   string
}

// NewAlertDispatcher creates a new dispatcher. redisConn may be nil for
// single-instance deployments.
func NewAlertDispatcher(
	dueAlerts *alert.GetDueAlertsUseCase,
	notifier adapter.AlertNotifier,
	clock adapter.Clock,
	redisConn *redis.Client,
	cronSpec string,
) *AlertDispatcher {
	return &AlertDispatcher{
		cronEngine: cron.New(),
		dueAlerts:  dueAlerts,
		notifier:   notifier,
		clock:      clock,
		redisConn:  redisConn,
		cronSpec:   cronSpec,
	}
}

// Start registers the cron job and starts the scheduler.
func (d *AlertDispatcher) Start() error {
	_, err := d.cronEngine.AddFunc(d.cronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		if err := d.DispatchDue(ctx); err != nil {
			slog.Error("Due-alert dispatch failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to register dispatch cron job: %w", err)
	}

	d.cronEngine.Start()
	slog.Info("Alert dispatcher started", "cron_spec", d.cronSpec)
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (d *AlertDispatcher) Stop() {
	<-d.cronEngine.Stop().Done()
	slog.Info("Alert dispatcher stopped")
}

// DispatchDue runs one dispatch pass for today's date. The pass is
// deduplicated across instances through a per-day Redis lock.
func (d *AlertDispatcher) DispatchDue(ctx context.Context) error {
	today := d.clock.Now()

	acquired, err := d.acquireDailyLock(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to acquire dispatch lock: %w", err)
	}
	if !acquired {
		slog.Info("Due-alert dispatch already ran today, skipping",
			"date", today.Format("2006-01-02"),
		)
		return nil
	}

	output, err := d.dueAlerts.Execute(ctx, alert.GetDueAlertsInput{Date: today})
	if err != nil {
		return err
	}
	if len(output.Alerts) == 0 {
		slog.Info("No alerts due today", "date", today.Format("2006-01-02"))
		return nil
	}

	if err := d.notifier.NotifyDueAlerts(ctx, output.Alerts); err != nil {
		return err
	}

	slog.Info("Dispatched due alerts",
		"date", today.Format("2006-01-02"),
		"count", len(output.Alerts),
	)
	return nil
}

func (d *AlertDispatcher) acquireDailyLock(ctx context.Context, today time.Time) (bool, error) {
	if d.redisConn == nil {
		return true, nil
	}

	key := "granabot:alerts:dispatched:" + today.Format("2006-01-02")
	return d.redisConn.SetNX(ctx, key, 1, dispatchLockTTL).Result()
}
