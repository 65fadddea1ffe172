// Package scheduler registers the recurring maintenance jobs: the overdue
// reservation and invoice sweeps and the session cleanup.
package scheduler

import (
	"context"

	"github.com/dkasparas/autonuoma/cache"
	"github.com/dkasparas/autonuoma/config"
	"github.com/dkasparas/autonuoma/database"
	"github.com/dkasparas/autonuoma/logger"
	"github.com/dkasparas/autonuoma/notifier"
	"github.com/dkasparas/autonuoma/session"
	"github.com/dkasparas/autonuoma/worker"
	"github.com/pkg/errors"
)

// InitScheduler creates the cron worker, registers the maintenance jobs
// on their configured schedules and starts the worker.
func InitScheduler(store *cache.Store, sessions *session.Store, notify *notifier.PushoverClient) error {
	worker.CreateCronWorker()
	settings := config.GetSettingsScheduler()

	if settings.IntervalOverdueReservations != "" {
		err := worker.DispatchCron(settings.IntervalOverdueReservations, "overdue reservations sweep",
			worker.QueueMaintenance, func(ctx context.Context) error {
				count := database.MarkOverdueReservations()
				if count == 0 {
					return nil
				}
				logger.Logtype("info").Int64("count", count).Msg("reservations marked overdue")
				store.Invalidate("reservations")
				return notify.NotifyOverdue(ctx, "rezervacijos", count)
			})
		if err != nil {
			return errors.Wrap(err, "schedule reservation sweep")
		}
	}

	if settings.IntervalOverdueInvoices != "" {
		err := worker.DispatchCron(settings.IntervalOverdueInvoices, "overdue invoices sweep",
			worker.QueueMaintenance, func(ctx context.Context) error {
				count := database.MarkOverdueInvoices()
				if count == 0 {
					return nil
				}
				logger.Logtype("info").Int64("count", count).Msg("invoices marked overdue")
				store.Invalidate("invoices")
				return notify.NotifyOverdue(ctx, "saskaitos", count)
			})
		if err != nil {
			return errors.Wrap(err, "schedule invoice sweep")
		}
	}

	if settings.IntervalSessionCleanup != "" {
		err := worker.DispatchCron(settings.IntervalSessionCleanup, "session cleanup",
			worker.QueueMaintenance, func(ctx context.Context) error {
				if removed := sessions.CleanupExpired(); removed > 0 {
					logger.Logtype("debug").Int("count", removed).Msg("expired sessions removed")
				}
				return nil
			})
		if err != nil {
			return errors.Wrap(err, "schedule session cleanup")
		}
	}

	worker.StartCronWorker()
	return nil
}

// StopScheduler stops the cron worker and drains the job pools.
func StopScheduler() {
	worker.StopCronWorker()
	worker.StopWorkerPools()
}
