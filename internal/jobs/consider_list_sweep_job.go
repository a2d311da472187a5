// Package jobs provides scheduled background tasks for the fulfillment
// engine. Jobs are cron-driven (github.com/robfig/cron/v3) and built on the
// same query and notifier ports as the rest of the application.
package jobs

import (
	"context"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// ConsiderListSweepJob periodically scans the consider list and publishes a
// reminder event for every delivery session that has been waiting for
// confirmation longer than the configured age. Dispatchers chase couriers
// off the back of these reminders; the job never mutates state.
type ConsiderListSweepJob struct {
	handler  queries.ListConsiderListQueryHandler
	notifier ports.EventNotifier
	maxAge   time.Duration
	cron     *cron.Cron
	schedule string
	logger   zerolog.Logger
}

// NewConsiderListSweepJob creates the sweep job. The schedule is a standard
// five-field cron expression; maxAge is how long a session may sit on the
// consider list before reminders start.
func NewConsiderListSweepJob(
	handler queries.ListConsiderListQueryHandler,
	notifier ports.EventNotifier,
	schedule string,
	maxAge time.Duration,
	logger zerolog.Logger,
) *ConsiderListSweepJob {
	return &ConsiderListSweepJob{
		handler:  handler,
		notifier: notifier,
		maxAge:   maxAge,
		cron:     cron.New(),
		schedule: schedule,
		logger:   logger.With().Str("component", "consider_list_sweep_job").Logger(),
	}
}

// Start begins the periodic sweep.
func (j *ConsiderListSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.sweep)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info().
		Str("schedule", j.schedule).
		Dur("max_age", j.maxAge).
		Msg("consider list sweep job started")
	return nil
}

// Stop stops the sweep job.
func (j *ConsiderListSweepJob) Stop() {
	j.cron.Stop()
	j.logger.Info().Msg("consider list sweep job stopped")
}

func (j *ConsiderListSweepJob) sweep() {
	ctx := context.Background()

	pending, err := j.handler.Handle(ctx, queries.NewListConsiderListQuery())
	if err != nil {
		j.logger.Error().Err(err).Msg("consider list sweep failed")
		return
	}

	cutoff := time.Now().UTC().Add(-j.maxAge)
	reminded := 0
	for _, item := range pending {
		if item.StartedAt.After(cutoff) {
			continue
		}

		event := ports.InvoiceEvent{
			InvoiceID:  item.InvoiceID,
			InvoiceNo:  item.InvoiceNo,
			Status:     item.InvoiceStatus,
			Kind:       "delivery_reminder",
			OccurredAt: time.Now().UTC(),
		}
		if err := j.notifier.Notify(ctx, event); err != nil {
			j.logger.Warn().
				Err(err).
				Str("invoice_no", item.InvoiceNo).
				Msg("reminder notification failed")
			continue
		}
		reminded++
	}

	if reminded > 0 {
		j.logger.Info().
			Int("pending", len(pending)).
			Int("reminded", reminded).
			Msg("consider list sweep completed")
	}
}
