package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/trampo-app/trampo/internal/domain/payment"
	"github.com/trampo-app/trampo/internal/pkg/logger"
	"github.com/trampo-app/trampo/internal/pkg/metrics"
)

// Maintenance runs periodic housekeeping. It only trims the webhook
// idempotency log; ledger rows are expired lazily by the requests that
// touch them.
type Maintenance struct {
	events    payment.EventRepository
	schedule  string
	retention time.Duration
	logger    *logger.Logger
	now       func() time.Time

	scheduler *cron.Cron
}

// NewMaintenance creates a new maintenance worker
func NewMaintenance(events payment.EventRepository, schedule string, retention time.Duration, log *logger.Logger) (*Maintenance, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid cron schedule: %w", err)
	}
	return &Maintenance{
		events:    events,
		schedule:  schedule,
		retention: retention,
		logger:    log,
		now:       time.Now,
	}, nil
}

// Start schedules the jobs and blocks until ctx is done
func (m *Maintenance) Start(ctx context.Context) {
	m.scheduler = cron.New()
	if _, err := m.scheduler.AddFunc(m.schedule, func() {
		if _, err := m.PurgePaymentEvents(ctx); err != nil {
			m.logger.ErrorWithErr(err, "Failed to purge payment events")
		}
	}); err != nil {
		m.logger.ErrorWithErr(err, "Failed to schedule maintenance")
		return
	}

	m.logger.WithFields(map[string]interface{}{
		"schedule":  m.schedule,
		"retention": m.retention.String(),
	}).Info("Starting maintenance worker")
	m.scheduler.Start()

	<-ctx.Done()
	<-m.scheduler.Stop().Done()
	m.logger.Info("Maintenance worker stopped")
}

// PurgePaymentEvents deletes settled webhook records older than the
// retention window
func (m *Maintenance) PurgePaymentEvents(ctx context.Context) (int64, error) {
	cutoff := m.now().Add(-m.retention)
	n, err := m.events.PurgeBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	metrics.AddPaymentEventsPurged(n)

	m.logger.WithFields(map[string]interface{}{
		"deleted": n,
		"cutoff":  cutoff.Format(time.RFC3339),
	}).Info("Payment events purged")

	return n, nil
}
