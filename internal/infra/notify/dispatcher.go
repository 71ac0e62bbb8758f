package notify

import (
	"context"
	"log/slog"
	"time"

	"reservation-engine/internal/infra/repository"
	"reservation-engine/internal/pkg/clock"
	"reservation-engine/internal/pkg/config"

	"github.com/google/uuid"
)

const maxDeliveryAttempts = 5

// JobStore is the slice of the outbox repository the dispatcher needs.
type JobStore interface {
	ClaimDue(ctx context.Context, limit int) ([]repository.ClaimedJob, error)
	MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string, maxAttempts int32) error
}

// Dispatcher drains the notification_jobs table and hands the payloads to
// the broker. SKIP LOCKED claiming in the repository makes it safe to run
// several instances against the same database.
type Dispatcher struct {
	jobs      JobStore
	publisher Publisher
	clock     clock.Clock
	interval  time.Duration
	batchSize int
}

func NewDispatcher(jobs JobStore, publisher Publisher, clk clock.Clock, cfg config.BookingConfig) *Dispatcher {
	return &Dispatcher{
		jobs:      jobs,
		publisher: publisher,
		clock:     clk,
		interval:  cfg.NotifyPollInterval,
		batchSize: cfg.NotifyBatchSize,
	}
}

// Run polls until the context is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.dispatchBatch(ctx)
		}
	}
}

func (d *Dispatcher) dispatchBatch(ctx context.Context) {
	claimed, err := d.jobs.ClaimDue(ctx, d.batchSize)
	if err != nil {
		slog.Error("failed to claim notification jobs", "error", err.Error())
		return
	}

	for _, job := range claimed {
		if err := d.publisher.Publish(ctx, job.Payload); err != nil {
			slog.Warn("notification publish failed",
				"job_id", job.ID,
				"type", job.Type,
				"attempt", job.Attempts,
				"error", err.Error())
			if markErr := d.jobs.MarkFailed(ctx, job.ID, err.Error(), maxDeliveryAttempts); markErr != nil {
				slog.Error("failed to mark notification job failed", "job_id", job.ID, "error", markErr.Error())
			}
			continue
		}

		if err := d.jobs.MarkSent(ctx, job.ID, d.clock.Now()); err != nil {
			slog.Error("failed to mark notification job sent", "job_id", job.ID, "error", err.Error())
		}
	}
}
