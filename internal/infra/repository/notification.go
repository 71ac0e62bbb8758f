package repository

import (
	"context"
	"time"

	"reservation-engine/internal/infra"
	"reservation-engine/internal/infra/db"
	"reservation-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

// Enqueue writes an outbox row in the caller's transaction; the dispatcher
// picks it up after commit. The engine never blocks on delivery.
func (r *NotificationRepository) Enqueue(ctx context.Context, job shared.NotificationJob) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO notification_jobs (reservation_id, type, recipient, template, payload)
		VALUES ($1, $2, $3, $4, $5)`,
		job.ReservationID, string(job.Type), job.Recipient, job.Template, job.Payload,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue notification job", err)
	}
	return nil
}

type ClaimedJob struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	Type          string
	Recipient     string
	Template      string
	Payload       []byte
	Attempts      int32
}

// ClaimDue flips a batch of queued jobs to processing. SKIP LOCKED keeps
// multiple dispatcher instances from claiming the same rows.
func (r *NotificationRepository) ClaimDue(ctx context.Context, limit int) ([]ClaimedJob, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE notification_jobs
		SET status = 'processing', attempts = attempts + 1, updated_at = now()
		WHERE id IN (
			SELECT id FROM notification_jobs
			WHERE status = 'queued'
			ORDER BY created_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, reservation_id, type, recipient, template, payload, attempts`,
		limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}
	defer rows.Close()

	var out []ClaimedJob
	for rows.Next() {
		var j ClaimedJob
		if err := rows.Scan(&j.ID, &j.ReservationID, &j.Type, &j.Recipient, &j.Template, &j.Payload, &j.Attempts); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification job", err)
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read notification jobs", err)
	}
	return out, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE notification_jobs
		SET status = 'sent', sent_at = $2, updated_at = now()
		WHERE id = $1`,
		id, at,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification sent", err)
	}
	return nil
}

func (r *NotificationRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string, maxAttempts int32) error {
	_, err := r.db.Exec(ctx, `
		UPDATE notification_jobs
		SET status = CASE WHEN attempts >= $3 THEN 'failed' ELSE 'queued' END,
		    last_error = $2, updated_at = now()
		WHERE id = $1`,
		id, reason, maxAttempts,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification failed", err)
	}
	return nil
}
