package readstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"reservation-engine/internal/domain/availability"
	"reservation-engine/internal/domain/reservation"
	"reservation-engine/internal/infra"
	"reservation-engine/internal/infra/db"
	"reservation-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, resource_id, reservation_number, start_time, end_time, status,
		       total_price_cents, payment_status, payment_details,
		       deposit_required, deposit_amount_cents, deposit_paid, deposit_paid_at,
		       customer_first_name, customer_last_name, customer_email, customer_phone, customer_notes,
		       party_size, cancellation_reason, cancellation_policy,
		       is_recurring, recurrence_pattern, recurrence_end, recurrence_exceptions,
		       resource_snapshot, source, created_at, updated_at
		FROM reservations
		WHERE id = $1`,
		id,
	)

	view, err := scanReservationView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	if err := r.attachSlots(ctx, view); err != nil {
		return nil, err
	}
	if err := r.attachNotifications(ctx, view); err != nil {
		return nil, err
	}
	return view, nil
}

func (r *ReservationReadStore) ListByResource(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]*queries.ReservationListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.resource_id, res.name, r.reservation_number,
		       r.start_time, r.end_time, r.status, r.party_size, r.created_at
		FROM reservations r
		JOIN resources res ON res.id = r.resource_id
		WHERE r.resource_id = $1
		  AND r.start_time < $3
		  AND r.end_time > $2
		ORDER BY r.start_time`,
		resourceID, from, to,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	var out []*queries.ReservationListItem
	for rows.Next() {
		var item queries.ReservationListItem
		if err := rows.Scan(
			&item.ID, &item.ResourceID, &item.ResourceName, &item.Number,
			&item.Start, &item.End, &item.Status, &item.PartySize, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		out = append(out, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservations", err)
	}
	return out, nil
}

// BusyIntervals mirrors the write-side overlap query so availability reads
// and reservation creation agree on which rows claim capacity.
func (r *ReservationReadStore) BusyIntervals(ctx context.Context, resourceID uuid.UUID, window reservation.Window, exclude *uuid.UUID) ([]availability.Busy, error) {
	rows, err := r.db.Query(ctx, `
		SELECT start_time, end_time, party_size
		FROM reservations
		WHERE resource_id = $1
		  AND status NOT IN ('cancelled', 'no-show', 'rescheduled')
		  AND start_time < $3
		  AND end_time > $2
		  AND ($4::uuid IS NULL OR id <> $4)`,
		resourceID, window.Start(), window.End(), exclude,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query busy intervals", err)
	}
	defer rows.Close()

	var out []availability.Busy
	for rows.Next() {
		var b availability.Busy
		if err := rows.Scan(&b.Start, &b.End, &b.PartySize); err != nil {
			return nil, infra.WrapRepoErr("failed to scan busy interval", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read busy intervals", err)
	}
	return out, nil
}

func (r *ReservationReadStore) attachSlots(ctx context.Context, view *queries.ReservationView) error {
	rows, err := r.db.Query(ctx, `
		SELECT start_time, end_time, max_capacity, current_bookings, is_available, price_cents, special_price_cents
		FROM reservation_slots
		WHERE reservation_id = $1
		ORDER BY start_time`,
		view.ID,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to load reservation slots", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s queries.SlotView
		if err := rows.Scan(&s.Start, &s.End, &s.MaxCapacity, &s.CurrentBookings, &s.IsAvailable, &s.PriceCents, &s.SpecialPriceCents); err != nil {
			return infra.WrapRepoErr("failed to scan reservation slot", err)
		}
		view.Slots = append(view.Slots, s)
	}
	if err := rows.Err(); err != nil {
		return infra.WrapRepoErr("failed to read reservation slots", err)
	}
	return nil
}

func (r *ReservationReadStore) attachNotifications(ctx context.Context, view *queries.ReservationView) error {
	rows, err := r.db.Query(ctx, `
		SELECT type, recipient, template, status = 'sent', sent_at
		FROM notification_jobs
		WHERE reservation_id = $1
		ORDER BY created_at`,
		view.ID,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to load notifications", err)
	}
	defer rows.Close()

	for rows.Next() {
		var n queries.NotificationView
		if err := rows.Scan(&n.Type, &n.Recipient, &n.Template, &n.Sent, &n.SentAt); err != nil {
			return infra.WrapRepoErr("failed to scan notification", err)
		}
		view.Notifications = append(view.Notifications, n)
	}
	if err := rows.Err(); err != nil {
		return infra.WrapRepoErr("failed to read notifications", err)
	}
	return nil
}

func scanReservationView(row pgx.Row) (*queries.ReservationView, error) {
	var (
		view          queries.ReservationView
		pattern       *string
		exceptionsRaw []byte
		snapshotRaw   []byte
	)

	err := row.Scan(
		&view.ID, &view.ResourceID, &view.Number, &view.Start, &view.End, &view.Status,
		&view.TotalPriceCents, &view.PaymentStatus, &view.PaymentDetails,
		&view.Deposit.Required, &view.Deposit.AmountCents, &view.Deposit.Paid, &view.Deposit.PaidAt,
		&view.Customer.FirstName, &view.Customer.LastName, &view.Customer.Email, &view.Customer.Phone, &view.Customer.Notes,
		&view.PartySize, &view.CancellationReason, &view.CancellationPolicy,
		&view.Recurrence.IsRecurring, &pattern, &view.Recurrence.EndDate, &exceptionsRaw,
		&snapshotRaw, &view.Source, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if pattern != nil {
		view.Recurrence.Pattern = *pattern
	}
	if len(exceptionsRaw) > 0 {
		if err := json.Unmarshal(exceptionsRaw, &view.Recurrence.Exceptions); err != nil {
			return nil, err
		}
	}

	var snap reservation.ResourceSnapshot
	if err := json.Unmarshal(snapshotRaw, &snap); err != nil {
		return nil, err
	}
	view.ResourceName = snap.Name
	return &view, nil
}
