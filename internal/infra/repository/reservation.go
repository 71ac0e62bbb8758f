package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"reservation-engine/internal/domain/availability"
	"reservation-engine/internal/domain/reservation"
	"reservation-engine/internal/infra"
	"reservation-engine/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: dbtx}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	snapshot, err := json.Marshal(res.Resource())
	if err != nil {
		return infra.WrapRepoErr("failed to encode resource snapshot", err)
	}
	exceptions, customDates, err := encodeRecurrenceDates(res.Recurrence())
	if err != nil {
		return infra.WrapRepoErr("failed to encode recurrence", err)
	}

	rec := res.Recurrence()
	var pattern *string
	if rec.IsRecurring {
		p := string(rec.Pattern)
		pattern = &p
	}

	dep := res.Deposit()
	cust := res.Customer()

	_, err = r.db.Exec(ctx, `
		INSERT INTO reservations (
			id, resource_id, reservation_number, start_time, end_time, status,
			total_price_cents, payment_status, payment_details,
			deposit_required, deposit_amount_cents, deposit_paid, deposit_paid_at,
			customer_first_name, customer_last_name, customer_email, customer_phone, customer_notes,
			party_size, cancellation_reason, cancellation_policy,
			is_recurring, recurrence_pattern, recurrence_end, recurrence_exceptions, recurrence_custom_dates,
			resource_snapshot, source
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9,
			$10, $11, $12, $13,
			$14, $15, $16, $17, $18,
			$19, $20, $21,
			$22, $23, $24, $25, $26,
			$27, $28
		)`,
		res.ID(), res.ResourceID(), res.Number(), res.Window().Start(), res.Window().End(), res.Status().String(),
		res.TotalPrice().Cents(), res.PaymentStatus().String(), res.PaymentDetails(),
		dep.Required, dep.AmountCents, dep.Paid, dep.PaidAt,
		cust.FirstName, cust.LastName, cust.Email, cust.Phone, cust.Notes,
		res.PartySize(), res.CancellationReason(), res.CancellationPolicy(),
		rec.IsRecurring, pattern, rec.EndDate, exceptions, customDates,
		snapshot, res.Source(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("duplicate reservation number", err, infra.KindDuplicateKey)
		}
		if isForeignKeyViolation(err) {
			return infra.WrapRepoErr("resource does not exist", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to create reservation", err)
	}

	for _, s := range res.Slots() {
		if _, err := r.db.Exec(ctx, `
			INSERT INTO reservation_slots (reservation_id, start_time, end_time, max_capacity, current_bookings, is_available, price_cents, special_price_cents)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			res.ID(), s.Start, s.End, s.MaxCapacity, s.CurrentBookings, s.IsAvailable, s.PriceCents, s.SpecialPrice,
		); err != nil {
			return infra.WrapRepoErr("failed to create reservation slot", err)
		}
	}
	return nil
}

// Update persists the fields lifecycle operations may change. Identity,
// window and customer data are immutable after creation.
func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	dep := res.Deposit()
	tag, err := r.db.Exec(ctx, `
		UPDATE reservations
		SET status = $2, total_price_cents = $3, payment_status = $4, payment_details = $5,
		    deposit_paid = $6, deposit_paid_at = $7, cancellation_reason = $8, updated_at = now()
		WHERE id = $1`,
		res.ID(), res.Status().String(), res.TotalPrice().Cents(), res.PaymentStatus().String(),
		res.PaymentDetails(), dep.Paid, dep.PaidAt, res.CancellationReason(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, resource_id, reservation_number, start_time, end_time, status,
		       total_price_cents, payment_status, payment_details,
		       deposit_required, deposit_amount_cents, deposit_paid, deposit_paid_at,
		       customer_first_name, customer_last_name, customer_email, customer_phone, customer_notes,
		       party_size, cancellation_reason, cancellation_policy,
		       is_recurring, recurrence_pattern, recurrence_end, recurrence_exceptions, recurrence_custom_dates,
		       resource_snapshot, source, created_at, updated_at
		FROM reservations
		WHERE id = $1
		FOR UPDATE`,
		id,
	)

	entity, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load reservation", err)
	}

	slots, err := r.loadSlots(ctx, id)
	if err != nil {
		return nil, err
	}
	return withSlots(entity, slots), nil
}

// OverlappingClaims loads the intervals of capacity-claiming reservations
/// intersecting the window. Half-open comparison: touching endpoints do not
// overlap.
func (r *ReservationRepository) OverlappingClaims(ctx context.Context, resourceID uuid.UUID, window reservation.Window, exclude *uuid.UUID) ([]availability.Busy, error) {
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
		return nil, infra.WrapRepoErr("failed to query overlapping reservations", err)
	}
	defer rows.Close()

	var out []availability.Busy
	for rows.Next() {
		var b availability.Busy
		if err := rows.Scan(&b.Start, &b.End, &b.PartySize); err != nil {
			return nil, infra.WrapRepoErr("failed to scan overlapping reservation", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read overlapping reservations", err)
	}
	return out, nil
}

func (r *ReservationRepository) loadSlots(ctx context.Context, reservationID uuid.UUID) ([]reservation.TimeSlot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT start_time, end_time, max_capacity, current_bookings, is_available, price_cents, special_price_cents
		FROM reservation_slots
		WHERE reservation_id = $1
		ORDER BY start_time`,
		reservationID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query reservation slots", err)
	}
	defer rows.Close()

	var out []reservation.TimeSlot
	for rows.Next() {
		var s reservation.TimeSlot
		if err := rows.Scan(&s.Start, &s.End, &s.MaxCapacity, &s.CurrentBookings, &s.IsAvailable, &s.PriceCents, &s.SpecialPrice); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation slot", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation slots", err)
	}
	return out, nil
}

func scanReservation(row pgx.Row) (*reservation.Reservation, error) {
	var (
		id, resourceID                         uuid.UUID
		number, status, paymentStatus          string
		paymentDetails                         string
		start, end, createdAt, updatedAt       time.Time
		totalPrice                             int64
		depRequired, depPaid                   bool
		depAmount                              int64
		depPaidAt                              *time.Time
		firstName, lastName, email             string
		phone, notes                           string
		partySize                              int32
		cancelReason, cancelPolicy             string
		isRecurring                            bool
		pattern                                *string
		recurrenceEnd                          *time.Time
		exceptionsRaw, customRaw, snapshotRaw  []byte
		source                                 string
	)

	err := row.Scan(
		&id, &resourceID, &number, &start, &end, &status,
		&totalPrice, &paymentStatus, &paymentDetails,
		&depRequired, &depAmount, &depPaid, &depPaidAt,
		&firstName, &lastName, &email, &phone, &notes,
		&partySize, &cancelReason, &cancelPolicy,
		&isRecurring, &pattern, &recurrenceEnd, &exceptionsRaw, &customRaw,
		&snapshotRaw, &source, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	var snap reservation.ResourceSnapshot
	if err := json.Unmarshal(snapshotRaw, &snap); err != nil {
		return nil, err
	}

	window, err := reservation.NewWindow(start, end)
	if err != nil {
		return nil, err
	}

	rec := reservation.Recurrence{IsRecurring: isRecurring, EndDate: recurrenceEnd}
	if pattern != nil {
		rec.Pattern = reservation.Pattern(*pattern)
	}
	if err := json.Unmarshal(exceptionsRaw, &rec.Exceptions); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(customRaw, &rec.CustomDates); err != nil {
		return nil, err
	}

	total, err := reservation.NewMoney(totalPrice)
	if err != nil {
		return nil, err
	}

	return reservation.ReconstructReservation(
		id, resourceID, snap, number, window, nil,
		reservation.Status(status), total,
		reservation.PaymentStatus(paymentStatus), paymentDetails,
		reservation.Deposit{Required: depRequired, AmountCents: depAmount, Paid: depPaid, PaidAt: depPaidAt},
		reservation.Customer{FirstName: firstName, LastName: lastName, Email: email, Phone: phone, Notes: notes},
		partySize, cancelReason, cancelPolicy, rec, source, createdAt, updatedAt,
	), nil
}

func withSlots(r *reservation.Reservation, slots []reservation.TimeSlot) *reservation.Reservation {
	if len(slots) == 0 {
		return r
	}
	return reservation.ReconstructReservation(
		r.ID(), r.ResourceID(), r.Resource(), r.Number(), r.Window(), slots,
		r.Status(), r.TotalPrice(), r.PaymentStatus(), r.PaymentDetails(),
		r.Deposit(), r.Customer(), r.PartySize(),
		r.CancellationReason(), r.CancellationPolicy(), r.Recurrence(), r.Source(),
		r.CreatedAt(), r.UpdatedAt(),
	)
}

func encodeRecurrenceDates(rec reservation.Recurrence) (exceptions, customDates []byte, err error) {
	exceptions, err = json.Marshal(rec.Exceptions)
	if err != nil {
		return nil, nil, err
	}
	if rec.Exceptions == nil {
		exceptions = []byte("[]")
	}
	customDates, err = json.Marshal(rec.CustomDates)
	if err != nil {
		return nil, nil, err
	}
	if rec.CustomDates == nil {
		customDates = []byte("[]")
	}
	return exceptions, customDates, nil
}
