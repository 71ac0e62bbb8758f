//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"reservation-engine/internal/domain/availability"
	"reservation-engine/internal/domain/reservation"
	"reservation-engine/internal/domain/resource"
	"reservation-engine/internal/infra"
	"reservation-engine/internal/infra/db"
	"reservation-engine/internal/pkg/clock"
	"reservation-engine/internal/pkg/errs"
	"reservation-engine/internal/usecase/commands"
	"reservation-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUoW runs the transaction body directly; command tests exercise the
// orchestration, not the retry machinery.
type fakeUoW struct {
	tx *fakeTx
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

type fakeTx struct {
	resources     *fakeResourceRepo
	reservations  *fakeReservationRepo
	notifications *fakeNotificationRepo
}

func (t *fakeTx) Resources() shared.ResourceRepository         { return t.resources }
func (t *fakeTx) Reservations() shared.ReservationRepository   { return t.reservations }
func (t *fakeTx) Notifications() shared.NotificationRepository { return t.notifications }
func (t *fakeTx) DB() db.DBTX                                  { return nil }

type fakeResourceRepo struct {
	snapshot *shared.ResourceSnapshot
	lockErr  error
	lockedID uuid.UUID
	created  []*resource.Resource
	updated  []*resource.Resource
	deleted  int64
}

func (r *fakeResourceRepo) Create(_ context.Context, res *resource.Resource) error {
	r.created = append(r.created, res)
	return nil
}

func (r *fakeResourceRepo) Update(_ context.Context, res *resource.Resource) error {
	r.updated = append(r.updated, res)
	return nil
}

func (r *fakeResourceRepo) DeleteCascade(context.Context, uuid.UUID) (int64, error) {
	return r.deleted, nil
}

func (r *fakeResourceRepo) LockByID(_ context.Context, id uuid.UUID) (*shared.ResourceSnapshot, error) {
	r.lockedID = id
	if r.lockErr != nil {
		return nil, r.lockErr
	}
	return r.snapshot, nil
}

type fakeReservationRepo struct {
	stored      *reservation.Reservation
	getErr      error
	busy        []availability.Busy
	busyErr     error
	lastExclude *uuid.UUID
	created     []*reservation.Reservation
	updated     []*reservation.Reservation
}

func (r *fakeReservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	r.created = append(r.created, res)
	return nil
}

func (r *fakeReservationRepo) Update(_ context.Context, res *reservation.Reservation) error {
	r.updated = append(r.updated, res)
	return nil
}

func (r *fakeReservationRepo) GetForUpdate(context.Context, uuid.UUID) (*reservation.Reservation, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.stored, nil
}

func (r *fakeReservationRepo) OverlappingClaims(_ context.Context, _ uuid.UUID, _ reservation.Window, exclude *uuid.UUID) ([]availability.Busy, error) {
	r.lastExclude = exclude
	if r.busyErr != nil {
		return nil, r.busyErr
	}
	return r.busy, nil
}

type fakeNotificationRepo struct {
	jobs []shared.NotificationJob
}

func (r *fakeNotificationRepo) Enqueue(_ context.Context, job shared.NotificationJob) error {
	r.jobs = append(r.jobs, job)
	return nil
}

type stubSequencer struct {
	n   int64
	err error
}

func (s *stubSequencer) Next(context.Context, string) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.n++
	return s.n, nil
}

type fixture struct {
	tx       *fakeTx
	clock    *clock.MockClock
	seq      *stubSequencer
	commands commands.ReservationCommands
}

func newFixture(snap *shared.ResourceSnapshot) *fixture {
	tx := &fakeTx{
		resources:     &fakeResourceRepo{snapshot: snap},
		reservations:  &fakeReservationRepo{},
		notifications: &fakeNotificationRepo{},
	}
	clk := clock.NewMockClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	seq := &stubSequencer{}
	cmds := commands.NewReservationCommands(
		&fakeUoW{tx: tx},
		reservation.NewNumberGenerator(seq),
		reservation.NewUnitPriceCalculator(),
		clk,
	)
	return &fixture{tx: tx, clock: clk, seq: seq, commands: cmds}
}

func hourlyRoom(capacity int32) *shared.ResourceSnapshot {
	return &shared.ResourceSnapshot{
		ID:             uuid.New(),
		Name:           "Conference Room A",
		Type:           resource.TypeRoom,
		Capacity:       capacity,
		BasePriceCents: 1000,
		PriceUnit:      resource.UnitHour,
		IsActive:       true,
	}
}

func createCommand(resourceID uuid.UUID, start, end time.Time, partySize int32) commands.CreateReservationCommand {
	return commands.CreateReservationCommand{
		ResourceID: resourceID,
		Start:      start,
		End:        end,
		PartySize:  partySize,
		Customer: reservation.Customer{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
		},
		Source: "api",
	}
}

func storedReservation(t *testing.T, snap *shared.ResourceSnapshot, start, end time.Time) *reservation.Reservation {
	t.Helper()
	window, err := reservation.NewWindow(start, end)
	require.NoError(t, err)
	r, err := reservation.NewReservation(
		reservation.ResourceSnapshot{
			ID:        snap.ID,
			Name:      snap.Name,
			Type:      snap.Type,
			Capacity:  snap.Capacity,
			BasePrice: snap.BasePriceCents,
			PriceUnit: snap.PriceUnit,
		},
		window,
		reservation.Customer{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		2,
		nil,
		reservation.Deposit{Required: true, AmountCents: 500},
		reservation.Recurrence{},
		"",
		"api",
	)
	require.NoError(t, err)
	require.NoError(t, r.AssignNumber("RES-260310-0001"))
	return r
}

func TestCreateReservation(t *testing.T) {
	snap := hourlyRoom(10)
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	t.Run("books, numbers, prices and enqueues a notification", func(t *testing.T) {
		fx := newFixture(snap)

		id, err := fx.commands.Create(context.Background(), createCommand(snap.ID, start, end, 4))
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)

		require.Len(t, fx.tx.reservations.created, 1)
		created := fx.tx.reservations.created[0]
		assert.Equal(t, id, created.ID())
		assert.Equal(t, reservation.StatusPending, created.Status())
		assert.Equal(t, "RES-260310-0001", created.Number())
		assert.Equal(t, int64(2000), created.TotalPrice().Cents())
		assert.Equal(t, snap.ID, fx.tx.resources.lockedID)

		require.Len(t, fx.tx.notifications.jobs, 1)
		job := fx.tx.notifications.jobs[0]
		assert.Equal(t, reservation.NotifyCreated, job.Type)
		assert.Equal(t, "ada@example.com", job.Recipient)
		assert.Contains(t, string(job.Payload), "RES-260310-0001")
	})

	t.Run("explicit slots inherit the resource capacity", func(t *testing.T) {
		fx := newFixture(snap)

		cmd := createCommand(snap.ID, start, end, 4)
		cmd.Slots = []commands.SlotInput{
			{Start: start, End: start.Add(time.Hour), PriceCents: 1500},
			{Start: start.Add(time.Hour), End: end, PriceCents: 1500},
		}

		_, err := fx.commands.Create(context.Background(), cmd)
		require.NoError(t, err)

		created := fx.tx.reservations.created[0]
		require.Len(t, created.Slots(), 2)
		for _, slot := range created.Slots() {
			assert.Equal(t, snap.Capacity, slot.MaxCapacity)
			assert.True(t, slot.IsAvailable)
		}
		assert.Equal(t, int64(3000), created.TotalPrice().Cents())
	})

	t.Run("rejects an inverted window", func(t *testing.T) {
		fx := newFixture(snap)

		_, err := fx.commands.Create(context.Background(), createCommand(snap.ID, end, start, 2))
		assert.ErrorIs(t, err, errs.ErrInvalidRange)
		assert.Empty(t, fx.tx.reservations.created)
	})

	t.Run("maps a missing resource", func(t *testing.T) {
		fx := newFixture(snap)
		fx.tx.resources.lockErr = infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)

		_, err := fx.commands.Create(context.Background(), createCommand(snap.ID, start, end, 2))
		assert.ErrorIs(t, err, errs.ErrResourceNotFound)
	})

	t.Run("rejects an inactive resource", func(t *testing.T) {
		inactive := hourlyRoom(10)
		inactive.IsActive = false
		fx := newFixture(inactive)

		_, err := fx.commands.Create(context.Background(), createCommand(inactive.ID, start, end, 2))
		assert.ErrorIs(t, err, errs.ErrResourceInactive)
	})

	t.Run("rejects a party larger than the resource", func(t *testing.T) {
		fx := newFixture(snap)

		_, err := fx.commands.Create(context.Background(), createCommand(snap.ID, start, end, 11))
		assert.ErrorIs(t, err, errs.ErrCapacityExceeded)
	})

	t.Run("rejects when the window no longer fits", func(t *testing.T) {
		fx := newFixture(snap)
		fx.tx.reservations.busy = []availability.Busy{
			{Start: start, End: end, PartySize: 8},
		}

		_, err := fx.commands.Create(context.Background(), createCommand(snap.ID, start, end, 4))
		assert.ErrorIs(t, err, errs.ErrConflict)
		assert.Empty(t, fx.tx.reservations.created)
	})

	t.Run("surfaces a sequencer outage without persisting", func(t *testing.T) {
		fx := newFixture(snap)
		fx.seq.err = errors.New("redis down")

		_, err := fx.commands.Create(context.Background(), createCommand(snap.ID, start, end, 2))
		assert.ErrorIs(t, err, errs.ErrSequenceUnavailable)
		assert.Empty(t, fx.tx.reservations.created)
		assert.Empty(t, fx.tx.notifications.jobs)
	})
}

func TestReservationLifecycleCommands(t *testing.T) {
	snap := hourlyRoom(10)
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	t.Run("confirm persists and notifies once", func(t *testing.T) {
		fx := newFixture(snap)
		fx.tx.reservations.stored = storedReservation(t, snap, start, end)

		require.NoError(t, fx.commands.Confirm(context.Background(), fx.tx.reservations.stored.ID()))
		assert.Equal(t, reservation.StatusConfirmed, fx.tx.reservations.stored.Status())
		assert.Len(t, fx.tx.reservations.updated, 1)
		require.Len(t, fx.tx.notifications.jobs, 1)
		assert.Equal(t, reservation.NotifyConfirmed, fx.tx.notifications.jobs[0].Type)

		// Re-confirming is a no-op, not an error.
		require.NoError(t, fx.commands.Confirm(context.Background(), fx.tx.reservations.stored.ID()))
		assert.Len(t, fx.tx.reservations.updated, 1)
		assert.Len(t, fx.tx.notifications.jobs, 1)
	})

	t.Run("cancel records the reason", func(t *testing.T) {
		fx := newFixture(snap)
		fx.tx.reservations.stored = storedReservation(t, snap, start, end)

		require.NoError(t, fx.commands.Cancel(context.Background(), fx.tx.reservations.stored.ID(), "customer request"))
		assert.Equal(t, reservation.StatusCancelled, fx.tx.reservations.stored.Status())
		assert.Equal(t, "customer request", fx.tx.reservations.stored.CancellationReason())
		require.Len(t, fx.tx.notifications.jobs, 1)
		assert.Equal(t, reservation.NotifyCancelled, fx.tx.notifications.jobs[0].Type)
	})

	t.Run("complete requires a confirmed reservation", func(t *testing.T) {
		fx := newFixture(snap)
		fx.tx.reservations.stored = storedReservation(t, snap, start, end)

		err := fx.commands.Complete(context.Background(), fx.tx.reservations.stored.ID())
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Empty(t, fx.tx.reservations.updated)
	})

	t.Run("no-show requires a confirmed reservation", func(t *testing.T) {
		fx := newFixture(snap)
		fx.tx.reservations.stored = storedReservation(t, snap, start, end)

		err := fx.commands.MarkNoShow(context.Background(), fx.tx.reservations.stored.ID())
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("mark as paid stamps the deposit with the current time", func(t *testing.T) {
		fx := newFixture(snap)
		fx.tx.reservations.stored = storedReservation(t, snap, start, end)

		require.NoError(t, fx.commands.MarkAsPaid(context.Background(), fx.tx.reservations.stored.ID(), "card ****4242"))
		r := fx.tx.reservations.stored
		assert.Equal(t, reservation.PaymentPaid, r.PaymentStatus())
		assert.Equal(t, "card ****4242", r.PaymentDetails())
		require.NotNil(t, r.Deposit().PaidAt)
		assert.Equal(t, fx.clock.Now(), *r.Deposit().PaidAt)
		require.Len(t, fx.tx.notifications.jobs, 1)
		assert.Equal(t, reservation.NotifyPaid, fx.tx.notifications.jobs[0].Type)
	})

	t.Run("maps a missing reservation", func(t *testing.T) {
		fx := newFixture(snap)
		fx.tx.reservations.getErr = infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)

		err := fx.commands.Confirm(context.Background(), uuid.New())
		assert.ErrorIs(t, err, errs.ErrReservationNotFound)
	})
}

func TestRescheduleReservation(t *testing.T) {
	snap := hourlyRoom(10)
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	newStart := start.Add(24 * time.Hour)
	newEnd := end.Add(24 * time.Hour)

	t.Run("books a replacement and retires the original", func(t *testing.T) {
		fx := newFixture(snap)
		original := storedReservation(t, snap, start, end)
		fx.tx.reservations.stored = original

		replacementID, err := fx.commands.Reschedule(context.Background(), commands.RescheduleCommand{
			ReservationID: original.ID(),
			NewStart:      newStart,
			NewEnd:        newEnd,
		})
		require.NoError(t, err)
		assert.NotEqual(t, original.ID(), replacementID)

		// The original's own claim is excluded from the overlap check.
		require.NotNil(t, fx.tx.reservations.lastExclude)
		assert.Equal(t, original.ID(), *fx.tx.reservations.lastExclude)

		assert.Equal(t, reservation.StatusRescheduled, original.Status())
		require.Len(t, fx.tx.reservations.updated, 1)
		assert.Equal(t, original.ID(), fx.tx.reservations.updated[0].ID())

		require.Len(t, fx.tx.reservations.created, 1)
		replacement := fx.tx.reservations.created[0]
		assert.Equal(t, replacementID, replacement.ID())
		assert.Equal(t, reservation.StatusPending, replacement.Status())
		assert.Equal(t, newStart, replacement.Window().Start())
		assert.Equal(t, original.PartySize(), replacement.PartySize())
		assert.Equal(t, "RES-260310-0001", replacement.Number())
		assert.Equal(t, int64(1000), replacement.TotalPrice().Cents())

		require.Len(t, fx.tx.notifications.jobs, 1)
		assert.Equal(t, reservation.NotifyCreated, fx.tx.notifications.jobs[0].Type)
	})

	t.Run("a blocked replacement window leaves the original untouched", func(t *testing.T) {
		fx := newFixture(snap)
		original := storedReservation(t, snap, start, end)
		fx.tx.reservations.stored = original
		fx.tx.reservations.busy = []availability.Busy{
			{Start: newStart, End: newEnd, PartySize: 9},
		}

		_, err := fx.commands.Reschedule(context.Background(), commands.RescheduleCommand{
			ReservationID: original.ID(),
			NewStart:      newStart,
			NewEnd:        newEnd,
		})
		assert.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, reservation.StatusPending, original.Status())
		assert.Empty(t, fx.tx.reservations.created)
	})
}
