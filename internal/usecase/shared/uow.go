package shared

import (
	"context"

	"reservation-engine/internal/domain/availability"
	"reservation-engine/internal/domain/reservation"
	"reservation-engine/internal/domain/resource"
	"reservation-engine/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures. Check-then-insert sequences run here so that
	// availability is re-validated under the resource lock.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
}

type Tx interface {
	Resources() ResourceRepository
	Reservations() ReservationRepository
	Notifications() NotificationRepository
	DB() db.DBTX
}

type ResourceRepository interface {
	Create(ctx context.Context, res *resource.Resource) error
	Update(ctx context.Context, res *resource.Resource) error
	// LockByID takes a row lock on the resource, serializing concurrent
	// check-then-insert sequences per resource.
	LockByID(ctx context.Context, id uuid.UUID) (*ResourceSnapshot, error)
	// DeleteCascade removes the resource together with its reservations and
	// their notification jobs. Explicit and transactional, not a storage
	// lifecycle hook.
	DeleteCascade(ctx context.Context, id uuid.UUID) (deletedReservations int64, err error)
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) error
	// Update persists mutable lifecycle fields (status, payment, deposit,
	// cancellation reason, total price).
	Update(ctx context.Context, res *reservation.Reservation) error
	GetForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// OverlappingClaims returns the intervals of capacity-claiming
	// reservations intersecting the window, optionally excluding one
	// reservation (an in-place edit).
	OverlappingClaims(ctx context.Context, resourceID uuid.UUID, window reservation.Window, exclude *uuid.UUID) ([]availability.Busy, error)
}

type NotificationJob struct {
	ReservationID uuid.UUID
	Type          reservation.NotificationType
	Recipient     string
	Template      string
	Payload       []byte
}

type NotificationRepository interface {
	Enqueue(ctx context.Context, job NotificationJob) error
}
