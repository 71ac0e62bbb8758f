package components

import (
	"reservation-engine/internal/domain/reservation"
	"reservation-engine/internal/infra/readstore"
	"reservation-engine/internal/infra/sequence"
	"reservation-engine/internal/infra/uow"
	"reservation-engine/internal/usecase/queries"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		// UnitOfWork
		uow.NewPostgresUoW,
		// Read stores
		fx.Annotate(
			readstore.NewResourceReadStore,
			fx.As(new(queries.ResourceReadStore)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		// Reservation numbering
		fx.Annotate(
			sequence.NewRedisSequencer,
			fx.As(new(reservation.Sequencer)),
		),
	),
)
