package components

import (
	"reservation-engine/internal/domain/reservation"
	"reservation-engine/internal/pkg/clock"
	"reservation-engine/internal/usecase/commands"
	"reservation-engine/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	reservation.NewNumberGenerator,
	fx.Annotate(
		reservation.NewUnitPriceCalculator,
		fx.As(new(reservation.PriceCalculator)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationCommands,
		commands.NewResourceCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewRecurrenceQueries,
		queries.NewReservationQueries,
		queries.NewResourceQueries,
	),
)
