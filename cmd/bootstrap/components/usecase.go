package components

import (
	"slotbooker/internal/pkg/clock"
	"slotbooker/internal/usecase/commands"
	"slotbooker/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		fx.Annotate(
			commands.NewBookingCommands,
			fx.As(new(commands.BookingUseCase)),
		),
		fx.Annotate(
			commands.NewSlotCommands,
			fx.As(new(commands.SlotUseCase)),
		),
		fx.Annotate(
			commands.NewSweepCommands,
			fx.As(new(commands.SweepUseCase)),
		),
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		fx.Annotate(
			queries.NewExposureQueries,
			fx.As(new(queries.ExposureUseCase)),
		),
		fx.Annotate(
			queries.NewBookingQueries,
			fx.As(new(queries.BookingViewUseCase)),
		),
	),
)
