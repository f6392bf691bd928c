package components

import (
	"slotbooker/internal/infra/cache"
	"slotbooker/internal/infra/notify"
	"slotbooker/internal/infra/readstore"
	repo_impl "slotbooker/internal/infra/repository"
	"slotbooker/internal/infra/tx"
	"slotbooker/internal/usecase/commands"
	"slotbooker/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			tx.NewRunner,
			fx.As(new(commands.TxRunner)),
		),
		fx.Annotate(
			repo_impl.NewSlotRepository,
			fx.As(new(commands.SlotRepository)),
		),
		fx.Annotate(
			repo_impl.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
		),
		fx.Annotate(
			repo_impl.NewIdempotencyRepository,
			fx.As(new(commands.IdempotencyRepository)),
		),
		fx.Annotate(
			notify.NewJobWriter,
			fx.As(new(commands.Notifier)),
		),
		fx.Annotate(
			cache.NewInvalidator,
			fx.As(new(commands.ExposureCacheInvalidator)),
		),
		// Read-side stores for queries
		fx.Annotate(
			readstore.NewSlotReadStore,
			fx.As(new(queries.SlotReadStore)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewLocationReadStore,
			fx.As(new(queries.LocationReadStore)),
		),
	),
)
