package components

import (
	"serial-inventory/internal/pkg/clock"
	"serial-inventory/internal/usecase/commands"
	"serial-inventory/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	commands.NewOptions,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewSerialUseCase,
		commands.NewCheckoutUseCase,
		commands.NewCatalogUseCase,
		commands.NewReconciler,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewSerialQueries,
	),
)
