//go:build wireinject
// +build wireinject

package di

import (
	"emotrack/internal"
	"emotrack/internal/controllers"
	"emotrack/internal/providers"
	"emotrack/internal/services"
	"emotrack/internal/storage"
	"emotrack/internal/structures"

	wire "github.com/google/wire"
)

var coreSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewMetricsProvider,
	providers.NewDirectoryProvider,

	storage.NewZstdCompressor,
	storage.NewFileManager,
	wire.Bind(new(services.PersisterInterface), new(*storage.FileManager)),
	storage.NewSeeder,
	services.NewEmotionService,
	services.NewDashboardService,
	storage.NewScheduler,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		coreSet,
		providers.NewInstrumentedCacheProvider,
		controllers.NewApiController,
		controllers.NewDashboardController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

func InitToolkit(cfg *structures.CliFlags) (*internal.Toolkit, error) {

	wire.Build(
		coreSet,
		internal.NewToolkit,
	)

	return nil, nil
}
