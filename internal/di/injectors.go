//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"sdd/internal"
	"sdd/internal/controllers"
	"sdd/internal/diary"
	"sdd/internal/providers"
	"sdd/internal/services"
	"sdd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		diary.NewZstdCompressor,
		diary.NewStore,
		diary.NewBackupManager,
		diary.NewScheduler,
		services.NewAnalysisClient,
		services.NewDiaryService,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
