//go:build wireinject
// +build wireinject

package di

import (
	"abconfig/internal"
	"abconfig/internal/configsync"
	"abconfig/internal/controllers"
	"abconfig/internal/providers"
	"abconfig/internal/services"
	"abconfig/internal/structures"

	wire "github.com/google/wire"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		configsync.NewZstdCompressor,
		configsync.NewPrefsStore,
		configsync.NewTransport,
		services.NewSyncService,
		wire.Bind(new(configsync.SyncTrigger), new(services.SyncServiceInterface)),
		configsync.NewScheduler,
		controllers.NewStatusController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

// InitSyncService builds the sync service without the HTTP listener,
// for one-shot CLI operations.
func InitSyncService(cfg *structures.CliFlags) (services.SyncServiceInterface, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		configsync.NewZstdCompressor,
		configsync.NewPrefsStore,
		configsync.NewTransport,
		services.NewSyncService,
	)

	return nil, nil
}
