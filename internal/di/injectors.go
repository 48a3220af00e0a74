//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"rockbot/internal"
	"rockbot/internal/bot"
	"rockbot/internal/catalog"
	"rockbot/internal/controllers"
	"rockbot/internal/discord"
	"rockbot/internal/images"
	"rockbot/internal/providers"
	"rockbot/internal/services"
	"rockbot/internal/statistic"
	"rockbot/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		statistic.NewCompressor,
		statistic.NewStatsStore,
		catalog.NewHTTPFeed,
		catalog.NewCatalog,
		services.NewStatsService,
		services.NewRoundService,
		images.NewFetcher,
		bot.NewDispatcher,
		discord.NewAdapter,
		statistic.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
