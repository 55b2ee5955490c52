//go:build wireinject
// +build wireinject

package main

import (
	"Tribune/config"
	"Tribune/dao"
	"Tribune/dao/cache"
	"Tribune/handler"
	"Tribune/pkg/client"
	"Tribune/pkg/database"
	"Tribune/pkg/seed"
	"Tribune/pkg/server"
	"Tribune/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(
		client.NewRedisClient,
		database.NewDB,
		server.NewGinEngine,

		cache.ProviderSet,
		dao.ProviderSet,
		service.ProviderSet,

		handler.NewMarkViewedLimiter,
		wire.Struct(new(handler.Feed), "*"),
		wire.Struct(new(handler.Video), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),
	)
	return nil
}

func InitSeeder(cfg *config.Config) *seed.Seeder {
	wire.Build(
		database.NewDB,
		dao.ProviderSet,
		wire.Struct(new(seed.Seeder), "*"),
	)
	return nil
}
