package main

import (
	"Tribune/config"
	"Tribune/pkg/database"
	"Tribune/pkg/log"
	"Tribune/pkg/seed"
	"Tribune/pkg/server"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	path := fmt.Sprintf("configs/config.%s.yaml", env)
	cfg := config.New(path)
	log.Setup(cfg.App.LogLevel, cfg.App.LogFile)

	cliApp := &cli.App{
		Name:  "api-server",
		Usage: "tribune video feed api",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start http server",
				Action: func(ctx *cli.Context) error {
					return server.Run(ctx, InitServer(cfg))
				},
			},
			{
				Name:  "migrate",
				Usage: "create or update tables",
				Action: func(ctx *cli.Context) error {
					if err := database.Migrate(database.NewDB(cfg)); err != nil {
						return fmt.Errorf("migrate: %w", err)
					}
					log.L.Info("migrate finished", zap.String("driver", cfg.Database.Driver))
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "insert demo videos, votes and comments",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "users", Value: 50, Usage: "number of demo users"},
					&cli.IntFlag{Name: "videos", Value: 200, Usage: "number of demo videos"},
					&cli.Int64Flag{Name: "seed", Usage: "random seed, 0 means current time"},
				},
				Action: func(ctx *cli.Context) error {
					_, err := InitSeeder(cfg).Run(ctx.Context, seed.Options{
						Users:  ctx.Int("users"),
						Videos: ctx.Int("videos"),
						Seed:   ctx.Int64("seed"),
					})
					return err
				},
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("api-server exited", zap.Error(err))
	}
}
