package main

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Hossain-Md-Shahriar/volunteer-management-server/configs"
	"github.com/Hossain-Md-Shahriar/volunteer-management-server/internal/repository"
	"github.com/Hossain-Md-Shahriar/volunteer-management-server/internal/routes"
	"github.com/Hossain-Md-Shahriar/volunteer-management-server/internal/services"
)

func main() {
	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", "volunteer-management-server").
		Logger()

	cfg, err := configs.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	client, err := configs.ConnectMongo(cfg.MongoURI)
	if err != nil {
		logger.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer configs.DisconnectMongo(client)
	logger.Info().Msg("connected to MongoDB")

	db := client.Database(cfg.DBName)
	postRepo := repository.NewMongoPostRepo(db)
	requestRepo := repository.NewMongoRequestRepo(db)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := requestRepo.EnsureIndexes(ctx); err != nil {
		cancel()
		logger.Fatal().Err(err).Msg("index creation failed")
	}
	cancel()

	app := fiber.New(fiber.Config{ErrorHandler: routes.ErrorHandler})
	routes.Register(app, routes.Deps{
		Cfg:      cfg,
		Log:      logger,
		Posts:    services.NewPostService(postRepo, logger),
		Requests: services.NewRequestService(postRepo, requestRepo, logger),
	})

	logger.Info().Str("port", cfg.Port).Msg("server listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
