package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"workhub/internal/config"
	"workhub/internal/database"
	dbpostgres "workhub/internal/database/postgres"
	"workhub/internal/delivery/http/handler"
	"workhub/internal/delivery/http/middleware"
	"workhub/internal/delivery/http/routes"
	v1 "workhub/internal/delivery/http/routes/v1"
	"workhub/internal/geocode"
	"workhub/internal/infrastructure/cache"
	"workhub/internal/pkg/jwt"
	"workhub/internal/repository"
	"workhub/internal/storage"
	"workhub/internal/usecase"
	"workhub/internal/ws"
)

// Container owns every long-lived dependency and the wiring between them.
type Container struct {
	Config   config.Config
	Logger   *log.Logger
	DB       database.DB
	Cache    *cache.Redis
	Hub      *ws.Hub
	Registry *routes.Registry
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := database.Bootstrap(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)

	nominatim := geocode.NewNominatimClient(cfg.Geocoder, logger)
	geocoder := geocode.NewCachingGeocoder(nominatim, redisCache, cfg.Redis.TTL, logger)

	jwtSvc := jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn)

	jobRepo := repository.NewPostgresJobRepository(db)
	appRepo := repository.NewPostgresApplicationRepository(db)
	ratingRepo := repository.NewPostgresRatingRepository(db)
	userDir := repository.NewPostgresUserDirectory(db)

	hub := ws.NewHub(logger)
	notifier := ws.NewNotifier(hub)

	uploads := storage.NewLocalStore(cfg.Uploads.Dir)

	jobUC := usecase.NewJobUsecase(jobRepo, appRepo, geocoder, uploads, usecase.JobConfig{
		DefaultImageURL: cfg.Jobs.DefaultImageURL,
		StrictGeocoding: cfg.Geocoder.Strict,
	}, logger)
	discoveryUC := usecase.NewJobDiscoveryUsecase(jobRepo, userDir, appRepo, usecase.DiscoveryConfig{
		DefaultPageSize: cfg.Jobs.DefaultPageSize,
		MaxPageSize:     cfg.Jobs.MaxPageSize,
	}, logger)
	applicationUC := usecase.NewApplicationUsecase(appRepo, jobRepo, notifier, logger)
	ratingUC := usecase.NewRatingUsecase(ratingRepo, userDir)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	registry := routes.NewRegistry(
		handler.NewHealthHandler(db),
		ws.NewHandler(hub, jwtSvc, logger),
		v1.Deps{
			Jobs:         handler.NewJobsHandler(jobUC, discoveryUC),
			Applications: handler.NewApplicationsHandler(applicationUC, uploads),
			Ratings:      handler.NewRatingsHandler(ratingUC),
			Auth:         authMw,
		},
	)

	return &Container{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Cache:    redisCache,
		Hub:      hub,
		Registry: registry,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil && c.Logger != nil {
			c.Logger.Printf("[App] redis close error: %v", err)
		}
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
