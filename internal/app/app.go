package app

import (
	"context"
	"database/sql"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"ditelemetry/internal/config"
	"ditelemetry/internal/db"
	httpserver "ditelemetry/internal/http"
	"ditelemetry/internal/http/handlers"
	"ditelemetry/internal/http/middleware"
	redisstore "ditelemetry/internal/redis"
	"ditelemetry/internal/repository"
	"ditelemetry/internal/service"
	"ditelemetry/internal/ws"
)

// App wires telemetry API dependencies.
type App struct {
	server *httpserver.Server
	feed   *ws.Feed
	db     *sql.DB
	redis  *redis.Client
	logger *zap.Logger
}

// New constructs application components.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	var (
		redisClient *redis.Client
		cache       service.LatestCache
	)
	if cfg.Redis.Addr != "" {
		redisClient, err = redisstore.NewClient(cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		cache = redisstore.NewLatestSnapshotStore(redisClient, cfg.RedisTTL())
	}

	feed := ws.NewFeed(logger)

	store := repository.NewStore(sqlDB)
	past, future := cfg.Freshness()
	window := service.FreshnessWindow{MaxPast: past, MaxFuture: future}

	telemetryService := service.NewTelemetryService(store, cache, feed, window, logger)
	vehicleService := service.NewVehicleService(store.Vehicles())

	telemetryHandler := handlers.NewTelemetryHandler(telemetryService, logger)
	vehiclesHandler := handlers.NewVehiclesHandler(vehicleService, logger)

	routes := httpserver.Routes{
		TelemetryIngest: telemetryHandler.Ingest,
		TelemetryFeed:   feed.HandleWS,

		VehicleList:    vehiclesHandler.List,
		VehicleCreate:  vehiclesHandler.Create,
		VehicleGet:     vehiclesHandler.Get,
		VehicleUpdate:  vehiclesHandler.Update,
		VehicleDelete:  vehiclesHandler.Delete,
		VehicleLatest:  telemetryHandler.Latest,
		VehicleDrives:  telemetryHandler.Drives,
		VehicleCharges: telemetryHandler.ChargingSessions,

		Health: handlers.NewHealthHandler(),
	}

	var auth httpserver.Middleware
	if cfg.Auth.JWTSecret != "" {
		auth = middleware.AuthMiddleware(cfg.Auth.JWTSecret)
	}

	router := httpserver.NewRouter(routes, auth)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server: server,
		feed:   feed,
		db:     sqlDB,
		redis:  redisClient,
		logger: logger,
	}, nil
}

// Run starts serving HTTP requests and the websocket keepalive loop.
func (a *App) Run(ctx context.Context) error {
	go a.feed.Run(ctx)
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
}
