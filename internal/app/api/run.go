package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	ordershttp "github.com/Apurer/go-orders-api/internal/domains/orders/adapters/httpapi"
	ordersmemory "github.com/Apurer/go-orders-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-orders-api/internal/domains/orders/adapters/observability"
	ordersrelational "github.com/Apurer/go-orders-api/internal/domains/orders/adapters/persistence/relational"
	ordersapp "github.com/Apurer/go-orders-api/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-orders-api/internal/domains/orders/ports"
	"github.com/Apurer/go-orders-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-orders-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-orders-api/internal/platform/postgres"
	platformsqlite "github.com/Apurer/go-orders-api/internal/platform/sqlite"
)

const serviceName = "orders-api"

// Run boots the orders HTTP API with observability and a repository wired
// once for the process lifetime.
func Run(ctx context.Context) error {
	cfg := LoadConfig()

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName, cfg.Environment)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	repo, cleanupRepo := buildOrderRepository(ctx, cfg, logger)
	defer cleanupRepo()

	service := ordersobs.New(
		ordersapp.NewService(repo),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	router := NewRouter(service)
	logger.Info("orders API listening", slog.String("addr", cfg.Addr()))
	if err := router.Run(cfg.Addr()); err != nil {
		logger.Error("orders API server exited", slog.String("addr", cfg.Addr()), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// NewRouter assembles the gin engine with tracing middleware and the order
// routes mounted.
func NewRouter(service ordersports.Service) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	ordershttp.NewOrderAPI(service).RegisterRoutes(router)
	return router
}

// buildOrderRepository selects the storage backend once at startup:
// PostgreSQL when a DSN is configured, SQLite when a path is configured,
// otherwise the volatile in-memory store.
func buildOrderRepository(ctx context.Context, cfg Config, logger *slog.Logger) (ordersports.Repository, func()) {
	if cfg.PostgresDSN != "" {
		db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
		if err == nil {
			if repo, cleanup, ok := durableRepository(db, logger, "postgres"); ok {
				return repo, cleanup
			}
		} else {
			logger.Warn("failed to connect to postgres, falling back", slog.String("error", err.Error()))
		}
	}
	if cfg.SQLitePath != "" {
		db, err := platformsqlite.Open(cfg.SQLitePath)
		if err == nil {
			if repo, cleanup, ok := durableRepository(db, logger, "sqlite"); ok {
				return repo, cleanup
			}
		} else {
			logger.Warn("failed to open sqlite database, falling back", slog.String("error", err.Error()))
		}
	}
	logger.Warn("no durable storage configured, using in-memory order repository")
	return ordersmemory.NewRepository(), func() {}
}

func durableRepository(db *gorm.DB, logger *slog.Logger, backend string) (ordersports.Repository, func(), bool) {
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to migrate orders schema", slog.String("backend", backend), slog.String("error", err.Error()))
		return nil, nil, false
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap database connection", slog.String("backend", backend), slog.String("error", err.Error()))
		return nil, nil, false
	}
	logger.Info("order repository configured", slog.String("backend", backend))
	return ordersrelational.NewRepository(db), func() { _ = sqlDB.Close() }, true
}
