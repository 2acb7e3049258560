package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/Charlie119256/kramzfitnesshub-sub001/config"
	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/adapters/memberapi"
	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/adapters/memstore"
	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/adapters/pgstore"
	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/adapters/redisstore"
	httpx "github.com/Charlie119256/kramzfitnesshub-sub001/internal/http"
	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/migrate"
	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/observability/metrics"
	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/ports"
	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/service"
)

// Infra holds the shared infrastructure connections behind the chosen
// store backend. Either field may be nil depending on the backend.
type Infra struct {
	DB    *sql.DB
	Redis redis.UniversalClient
}

// ConnectInfra connects whatever infrastructure the configured store
// backend needs and runs migrations when Postgres is in play.
func ConnectInfra(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*Infra, error) {
	infra := &Infra{}

	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		db, err := ConnectDB(cfg.Postgres, logger)
		if err != nil {
			return nil, fmt.Errorf("connect db: %w", err)
		}
		infra.DB = db
		if cfg.Postgres.RunMigrationsOnStart {
			if err := migrate.Run(ctx, db); err != nil {
				return nil, fmt.Errorf("run migrations: %w", err)
			}
		} else {
			logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
		}

	case config.StoreBackendRedis:
		client, err := ConnectRedis(cfg.Redis, logger)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		infra.Redis = client

	case config.StoreBackendMemory:
		logger.InfoContext(ctx, "using in-memory credential store", "warning", "bundles do not survive restarts")
	}

	return infra, nil
}

// Close releases the infrastructure connections.
func (i *Infra) Close(logger *slog.Logger) {
	if i.DB != nil {
		if err := i.DB.Close(); err != nil && logger != nil {
			logger.Error("close database failed", "error", err)
		}
	}
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil && logger != nil {
			logger.Error("close redis failed", "error", err)
		}
	}
}

// BuildStore selects the credential store implementation for the
// configured backend.
//
//nolint:ireturn // the port interface is the point of this constructor.
func BuildStore(cfg *config.AppConfig, infra *Infra) (ports.CredentialStore, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendRedis:
		return redisstore.NewCredentialStore(infra.Redis, cfg.Store.TTL), nil
	case config.StoreBackendPostgres:
		return pgstore.NewCredentialStore(infra.DB), nil
	case config.StoreBackendMemory:
		return memstore.New(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// ServiceContainer groups the wired application services.
type ServiceContainer struct {
	Store   ports.CredentialStore
	API     ports.MemberAPI
	Guard   *service.GuardService
	Metrics *metrics.GuardMetrics
	Mux     http.Handler
}

// NewServices wires adapters and services for the gateway.
func NewServices(cfg *config.AppConfig, infra *Infra, logger *slog.Logger) (*ServiceContainer, error) {
	store, err := BuildStore(cfg, infra)
	if err != nil {
		return nil, err
	}

	api, err := memberapi.NewClient(memberapi.Config{
		BaseURL:    cfg.API.BaseURL,
		Timeout:    cfg.API.Timeout,
		MemberPath: cfg.API.MemberPath,
		ClerkPath:  cfg.API.ClerkPath,
		AdminPath:  cfg.API.AdminPath,
		LoginPath:  cfg.API.LoginPath,
	})
	if err != nil {
		return nil, fmt.Errorf("build membership API client: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	guardMetrics := metrics.NewGuardMetrics(registry)

	guard := service.NewGuardService(service.GuardServiceOptions{
		Store: store,
		API:   api,
		Observe: service.GuardObservability{
			Logger:  logger,
			Metrics: guardMetrics,
		},
	})

	handler := httpx.NewRouter(httpx.RouterServices{
		Guard:          guard,
		Store:          store,
		API:            api,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		GuardMetrics:   guardMetrics,
		CookieDomain:   cfg.HTTP.CookieDomain,
		CookieSecure:   cfg.HTTP.CookieSecure,
		LoginLimiter:   httpx.NewLoginLimiter(cfg.HTTP.LoginRatePerMinute, cfg.HTTP.LoginBurst),
		Logger:         logger,
	})

	return &ServiceContainer{
		Store:   store,
		API:     api,
		Guard:   guard,
		Metrics: guardMetrics,
		Mux:     handler,
	}, nil
}
