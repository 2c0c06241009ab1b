package storefront

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	storefrontserver "github.com/Apurer/game-storefront/go"
	"github.com/Apurer/game-storefront/internal/clients/http/shop"
	catalogremote "github.com/Apurer/game-storefront/internal/domains/catalog/adapters/remote"
	catalogapp "github.com/Apurer/game-storefront/internal/domains/catalog/application"
	ordersobs "github.com/Apurer/game-storefront/internal/domains/orders/adapters/observability"
	ordersremote "github.com/Apurer/game-storefront/internal/domains/orders/adapters/remote"
	ordersworkflows "github.com/Apurer/game-storefront/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/game-storefront/internal/domains/orders/application"
	ordersports "github.com/Apurer/game-storefront/internal/domains/orders/ports"
	sessionremote "github.com/Apurer/game-storefront/internal/domains/session/adapters/remote"
	usersremote "github.com/Apurer/game-storefront/internal/domains/users/adapters/remote"
	userapp "github.com/Apurer/game-storefront/internal/domains/users/application"
	"github.com/Apurer/game-storefront/internal/platform/localstorage"
	storagememory "github.com/Apurer/game-storefront/internal/platform/localstorage/memory"
	storagepostgres "github.com/Apurer/game-storefront/internal/platform/localstorage/postgres"
	storageredis "github.com/Apurer/game-storefront/internal/platform/localstorage/redis"
	"github.com/Apurer/game-storefront/internal/platform/migrations"
	"github.com/Apurer/game-storefront/internal/platform/monitoring"
	platformobservability "github.com/Apurer/game-storefront/internal/platform/observability"
	platformpostgres "github.com/Apurer/game-storefront/internal/platform/postgres"
	platformredis "github.com/Apurer/game-storefront/internal/platform/redis"
	"github.com/Apurer/game-storefront/internal/visitors"
)

const serviceName = "game-storefront"

// Run boots the storefront HTTP server and blocks until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.Observability.ForService(serviceName))
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
	metrics := monitoring.NewMetrics()

	shopClient, err := shop.NewClient(cfg.ShopAPIURL, &http.Client{Timeout: cfg.ShopAPITimeout})
	if err != nil {
		return err
	}

	backend, cleanupStorage := buildStorageBackend(ctx, cfg, logger)
	defer cleanupStorage()

	registry := visitors.NewRegistry(
		backend,
		sessionremote.NewAuthenticator(shopClient),
		visitors.WithLogger(logger),
		visitors.WithTracer(instruments.Tracer("internal.domains.cart")),
		visitors.WithMeter(instruments.Meter("internal.domains.cart")),
		visitors.WithCountObserver(func(n int) { metrics.ActiveVisitors.Set(float64(n)) }),
	)
	go registry.RunSweeper(ctx, cfg.VisitorIdle/2, cfg.VisitorIdle)

	catalog := catalogapp.NewService(catalogremote.NewCatalog(shopClient))
	users := userapp.NewService(usersremote.NewDirectory(shopClient))
	gateway := ordersremote.NewGateway(shopClient)

	var orchestrator ordersports.CheckoutOrchestrator = ordersworkflows.NewInlineCheckout(gateway)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, submitting checkouts inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orchestrator = ordersworkflows.NewTemporalCheckout(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}
	orders := ordersobs.New(
		ordersapp.NewService(gateway, ordersapp.WithOrchestrator(orchestrator), ordersapp.WithCounters(catalog, users)),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.domains.orders")),
		ordersobs.WithMeter(instruments.Meter("internal.domains.orders")),
	)

	handlers := storefrontserver.ApiHandleFunctions{
		Visitors:   registry,
		CatalogAPI: storefrontserver.NewCatalogAPI(catalog),
		CartAPI:    storefrontserver.NewCartAPI(catalog),
		SessionAPI: storefrontserver.NewSessionAPI(),
		OrdersAPI: storefrontserver.NewOrdersAPI(orders, storefrontserver.WithCheckoutCounters(
			metrics.CheckoutAttempts, metrics.CheckoutSuccess, metrics.CheckoutFailures)),
		AdminAPI: storefrontserver.NewAdminAPI(catalog, orders, users),
		Metrics:  metrics.Handler(),
	}

	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(serviceName), metrics.Middleware())
	router = storefrontserver.NewRouterWithGinEngine(router, handlers,
		storefrontserver.WithVisitorCookie(cfg.VisitorCookie),
		storefrontserver.WithRestoreWait(cfg.SessionRestoreWait),
		storefrontserver.WithLogger(logger),
	)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("storefront listening", slog.String("addr", server.Addr), slog.String("shop.api", cfg.ShopAPIURL))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("storefront server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("storefront shutting down")
	return server.Shutdown(shutdownCtx)
}

// buildStorageBackend prefers postgres, then redis, then process memory.
func buildStorageBackend(ctx context.Context, cfg Config, logger *slog.Logger) (localstorage.Backend, func()) {
	if db, cleanup := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger); db != nil {
		if err := migrations.Run(db); err != nil {
			logger.Warn("failed to migrate visitor storage, trying next backend", slog.String("error", err.Error()))
			cleanup()
		} else {
			logger.Info("visitor storage configured with postgres")
			return storagepostgres.NewBackend(db), cleanup
		}
	}
	if rdb, cleanup := platformredis.ConnectOptional(ctx, cfg.Redis, logger); rdb != nil {
		logger.Info("visitor storage configured with redis", slog.Duration("ttl", cfg.StorageTTL))
		return storageredis.NewBackend(rdb, cfg.StorageTTL), cleanup
	}
	logger.Warn("no durable storage configured, visitor storage is held in memory")
	return storagememory.NewBackend(), func() {}
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return platformobservability.DiscardLogger()
}
