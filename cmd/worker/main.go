package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/game-storefront/internal/app/storefront"
	"github.com/Apurer/game-storefront/internal/clients/http/shop"
	ordersremote "github.com/Apurer/game-storefront/internal/domains/orders/adapters/remote"
	platformobservability "github.com/Apurer/game-storefront/internal/platform/observability"
	orderactivities "github.com/Apurer/game-storefront/internal/platform/temporal/activities/orders"
	checkoutworkflow "github.com/Apurer/game-storefront/internal/platform/temporal/workflows/checkout"
)

func main() {
	ctx := context.Background()
	const serviceName = "game-storefront-worker"
	cfg, err := storefront.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.Observability.ForService(serviceName))
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	shopClient, err := shop.NewClient(cfg.ShopAPIURL, &http.Client{Timeout: cfg.ShopAPITimeout})
	if err != nil {
		logger.Error("failed to configure shop API client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	orderActivities := orderactivities.NewActivities(ordersremote.NewGateway(shopClient))

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, checkoutworkflow.CheckoutTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(checkoutworkflow.CheckoutWorkflow, workflow.RegisterOptions{Name: checkoutworkflow.CheckoutWorkflowName})
	w.RegisterActivityWithOptions(orderActivities.SubmitOrder, activity.RegisterOptions{Name: orderactivities.SubmitOrderActivityName})

	logger.Info("worker listening",
		slog.String("taskQueue", checkoutworkflow.CheckoutTaskQueue),
		slog.String("namespace", clientOptions.Namespace),
		slog.String("shop.api", cfg.ShopAPIURL),
	)
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
