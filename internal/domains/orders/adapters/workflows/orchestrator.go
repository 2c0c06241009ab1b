package workflows

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/game-storefront/internal/domains/orders/domain"
	"github.com/Apurer/game-storefront/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/game-storefront/internal/platform/temporal/activities/orders"
	checkoutworkflow "github.com/Apurer/game-storefront/internal/platform/temporal/workflows/checkout"
)

var (
	_ ports.CheckoutOrchestrator = (*TemporalCheckout)(nil)
	_ ports.CheckoutOrchestrator = (*InlineCheckout)(nil)
)

// TemporalCheckout runs each checkout as a Temporal workflow keyed by its
// idempotency key, so a double submit attaches to the run already in flight.
type TemporalCheckout struct {
	client    client.Client
	taskQueue string
}

func NewTemporalCheckout(c client.Client) *TemporalCheckout {
	return &TemporalCheckout{client: c, taskQueue: checkoutworkflow.CheckoutTaskQueue}
}

func (o *TemporalCheckout) Submit(ctx context.Context, cmd ports.CheckoutCommand) (*domain.Order, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal checkout not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildCheckoutWorkflowID(cmd, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		checkoutworkflow.CheckoutWorkflow,
		checkoutworkflow.CheckoutWorkflowInput{Command: cmd, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && strings.TrimSpace(cmd.IdempotencyKey) != "" {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var order domain.Order
			if err := existingRun.Get(ctx, &order); err != nil {
				return nil, orderactivities.RestoreAPIError(err)
			}
			return &order, nil
		}
		return nil, err
	}
	var order domain.Order
	if err := run.Get(ctx, &order); err != nil {
		return nil, orderactivities.RestoreAPIError(err)
	}
	return &order, nil
}

// InlineCheckout submits directly through the gateway, for tests and when
// Temporal is unavailable.
type InlineCheckout struct {
	gateway ports.Gateway
}

func NewInlineCheckout(gateway ports.Gateway) *InlineCheckout {
	return &InlineCheckout{gateway: gateway}
}

func (o *InlineCheckout) Submit(ctx context.Context, cmd ports.CheckoutCommand) (*domain.Order, error) {
	if o == nil || o.gateway == nil {
		return nil, errors.New("inline checkout not configured")
	}
	return o.gateway.Submit(ctx, cmd.Token, cmd.IdempotencyKey, cmd.Request)
}

func buildCheckoutWorkflowID(cmd ports.CheckoutCommand, traceComponent string) string {
	if key := strings.TrimSpace(cmd.IdempotencyKey); key != "" {
		return fmt.Sprintf("order-checkout-%s", key)
	}
	return fmt.Sprintf("order-checkout-%s-%s", cmd.VisitorID, traceComponent)
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
