package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/game-storefront/internal/domains/orders/domain"
	"github.com/Apurer/game-storefront/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/game-storefront/internal/platform/temporal/activities/orders"
)

// RunCheckoutSequence executes the activities that place one order.
func RunCheckoutSequence(ctx workflow.Context, cmd ports.CheckoutCommand) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("checkout sequence started", "idempotencyKey", cmd.IdempotencyKey)
	submitOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        10 * time.Second,
			MaximumAttempts:        5,
			NonRetryableErrorTypes: []string{orderactivities.ShopAPIErrorType},
		},
	}

	var order domain.Order
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, submitOptions), orderactivities.SubmitOrderActivityName, cmd).Get(ctx, &order)
	if err != nil {
		logger.Error("checkout sequence failed", "idempotencyKey", cmd.IdempotencyKey, "error", err)
		return nil, err
	}
	logger.Info("checkout sequence completed", "orderId", order.ID)
	return &order, nil
}
