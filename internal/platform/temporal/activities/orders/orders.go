package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/game-storefront/internal/clients/http/shop"
	"github.com/Apurer/game-storefront/internal/domains/orders/domain"
	"github.com/Apurer/game-storefront/internal/domains/orders/ports"
)

const (
	// SubmitOrderActivityName posts the order to the shop API.
	SubmitOrderActivityName = "orders.activities.SubmitOrder"
	// ShopAPIErrorType tags non-retryable shop API rejections; details carry the HTTP status.
	ShopAPIErrorType = "ShopAPIError"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	gateway ports.Gateway
}

func NewActivities(gateway ports.Gateway) *Activities {
	return &Activities{gateway: gateway}
}

// SubmitOrder creates the order, forwarding the idempotency key so a retried
// attempt does not place a second order.
func (a *Activities) SubmitOrder(ctx context.Context, cmd ports.CheckoutCommand) (*domain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.gateway == nil {
		logger.Error("submit order activity not initialized", "idempotencyKey", cmd.IdempotencyKey)
		return nil, errors.New("submit order activity not initialized")
	}
	logger.Info("SubmitOrder activity started", "idempotencyKey", cmd.IdempotencyKey, "lines", len(cmd.Request.Lines))
	order, err := a.gateway.Submit(ctx, cmd.Token, cmd.IdempotencyKey, cmd.Request)
	if err != nil {
		logger.Error("SubmitOrder activity failed", "idempotencyKey", cmd.IdempotencyKey, "error", err)
		return nil, classify(err)
	}
	logger.Info("SubmitOrder activity completed", "orderId", order.ID)
	return order, nil
}

// classify stops retries for client errors; 5xx and transport errors retry.
func classify(err error) error {
	var apiErr *shop.APIError
	if errors.As(err, &apiErr) && apiErr.Status < 500 {
		return temporal.NewNonRetryableApplicationError(apiErr.Message, ShopAPIErrorType, err, apiErr.Status)
	}
	return err
}

// RestoreAPIError turns a workflow failure carrying a classified shop API
// rejection back into a *shop.APIError.
func RestoreAPIError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) || appErr.Type() != ShopAPIErrorType {
		return err
	}
	var status int
	if detailErr := appErr.Details(&status); detailErr != nil || status == 0 {
		return err
	}
	return &shop.APIError{Status: status, Message: appErr.Message()}
}
