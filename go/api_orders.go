package storefrontserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	orderhttpmapper "github.com/Apurer/game-storefront/internal/domains/orders/adapters/http/mapper"
	ordersports "github.com/Apurer/game-storefront/internal/domains/orders/ports"
)

// IdempotencyKeyHeader lets a client pin the checkout it is retrying.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrdersAPI places and lists the visitor's orders.
type OrdersAPI struct {
	orders   ordersports.Service
	attempts prometheus.Counter
	success  prometheus.Counter
	failures prometheus.Counter
}

// OrdersOption configures OrdersAPI.
type OrdersOption func(*OrdersAPI)

// WithCheckoutCounters records checkout attempts and their results.
func WithCheckoutCounters(attempts, success, failures prometheus.Counter) OrdersOption {
	return func(api *OrdersAPI) {
		api.attempts = attempts
		api.success = success
		api.failures = failures
	}
}

// NewOrdersAPI wires dependencies.
func NewOrdersAPI(orders ordersports.Service, opts ...OrdersOption) OrdersAPI {
	api := OrdersAPI{orders: orders}
	for _, opt := range opts {
		if opt != nil {
			opt(&api)
		}
	}
	return api
}

// Post /cart/checkout
// Place an order for everything in the cart
func (api *OrdersAPI) Checkout(c *gin.Context) {
	v, ok := mustVisitor(c)
	if !ok {
		return
	}
	var payload orderhttpmapper.Checkout
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
	}
	inc(api.attempts)
	order, err := api.orders.Checkout(c.Request.Context(), ordersports.CheckoutInput{
		VisitorID:      v.ID,
		Token:          sessionToken(v),
		PaymentMethod:  payload.PaymentMethod,
		IdempotencyKey: strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader)),
		Cart:           v.Cart,
	})
	if err != nil {
		inc(api.failures)
		respondServiceError(c, err)
		return
	}
	inc(api.success)
	c.JSON(http.StatusCreated, orderhttpmapper.FromOrder(order))
}

// Get /my-orders
// Orders placed by the signed-in visitor
func (api *OrdersAPI) MyOrders(c *gin.Context) {
	v, ok := mustVisitor(c)
	if !ok {
		return
	}
	orders, err := api.orders.MyOrders(c.Request.Context(), sessionToken(v))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromOrders(orders))
}

// Get /order/:id
// Find purchase order by ID
func (api *OrdersAPI) OrderByID(c *gin.Context) {
	v, ok := mustVisitor(c)
	if !ok {
		return
	}
	order, err := api.orders.OrderByID(c.Request.Context(), sessionToken(v), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromOrder(order))
}

func inc(counter prometheus.Counter) {
	if counter != nil {
		counter.Inc()
	}
}
