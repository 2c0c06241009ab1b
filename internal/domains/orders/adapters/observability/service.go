package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/game-storefront/internal/domains/orders/domain"
	"github.com/Apurer/game-storefront/internal/domains/orders/ports"
	"github.com/Apurer/game-storefront/internal/platform/observability"
)

const tracerName = "github.com/Apurer/game-storefront/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core orders service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  observability.DiscardLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = observability.DiscardLogger()
	}
	return s
}

func (s *Service) Checkout(ctx context.Context, input ports.CheckoutInput) (*domain.Order, error) {
	lines := 0
	if input.Cart != nil {
		lines = len(input.Cart.Items())
	}
	ctx, span := s.tracer.Start(ctx, "OrdersService.Checkout",
		trace.WithAttributes(attribute.String("visitor.id", input.VisitorID), attribute.Int("cart.count", lines)))
	defer span.End()

	s.logInfo(ctx, "checking out", slog.String("visitor.id", input.VisitorID), slog.Int("cart.count", lines))
	order, err := s.inner.Checkout(ctx, input)
	if err != nil {
		s.metrics.recordCheckout(ctx, "failed")
		return nil, s.handleError(ctx, span, err, "checkout failed", slog.String("visitor.id", input.VisitorID))
	}
	s.metrics.recordCheckout(ctx, "placed")
	span.SetAttributes(attribute.String("order.id", order.ID))
	s.logInfo(ctx, "order placed",
		slog.String("order.id", order.ID),
		slog.Float64("order.total", order.Total),
		slog.String("order.payment_method", string(order.PaymentMethod)),
	)
	return order, nil
}

func (s *Service) MyOrders(ctx context.Context, token string) ([]domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.MyOrders")
	defer span.End()

	result, err := s.inner.MyOrders(ctx, token)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list own orders")
	}
	span.SetAttributes(attribute.Int("order.result.count", len(result)))
	return result, nil
}

func (s *Service) OrderByID(ctx context.Context, token, id string) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.OrderByID", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	result, err := s.inner.OrderByID(ctx, token, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id))
	}
	return result, nil
}

func (s *Service) AllOrders(ctx context.Context, token, search string) ([]domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.AllOrders")
	defer span.End()

	result, err := s.inner.AllOrders(ctx, token, search)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("order.result.count", len(result)))
	return result, nil
}

func (s *Service) UpdateStatus(ctx context.Context, token, id, status string) (domain.Status, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.UpdateStatus",
		trace.WithAttributes(attribute.String("order.id", id), attribute.String("order.status", status)))
	defer span.End()

	s.logInfo(ctx, "updating order status", slog.String("order.id", id), slog.String("order.status", status))
	result, err := s.inner.UpdateStatus(ctx, token, id, status)
	if err != nil {
		return "", s.handleError(ctx, span, err, "failed to update order status", slog.String("order.id", id))
	}
	s.metrics.recordStatusChange(ctx, result)
	return result, nil
}

func (s *Service) Dashboard(ctx context.Context, token string) (*domain.Dashboard, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.Dashboard")
	defer span.End()

	result, err := s.inner.Dashboard(ctx, token)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to build dashboard")
	}
	span.SetAttributes(attribute.Int("dashboard.orders", result.TotalOrders))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

type serviceMetrics struct {
	checkouts     metric.Int64Counter
	statusChanges metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	checkouts, _ := m.Int64Counter("orders.service.checkouts", metric.WithDescription("Number of checkout attempts by result"))
	statusChanges, _ := m.Int64Counter("orders.service.status_changes", metric.WithDescription("Number of order status updates"))
	return serviceMetrics{checkouts: checkouts, statusChanges: statusChanges}
}

func (m serviceMetrics) recordCheckout(ctx context.Context, result string) {
	if m.checkouts != nil {
		m.checkouts.Add(ctx, 1, metric.WithAttributes(attribute.String("checkout.result", result)))
	}
}

func (m serviceMetrics) recordStatusChange(ctx context.Context, status domain.Status) {
	if m.statusChanges != nil {
		m.statusChanges.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

var _ ports.Service = (*Service)(nil)
