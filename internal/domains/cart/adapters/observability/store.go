package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/game-storefront/internal/domains/cart/domain"
	"github.com/Apurer/game-storefront/internal/domains/cart/ports"
	"github.com/Apurer/game-storefront/internal/platform/observability"
)

const tracerName = "github.com/Apurer/game-storefront/internal/domains/cart/adapters/observability/store"

// Store decorates a cart store with tracing, logging, and metrics.
type Store struct {
	inner     ports.Store
	visitorID string
	tracer    trace.Tracer
	logger    *slog.Logger
	metrics   storeMetrics
	cancel    func()
}

type Option func(*Store)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Store) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create store instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Store) {
		s.metrics = newStoreMetrics(m)
	}
}

// WithVisitorID tags spans and logs with the owning visitor.
func WithVisitorID(id string) Option {
	return func(s *Store) {
		s.visitorID = id
	}
}

// New wires a decorator around inner. Storage failures reported by inner are
// counted here; inner logs them with the request context.
func New(inner ports.Store, opts ...Option) *Store {
	s := &Store{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  observability.DiscardLogger(),
		metrics: newStoreMetrics(nil),
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
	s.cancel = inner.Subscribe(s.observe)
	return s
}

// Close stops listening to the inner store.
func (s *Store) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Store) Initialize(ctx context.Context) {
	ctx, span := s.startSpan(ctx, "CartStore.Initialize")
	defer span.End()

	s.inner.Initialize(ctx)
	span.SetAttributes(attribute.Int("cart.count", s.inner.Count()))
}

func (s *Store) Add(ctx context.Context, item domain.CartItem) domain.Outcome {
	ctx, span := s.startSpan(ctx, "CartStore.Add", attribute.String("cart.item_id", item.ID))
	defer span.End()

	outcome := s.inner.Add(ctx, item)
	span.SetAttributes(attribute.String("cart.outcome", string(outcome)))
	switch outcome {
	case domain.OutcomeAdded:
		addCounter(ctx, s.metrics.itemsAdded, 1)
		s.logInfo(ctx, "cart item added", slog.String("cart.item_id", item.ID), slog.Int("cart.count", s.inner.Count()))
	case domain.OutcomeDuplicate:
		addCounter(ctx, s.metrics.duplicates, 1)
		s.logInfo(ctx, "cart item already present", slog.String("cart.item_id", item.ID))
	case domain.OutcomeInvalid:
		s.logInfo(ctx, "cart item rejected", slog.String("cart.item_id", item.ID))
	}
	return outcome
}

func (s *Store) Remove(ctx context.Context, itemID string) domain.Outcome {
	ctx, span := s.startSpan(ctx, "CartStore.Remove", attribute.String("cart.item_id", itemID))
	defer span.End()

	outcome := s.inner.Remove(ctx, itemID)
	span.SetAttributes(attribute.String("cart.outcome", string(outcome)))
	if outcome == domain.OutcomeRemoved {
		addCounter(ctx, s.metrics.itemsRemoved, 1)
	}
	s.logInfo(ctx, "cart remove", slog.String("cart.item_id", itemID), slog.String("cart.outcome", string(outcome)))
	return outcome
}

func (s *Store) RemoveAll(ctx context.Context, itemIDs []string) domain.Outcome {
	ctx, span := s.startSpan(ctx, "CartStore.RemoveAll", attribute.StringSlice("cart.item_ids", itemIDs))
	defer span.End()

	before := s.inner.Count()
	outcome := s.inner.RemoveAll(ctx, itemIDs)
	span.SetAttributes(attribute.String("cart.outcome", string(outcome)))
	if removed := before - s.inner.Count(); removed > 0 {
		addCounter(ctx, s.metrics.itemsRemoved, int64(removed))
	}
	s.logInfo(ctx, "cart lines removed", slog.Int("cart.requested", len(itemIDs)), slog.String("cart.outcome", string(outcome)))
	return outcome
}

func (s *Store) Clear(ctx context.Context) domain.Outcome {
	ctx, span := s.startSpan(ctx, "CartStore.Clear")
	defer span.End()

	outcome := s.inner.Clear(ctx)
	s.logInfo(ctx, "cart cleared")
	return outcome
}

func (s *Store) Total() float64 { return s.inner.Total() }

func (s *Store) Count() int { return s.inner.Count() }

func (s *Store) Items() []domain.CartItem { return s.inner.Items() }

func (s *Store) Subscribe(fn func(domain.Event)) func() { return s.inner.Subscribe(fn) }

func (s *Store) observe(event domain.Event) {
	ctx := context.Background()
	switch event.Kind {
	case domain.EventPersistFailed:
		addCounter(ctx, s.metrics.persistFailures, 1, attribute.String("cart.outcome", string(event.Outcome)))
	case domain.EventReadCorrupt:
		addCounter(ctx, s.metrics.readCorrupt, 1)
	case domain.EventReadFailed:
		addCounter(ctx, s.metrics.readFailures, 1)
	}
}

func (s *Store) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if s.visitorID != "" {
		attrs = append(attrs, attribute.String("visitor.id", s.visitorID))
	}
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Store) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.visitorID != "" {
		attrs = append(attrs, slog.String("visitor.id", s.visitorID))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

type storeMetrics struct {
	itemsAdded      metric.Int64Counter
	itemsRemoved    metric.Int64Counter
	duplicates      metric.Int64Counter
	persistFailures metric.Int64Counter
	readCorrupt     metric.Int64Counter
	readFailures    metric.Int64Counter
}

func newStoreMetrics(m metric.Meter) storeMetrics {
	if m == nil {
		return storeMetrics{}
	}
	itemsAdded, _ := m.Int64Counter("cart.store.items_added", metric.WithDescription("Number of items added to carts"))
	itemsRemoved, _ := m.Int64Counter("cart.store.items_removed", metric.WithDescription("Number of items removed from carts"))
	duplicates, _ := m.Int64Counter("cart.store.duplicates", metric.WithDescription("Number of adds rejected as duplicates"))
	persistFailures, _ := m.Int64Counter("cart.store.persist_failures", metric.WithDescription("Number of failed cart writes to durable storage"))
	readCorrupt, _ := m.Int64Counter("cart.store.read_corrupt", metric.WithDescription("Number of unreadable persisted carts"))
	readFailures, _ := m.Int64Counter("cart.store.read_failures", metric.WithDescription("Number of failed reads of persisted carts"))
	return storeMetrics{
		itemsAdded:      itemsAdded,
		itemsRemoved:    itemsRemoved,
		duplicates:      duplicates,
		persistFailures: persistFailures,
		readCorrupt:     readCorrupt,
		readFailures:    readFailures,
	}
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Store = (*Store)(nil)
