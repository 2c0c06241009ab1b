// Package visitors holds the per-browser application context: each visitor
// owns its cart store, session provider and recent searches, all bound to
// the visitor's namespace in durable storage.
package visitors

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	cartobservability "github.com/Apurer/game-storefront/internal/domains/cart/adapters/observability"
	cartapp "github.com/Apurer/game-storefront/internal/domains/cart/application"
	cartports "github.com/Apurer/game-storefront/internal/domains/cart/ports"
	catalogapp "github.com/Apurer/game-storefront/internal/domains/catalog/application"
	sessionapp "github.com/Apurer/game-storefront/internal/domains/session/application"
	sessionports "github.com/Apurer/game-storefront/internal/domains/session/ports"
	"github.com/Apurer/game-storefront/internal/platform/localstorage"
	"github.com/Apurer/game-storefront/internal/platform/observability"
)

// Visitor is one browser's explicit application context.
type Visitor struct {
	ID      string
	Cart    cartports.Store
	Session *sessionapp.Provider
	Recent  *catalogapp.RecentSearches

	mu       sync.Mutex
	lastSeen time.Time
	closers  []func()
}

func (v *Visitor) touch(now time.Time) {
	v.mu.Lock()
	v.lastSeen = now
	v.mu.Unlock()
}

func (v *Visitor) idleSince() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSeen
}

func (v *Visitor) close() {
	for _, fn := range v.closers {
		fn()
	}
}

// Registry creates and caches visitor contexts.
type Registry struct {
	backend localstorage.Backend
	auth    sessionports.Authenticator
	logger  *slog.Logger
	tracer  trace.Tracer
	meter   metric.Meter
	now     func() time.Time
	onCount func(int)

	mu       sync.Mutex
	visitors map[string]*Visitor
}

type Option func(*Registry)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(r *Registry) {
		r.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(r *Registry) {
		r.meter = m
	}
}

// WithCountObserver is called with the number of live visitors after every change.
func WithCountObserver(fn func(int)) Option {
	return func(r *Registry) {
		r.onCount = fn
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

func NewRegistry(backend localstorage.Backend, auth sessionports.Authenticator, opts ...Option) *Registry {
	r := &Registry{
		backend:  backend,
		auth:     auth,
		logger:   observability.DiscardLogger(),
		now:      time.Now,
		visitors: map[string]*Visitor{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// NormalizeID returns id when it is a valid visitor id, or a fresh one.
func NormalizeID(id string) (string, bool) {
	id = strings.TrimSpace(id)
	if parsed, err := uuid.Parse(id); err == nil {
		return parsed.String(), false
	}
	return uuid.NewString(), true
}

// Acquire returns the context for id, creating it on first use. A new context
// loads its cart before returning and restores its session in the background.
func (r *Registry) Acquire(ctx context.Context, id string) *Visitor {
	id, _ = NormalizeID(id)
	now := r.now()

	r.mu.Lock()
	if v, ok := r.visitors[id]; ok {
		r.mu.Unlock()
		v.touch(now)
		return v
	}
	v := r.build(id)
	v.touch(now)
	r.visitors[id] = v
	count := len(r.visitors)
	r.mu.Unlock()

	r.reportCount(count)
	v.Cart.Initialize(ctx)
	go v.Session.Restore(context.WithoutCancel(ctx))
	r.logger.LogAttrs(ctx, slog.LevelDebug, "visitor context created", slog.String("visitor.id", id))
	return v
}

// Lookup returns a cached context without creating one.
func (r *Registry) Lookup(id string) (*Visitor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.visitors[id]
	return v, ok
}

// Sweep drops contexts idle for longer than maxIdle. Their durable storage
// stays, so a returning visitor gets its cart and session back.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)
	r.mu.Lock()
	var evicted []*Visitor
	for id, v := range r.visitors {
		if v.idleSince().Before(cutoff) {
			evicted = append(evicted, v)
			delete(r.visitors, id)
		}
	}
	count := len(r.visitors)
	r.mu.Unlock()

	for _, v := range evicted {
		v.close()
	}
	if len(evicted) > 0 {
		r.reportCount(count)
	}
	return len(evicted)
}

// RunSweeper sweeps every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(maxIdle); n > 0 {
				r.logger.LogAttrs(ctx, slog.LevelInfo, "evicted idle visitor contexts", slog.Int("visitors.evicted", n))
			}
		}
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.visitors)
}

func (r *Registry) build(id string) *Visitor {
	storage := localstorage.Scope(r.backend, id)
	logger := r.logger.With(slog.String("visitor.id", id))

	cartOpts := []cartobservability.Option{
		cartobservability.WithLogger(logger),
		cartobservability.WithVisitorID(id),
	}
	if r.tracer != nil {
		cartOpts = append(cartOpts, cartobservability.WithTracer(r.tracer))
	}
	if r.meter != nil {
		cartOpts = append(cartOpts, cartobservability.WithMeter(r.meter))
	}
	cart := cartobservability.New(cartapp.NewStore(storage, cartapp.WithLogger(logger)), cartOpts...)

	return &Visitor{
		ID:      id,
		Cart:    cart,
		Session: sessionapp.NewProvider(storage, r.auth, sessionapp.WithLogger(logger)),
		Recent:  catalogapp.NewRecentSearches(storage, logger),
		closers: []func(){cart.Close},
	}
}

func (r *Registry) reportCount(n int) {
	if r.onCount != nil {
		r.onCount(n)
	}
}
