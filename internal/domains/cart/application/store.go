package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Apurer/game-storefront/internal/domains/cart/domain"
	"github.com/Apurer/game-storefront/internal/domains/cart/ports"
	"github.com/Apurer/game-storefront/internal/platform/localstorage"
	"github.com/Apurer/game-storefront/internal/platform/observability"
)

var _ ports.Store = (*Store)(nil)

// Store keeps the cart in memory and mirrors every mutation to the visitor's
// durable storage under localstorage.KeyCart.
//
// Until the persisted cart has been read, nothing is written back. Mutations
// made while storage is unreadable are journaled and replayed onto the
// persisted cart once a read succeeds.
type Store struct {
	storage localstorage.Storage
	logger  *slog.Logger

	// writeMu serializes load and mutate-then-persist so storage never sees an older state last.
	writeMu sync.Mutex
	loaded  bool
	readErr error
	pending []func(*domain.Cart)

	mu   sync.Mutex
	cart *domain.Cart

	obsMu     sync.Mutex
	observers map[int]func(domain.Event)
	nextObs   int
}

type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewStore(storage localstorage.Storage, opts ...Option) *Store {
	s := &Store{
		storage:   storage,
		logger:    observability.DiscardLogger(),
		cart:      &domain.Cart{},
		observers: map[int]func(domain.Event){},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// storedItem is the persisted shape of one cart entry.
type storedItem struct {
	ID    string  `json:"_id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Genre string  `json:"genre,omitempty"`
	Image string  `json:"image,omitempty"`
}

// Initialize loads the persisted cart. Once a load succeeds later calls do
// nothing; a failed read is retried on the next call. Mutators call it first.
func (s *Store) Initialize(ctx context.Context) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.ensureLoaded(ctx)
}

func (s *Store) Add(ctx context.Context, item domain.CartItem) domain.Outcome {
	return s.mutate(ctx, item.ID, func(c *domain.Cart) domain.Outcome { return c.Add(item) })
}

func (s *Store) Remove(ctx context.Context, itemID string) domain.Outcome {
	return s.mutate(ctx, itemID, func(c *domain.Cart) domain.Outcome { return c.Remove(itemID) })
}

// RemoveAll drops the listed ids. An emptied cart is cleared like Clear.
func (s *Store) RemoveAll(ctx context.Context, itemIDs []string) domain.Outcome {
	ids := append([]string(nil), itemIDs...)
	return s.mutate(ctx, "", func(c *domain.Cart) domain.Outcome {
		if c.RemoveAll(ids) == 0 {
			return domain.OutcomeNotFound
		}
		if c.Count() == 0 {
			return domain.OutcomeCleared
		}
		return domain.OutcomeRemoved
	})
}

// Clear empties the cart and deletes the persisted copy.
func (s *Store) Clear(ctx context.Context) domain.Outcome {
	return s.mutate(ctx, "", func(c *domain.Cart) domain.Outcome { return c.Clear() })
}

// mutate applies op in memory and persists the result when it changed the cart.
func (s *Store) mutate(ctx context.Context, itemID string, op func(*domain.Cart) domain.Outcome) domain.Outcome {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	loaded := s.ensureLoaded(ctx)

	s.mu.Lock()
	outcome := op(s.cart)
	s.mu.Unlock()
	if !outcome.Changed() {
		return outcome
	}
	if !loaded {
		s.pending = append(s.pending, func(c *domain.Cart) { op(c) })
		s.reportUnsaved(ctx, outcome, itemID, fmt.Errorf("persisted cart not loaded yet: %w", s.readErr))
		return outcome
	}
	s.commit(ctx, outcome, itemID)
	return outcome
}

func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Count()
}

func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Items()
}

// Subscribe registers fn for store events and returns its cancel function.
func (s *Store) Subscribe(fn func(domain.Event)) func() {
	if fn == nil {
		return func() {}
	}
	s.obsMu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.obsMu.Unlock()
	return func() {
		s.obsMu.Lock()
		delete(s.observers, id)
		s.obsMu.Unlock()
	}
}

// commit persists the current state and tells observers. Write failures
// never undo the in-memory change.
func (s *Store) commit(ctx context.Context, outcome domain.Outcome, itemID string) {
	if err := s.save(ctx, outcome == domain.OutcomeCleared); err != nil {
		s.reportUnsaved(ctx, outcome, itemID, err)
		return
	}
	count, total := s.snapshot()
	s.publish(domain.Event{Kind: domain.EventMutated, Outcome: outcome, ItemID: itemID, Count: count, Total: total})
}

// reportUnsaved logs and publishes a mutation that did not reach storage.
func (s *Store) reportUnsaved(ctx context.Context, outcome domain.Outcome, itemID string, err error) {
	s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to persist cart",
		slog.String("cart.outcome", string(outcome)),
		slog.String("error", err.Error()),
	)
	count, total := s.snapshot()
	s.publish(domain.Event{Kind: domain.EventPersistFailed, Outcome: outcome, ItemID: itemID, Count: count, Total: total, Err: err})
	s.publish(domain.Event{Kind: domain.EventMutated, Outcome: outcome, ItemID: itemID, Count: count, Total: total})
}

func (s *Store) snapshot() (int, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Count(), s.cart.Total()
}

// save writes the current items. With removeKey set an empty cart deletes
// the persisted copy instead of writing an empty list.
func (s *Store) save(ctx context.Context, removeKey bool) error {
	s.mu.Lock()
	items := s.cart.Items()
	s.mu.Unlock()
	if removeKey && len(items) == 0 {
		return s.storage.RemoveItem(ctx, localstorage.KeyCart)
	}
	stored := make([]storedItem, 0, len(items))
	for _, item := range items {
		stored = append(stored, storedItem(item))
	}
	payload, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	return s.storage.SetItem(ctx, localstorage.KeyCart, string(payload))
}

// ensureLoaded reads the persisted cart once. Callers hold writeMu.
func (s *Store) ensureLoaded(ctx context.Context) bool {
	if s.loaded {
		return true
	}
	raw, found, err := s.storage.GetItem(ctx, localstorage.KeyCart)
	if err != nil {
		s.readErr = err
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to read persisted cart, will retry", slog.String("error", err.Error()))
		s.publish(domain.Event{Kind: domain.EventReadFailed, Err: err})
		return false
	}
	cart := s.decode(ctx, raw, found)
	for _, op := range s.pending {
		op(cart)
	}
	replayed := len(s.pending) > 0
	s.pending, s.readErr, s.loaded = nil, nil, true

	s.mu.Lock()
	s.cart = cart
	s.mu.Unlock()
	if replayed {
		if err := s.save(ctx, true); err != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to persist replayed cart", slog.String("error", err.Error()))
			s.publish(domain.Event{Kind: domain.EventPersistFailed, Err: err})
		}
	}
	count, total := s.snapshot()
	s.publish(domain.Event{Kind: domain.EventInitialized, Count: count, Total: total})
	return true
}

// decode turns the stored payload into a cart. Undecodable data gives an
// empty cart and is reported as corrupt.
func (s *Store) decode(ctx context.Context, raw string, found bool) *domain.Cart {
	if !found || strings.TrimSpace(raw) == "" {
		return &domain.Cart{}
	}
	var stored []storedItem
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "persisted cart is corrupt, starting empty", slog.String("error", err.Error()))
		s.publish(domain.Event{Kind: domain.EventReadCorrupt, Err: err})
		return &domain.Cart{}
	}
	items := make([]domain.CartItem, 0, len(stored))
	for _, entry := range stored {
		items = append(items, domain.CartItem(entry))
	}
	cart, dropped := domain.NewCart(items)
	if dropped > 0 {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "dropped invalid persisted cart entries", slog.Int("cart.dropped", dropped))
	}
	return cart
}

func (s *Store) publish(event domain.Event) {
	s.obsMu.Lock()
	observers := make([]func(domain.Event), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.obsMu.Unlock()
	for _, fn := range observers {
		fn(event)
	}
}
