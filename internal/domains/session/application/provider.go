package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Apurer/game-storefront/internal/domains/session/domain"
	"github.com/Apurer/game-storefront/internal/domains/session/ports"
	"github.com/Apurer/game-storefront/internal/platform/localstorage"
	"github.com/Apurer/game-storefront/internal/platform/observability"
)

// Snapshot is what the access gate reads: the current session, if any, and
// whether the initial restore is still running.
type Snapshot struct {
	User    *domain.Session
	Loading bool
}

// Provider owns one visitor's session. It restores the session from durable
// storage, signs in and out through the Authenticator, and tells subscribers
// about every change.
type Provider struct {
	storage localstorage.Storage
	auth    ports.Authenticator
	logger  *slog.Logger

	mu      sync.RWMutex
	user    *domain.Session
	loading bool

	restoreOnce sync.Once
	loaded      chan struct{}

	obsMu     sync.Mutex
	observers map[int]func(Snapshot)
	nextObs   int
}

type Option func(*Provider)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProvider returns a provider in the loading state; call Restore to settle it.
func NewProvider(storage localstorage.Storage, auth ports.Authenticator, opts ...Option) *Provider {
	p := &Provider{
		storage:   storage,
		auth:      auth,
		logger:    observability.DiscardLogger(),
		loading:   true,
		loaded:    make(chan struct{}),
		observers: map[int]func(Snapshot){},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

type storedSession struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// Restore loads the persisted session once. A missing or unreadable payload
// leaves the visitor signed out.
func (p *Provider) Restore(ctx context.Context) {
	p.restoreOnce.Do(func() {
		restored := p.readStored(ctx)
		p.mu.Lock()
		if p.user == nil {
			p.user = restored
		}
		p.loading = false
		p.mu.Unlock()
		close(p.loaded)
		p.notify()
	})
}

// Loaded is closed once the initial restore has settled.
func (p *Provider) Loaded() <-chan struct{} {
	return p.loaded
}

// State returns a copy of the current snapshot.
func (p *Provider) State() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Snapshot{User: cloneSession(p.user), Loading: p.loading}
}

// Status returns the current session and whether the restore is still running.
func (p *Provider) Status() (*domain.Session, bool) {
	state := p.State()
	return state.User, state.Loading
}

// Current returns the signed-in session or nil.
func (p *Provider) Current() *domain.Session {
	return p.State().User
}

// IsAdmin reports whether the current session has the admin role.
func (p *Provider) IsAdmin() bool {
	return p.Current().IsAdmin()
}

// Login authenticates against the shop API and persists the issued session.
func (p *Provider) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}
	p.Restore(ctx)
	session, err := p.auth.Login(ctx, email, password)
	if err != nil {
		return nil, mapError(err)
	}
	p.adopt(ctx, session)
	return cloneSession(session), nil
}

// Register creates an account and signs the visitor in with it.
func (p *Provider) Register(ctx context.Context, name, email, password string) (*domain.Session, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}
	p.Restore(ctx)
	session, err := p.auth.Register(ctx, name, email, password)
	if err != nil {
		return nil, mapError(err)
	}
	p.adopt(ctx, session)
	return cloneSession(session), nil
}

// UpdateProfile changes the account behind the current session.
func (p *Provider) UpdateProfile(ctx context.Context, update ports.ProfileUpdate) (*domain.Session, error) {
	p.Restore(ctx)
	current := p.Current()
	if current == nil {
		return nil, ErrNotSignedIn
	}
	session, err := p.auth.UpdateProfile(ctx, current.Token, update)
	if err != nil {
		return nil, mapError(err)
	}
	p.adopt(ctx, session)
	return cloneSession(session), nil
}

// Logout clears the session and its persisted copy.
func (p *Provider) Logout(ctx context.Context) {
	p.drop(ctx, "session signed out")
}

// Invalidate clears the session after the shop API rejected its credential.
func (p *Provider) Invalidate(ctx context.Context) {
	p.drop(ctx, "session credential rejected, signing out")
}

// Subscribe registers fn for every session change and returns its cancel function.
func (p *Provider) Subscribe(fn func(Snapshot)) func() {
	if fn == nil {
		return func() {}
	}
	p.obsMu.Lock()
	id := p.nextObs
	p.nextObs++
	p.observers[id] = fn
	p.obsMu.Unlock()
	return func() {
		p.obsMu.Lock()
		delete(p.observers, id)
		p.obsMu.Unlock()
	}
}

func (p *Provider) adopt(ctx context.Context, session *domain.Session) {
	p.mu.Lock()
	p.user = cloneSession(session)
	p.mu.Unlock()
	p.persist(ctx, session)
	p.notify()
}

func (p *Provider) drop(ctx context.Context, msg string) {
	p.Restore(ctx)
	p.mu.Lock()
	had := p.user != nil
	p.user = nil
	p.mu.Unlock()
	if err := p.storage.RemoveItem(ctx, localstorage.KeyUser); err != nil {
		p.logger.LogAttrs(ctx, slog.LevelWarn, "failed to remove persisted session", slog.String("error", err.Error()))
	}
	if had {
		p.logger.LogAttrs(ctx, slog.LevelInfo, msg)
	}
	p.notify()
}

func (p *Provider) readStored(ctx context.Context) *domain.Session {
	raw, found, err := p.storage.GetItem(ctx, localstorage.KeyUser)
	if err != nil {
		p.logger.LogAttrs(ctx, slog.LevelWarn, "failed to read persisted session", slog.String("error", err.Error()))
		return nil
	}
	if !found || strings.TrimSpace(raw) == "" {
		return nil
	}
	var stored storedSession
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		p.logger.LogAttrs(ctx, slog.LevelWarn, "persisted session is corrupt, ignoring", slog.String("error", err.Error()))
		return nil
	}
	session, err := domain.NewSession(stored.Name, stored.Email, domain.Role(stored.Role), stored.Token)
	if err != nil {
		p.logger.LogAttrs(ctx, slog.LevelWarn, "persisted session is invalid, ignoring", slog.String("error", err.Error()))
		return nil
	}
	return session
}

func (p *Provider) persist(ctx context.Context, session *domain.Session) {
	payload, err := json.Marshal(storedSession{
		Name:  session.Name,
		Email: session.Email,
		Role:  string(session.Role),
		Token: session.Token,
	})
	if err == nil {
		err = p.storage.SetItem(ctx, localstorage.KeyUser, string(payload))
	}
	if err != nil {
		p.logger.LogAttrs(ctx, slog.LevelWarn, "failed to persist session", slog.String("error", err.Error()))
	}
}

func (p *Provider) notify() {
	snapshot := p.State()
	p.obsMu.Lock()
	observers := make([]func(Snapshot), 0, len(p.observers))
	for _, fn := range p.observers {
		observers = append(observers, fn)
	}
	p.obsMu.Unlock()
	for _, fn := range observers {
		fn(snapshot)
	}
}

func cloneSession(s *domain.Session) *domain.Session {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}
