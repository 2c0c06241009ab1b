package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/game-storefront/internal/domains/session/domain"
	"github.com/Apurer/game-storefront/internal/domains/session/ports"
	"github.com/Apurer/game-storefront/internal/platform/localstorage"
	storagememory "github.com/Apurer/game-storefront/internal/platform/localstorage/memory"
)

type fakeAuthenticator struct {
	session *domain.Session
	err     error
	tokens  []string
}

func (f *fakeAuthenticator) Login(_ context.Context, _, _ string) (*domain.Session, error) {
	return f.session, f.err
}

func (f *fakeAuthenticator) Register(_ context.Context, _, _, _ string) (*domain.Session, error) {
	return f.session, f.err
}

func (f *fakeAuthenticator) UpdateProfile(_ context.Context, token string, _ ports.ProfileUpdate) (*domain.Session, error) {
	f.tokens = append(f.tokens, token)
	return f.session, f.err
}

func newTestProvider(t *testing.T, auth ports.Authenticator) (*Provider, localstorage.Storage) {
	t.Helper()
	storage := localstorage.Scope(storagememory.NewBackend(), "visitor-1")
	return NewProvider(storage, auth), storage
}

func TestProvider_StartsLoading(t *testing.T) {
	p, _ := newTestProvider(t, &fakeAuthenticator{})

	state := p.State()
	require.True(t, state.Loading)
	require.Nil(t, state.User)

	p.Restore(context.Background())
	select {
	case <-p.Loaded():
	default:
		t.Fatal("loaded channel should be closed after restore")
	}
	require.False(t, p.State().Loading)
}

func TestProvider_RestoresPersistedSession(t *testing.T) {
	p, storage := newTestProvider(t, &fakeAuthenticator{})
	ctx := context.Background()
	require.NoError(t, storage.SetItem(ctx, localstorage.KeyUser,
		`{"name":"Ada","email":"ada@example.com","role":"admin","token":"t-1"}`))

	p.Restore(ctx)

	user := p.Current()
	require.NotNil(t, user)
	require.Equal(t, "ada@example.com", user.Email)
	require.True(t, p.IsAdmin())
}

func TestProvider_CorruptPayloadMeansSignedOut(t *testing.T) {
	p, storage := newTestProvider(t, &fakeAuthenticator{})
	ctx := context.Background()
	require.NoError(t, storage.SetItem(ctx, localstorage.KeyUser, "{not json"))

	p.Restore(ctx)

	require.Nil(t, p.Current())
	require.False(t, p.State().Loading)
}

func TestProvider_LoginPersistsAndNotifies(t *testing.T) {
	issued := &domain.Session{Name: "Bo", Email: "bo@example.com", Role: domain.RoleUser, Token: "tok"}
	p, storage := newTestProvider(t, &fakeAuthenticator{session: issued})
	ctx := context.Background()

	var seen []Snapshot
	cancel := p.Subscribe(func(s Snapshot) { seen = append(seen, s) })
	defer cancel()

	user, err := p.Login(ctx, "bo@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, "tok", user.Token)

	raw, found, err := storage.GetItem(ctx, localstorage.KeyUser)
	require.NoError(t, err)
	require.True(t, found)
	require.JSONEq(t, `{"name":"Bo","email":"bo@example.com","role":"user","token":"tok"}`, raw)

	require.NotEmpty(t, seen)
	last := seen[len(seen)-1]
	require.NotNil(t, last.User)
	require.False(t, last.Loading)
}

func TestProvider_LoginRequiresCredentials(t *testing.T) {
	p, _ := newTestProvider(t, &fakeAuthenticator{})

	_, err := p.Login(context.Background(), " ", "secret")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestProvider_LoginFailureKeepsVisitorSignedOut(t *testing.T) {
	boom := errors.New("invalid credentials")
	p, _ := newTestProvider(t, &fakeAuthenticator{err: boom})

	_, err := p.Login(context.Background(), "bo@example.com", "wrong")
	require.ErrorIs(t, err, boom)
	require.Nil(t, p.Current())
}

func TestProvider_LogoutRemovesPersistedSession(t *testing.T) {
	issued := &domain.Session{Name: "Bo", Email: "bo@example.com", Role: domain.RoleUser, Token: "tok"}
	p, storage := newTestProvider(t, &fakeAuthenticator{session: issued})
	ctx := context.Background()
	_, err := p.Login(ctx, "bo@example.com", "secret")
	require.NoError(t, err)

	p.Logout(ctx)

	require.Nil(t, p.Current())
	_, found, err := storage.GetItem(ctx, localstorage.KeyUser)
	require.NoError(t, err)
	require.False(t, found)
}

func TestProvider_UpdateProfileUsesCurrentToken(t *testing.T) {
	auth := &fakeAuthenticator{session: &domain.Session{Name: "Bo", Email: "bo@example.com", Token: "tok"}}
	p, _ := newTestProvider(t, auth)
	ctx := context.Background()

	_, err := p.UpdateProfile(ctx, ports.ProfileUpdate{Name: "Bob"})
	require.ErrorIs(t, err, ErrNotSignedIn)

	_, err = p.Login(ctx, "bo@example.com", "secret")
	require.NoError(t, err)

	auth.session = &domain.Session{Name: "Bob", Email: "bo@example.com", Token: "tok"}
	updated, err := p.UpdateProfile(ctx, ports.ProfileUpdate{Name: "Bob"})
	require.NoError(t, err)
	require.Equal(t, "Bob", updated.Name)
	require.Equal(t, []string{"tok"}, auth.tokens)
}
