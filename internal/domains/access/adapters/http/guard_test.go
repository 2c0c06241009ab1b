package http

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/game-storefront/internal/domains/access/domain"
	"github.com/Apurer/game-storefront/internal/domains/access/ports"
	sessiondomain "github.com/Apurer/game-storefront/internal/domains/session/domain"
)

type stubView struct {
	mu      sync.Mutex
	user    *sessiondomain.Session
	loading bool
	loaded  chan struct{}
}

func newStubView(user *sessiondomain.Session, loading bool) *stubView {
	v := &stubView{user: user, loading: loading, loaded: make(chan struct{})}
	if !loading {
		close(v.loaded)
	}
	return v
}

func (v *stubView) Status() (*sessiondomain.Session, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.user, v.loading
}

func (v *stubView) Loaded() <-chan struct{} { return v.loaded }

func (v *stubView) settle(user *sessiondomain.Session) {
	v.mu.Lock()
	v.user = user
	v.loading = false
	v.mu.Unlock()
	close(v.loaded)
}

func newGuardedRouter(requirement domain.Requirement, view ports.SessionView, opts ...GuardOption) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	resolve := func(*gin.Context) (ports.SessionView, bool) { return view, view != nil }
	r.GET("/protected", Guard(requirement, resolve, opts...), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func serve(r *gin.Engine) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(rec, req)
	return rec
}

func TestGuard_RendersForSignedInUser(t *testing.T) {
	user := &sessiondomain.Session{Email: "u@example.com", Role: sessiondomain.RoleUser, Token: "t"}
	rec := serve(newGuardedRouter(domain.RequireAuthenticated, newStubView(user, false)))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestGuard_RedirectsAnonymousToLogin(t *testing.T) {
	rec := serve(newGuardedRouter(domain.RequireAuthenticated, newStubView(nil, false)))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, LoginPath, rec.Header().Get("Location"))
}

func TestGuard_RedirectsNonAdminHome(t *testing.T) {
	user := &sessiondomain.Session{Email: "u@example.com", Role: sessiondomain.RoleUser, Token: "t"}
	rec := serve(newGuardedRouter(domain.RequireAdmin, newStubView(user, false)))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, HomePath, rec.Header().Get("Location"))
}

func TestGuard_MissingVisitorRedirectsToLogin(t *testing.T) {
	rec := serve(newGuardedRouter(domain.RequireAdmin, nil))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, LoginPath, rec.Header().Get("Location"))
}

func TestGuard_WaitsForPendingRestore(t *testing.T) {
	view := newStubView(nil, true)
	admin := &sessiondomain.Session{Email: "a@example.com", Role: sessiondomain.RoleAdmin, Token: "t"}
	go func() {
		time.Sleep(20 * time.Millisecond)
		view.settle(admin)
	}()

	rec := serve(newGuardedRouter(domain.RequireAdmin, view, WithRestoreWait(2*time.Second)))

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGuard_AnswersLoadingWhenRestoreDoesNotSettle(t *testing.T) {
	rec := serve(newGuardedRouter(domain.RequireAuthenticated, newStubView(nil, true), WithRestoreWait(10*time.Millisecond)))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "1", rec.Header().Get("Retry-After"))
	require.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
	require.Contains(t, rec.Body.String(), "pending")
}
