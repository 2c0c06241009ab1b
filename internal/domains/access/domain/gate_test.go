package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	sessiondomain "github.com/Apurer/game-storefront/internal/domains/session/domain"
)

func TestDecide(t *testing.T) {
	user := &sessiondomain.Session{Email: "u@example.com", Role: sessiondomain.RoleUser, Token: "t"}
	admin := &sessiondomain.Session{Email: "a@example.com", Role: sessiondomain.RoleAdmin, Token: "t"}

	cases := []struct {
		name        string
		session     *sessiondomain.Session
		loading     bool
		requirement Requirement
		want        Decision
	}{
		{"loading without session is pending", nil, true, RequireAuthenticated, DecisionPending},
		{"loading admin route is pending", nil, true, RequireAdmin, DecisionPending},
		{"loading with session is still pending", admin, true, RequireAdmin, DecisionPending},
		{"no session redirects to login", nil, false, RequireAuthenticated, DecisionRedirectLogin},
		{"no session on admin route redirects to login", nil, false, RequireAdmin, DecisionRedirectLogin},
		{"user on admin route goes home", user, false, RequireAdmin, DecisionRedirectHome},
		{"admin on admin route renders", admin, false, RequireAdmin, DecisionRender},
		{"user on authenticated route renders", user, false, RequireAuthenticated, DecisionRender},
		{"admin on authenticated route renders", admin, false, RequireAuthenticated, DecisionRender},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Decide(tc.session, tc.loading, tc.requirement))
		})
	}
}

func TestDecide_IsDeterministic(t *testing.T) {
	user := &sessiondomain.Session{Email: "u@example.com", Role: sessiondomain.RoleUser, Token: "t"}
	first := Decide(user, false, RequireAdmin)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Decide(user, false, RequireAdmin))
	}
	require.Equal(t, sessiondomain.RoleUser, user.Role)
}
