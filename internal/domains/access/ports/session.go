package ports

import (
	sessiondomain "github.com/Apurer/game-storefront/internal/domains/session/domain"
)

// SessionView is the read-only slice of a session provider the gate needs.
type SessionView interface {
	Status() (user *sessiondomain.Session, loading bool)
	// Loaded is closed once the initial restore has settled.
	Loaded() <-chan struct{}
}
