// Package http turns gate decisions into gin responses.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/game-storefront/internal/domains/access/domain"
	"github.com/Apurer/game-storefront/internal/domains/access/ports"
	"github.com/Apurer/game-storefront/internal/platform/observability"
	apierrors "github.com/Apurer/game-storefront/internal/shared/errors"
)

const (
	LoginPath = "/login"
	HomePath  = "/"

	defaultRestoreWait = 1500 * time.Millisecond
)

// SessionResolver finds the session view for the visitor behind the request.
type SessionResolver func(c *gin.Context) (ports.SessionView, bool)

type guardConfig struct {
	wait   time.Duration
	logger *slog.Logger
}

type GuardOption func(*guardConfig)

// WithRestoreWait bounds how long a pending decision waits for the session restore.
func WithRestoreWait(wait time.Duration) GuardOption {
	return func(cfg *guardConfig) {
		if wait >= 0 {
			cfg.wait = wait
		}
	}
}

func WithLogger(logger *slog.Logger) GuardOption {
	return func(cfg *guardConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Guard evaluates requirement before the wrapped handlers run.
func Guard(requirement domain.Requirement, resolve SessionResolver, opts ...GuardOption) gin.HandlerFunc {
	cfg := guardConfig{wait: defaultRestoreWait, logger: observability.DiscardLogger()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return func(c *gin.Context) {
		var view ports.SessionView
		if resolve != nil {
			view, _ = resolve(c)
		}

		decision := evaluate(view, requirement)
		if decision == domain.DecisionPending {
			decision = awaitRestore(c, view, requirement, cfg.wait)
		}

		switch decision {
		case domain.DecisionRender:
			c.Next()
		case domain.DecisionRedirectLogin:
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
		case domain.DecisionRedirectHome:
			c.Redirect(http.StatusSeeOther, HomePath)
			c.Abort()
		default:
			cfg.logger.LogAttrs(c.Request.Context(), slog.LevelDebug, "session restore still pending",
				slog.String("http.route", c.FullPath()),
				slog.String("access.requirement", requirement.String()),
			)
			apierrors.Respond(c, apierrors.ErrUnavailable.
				WithDetail("session is loading").
				WithRetryAfter(1).
				WithExtension("decision", domain.DecisionPending.String()))
			c.Abort()
		}
	}
}

func evaluate(view ports.SessionView, requirement domain.Requirement) domain.Decision {
	if view == nil {
		return domain.Decide(nil, false, requirement)
	}
	user, loading := view.Status()
	return domain.Decide(user, loading, requirement)
}

func awaitRestore(c *gin.Context, view ports.SessionView, requirement domain.Requirement, wait time.Duration) domain.Decision {
	if view == nil || wait <= 0 {
		return evaluate(view, requirement)
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-view.Loaded():
	case <-timer.C:
	case <-c.Request.Context().Done():
	}
	return evaluate(view, requirement)
}
