package storefrontserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	accessports "github.com/Apurer/game-storefront/internal/domains/access/ports"
	sessiondomain "github.com/Apurer/game-storefront/internal/domains/session/domain"
	"github.com/Apurer/game-storefront/internal/visitors"
)

// DefaultVisitorCookie names the cookie carrying the visitor id.
const DefaultVisitorCookie = "storefront_visitor"

var errVisitorMissing = errors.New("visitor context missing")

const (
	visitorContextKey = "storefront.visitor"
	visitorCookieAge  = 365 * 24 * time.Hour
)

// VisitorMiddleware binds every request to its visitor context, issuing a new
// visitor id when the cookie is missing or malformed.
func VisitorMiddleware(registry *visitors.Registry, cookieName string) gin.HandlerFunc {
	if cookieName == "" {
		cookieName = DefaultVisitorCookie
	}
	return func(c *gin.Context) {
		raw, _ := c.Cookie(cookieName)
		id, fresh := visitors.NormalizeID(raw)
		if fresh || raw != id {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookieName, id, int(visitorCookieAge.Seconds()), "/", "", false, true)
		}
		c.Set(visitorContextKey, registry.Acquire(c.Request.Context(), id))
		c.Next()
	}
}

func visitorFrom(c *gin.Context) (*visitors.Visitor, bool) {
	value, ok := c.Get(visitorContextKey)
	if !ok {
		return nil, false
	}
	v, ok := value.(*visitors.Visitor)
	return v, ok && v != nil
}

// mustVisitor answers 500 when the visitor middleware did not run.
func mustVisitor(c *gin.Context) (*visitors.Visitor, bool) {
	v, ok := visitorFrom(c)
	if !ok {
		respondError(c, http.StatusInternalServerError, errVisitorMissing)
		return nil, false
	}
	return v, true
}

// resolveSession feeds the access guard.
func resolveSession(c *gin.Context) (accessports.SessionView, bool) {
	v, ok := visitorFrom(c)
	if !ok {
		return nil, false
	}
	return v.Session, true
}

func currentSession(v *visitors.Visitor) *sessiondomain.Session {
	if v == nil || v.Session == nil {
		return nil
	}
	return v.Session.Current()
}

func sessionToken(v *visitors.Visitor) string {
	if s := currentSession(v); s != nil {
		return s.Token
	}
	return ""
}
