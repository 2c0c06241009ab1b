package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	sessionhttpmapper "github.com/Apurer/game-storefront/internal/domains/session/adapters/http/mapper"
	sessionports "github.com/Apurer/game-storefront/internal/domains/session/ports"
)

// SessionAPI signs visitors in and out and edits their profile.
type SessionAPI struct{}

// NewSessionAPI wires dependencies.
func NewSessionAPI() SessionAPI {
	return SessionAPI{}
}

// Get /login
// Report whether the visitor is signed in
func (api *SessionAPI) LoginStatus(c *gin.Context) {
	v, ok := mustVisitor(c)
	if !ok {
		return
	}
	user, loading := v.Session.Status()
	c.JSON(http.StatusOK, sessionhttpmapper.FromStatus(user, loading))
}

// Post /login
// Logs user into the system
func (api *SessionAPI) Login(c *gin.Context) {
	v, ok := mustVisitor(c)
	if !ok {
		return
	}
	var payload sessionhttpmapper.Credentials
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	session, err := v.Session.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionhttpmapper.FromStatus(session, false))
}

// Post /register
// Create an account and sign in
func (api *SessionAPI) Register(c *gin.Context) {
	v, ok := mustVisitor(c)
	if !ok {
		return
	}
	var payload sessionhttpmapper.Registration
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	session, err := v.Session.Register(c.Request.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessionhttpmapper.FromStatus(session, false))
}

// Post /logout
// Logs out current logged in user session
func (api *SessionAPI) Logout(c *gin.Context) {
	v, ok := mustVisitor(c)
	if !ok {
		return
	}
	v.Session.Logout(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// Get /profile
func (api *SessionAPI) GetProfile(c *gin.Context) {
	v, ok := mustVisitor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sessionhttpmapper.FromStatus(v.Session.Current(), false))
}

// Put /profile
// Update the signed-in account
func (api *SessionAPI) UpdateProfile(c *gin.Context) {
	v, ok := mustVisitor(c)
	if !ok {
		return
	}
	var payload sessionhttpmapper.ProfileUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	session, err := v.Session.UpdateProfile(c.Request.Context(), sessionports.ProfileUpdate{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionhttpmapper.FromStatus(session, false))
}
