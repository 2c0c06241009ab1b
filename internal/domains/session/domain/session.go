package domain

import (
	"errors"
	"strings"
)

// Role tags what a signed-in visitor may reach.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var (
	ErrEmptyEmail  = errors.New("session email is required")
	ErrEmptyToken  = errors.New("session token is required")
	ErrInvalidRole = errors.New("session role must be user or admin")
)

// Session summarizes the signed-in visitor. Token is the opaque bearer
// credential issued by the shop API and is forwarded verbatim.
type Session struct {
	Name  string
	Email string
	Role  Role
	Token string
}

// NewSession validates and constructs a Session. An empty role means RoleUser.
func NewSession(name, email string, role Role, token string) (*Session, error) {
	s := &Session{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
		Role:  role,
		Token: strings.TrimSpace(token),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate enforces the session invariants and normalizes the role.
func (s *Session) Validate() error {
	if s.Email == "" {
		return ErrEmptyEmail
	}
	if s.Token == "" {
		return ErrEmptyToken
	}
	role, err := ParseRole(string(s.Role))
	if err != nil {
		return err
	}
	s.Role = role
	return nil
}

// IsAdmin reports whether the session carries the admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// ParseRole maps the wire value to a Role.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case "", RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrInvalidRole
	}
}
