package domain

import (
	"errors"
	"strings"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var (
	ErrEmptyName     = errors.New("name is required")
	ErrEmptyPassword = errors.New("password is required")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrInvalidRole   = errors.New("role must be user or admin")
)

// Account is a shop account as the back-office lists it.
type Account struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	CreatedAt time.Time
}

// IsAdmin reports whether the account carries the admin role.
func (a Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// NewAccount is what an admin submits to create an account.
type NewAccount struct {
	Name     string
	Email    string
	Password string
	Role     Role
}

// Normalize trims fields, defaults the role to user and validates the result.
func (n *NewAccount) Normalize() error {
	n.Name = strings.TrimSpace(n.Name)
	n.Email = strings.TrimSpace(n.Email)
	n.Role = Role(strings.ToLower(strings.TrimSpace(string(n.Role))))
	if n.Role == "" {
		n.Role = RoleUser
	}
	if n.Name == "" {
		return ErrEmptyName
	}
	if !strings.Contains(n.Email, "@") {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(n.Password) == "" {
		return ErrEmptyPassword
	}
	if n.Role != RoleUser && n.Role != RoleAdmin {
		return ErrInvalidRole
	}
	return nil
}
