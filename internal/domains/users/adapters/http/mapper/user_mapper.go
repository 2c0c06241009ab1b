package mapper

import (
	"time"

	userdomain "github.com/Apurer/game-storefront/internal/domains/users/domain"
)

// User is the JSON shape of an account on the admin pages.
type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// NewUser is the body of POST /admin/users.
type NewUser struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

func ToNewAccount(model NewUser) userdomain.NewAccount {
	return userdomain.NewAccount{
		Name:     model.Name,
		Email:    model.Email,
		Password: model.Password,
		Role:     userdomain.Role(model.Role),
	}
}

func FromAccount(account userdomain.Account) User {
	out := User{
		ID:    account.ID,
		Name:  account.Name,
		Email: account.Email,
		Role:  string(account.Role),
	}
	if !account.CreatedAt.IsZero() {
		created := account.CreatedAt
		out.CreatedAt = &created
	}
	return out
}

func FromAccounts(accounts []userdomain.Account) []User {
	result := make([]User, 0, len(accounts))
	for _, account := range accounts {
		result = append(result, FromAccount(account))
	}
	return result
}
