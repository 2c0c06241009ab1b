package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/game-storefront/internal/domains/users/domain"
)

type fakeDirectory struct {
	accounts []domain.Account
	created  []domain.NewAccount
}

func (f *fakeDirectory) List(context.Context, string) ([]domain.Account, error) {
	return f.accounts, nil
}

func (f *fakeDirectory) Create(_ context.Context, _ string, account domain.NewAccount) (*domain.Account, error) {
	f.created = append(f.created, account)
	created := domain.Account{ID: "u-new", Name: account.Name, Email: account.Email, Role: account.Role}
	f.accounts = append(f.accounts, created)
	return &created, nil
}

func TestCreate_DefaultsRole(t *testing.T) {
	dir := &fakeDirectory{}
	svc := NewService(dir)

	created, err := svc.Create(context.Background(), "tok", domain.NewAccount{Name: " Ada ", Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, domain.RoleUser, created.Role)
	require.Equal(t, "Ada", dir.created[0].Name)

	count, err := svc.Count(context.Background(), "tok")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestCreate_InvalidInput(t *testing.T) {
	dir := &fakeDirectory{}
	svc := NewService(dir)

	cases := []domain.NewAccount{
		{Email: "a@example.com", Password: "x"},
		{Name: "A", Email: "nope", Password: "x"},
		{Name: "A", Email: "a@example.com"},
		{Name: "A", Email: "a@example.com", Password: "x", Role: "root"},
	}
	for _, input := range cases {
		_, err := svc.Create(context.Background(), "tok", input)
		require.ErrorIs(t, err, ErrInvalidInput)
	}
	require.Empty(t, dir.created)
}
