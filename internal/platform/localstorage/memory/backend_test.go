package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/game-storefront/internal/platform/localstorage"
)

func TestBackend_VisitorsAreIsolated(t *testing.T) {
	ctx := context.Background()
	backend := NewBackend()
	alice := localstorage.Scope(backend, "alice")
	bob := localstorage.Scope(backend, "bob")

	require.NoError(t, alice.SetItem(ctx, localstorage.KeyCart, `[{"_id":"g1"}]`))

	value, ok, err := alice.GetItem(ctx, localstorage.KeyCart)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[{"_id":"g1"}]`, value)

	_, ok, err = bob.GetItem(ctx, localstorage.KeyCart)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestBackend_RemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	backend := NewBackend()
	require.NoError(t, backend.Set(ctx, "v1", localstorage.KeyUser, "{}"))
	require.NoError(t, backend.Remove(ctx, "v1", localstorage.KeyUser))
	require.NoError(t, backend.Remove(ctx, "v1", localstorage.KeyUser))
	require.Empty(t, backend.Keys("v1"))
}

func TestBackend_RejectsBlankAddress(t *testing.T) {
	ctx := context.Background()
	backend := NewBackend()
	require.ErrorIs(t, backend.Set(ctx, " ", "cart", "x"), localstorage.ErrVisitorRequired)
	_, _, err := backend.Get(ctx, "v1", "")
	require.ErrorIs(t, err, localstorage.ErrKeyRequired)
}
