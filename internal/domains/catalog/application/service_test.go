package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/game-storefront/internal/clients/http/shop"
	"github.com/Apurer/game-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/game-storefront/internal/platform/localstorage"
	storagememory "github.com/Apurer/game-storefront/internal/platform/localstorage/memory"
)

type fakeCatalog struct {
	games   []domain.Game
	created []domain.Game
	tokens  []string
	err     error
}

func (f *fakeCatalog) List(context.Context) ([]domain.Game, error) {
	return f.games, f.err
}

func (f *fakeCatalog) Get(_ context.Context, id string) (*domain.Game, error) {
	for _, g := range f.games {
		if g.ID == id {
			game := g
			return &game, nil
		}
	}
	return nil, &shop.APIError{Status: 404, Message: "Game not found"}
}

func (f *fakeCatalog) Create(_ context.Context, token string, game domain.Game) (*domain.Game, error) {
	f.tokens = append(f.tokens, token)
	game.ID = "new"
	f.created = append(f.created, game)
	return &game, nil
}

func (f *fakeCatalog) Update(_ context.Context, token, _ string, game domain.Game) (*domain.Game, error) {
	f.tokens = append(f.tokens, token)
	return &game, nil
}

func (f *fakeCatalog) Delete(_ context.Context, token, _ string) error {
	f.tokens = append(f.tokens, token)
	return f.err
}

func TestBrowse_FiltersAndKeepsTotal(t *testing.T) {
	svc := NewService(&fakeCatalog{games: []domain.Game{
		{ID: "1", Title: "Hades", Genre: domain.GenreAction},
		{ID: "2", Title: "Celeste", Genre: domain.GenrePlatformer},
	}})

	listing, err := svc.Browse(context.Background(), domain.Query{Genre: domain.GenreAction})
	require.NoError(t, err)
	require.Equal(t, 2, listing.Total)
	require.Len(t, listing.Games, 1)
	require.Equal(t, "Hades", listing.Games[0].Title)
}

func TestGame_NotFoundIsMapped(t *testing.T) {
	svc := NewService(&fakeCatalog{})

	_, err := svc.Game(context.Background(), "missing")
	require.ErrorIs(t, err, ErrGameNotFound)

	_, err = svc.Game(context.Background(), " ")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSuggestions_ShortTermSkipsRemote(t *testing.T) {
	catalog := &fakeCatalog{err: &shop.APIError{Status: 500, Message: "down"}}
	svc := NewService(catalog)

	got, err := svc.Suggestions(context.Background(), "a")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestCreateGame_ValidatesBeforeRemote(t *testing.T) {
	catalog := &fakeCatalog{}
	svc := NewService(catalog)

	_, err := svc.CreateGame(context.Background(), "admin-token", domain.Game{Title: "x", Genre: "Cooking"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Empty(t, catalog.created)

	created, err := svc.CreateGame(context.Background(), "admin-token", domain.Game{Title: "Celeste", Genre: domain.GenrePlatformer, Price: 20})
	require.NoError(t, err)
	require.Equal(t, "new", created.ID)
	require.Equal(t, []string{"admin-token"}, catalog.tokens)
}

func TestRecentSearches_RecordAndClear(t *testing.T) {
	ctx := context.Background()
	storage := localstorage.Scope(storagememory.NewBackend(), "v1")
	recent := NewRecentSearches(storage, nil)

	recent.Record(ctx, "doom")
	recent.Record(ctx, "hades")
	recent.Record(ctx, "doom")
	require.Equal(t, []string{"doom", "hades"}, recent.List(ctx))

	recent.Clear(ctx)
	require.Empty(t, recent.List(ctx))
	_, found, err := storage.GetItem(ctx, localstorage.KeyRecentSearches)
	require.NoError(t, err)
	require.False(t, found)
}
