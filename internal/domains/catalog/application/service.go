package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/Apurer/game-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/game-storefront/internal/domains/catalog/ports"
)

// Service answers the storefront's catalog pages. Listings are fetched from
// the shop API on every call and filtered locally.
type Service struct {
	catalog ports.Catalog
}

func NewService(catalog ports.Catalog) *Service {
	return &Service{catalog: catalog}
}

// Listing is a filtered page of the catalog.
type Listing struct {
	Games []domain.Game
	// Total is the size of the unfiltered catalog.
	Total int
}

func (s *Service) Browse(ctx context.Context, q domain.Query) (*Listing, error) {
	games, err := s.catalog.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return &Listing{Games: domain.Filter(games, q), Total: len(games)}, nil
}

func (s *Service) Game(ctx context.Context, id string) (*domain.Game, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}
	game, err := s.catalog.Get(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return game, nil
}

func (s *Service) Suggestions(ctx context.Context, term string) ([]domain.Game, error) {
	if len([]rune(strings.TrimSpace(term))) < domain.SuggestionMinLength {
		return []domain.Game{}, nil
	}
	games, err := s.catalog.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return domain.Suggest(games, term), nil
}

// AdminList returns the catalog filtered by title for the back-office.
func (s *Service) AdminList(ctx context.Context, titleFilter string) ([]domain.Game, error) {
	games, err := s.catalog.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return domain.FilterByTitle(games, titleFilter), nil
}

// Count returns the number of games in the catalog.
func (s *Service) Count(ctx context.Context) (int, error) {
	games, err := s.catalog.List(ctx)
	if err != nil {
		return 0, mapError(err)
	}
	return len(games), nil
}

func (s *Service) CreateGame(ctx context.Context, token string, input domain.Game) (*domain.Game, error) {
	game, err := domain.NewGame(input)
	if err != nil {
		return nil, mapError(err)
	}
	created, err := s.catalog.Create(ctx, token, *game)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

func (s *Service) UpdateGame(ctx context.Context, token, id string, input domain.Game) (*domain.Game, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}
	input.ID = id
	game, err := domain.NewGame(input)
	if err != nil {
		return nil, mapError(err)
	}
	updated, err := s.catalog.Update(ctx, token, id, *game)
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func (s *Service) DeleteGame(ctx context.Context, token, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}
	return mapError(s.catalog.Delete(ctx, token, id))
}
