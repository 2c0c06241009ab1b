package remote

import (
	"context"
	"errors"

	"github.com/Apurer/game-storefront/internal/clients/http/shop"
	"github.com/Apurer/game-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/game-storefront/internal/domains/catalog/ports"
)

var _ ports.Catalog = (*Catalog)(nil)

// Catalog reads and edits games through the shop API.
type Catalog struct {
	client *shop.Client
}

func NewCatalog(client *shop.Client) *Catalog {
	return &Catalog{client: client}
}

func (c *Catalog) List(ctx context.Context) ([]domain.Game, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	games, err := c.client.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Game, 0, len(games))
	for _, g := range games {
		out = append(out, FromPayload(g))
	}
	return out, nil
}

func (c *Catalog) Get(ctx context.Context, id string) (*domain.Game, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	game, err := c.client.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	out := FromPayload(*game)
	return &out, nil
}

func (c *Catalog) Create(ctx context.Context, token string, game domain.Game) (*domain.Game, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	created, err := c.client.CreateGame(ctx, ToPayload(game), shop.WithBearer(token))
	if err != nil {
		return nil, err
	}
	out := FromPayload(*created)
	return &out, nil
}

func (c *Catalog) Update(ctx context.Context, token, id string, game domain.Game) (*domain.Game, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	updated, err := c.client.UpdateGame(ctx, id, ToPayload(game), shop.WithBearer(token))
	if err != nil {
		return nil, err
	}
	out := FromPayload(*updated)
	return &out, nil
}

func (c *Catalog) Delete(ctx context.Context, token, id string) error {
	if err := c.ensureClient(); err != nil {
		return err
	}
	return c.client.DeleteGame(ctx, id, shop.WithBearer(token))
}

func (c *Catalog) ensureClient() error {
	if c == nil || c.client == nil {
		return errors.New("remote catalog not configured")
	}
	return nil
}

// FromPayload maps the wire game onto the domain type.
func FromPayload(g shop.Game) domain.Game {
	platforms := make([]domain.Platform, 0, len(g.Platform))
	for _, p := range g.Platform {
		platforms = append(platforms, domain.Platform(p))
	}
	return domain.Game{
		ID:            g.ID,
		Title:         g.Title,
		Description:   g.Description,
		Price:         g.Price,
		Genre:         domain.Genre(g.Genre),
		Image:         g.Image,
		ImagePublicID: g.ImagePublicID,
		DownloadURL:   g.DownloadURL,
		Stock:         g.Stock,
		Platforms:     platforms,
		Rating:        g.Rating,
	}
}

func ToPayload(g domain.Game) shop.Game {
	platforms := make([]string, 0, len(g.Platforms))
	for _, p := range g.Platforms {
		platforms = append(platforms, string(p))
	}
	return shop.Game{
		ID:            g.ID,
		Title:         g.Title,
		Description:   g.Description,
		Price:         g.Price,
		Genre:         string(g.Genre),
		Image:         g.Image,
		ImagePublicID: g.ImagePublicID,
		DownloadURL:   g.DownloadURL,
		Stock:         g.Stock,
		Platform:      platforms,
		Rating:        g.Rating,
	}
}
