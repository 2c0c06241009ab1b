// Package domain describes catalog games and the derived views the storefront
// computes from a catalog listing.
package domain

import (
	"errors"
	"math"
	"strings"

	cartdomain "github.com/Apurer/game-storefront/internal/domains/cart/domain"
)

type Genre string

const (
	GenreAction     Genre = "Action"
	GenreAdventure  Genre = "Adventure"
	GenreRPG        Genre = "RPG"
	GenreStrategy   Genre = "Strategy"
	GenreSports     Genre = "Sports"
	GenreRacing     Genre = "Racing"
	GenreSimulation Genre = "Simulation"
	GenrePuzzle     Genre = "Puzzle"
	GenreHorror     Genre = "Horror"
	GenreFighting   Genre = "Fighting"
	GenrePlatformer Genre = "Platformer"
	GenreShooter    Genre = "Shooter"
	GenreOther      Genre = "Other"

	// GenreAll is the listing filter value that disables genre filtering.
	GenreAll Genre = "All"
)

// Genres lists the selectable genres in display order.
var Genres = []Genre{
	GenreAction, GenreAdventure, GenreRPG, GenreStrategy, GenreSports, GenreRacing,
	GenreSimulation, GenrePuzzle, GenreHorror, GenreFighting, GenrePlatformer, GenreShooter, GenreOther,
}

type Platform string

const (
	PlatformPC          Platform = "PC"
	PlatformPlayStation Platform = "PlayStation"
	PlatformXbox        Platform = "Xbox"
	PlatformNintendo    Platform = "Nintendo"
	PlatformMobile      Platform = "Mobile"
)

var Platforms = []Platform{PlatformPC, PlatformPlayStation, PlatformXbox, PlatformNintendo, PlatformMobile}

var (
	ErrEmptyTitle      = errors.New("game title is required")
	ErrInvalidPrice    = errors.New("game price must be a non-negative number")
	ErrInvalidStock    = errors.New("game stock must not be negative")
	ErrInvalidRating   = errors.New("game rating must be between 0 and 5")
	ErrUnknownGenre    = errors.New("unknown game genre")
	ErrUnknownPlatform = errors.New("unknown game platform")
)

// Game is a catalog entry as served by the shop API.
type Game struct {
	ID            string
	Title         string
	Description   string
	Price         float64
	Genre         Genre
	Image         string
	ImagePublicID string
	DownloadURL   string
	Stock         int
	Platforms     []Platform
	Rating        float64
}

// NewGame validates an admin-authored game. An empty platform list defaults to PC.
func NewGame(g Game) (*Game, error) {
	g.Title = strings.TrimSpace(g.Title)
	g.Description = strings.TrimSpace(g.Description)
	if len(g.Platforms) == 0 {
		g.Platforms = []Platform{PlatformPC}
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

func (g *Game) Validate() error {
	if g.Title == "" {
		return ErrEmptyTitle
	}
	if g.Price < 0 || math.IsNaN(g.Price) || math.IsInf(g.Price, 0) {
		return ErrInvalidPrice
	}
	if g.Stock < 0 {
		return ErrInvalidStock
	}
	if g.Rating < 0 || g.Rating > 5 || math.IsNaN(g.Rating) {
		return ErrInvalidRating
	}
	if !validGenre(g.Genre) {
		return ErrUnknownGenre
	}
	for _, p := range g.Platforms {
		if !validPlatform(p) {
			return ErrUnknownPlatform
		}
	}
	return nil
}

// InStock reports whether at least one copy is available.
func (g *Game) InStock() bool {
	return g != nil && g.Stock > 0
}

// ToCartItem takes the snapshot the cart keeps for this game.
func (g *Game) ToCartItem() (cartdomain.CartItem, error) {
	return cartdomain.NewCartItem(g.ID, g.Title, g.Price, string(g.Genre), g.Image)
}

func validGenre(genre Genre) bool {
	for _, known := range Genres {
		if genre == known {
			return true
		}
	}
	return false
}

func validPlatform(platform Platform) bool {
	for _, known := range Platforms {
		if platform == known {
			return true
		}
	}
	return false
}
