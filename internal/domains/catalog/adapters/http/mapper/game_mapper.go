package mapper

import (
	"github.com/Apurer/game-storefront/internal/domains/catalog/application"
	"github.com/Apurer/game-storefront/internal/domains/catalog/domain"
)

// Game is the JSON shape of a catalog entry.
type Game struct {
	ID            string   `json:"_id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	Genre         string   `json:"genre"`
	Image         string   `json:"image"`
	ImagePublicID string   `json:"imagePublicId,omitempty"`
	DownloadURL   string   `json:"downloadURL,omitempty"`
	Stock         int      `json:"stock"`
	InStock       bool     `json:"inStock"`
	Platforms     []string `json:"platform"`
	Rating        float64  `json:"rating"`
}

// GameInput is the admin create/update body.
type GameInput struct {
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	Genre         string   `json:"genre" binding:"required"`
	Image         string   `json:"image"`
	ImagePublicID string   `json:"imagePublicId"`
	DownloadURL   string   `json:"downloadURL"`
	Stock         int      `json:"stock"`
	Platforms     []string `json:"platform"`
	Rating        float64  `json:"rating"`
}

// Listing is the home page payload.
type Listing struct {
	Games   []Game   `json:"games"`
	Total   int      `json:"total"`
	Search  string   `json:"search,omitempty"`
	Genre   string   `json:"genre"`
	Genres  []string `json:"genres"`
	Recent  []string `json:"recentSearches"`
	Matches int      `json:"matches"`
}

// Suggestion is one typeahead entry.
type Suggestion struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
	Image string `json:"image,omitempty"`
}

func FromGame(game domain.Game) Game {
	out := Game{
		ID:            game.ID,
		Title:         game.Title,
		Description:   game.Description,
		Price:         game.Price,
		Genre:         string(game.Genre),
		Image:         game.Image,
		ImagePublicID: game.ImagePublicID,
		DownloadURL:   game.DownloadURL,
		Stock:         game.Stock,
		InStock:       game.InStock(),
		Platforms:     make([]string, 0, len(game.Platforms)),
		Rating:        game.Rating,
	}
	for _, p := range game.Platforms {
		out.Platforms = append(out.Platforms, string(p))
	}
	return out
}

func FromGames(games []domain.Game) []Game {
	result := make([]Game, 0, len(games))
	for _, game := range games {
		result = append(result, FromGame(game))
	}
	return result
}

func FromListing(listing *application.Listing, q domain.Query, recent []string) Listing {
	genre := string(q.Genre)
	if genre == "" {
		genre = string(domain.GenreAll)
	}
	genres := []string{string(domain.GenreAll)}
	for _, g := range domain.Genres {
		genres = append(genres, string(g))
	}
	if recent == nil {
		recent = []string{}
	}
	out := Listing{Search: q.Search, Genre: genre, Genres: genres, Recent: recent, Games: []Game{}}
	if listing != nil {
		out.Games = FromGames(listing.Games)
		out.Total = listing.Total
		out.Matches = len(listing.Games)
	}
	return out
}

func FromSuggestions(games []domain.Game) []Suggestion {
	result := make([]Suggestion, 0, len(games))
	for _, game := range games {
		result = append(result, Suggestion{ID: game.ID, Title: game.Title, Image: game.Image})
	}
	return result
}

func ToDomainGame(input GameInput) domain.Game {
	game := domain.Game{
		Title:         input.Title,
		Description:   input.Description,
		Price:         input.Price,
		Genre:         domain.Genre(input.Genre),
		Image:         input.Image,
		ImagePublicID: input.ImagePublicID,
		DownloadURL:   input.DownloadURL,
		Stock:         input.Stock,
		Rating:        input.Rating,
	}
	for _, p := range input.Platforms {
		game.Platforms = append(game.Platforms, domain.Platform(p))
	}
	return game
}
