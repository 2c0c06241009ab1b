package storefrontserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	cataloghttpmapper "github.com/Apurer/game-storefront/internal/domains/catalog/adapters/http/mapper"
	catalogapp "github.com/Apurer/game-storefront/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/game-storefront/internal/domains/catalog/domain"
)

// CatalogAPI serves the public browsing pages.
type CatalogAPI struct {
	catalog *catalogapp.Service
}

// NewCatalogAPI wires dependencies.
func NewCatalogAPI(catalog *catalogapp.Service) CatalogAPI {
	return CatalogAPI{catalog: catalog}
}

// Get /
// List games filtered by search term and genre
func (api *CatalogAPI) Home(c *gin.Context) {
	v, ok := mustVisitor(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	query := catalogdomain.Query{
		Search: strings.TrimSpace(c.Query("search")),
		Genre:  catalogdomain.Genre(strings.TrimSpace(c.Query("genre"))),
	}
	listing, err := api.catalog.Browse(ctx, query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	var recent []string
	if query.Search != "" {
		recent = v.Recent.Record(ctx, query.Search)
	} else {
		recent = v.Recent.List(ctx)
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromListing(listing, query, recent))
}

// Get /game/:id
// Find game by ID
func (api *CatalogAPI) GameDetails(c *gin.Context) {
	game, err := api.catalog.Game(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromGame(*game))
}

// Get /search/suggestions
// Typeahead titles for the search box
func (api *CatalogAPI) Suggestions(c *gin.Context) {
	games, err := api.catalog.Suggestions(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromSuggestions(games))
}

// Delete /search/recent
// Forget the visitor's recent searches
func (api *CatalogAPI) ClearRecentSearches(c *gin.Context) {
	v, ok := mustVisitor(c)
	if !ok {
		return
	}
	v.Recent.Clear(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// Get /about
func (api *CatalogAPI) About(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        "Game Storefront",
		"description": "Browse, buy and download games.",
		"genres":      catalogdomain.Genres,
		"platforms":   catalogdomain.Platforms,
	})
}
