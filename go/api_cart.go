package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	carthttpmapper "github.com/Apurer/game-storefront/internal/domains/cart/adapters/http/mapper"
	cartdomain "github.com/Apurer/game-storefront/internal/domains/cart/domain"
	cartports "github.com/Apurer/game-storefront/internal/domains/cart/ports"
	catalogapp "github.com/Apurer/game-storefront/internal/domains/catalog/application"
	apierrors "github.com/Apurer/game-storefront/internal/shared/errors"
)

// CartAPI exposes the visitor's cart store.
type CartAPI struct {
	catalog *catalogapp.Service
}

// NewCartAPI wires dependencies.
func NewCartAPI(catalog *catalogapp.Service) CartAPI {
	return CartAPI{catalog: catalog}
}

// Get /cart
// Show the cart with its count and total
func (api *CartAPI) GetCart(c *gin.Context) {
	v, ok := mustVisitor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromStore(v.Cart))
}

// Post /cart/items
// Add a game to the cart
func (api *CartAPI) AddItem(c *gin.Context) {
	v, ok := mustVisitor(c)
	if !ok {
		return
	}
	var payload carthttpmapper.AddItem
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	ctx := c.Request.Context()
	game, err := api.catalog.Game(ctx, payload.GameID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !game.InStock() {
		respondProblem(c, apierrors.ErrConflict.
			WithDetail("game is out of stock").
			WithExtension("itemId", game.ID))
		return
	}
	item, err := game.ToCartItem()
	if err != nil {
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	respondMutation(c, http.StatusCreated, v.Cart.Add(ctx, item), item.ID, v.Cart)
}

// Delete /cart/items/:id
// Remove a game from the cart
func (api *CartAPI) RemoveItem(c *gin.Context) {
	v, ok := mustVisitor(c)
	if !ok {
		return
	}
	id := c.Param("id")
	respondMutation(c, http.StatusOK, v.Cart.Remove(c.Request.Context(), id), id, v.Cart)
}

// Delete /cart
// Empty the cart
func (api *CartAPI) ClearCart(c *gin.Context) {
	v, ok := mustVisitor(c)
	if !ok {
		return
	}
	respondMutation(c, http.StatusOK, v.Cart.Clear(c.Request.Context()), "", v.Cart)
}

// respondMutation reports a cart outcome. Duplicate, not-found and invalid
// outcomes are problems carrying the same fields as a success.
func respondMutation(c *gin.Context, status int, outcome cartdomain.Outcome, itemID string, store cartports.Store) {
	body := carthttpmapper.FromOutcome(outcome, itemID, store)
	var problem apierrors.ProblemDetail
	switch outcome {
	case cartdomain.OutcomeDuplicate:
		problem = apierrors.ErrConflict
	case cartdomain.OutcomeNotFound:
		problem = apierrors.ErrNotFound
	case cartdomain.OutcomeInvalid:
		problem = apierrors.ErrValidation
	default:
		c.JSON(status, body)
		return
	}
	respondProblem(c, problem.
		WithDetail(outcome.Err().Error()).
		WithExtension("outcome", body.Outcome).
		WithExtension("itemId", body.ItemID).
		WithExtension("count", body.Count).
		WithExtension("total", body.Total))
}
