package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cataloghttpmapper "github.com/Apurer/game-storefront/internal/domains/catalog/adapters/http/mapper"
	catalogapp "github.com/Apurer/game-storefront/internal/domains/catalog/application"
	orderhttpmapper "github.com/Apurer/game-storefront/internal/domains/orders/adapters/http/mapper"
	ordersports "github.com/Apurer/game-storefront/internal/domains/orders/ports"
	userhttpmapper "github.com/Apurer/game-storefront/internal/domains/users/adapters/http/mapper"
	userapp "github.com/Apurer/game-storefront/internal/domains/users/application"
)

// AdminAPI backs the back-office pages. Every route sits behind the admin guard.
type AdminAPI struct {
	catalog *catalogapp.Service
	orders  ordersports.Service
	users   *userapp.Service
}

// NewAdminAPI wires dependencies.
func NewAdminAPI(catalog *catalogapp.Service, orders ordersports.Service, users *userapp.Service) AdminAPI {
	return AdminAPI{catalog: catalog, orders: orders, users: users}
}

// Get /admin/dashboard
// Totals for games, orders, users and revenue
func (api *AdminAPI) Dashboard(c *gin.Context) {
	v, ok := mustVisitor(c)
	if !ok {
		return
	}
	dashboard, err := api.orders.Dashboard(c.Request.Context(), sessionToken(v))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDashboard(dashboard))
}

// Get /admin/games
func (api *AdminAPI) ListGames(c *gin.Context) {
	games, err := api.catalog.AdminList(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromGames(games))
}

// Post /admin/games
// Add a new game to the catalog
func (api *AdminAPI) CreateGame(c *gin.Context) {
	v, ok := mustVisitor(c)
	if !ok {
		return
	}
	var payload cataloghttpmapper.GameInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	created, err := api.catalog.CreateGame(c.Request.Context(), sessionToken(v), cataloghttpmapper.ToDomainGame(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cataloghttpmapper.FromGame(*created))
}

// Put /admin/games/:id
// Update an existing game
func (api *AdminAPI) UpdateGame(c *gin.Context) {
	v, ok := mustVisitor(c)
	if !ok {
		return
	}
	var payload cataloghttpmapper.GameInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.catalog.UpdateGame(c.Request.Context(), sessionToken(v), c.Param("id"), cataloghttpmapper.ToDomainGame(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromGame(*updated))
}

// Delete /admin/games/:id
// Deletes a game
func (api *AdminAPI) DeleteGame(c *gin.Context) {
	v, ok := mustVisitor(c)
	if !ok {
		return
	}
	if err := api.catalog.DeleteGame(c.Request.Context(), sessionToken(v), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /admin/orders
// All orders, optionally filtered by customer
func (api *AdminAPI) ListOrders(c *gin.Context) {
	v, ok := mustVisitor(c)
	if !ok {
		return
	}
	orders, err := api.orders.AllOrders(c.Request.Context(), sessionToken(v), c.Query("search"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromOrders(orders))
}

// Put /admin/orders/:id/status
// Move an order through its lifecycle
func (api *AdminAPI) UpdateOrderStatus(c *gin.Context) {
	v, ok := mustVisitor(c)
	if !ok {
		return
	}
	var payload orderhttpmapper.StatusUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	id := c.Param("id")
	status, err := api.orders.UpdateStatus(c.Request.Context(), sessionToken(v), id, payload.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": string(status)})
}

// Get /admin/users
func (api *AdminAPI) ListUsers(c *gin.Context) {
	v, ok := mustVisitor(c)
	if !ok {
		return
	}
	accounts, err := api.users.List(c.Request.Context(), sessionToken(v))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromAccounts(accounts))
}

// Post /admin/users
// Create an account with a chosen role
func (api *AdminAPI) CreateUser(c *gin.Context) {
	v, ok := mustVisitor(c)
	if !ok {
		return
	}
	var payload userhttpmapper.NewUser
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	created, err := api.users.Create(c.Request.Context(), sessionToken(v), userhttpmapper.ToNewAccount(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userhttpmapper.FromAccount(*created))
}
