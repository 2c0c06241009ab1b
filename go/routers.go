package storefrontserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	accesshttp "github.com/Apurer/game-storefront/internal/domains/access/adapters/http"
	accessdomain "github.com/Apurer/game-storefront/internal/domains/access/domain"
	"github.com/Apurer/game-storefront/internal/visitors"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// Access is what the visitor needs before HandlerFunc runs.
	Access Access
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// Access classifies routes for the session guard.
type Access int

const (
	Public Access = iota
	Authenticated
	Admin
)

// ApiHandleFunctions bundles the handler groups and what they share.
type ApiHandleFunctions struct {
	Visitors *visitors.Registry

	CatalogAPI CatalogAPI
	CartAPI    CartAPI
	SessionAPI SessionAPI
	OrdersAPI  OrdersAPI
	AdminAPI   AdminAPI

	// Metrics serves GET /metrics when set.
	Metrics http.Handler
}

type routerConfig struct {
	cookie      string
	restoreWait time.Duration
	logger      *slog.Logger
}

// RouterOption tunes NewRouter.
type RouterOption func(*routerConfig)

func WithVisitorCookie(name string) RouterOption {
	return func(cfg *routerConfig) {
		if name != "" {
			cfg.cookie = name
		}
	}
}

// WithRestoreWait bounds how long guarded routes wait for a session restore.
func WithRestoreWait(wait time.Duration) RouterOption {
	return func(cfg *routerConfig) {
		cfg.restoreWait = wait
	}
}

func WithLogger(logger *slog.Logger) RouterOption {
	return func(cfg *routerConfig) {
		cfg.logger = logger
	}
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions, opts ...RouterOption) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions, opts...)
}

// NewRouterWithGinEngine adds the storefront routes to an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions, opts ...RouterOption) *gin.Engine {
	cfg := routerConfig{cookie: DefaultVisitorCookie, restoreWait: -1}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	guardOpts := []accesshttp.GuardOption{accesshttp.WithLogger(cfg.logger)}
	if cfg.restoreWait >= 0 {
		guardOpts = append(guardOpts, accesshttp.WithRestoreWait(cfg.restoreWait))
	}
	guards := map[Access]gin.HandlerFunc{
		Authenticated: accesshttp.Guard(accessdomain.RequireAuthenticated, resolveSession, guardOpts...),
		Admin:         accesshttp.Guard(accessdomain.RequireAdmin, resolveSession, guardOpts...),
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if handleFunctions.Metrics != nil {
		router.GET("/metrics", gin.WrapH(handleFunctions.Metrics))
	}

	site := router.Group("/", VisitorMiddleware(handleFunctions.Visitors, cfg.cookie))
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		handlers := []gin.HandlerFunc{route.HandlerFunc}
		if guard, ok := guards[route.Access]; ok {
			handlers = []gin.HandlerFunc{guard, route.HandlerFunc}
		}
		site.Handle(route.Method, route.Pattern, handlers...)
	}
	return router
}

// DefaultHandleFunc answers routes without a handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"Home", http.MethodGet, "/", Public, handleFunctions.CatalogAPI.Home},
		{"GameDetails", http.MethodGet, "/game/:id", Public, handleFunctions.CatalogAPI.GameDetails},
		{"Suggestions", http.MethodGet, "/search/suggestions", Public, handleFunctions.CatalogAPI.Suggestions},
		{"ClearRecentSearches", http.MethodDelete, "/search/recent", Public, handleFunctions.CatalogAPI.ClearRecentSearches},
		{"About", http.MethodGet, "/about", Public, handleFunctions.CatalogAPI.About},

		{"LoginStatus", http.MethodGet, "/login", Public, handleFunctions.SessionAPI.LoginStatus},
		{"Login", http.MethodPost, "/login", Public, handleFunctions.SessionAPI.Login},
		{"Register", http.MethodPost, "/register", Public, handleFunctions.SessionAPI.Register},
		{"Logout", http.MethodPost, "/logout", Public, handleFunctions.SessionAPI.Logout},
		{"GetProfile", http.MethodGet, "/profile", Authenticated, handleFunctions.SessionAPI.GetProfile},
		{"UpdateProfile", http.MethodPut, "/profile", Authenticated, handleFunctions.SessionAPI.UpdateProfile},

		{"GetCart", http.MethodGet, "/cart", Authenticated, handleFunctions.CartAPI.GetCart},
		{"AddItem", http.MethodPost, "/cart/items", Authenticated, handleFunctions.CartAPI.AddItem},
		{"RemoveItem", http.MethodDelete, "/cart/items/:id", Authenticated, handleFunctions.CartAPI.RemoveItem},
		{"ClearCart", http.MethodDelete, "/cart", Authenticated, handleFunctions.CartAPI.ClearCart},
		{"Checkout", http.MethodPost, "/cart/checkout", Authenticated, handleFunctions.OrdersAPI.Checkout},

		{"MyOrders", http.MethodGet, "/my-orders", Authenticated, handleFunctions.OrdersAPI.MyOrders},
		{"OrderByID", http.MethodGet, "/order/:id", Authenticated, handleFunctions.OrdersAPI.OrderByID},

		{"Dashboard", http.MethodGet, "/admin/dashboard", Admin, handleFunctions.AdminAPI.Dashboard},
		{"AdminListGames", http.MethodGet, "/admin/games", Admin, handleFunctions.AdminAPI.ListGames},
		{"AdminCreateGame", http.MethodPost, "/admin/games", Admin, handleFunctions.AdminAPI.CreateGame},
		{"AdminUpdateGame", http.MethodPut, "/admin/games/:id", Admin, handleFunctions.AdminAPI.UpdateGame},
		{"AdminDeleteGame", http.MethodDelete, "/admin/games/:id", Admin, handleFunctions.AdminAPI.DeleteGame},
		{"AdminListOrders", http.MethodGet, "/admin/orders", Admin, handleFunctions.AdminAPI.ListOrders},
		{"AdminUpdateOrderStatus", http.MethodPut, "/admin/orders/:id/status", Admin, handleFunctions.AdminAPI.UpdateOrderStatus},
		{"AdminListUsers", http.MethodGet, "/admin/users", Admin, handleFunctions.AdminAPI.ListUsers},
		{"AdminCreateUser", http.MethodPost, "/admin/users", Admin, handleFunctions.AdminAPI.CreateUser},
	}
}
