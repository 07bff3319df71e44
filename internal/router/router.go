// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and the static route table, mapping
// method and path to the query and command handlers.
package router

import (
	"fmt"
	"net/http"

	"github.com/deppfellow/go-catalog/internal/handler"
	"github.com/deppfellow/go-catalog/internal/middleware"
	"github.com/deppfellow/go-catalog/internal/server"
	"github.com/labstack/echo/v4"
)

// Route binds one method and path pattern to a handler.
type Route struct {
	Method  string
	Path    string
	Handler echo.HandlerFunc
}

// itemRoutes is the catalog route table.
func itemRoutes(h *handler.Handlers) []Route {
	return []Route{
		{http.MethodGet, "/items", handler.Handle("list_products", h.Query.ListProducts)},
		{http.MethodGet, "/items/:id", handler.Handle("get_product", h.Query.GetProductByID)},
		{http.MethodPost, "/items", handler.Handle("create_product", h.Command.CreateProduct)},
		{http.MethodPut, "/items/:id", handler.Handle("update_product", h.Command.UpdateProduct)},
		{http.MethodDelete, "/items/:id", handler.Handle("delete_product", h.Command.DeleteProductByID)},
	}
}

// NewRouter builds the echo instance serving the catalog API.
func NewRouter(s *server.Server, h *handler.Handlers, m *middleware.Middlewares) (*echo.Echo, error) {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = m.Global.GlobalErrorHandler

	// RequestID and the New Relic transaction must exist before the
	// context logger is built; rate limiting runs last so rejected
	// requests are still logged and traced.
	router.Use(
		middleware.RequestID(),
		m.Tracing.NewRelicMiddleware(),
		m.Tracing.EnhanceTracing(),
		m.ContextEnhancer.EnhanceContext(),
		m.Global.RequestLogger(),
		m.Global.Recover(),
		m.Global.CORS(),
		m.Global.Secure(),
		m.RateLimit.Limit(),
	)

	registerSystemRoutes(router, h)

	if err := register(router, itemRoutes(h)); err != nil {
		return nil, err
	}

	s.Logger.Debug().Int("routes", len(router.Routes())).Msg("router initialized")
	return router, nil
}

// register adds routes to e, failing on the first (method, path) pair
// that is already taken.
func register(e *echo.Echo, routes []Route) error {
	seen := make(map[string]struct{}, len(e.Routes())+len(routes))
	for _, r := range e.Routes() {
		seen[r.Method+" "+r.Path] = struct{}{}
	}

	for _, r := range routes {
		key := r.Method + " " + r.Path
		if _, ok := seen[key]; ok {
			return fmt.Errorf("duplicate route %s", key)
		}
		seen[key] = struct{}{}

		e.Add(r.Method, r.Path, r.Handler)
	}
	return nil
}
