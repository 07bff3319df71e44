package handler

import (
	"net/http"

	"github.com/deppfellow/go-catalog/internal/service"
	"github.com/labstack/echo/v4"
)

// QueryHandler dispatches read requests to the Queries capability.
type QueryHandler struct {
	queries service.Queries
}

func NewQueryHandler(queries service.Queries) *QueryHandler {
	return &QueryHandler{queries: queries}
}

// ListProducts answers GET /items with every product.
func (h *QueryHandler) ListProducts(c echo.Context) (*Response, error) {
	products, err := h.queries.AllProducts(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return JSON(http.StatusOK, products)
}

// GetProductByID answers GET /items/:id.
//
// Every Queries failure, including an unknown id, is propagated; only a
// missing id is answered here (400).
func (h *QueryHandler) GetProductByID(c echo.Context) (*Response, error) {
	id, ok := pathParam(c, "id")
	if !ok {
		return Empty(http.StatusBadRequest), nil
	}

	product, err := h.queries.ProductByID(c.Request().Context(), id)
	if err != nil {
		return nil, err
	}
	return JSON(http.StatusOK, product)
}
