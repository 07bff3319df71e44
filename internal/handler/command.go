package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/deppfellow/go-catalog/internal/model"
	"github.com/deppfellow/go-catalog/internal/service"
	"github.com/labstack/echo/v4"
)

// CommandHandler dispatches write requests to the Commands capability.
type CommandHandler struct {
	commands service.Commands
}

func NewCommandHandler(commands service.Commands) *CommandHandler {
	return &CommandHandler{commands: commands}
}

// CreateProduct answers POST /items with 201, the created product and a
// Location header pointing at it.
func (h *CommandHandler) CreateProduct(c echo.Context) (*Response, error) {
	payload, err := decodeBody[model.CreateProductModel](c)
	if err != nil {
		return Empty(http.StatusBadRequest), nil
	}

	product, err := h.commands.CreateProduct(c.Request().Context(), payload)
	if err != nil {
		return nil, err
	}

	response, err := JSON(http.StatusCreated, product)
	if err != nil {
		return nil, err
	}
	return response.WithHeader(echo.HeaderLocation, joinLocation(requestURI(c), product.ID)), nil
}

// UpdateProduct answers PUT /items/:id with the updated product.
func (h *CommandHandler) UpdateProduct(c echo.Context) (*Response, error) {
	id, ok := pathParam(c, "id")
	if !ok {
		return Empty(http.StatusBadRequest), nil
	}

	payload, err := decodeBody[model.UpdateProductModel](c)
	if err != nil {
		return Empty(http.StatusBadRequest), nil
	}

	product, err := h.commands.UpdateProduct(c.Request().Context(), id, payload)
	if err != nil {
		return nil, err
	}
	return JSON(http.StatusOK, product)
}

// DeleteProductByID answers DELETE /items/:id with 204 or 404.
func (h *CommandHandler) DeleteProductByID(c echo.Context) (*Response, error) {
	id, ok := pathParam(c, "id")
	if !ok {
		return Empty(http.StatusBadRequest), nil
	}

	result, err := h.commands.DeleteProductByID(c.Request().Context(), id)
	if err != nil {
		return nil, err
	}

	switch result {
	case service.DeleteResultDeleted:
		return Empty(http.StatusNoContent), nil
	case service.DeleteResultNotFound:
		return Empty(http.StatusNotFound), nil
	default:
		return nil, fmt.Errorf("delete product %s: unexpected result %s", id, result)
	}
}

// requestURI is the absolute URI of the request without its query string,
// e.g. https://host/items.
func requestURI(c echo.Context) string {
	r := c.Request()
	return c.Scheme() + "://" + r.Host + r.URL.EscapedPath()
}

// joinLocation appends id to uri with exactly one "/" in between when uri
// does not already end with one.
func joinLocation(uri, id string) string {
	if strings.HasSuffix(uri, "/") {
		return uri + id
	}
	return uri + "/" + id
}
