package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/go-catalog/internal/model"
	"github.com/deppfellow/go-catalog/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct(t *testing.T) {
	commands := new(mockCommands)
	commands.On("CreateProduct", mock.Anything, mock.MatchedBy(func(p model.CreateProductModel) bool {
		return p.Name == "Widget" && p.Price.Equal(decimal.RequireFromString("9.99"))
	})).Return(&model.Product{ID: "7", Name: "Widget"}, nil)

	c, rec := newContext(http.MethodPost, "https://host/items", `{"name":"Widget","price":"9.99"}`)
	require.NoError(t, Handle("create_product", NewCommandHandler(commands).CreateProduct)(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, echo.MIMEApplicationJSON, rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "https://host/items/7", rec.Header().Get(echo.HeaderLocation))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "7", body["id"])
	commands.AssertExpectations(t)
}

func TestCreateProductTrailingSlash(t *testing.T) {
	commands := new(mockCommands)
	commands.On("CreateProduct", mock.Anything, mock.Anything).Return(&model.Product{ID: "7"}, nil)

	c, rec := newContext(http.MethodPost, "http://host/items/?source=test", `{"name":"Widget"}`)
	require.NoError(t, Handle("create_product", NewCommandHandler(commands).CreateProduct)(c))

	assert.Equal(t, "http://host/items/7", rec.Header().Get(echo.HeaderLocation))
}

func TestCreateProductUndecodableBody(t *testing.T) {
	for name, body := range map[string]string{
		"empty":         "",
		"malformed":     `{"name":`,
		"type mismatch": `{"name":42}`,
		"bad price":     `{"name":"Widget","price":"cheap"}`,
		"trailing data": `{"name":"Widget"} trailing garbage`,
		"extra braces":  `{"name":"Widget"}}}}`,
		"second value":  `{"name":"Widget"} {"name":"Gadget"}`,
		"null":          `null`,
	} {
		t.Run(name, func(t *testing.T) {
			commands := new(mockCommands)

			c, rec := newContext(http.MethodPost, "/items", body)
			require.NoError(t, Handle("create_product", NewCommandHandler(commands).CreateProduct)(c))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, rec.Body.String())
			assert.Empty(t, rec.Header().Get(echo.HeaderLocation))
			commands.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateProductFailureIsPropagated(t *testing.T) {
	boom := errors.New("write model unavailable")
	commands := new(mockCommands)
	commands.On("CreateProduct", mock.Anything, mock.Anything).Return(nil, boom)

	c, rec := newContext(http.MethodPost, "/items", `{"name":"Widget"}`)
	err := Handle("create_product", NewCommandHandler(commands).CreateProduct)(c)

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, rec.Header().Get(echo.HeaderLocation))
}

func TestUpdateProduct(t *testing.T) {
	commands := new(mockCommands)
	commands.On("UpdateProduct", mock.Anything, "7", mock.MatchedBy(func(p model.UpdateProductModel) bool {
		return p.Name == "Gadget"
	})).Return(&model.Product{ID: "7", Name: "Gadget"}, nil)

	c, rec := newContext(http.MethodPut, "/items/7", `{"name":"Gadget","price":1}`, "id", "7")
	require.NoError(t, Handle("update_product", NewCommandHandler(commands).UpdateProduct)(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, echo.MIMEApplicationJSON, rec.Header().Get(echo.HeaderContentType))
	commands.AssertExpectations(t)
}

func TestUpdateProductClientErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		params []string
	}{
		{name: "missing id", body: `{"name":"Gadget"}`},
		{name: "empty id", body: `{"name":"Gadget"}`, params: []string{"id", ""}},
		{name: "undecodable body", body: `[1,2]`, params: []string{"id", "7"}},
		{name: "trailing data", body: `{"name":"Gadget"} trailing garbage`, params: []string{"id", "7"}},
		{name: "extra braces", body: `{"name":"Gadget"}}}}`, params: []string{"id", "7"}},
		{name: "null body", body: `null`, params: []string{"id", "7"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commands := new(mockCommands)

			c, rec := newContext(http.MethodPut, "/items/7", tt.body, tt.params...)
			require.NoError(t, Handle("update_product", NewCommandHandler(commands).UpdateProduct)(c))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, rec.Body.String())
			commands.AssertNotCalled(t, "UpdateProduct", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestDecodeBodyAcceptsTrailingWhitespace(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/items", "{\"name\":\"Widget\"}\n\t ")

	payload, err := decodeBody[model.CreateProductModel](c)

	require.NoError(t, err)
	assert.Equal(t, "Widget", payload.Name)
}

func TestUpdateProductFailureIsPropagated(t *testing.T) {
	commands := new(mockCommands)
	commands.On("UpdateProduct", mock.Anything, "7", mock.Anything).Return(nil, model.ErrProductNotFound)

	c, _ := newContext(http.MethodPut, "/items/7", `{"name":"Gadget"}`, "id", "7")
	err := Handle("update_product", NewCommandHandler(commands).UpdateProduct)(c)

	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestDeleteProductByID(t *testing.T) {
	boom := errors.New("write model unavailable")

	tests := []struct {
		name   string
		result service.DeleteResult
		err    error
		status int
	}{
		{name: "deleted", result: service.DeleteResultDeleted, status: http.StatusNoContent},
		{name: "not found", result: service.DeleteResultNotFound, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commands := new(mockCommands)
			commands.On("DeleteProductByID", mock.Anything, "7").Return(tt.result, tt.err)

			c, rec := newContext(http.MethodDelete, "/items/7", "", "id", "7")
			require.NoError(t, Handle("delete_product", NewCommandHandler(commands).DeleteProductByID)(c))

			assert.Equal(t, tt.status, rec.Code)
			assert.Empty(t, rec.Body.String())
		})
	}

	t.Run("failure", func(t *testing.T) {
		commands := new(mockCommands)
		commands.On("DeleteProductByID", mock.Anything, "7").Return(service.DeleteResultUnknown, boom)

		c, _ := newContext(http.MethodDelete, "/items/7", "", "id", "7")
		err := Handle("delete_product", NewCommandHandler(commands).DeleteProductByID)(c)

		assert.ErrorIs(t, err, boom)
		assert.False(t, c.Response().Committed)
	})

	t.Run("unknown result", func(t *testing.T) {
		commands := new(mockCommands)
		commands.On("DeleteProductByID", mock.Anything, "7").Return(service.DeleteResultUnknown, nil)

		c, _ := newContext(http.MethodDelete, "/items/7", "", "id", "7")
		err := Handle("delete_product", NewCommandHandler(commands).DeleteProductByID)(c)

		assert.Error(t, err)
		assert.False(t, c.Response().Committed)
	})

	t.Run("missing id", func(t *testing.T) {
		commands := new(mockCommands)

		c, rec := newContext(http.MethodDelete, "/items/", "")
		require.NoError(t, Handle("delete_product", NewCommandHandler(commands).DeleteProductByID)(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		commands.AssertNotCalled(t, "DeleteProductByID", mock.Anything, mock.Anything)
	})
}

func TestJoinLocation(t *testing.T) {
	assert.Equal(t, "/items/42", joinLocation("/items", "42"))
	assert.Equal(t, "/items/42", joinLocation("/items/", "42"))
	assert.Equal(t, "https://host/items/7", joinLocation("https://host/items", "7"))
}
