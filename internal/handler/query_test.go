package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/deppfellow/go-catalog/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const widgetJSON = `{"id":"1","name":"Widget","description":"","price":"0",` +
	`"created_at":"0001-01-01T00:00:00Z","updated_at":"0001-01-01T00:00:00Z"}`

func TestListProducts(t *testing.T) {
	queries := new(mockQueries)
	queries.On("AllProducts", mock.Anything).Return([]model.Product{{ID: "1", Name: "Widget"}}, nil)

	c, rec := newContext(http.MethodGet, "/items", "")
	err := Handle("list_products", NewQueryHandler(queries).ListProducts)(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, echo.MIMEApplicationJSON, rec.Header().Get(echo.HeaderContentType))
	assert.JSONEq(t, "["+widgetJSON+"]", rec.Body.String())
	queries.AssertExpectations(t)
}

func TestListProductsEmpty(t *testing.T) {
	queries := new(mockQueries)
	queries.On("AllProducts", mock.Anything).Return([]model.Product{}, nil)

	c, rec := newContext(http.MethodGet, "/items", "")
	require.NoError(t, Handle("list_products", NewQueryHandler(queries).ListProducts)(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
}

func TestListProductsFailureIsPropagated(t *testing.T) {
	boom := errors.New("read model unavailable")
	queries := new(mockQueries)
	queries.On("AllProducts", mock.Anything).Return(nil, boom)

	c, rec := newContext(http.MethodGet, "/items", "")
	err := Handle("list_products", NewQueryHandler(queries).ListProducts)(c)

	assert.ErrorIs(t, err, boom)
	assert.False(t, c.Response().Committed)
	assert.Empty(t, rec.Body.String())
}

func TestGetProductByID(t *testing.T) {
	queries := new(mockQueries)
	queries.On("ProductByID", mock.Anything, "1").Return(&model.Product{ID: "1", Name: "Widget"}, nil)

	c, rec := newContext(http.MethodGet, "/items/1", "", "id", "1")
	require.NoError(t, Handle("get_product", NewQueryHandler(queries).GetProductByID)(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, echo.MIMEApplicationJSON, rec.Header().Get(echo.HeaderContentType))
	assert.JSONEq(t, widgetJSON, rec.Body.String())
	queries.AssertExpectations(t)
}

func TestGetProductByIDMissingID(t *testing.T) {
	for name, params := range map[string][]string{
		"unbound": nil,
		"empty":   {"id", ""},
	} {
		t.Run(name, func(t *testing.T) {
			queries := new(mockQueries)

			c, rec := newContext(http.MethodGet, "/items/", "", params...)
			require.NoError(t, Handle("get_product", NewQueryHandler(queries).GetProductByID)(c))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, rec.Body.String())
			queries.AssertNotCalled(t, "ProductByID", mock.Anything, mock.Anything)
		})
	}
}

func TestGetProductByIDNotFoundIsPropagated(t *testing.T) {
	queries := new(mockQueries)
	queries.On("ProductByID", mock.Anything, "404").Return(nil, model.ErrProductNotFound)

	c, _ := newContext(http.MethodGet, "/items/404", "", "id", "404")
	err := Handle("get_product", NewQueryHandler(queries).GetProductByID)(c)

	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestProductPriceAndTimestampsRoundTrip(t *testing.T) {
	stamp := time.Date(2024, 5, 1, 12, 30, 45, 123456789, time.UTC)
	want := model.Product{
		ID:        "1",
		Name:      "Widget",
		Price:     decimal.RequireFromString("9.99"),
		CreatedAt: stamp,
		UpdatedAt: stamp.Add(time.Hour),
	}

	assertSameProduct := func(t *testing.T, got model.Product) {
		t.Helper()
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Name, got.Name)
		assert.True(t, want.Price.Equal(got.Price), "price %s != %s", got.Price, want.Price)
		assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "created_at %s != %s", got.CreatedAt, want.CreatedAt)
		assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt), "updated_at %s != %s", got.UpdatedAt, want.UpdatedAt)
	}

	t.Run("by id", func(t *testing.T) {
		queries := new(mockQueries)
		queries.On("ProductByID", mock.Anything, "1").Return(&want, nil)

		c, rec := newContext(http.MethodGet, "/items/1", "", "id", "1")
		require.NoError(t, Handle("get_product", NewQueryHandler(queries).GetProductByID)(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var got model.Product
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assertSameProduct(t, got)
	})

	t.Run("list", func(t *testing.T) {
		queries := new(mockQueries)
		queries.On("AllProducts", mock.Anything).Return([]model.Product{want}, nil)

		c, rec := newContext(http.MethodGet, "/items", "")
		require.NoError(t, Handle("list_products", NewQueryHandler(queries).ListProducts)(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var got []model.Product
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assertSameProduct(t, got[0])
	})
}
