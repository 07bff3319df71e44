package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/deppfellow/go-catalog/internal/model"
	"github.com/deppfellow/go-catalog/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
)

type mockQueries struct {
	mock.Mock
}

func (m *mockQueries) AllProducts(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Error(1)
}

func (m *mockQueries) ProductByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*model.Product)
	return product, args.Error(1)
}

type mockCommands struct {
	mock.Mock
}

func (m *mockCommands) CreateProduct(ctx context.Context, payload model.CreateProductModel) (*model.Product, error) {
	args := m.Called(ctx, payload)
	product, _ := args.Get(0).(*model.Product)
	return product, args.Error(1)
}

func (m *mockCommands) UpdateProduct(ctx context.Context, id string, payload model.UpdateProductModel) (*model.Product, error) {
	args := m.Called(ctx, id, payload)
	product, _ := args.Get(0).(*model.Product)
	return product, args.Error(1)
}

func (m *mockCommands) DeleteProductByID(ctx context.Context, id string) (service.DeleteResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(service.DeleteResult), args.Error(1)
}

// newContext builds an echo context for target; params are name/value
// pairs bound as path parameters.
func newContext(method, target, body string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}

	c := echo.New().NewContext(req, rec)
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}
