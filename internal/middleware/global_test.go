package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/go-catalog/internal/config"
	"github.com/deppfellow/go-catalog/internal/errs"
	"github.com/deppfellow/go-catalog/internal/logger"
	"github.com/deppfellow/go-catalog/internal/server"
	"github.com/deppfellow/go-catalog/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newTestServer() *server.Server {
	log := zerolog.Nop()
	return &server.Server{
		Config:        &config.Config{},
		Logger:        &log,
		LoggerService: &logger.LoggerService{},
	}
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name   string
		method string
		err    error
		status int
		body   string
	}{
		{
			name:   "http error",
			method: http.MethodGet,
			err:    errs.NewTooManyRequestsError(),
			status: http.StatusTooManyRequests,
			body:   `{"code":"TOO_MANY_REQUESTS","message":"Rate limit exceeded","status":429}`,
		},
		{
			name:   "unknown route",
			method: http.MethodGet,
			err:    echo.ErrNotFound,
			status: http.StatusNotFound,
			body:   `{"code":"NOT_FOUND","message":"Route not found","status":404}`,
		},
		{
			name:   "wrong method",
			method: http.MethodGet,
			err:    echo.ErrMethodNotAllowed,
			status: http.StatusMethodNotAllowed,
			body:   `{"code":"METHOD_NOT_ALLOWED","message":"Method Not Allowed","status":405}`,
		},
		{
			name:   "subsystem failure",
			method: http.MethodGet,
			err:    fmt.Errorf("list products: %w", &sqlerr.Error{AppCode: "PRODUCT_ERROR", Message: "relation does not exist"}),
			status: http.StatusInternalServerError,
			body:   `{"code":"INTERNAL_SERVER_ERROR","message":"Internal Server Error","status":500}`,
		},
	}

	global := NewGlobalMiddlewares(newTestServer())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(tt.method, "/items", nil), rec)

			global.GlobalErrorHandler(tt.err, c)

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestGlobalErrorHandlerHead(t *testing.T) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodHead, "/items", nil), rec)

	NewGlobalMiddlewares(newTestServer()).GlobalErrorHandler(errors.New("boom"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestGlobalErrorHandlerCommittedResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/items", nil), rec)
	_ = c.NoContent(http.StatusNoContent)

	NewGlobalMiddlewares(newTestServer()).GlobalErrorHandler(errors.New("late failure"), c)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRequestID(t *testing.T) {
	handler := RequestID()(func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		assert.NoError(t, handler(c))
		assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
		assert.Equal(t, rec.Header().Get(RequestIDHeader), rec.Body.String())
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "req-1")
		rec := httptest.NewRecorder()

		assert.NoError(t, handler(echo.New().NewContext(req, rec)))
		assert.Equal(t, "req-1", rec.Header().Get(RequestIDHeader))
	})

	t.Run("malformed replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "bad id\nwith newline")
		rec := httptest.NewRecorder()

		assert.NoError(t, handler(echo.New().NewContext(req, rec)))
		assert.NotEqual(t, "bad id\nwith newline", rec.Header().Get(RequestIDHeader))
		assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
	})
}

func TestRateLimitDisabledIsPassThrough(t *testing.T) {
	called := false
	next := func(echo.Context) error {
		called = true
		return nil
	}

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.NoError(t, NewRateLimitMiddleware(newTestServer()).Limit()(next)(c))
	assert.True(t, called)
}

func TestRateLimitRejectsBurst(t *testing.T) {
	s := newTestServer()
	s.Config.Server.RateLimit = 1

	handler := NewRateLimitMiddleware(s).Limit()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	var last error
	for i := 0; i < 10; i++ {
		c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		last = handler(c)
	}

	var httpErr *errs.HTTPError
	assert.ErrorAs(t, last, &httpErr)
	assert.Equal(t, http.StatusTooManyRequests, httpErr.Status)
}
