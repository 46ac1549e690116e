package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runGuarded(t *testing.T, apiKey string, decorate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Middleware(apiKey)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec
}

func TestMiddlewareAcceptsBearerToken(t *testing.T) {
	rec := runGuarded(t, "secret", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer secret")
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddlewareAcceptsQueryToken(t *testing.T) {
	rec := runGuarded(t, "secret", func(req *http.Request) {
		req.URL.RawQuery = "token=secret"
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	rec := runGuarded(t, "secret", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareRejectsWrongToken(t *testing.T) {
	rec := runGuarded(t, "secret", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer nope")
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareDisabledWithoutKey(t *testing.T) {
	rec := runGuarded(t, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
