package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionRouter(captured *uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CartSession(DefaultCartSessionConfig()))
	r.GET("/cart", func(c *gin.Context) {
		if id, ok := GetCartSession(c); ok {
			*captured = id
		}
		c.Status(http.StatusOK)
	})
	return r
}

func TestCartSession_MintsNewSession(t *testing.T) {
	var captured uuid.UUID
	r := newSessionRouter(&captured)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	r.ServeHTTP(w, req)

	require.NotEqual(t, uuid.Nil, captured)
	assert.Equal(t, captured.String(), w.Header().Get(CartSessionHeader))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "cart_session", cookies[0].Name)
	assert.Equal(t, captured.String(), cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestCartSession_ReusesCookieSession(t *testing.T) {
	var captured uuid.UUID
	r := newSessionRouter(&captured)
	existing := uuid.New()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: "cart_session", Value: existing.String()})
	r.ServeHTTP(w, req)

	assert.Equal(t, existing, captured)
}

func TestCartSession_ReusesHeaderSession(t *testing.T) {
	var captured uuid.UUID
	r := newSessionRouter(&captured)
	existing := uuid.New()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set(CartSessionHeader, existing.String())
	r.ServeHTTP(w, req)

	assert.Equal(t, existing, captured)
}

func TestCartSession_ReplacesMalformedSession(t *testing.T) {
	var captured uuid.UUID
	r := newSessionRouter(&captured)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: "cart_session", Value: "not-a-uuid"})
	r.ServeHTTP(w, req)

	assert.NotEqual(t, uuid.Nil, captured)
	assert.NotEqual(t, "not-a-uuid", captured.String())
}
