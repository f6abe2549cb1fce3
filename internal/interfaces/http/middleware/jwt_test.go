package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tommyfx/storefront/internal/infrastructure/auth"
	"github.com/tommyfx/storefront/internal/infrastructure/config"
)

func newAuthRouter(jwtService *auth.JWTService, requireAuth bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(OptionalAuth(jwtService))
	handlers := []gin.HandlerFunc{}
	if requireAuth {
		handlers = append(handlers, RequireAuth())
	}
	handlers = append(handlers, func(c *gin.Context) {
		if userID, ok := GetJWTUserID(c); ok {
			c.String(http.StatusOK, userID.String())
			return
		}
		c.String(http.StatusOK, "guest")
	})
	r.GET("/orders", handlers...)
	return r
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-at-least-32-chars",
		Expiration: time.Hour,
		Issuer:     "test",
	})
}

func TestOptionalAuth(t *testing.T) {
	svc := testJWTService()

	t.Run("no token passes through as guest", func(t *testing.T) {
		r := newAuthRouter(svc, false)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "guest", w.Body.String())
	})

	t.Run("valid token attaches the user", func(t *testing.T) {
		r := newAuthRouter(svc, false)
		userID := uuid.New()
		token, _, err := svc.GenerateToken(userID, "jane@example.com", "")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, userID.String(), w.Body.String())
	})

	t.Run("malformed token is rejected", func(t *testing.T) {
		r := newAuthRouter(svc, false)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+"garbage")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func newAdminRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(OptionalAuth(jwtService))
	r.PATCH("/admin", RequireAuth(), RequireAdmin(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	svc := testJWTService()

	t.Run("guest is rejected", func(t *testing.T) {
		r := newAuthRouter(svc, true)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("authenticated user passes", func(t *testing.T) {
		r := newAuthRouter(svc, true)
		token, _, err := svc.GenerateToken(uuid.New(), "", "")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	svc := testJWTService()

	t.Run("guest is rejected before the role check", func(t *testing.T) {
		r := newAdminRouter(svc)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/admin", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("customer token is forbidden", func(t *testing.T) {
		r := newAdminRouter(svc)
		token, _, err := svc.GenerateToken(uuid.New(), "jane@example.com", "")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/admin", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "FORBIDDEN")
	})

	t.Run("admin token passes", func(t *testing.T) {
		r := newAdminRouter(svc)
		token, _, err := svc.GenerateToken(uuid.New(), "ops@example.com", auth.RoleAdmin)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/admin", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
