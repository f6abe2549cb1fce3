package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tommyfx/storefront/internal/infrastructure/logger"
)

// Cart session propagation. Every storefront request carries an opaque
// session id that keys the server-side cart; first contact mints one.
const (
	// CartSessionKey is the gin context key holding the session id
	CartSessionKey = "cart_session"
	// CartSessionHeader carries the session id for clients that do
	// not persist cookies
	CartSessionHeader = "X-Cart-Session"
)

// CartSessionConfig holds cart session middleware configuration
type CartSessionConfig struct {
	CookieName   string
	CookieMaxAge time.Duration
	CookieSecure bool
}

// DefaultCartSessionConfig returns the stock cart session settings
func DefaultCartSessionConfig() CartSessionConfig {
	return CartSessionConfig{
		CookieName:   "cart_session",
		CookieMaxAge: 30 * 24 * time.Hour,
		CookieSecure: false,
	}
}

// CartSession resolves or mints the cart session id for a request.
// Resolution order: cookie, then header; a malformed or absent id gets
// replaced with a fresh one. The id is echoed back via both cookie and
// header so either transport keeps working.
func CartSession(cfg CartSessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := uuid.Nil

		if raw, err := c.Cookie(cfg.CookieName); err == nil {
			if parsed, err := uuid.Parse(raw); err == nil {
				sessionID = parsed
			}
		}
		if sessionID == uuid.Nil {
			if raw := c.GetHeader(CartSessionHeader); raw != "" {
				if parsed, err := uuid.Parse(raw); err == nil {
					sessionID = parsed
				}
			}
		}
		if sessionID == uuid.Nil {
			sessionID = uuid.New()
		}

		c.Set(CartSessionKey, sessionID)
		c.SetCookie(cfg.CookieName, sessionID.String(), int(cfg.CookieMaxAge.Seconds()), "/", "", cfg.CookieSecure, true)
		c.Writer.Header().Set(CartSessionHeader, sessionID.String())

		// Tag request-scoped logs with the session id
		reqCtx := c.Request.Context()
		ctx, _ := logger.WithCartSession(reqCtx, logger.FromContext(reqCtx), sessionID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetCartSession returns the cart session id resolved for a request
func GetCartSession(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(CartSessionKey)
	if !ok {
		return uuid.Nil, false
	}
	sessionID, ok := v.(uuid.UUID)
	return sessionID, ok
}
