package middleware

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"inkscan/internal/model"
	"inkscan/pkg/log"
	"inkscan/pkg/response"
)

// RequestID tags every request with an id for log correlation. An inbound
// X-Request-ID is kept so callers can trace across services. The id is
// also planted in the request context under log.RequestIDKey so the
// logger picks it up on every entry downstream.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		ctx := context.WithValue(c.Request.Context(), log.RequestIDKey, id)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// Auth validates the X-API-Key header (or a Bearer token) against the
// configured key set and establishes the caller scope. With no keys
// configured the instance runs open and requests get an anonymous scope.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(m.cfg.APIKeys) == 0 {
			c.Set(ScopeKey, model.Scope{
				UserID: "anonymous",
				Source: string(model.ScanSourceAPI),
			})
			c.Next()
			return
		}

		key := c.GetHeader("X-API-Key")
		if key == "" {
			if bearer := c.GetHeader("Authorization"); strings.HasPrefix(bearer, "Bearer ") {
				key = strings.TrimPrefix(bearer, "Bearer ")
			}
		}
		if key == "" || !m.keyAccepted(key) {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(ScopeKey, model.Scope{
			UserID: "api_" + keyFingerprint(key),
			Source: string(model.ScanSourceAPI),
		})
		c.Next()
	}
}

func (m Middleware) keyAccepted(key string) bool {
	for _, k := range m.cfg.APIKeys {
		if subtle.ConstantTimeCompare([]byte(k), []byte(key)) == 1 {
			return true
		}
	}
	return false
}
