package middleware

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/gin-gonic/gin"

	"inkscan/internal/model"
)

// Context keys set by the middleware chain.
const (
	ScopeKey     = "inkscan.scope"
	RequestIDKey = "inkscan.request_id"
)

// GetScope returns the caller scope established by Auth. Handlers on
// unprotected routes get an anonymous api scope.
func GetScope(c *gin.Context) model.Scope {
	if v, ok := c.Get(ScopeKey); ok {
		if sc, ok := v.(model.Scope); ok {
			return sc
		}
	}
	return model.Scope{UserID: "anonymous", Source: string(model.ScanSourceAPI)}
}

// keyFingerprint derives a short stable caller id from an API key without
// echoing the key itself.
func keyFingerprint(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:4])
}
