package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"inkscan/pkg/response"
)

// SignatureHeader carries the HMAC of the request body.
const SignatureHeader = "X-Signature"

// Signature verifies an HMAC-SHA256 body signature ("sha256=<hex>") against
// the configured secret. With no secret configured it passes through. The
// body is restored for downstream binding.
func (m Middleware) Signature() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.cfg.Secret == "" {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			m.l.Warnf(c.Request.Context(), "middleware.Signature: read body: %v", err)
			response.Unauthorized(c)
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		if err := m.verifySignature(body, c.GetHeader(SignatureHeader)); err != nil {
			m.l.Warnf(c.Request.Context(), "middleware.Signature: %v", err)
			response.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (m Middleware) verifySignature(payload []byte, signature string) error {
	if !strings.HasPrefix(signature, "sha256=") {
		return fmt.Errorf("invalid signature format")
	}
	expectedSigHex := signature[7:]

	// Decode hex to bytes for more secure comparison
	expectedSig, err := hex.DecodeString(expectedSigHex)
	if err != nil {
		return fmt.Errorf("invalid signature hex encoding: %w", err)
	}

	mac := hmac.New(sha256.New, []byte(m.cfg.Secret))
	mac.Write(payload)
	actualSig := mac.Sum(nil)

	// Constant-time comparison on raw bytes
	if !hmac.Equal(expectedSig, actualSig) {
		return fmt.Errorf("signature verification failed")
	}

	return nil
}
