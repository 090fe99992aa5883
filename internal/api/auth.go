package api

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"paymux/internal/security"
)

// APIKeyAuth rejects requests whose X-API-Key header does not match in
// constant time. An empty configured key disables the check.
func APIKeyAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.Next()
			return
		}

		if !security.EqualAPIKey(c.GetHeader(security.HeaderAPIKey), apiKey) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid api key"})
			return
		}

		c.Next()
	}
}

// HMACAuth verifies the X-Signature header over the request body within the
// timestamp window. An empty secret disables the check.
func HMACAuth(secret string, tolerance time.Duration) gin.HandlerFunc {
	if tolerance <= 0 {
		tolerance = security.DefaultTolerance
	}

	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		var body []byte
		if c.Request.Body != nil {
			var err error
			body, err = io.ReadAll(c.Request.Body)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "unreadable request body"})
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		err := security.VerifySignature(
			secret,
			body,
			c.GetHeader(security.HeaderTimestamp),
			c.GetHeader(security.HeaderSignature),
			tolerance,
			time.Now(),
		)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
			return
		}

		c.Next()
	}
}
