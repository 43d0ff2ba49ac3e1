package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/m-mizutani/aiforge/pkg/adapter"
)

const ctxOwnerID = "ownerID"

// authMiddleware extracts the bearer token and resolves it to an
// owner ID before any paid work happens.
func authMiddleware(verifier adapter.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no credential"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no credential"})
			c.Abort()
			return
		}

		ownerID, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credential"})
			c.Abort()
			return
		}

		c.Set(ctxOwnerID, ownerID)
		c.Next()
	}
}

func ownerID(c *gin.Context) string {
	return c.GetString(ctxOwnerID)
}
