package middleware

import (
	"net/http"
	"strings"

	"ledger_service/internal/service"

	"github.com/gin-gonic/gin"
)

// Auth validates the Bearer service token when a signing secret is
// configured. With no secret the API runs open (internal deployments).
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !service.AuthEnabled() {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		subject, err := service.ParseServiceToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("caller", subject)
		c.Next()
	}
}
