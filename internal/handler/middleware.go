package handler

import (
	"net/http"
	"strings"

	"coin-concierge/internal/domain"

	"github.com/gin-gonic/gin"
)

const userContextKey = "auth_user"

// RequireSession returns a Gin middleware that resolves the bearer token to
// a user and aborts with 401 when it cannot.
func (h *Handler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must be a bearer token"})
			return
		}

		user, err := h.auth.Authenticate(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// currentUser returns the user set by RequireSession. Handlers behind the
// middleware can rely on it being present.
func currentUser(c *gin.Context) *domain.User {
	v, _ := c.Get(userContextKey)
	user, _ := v.(*domain.User)
	return user
}

// bearerToken extracts the raw token from the Authorization header.
func bearerToken(c *gin.Context) string {
	token, _ := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	return strings.TrimSpace(token)
}
