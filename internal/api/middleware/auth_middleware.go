package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"talentdash/internal/auth"
)

// UserIDKey is the gin context key the auth middleware stores the caller's
// user ID under.
const UserIDKey = "userID"

// AuthMiddleware rejects requests without a valid Bearer access token and
// stores the caller's user ID in the context.
func AuthMiddleware(authService *auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortUnauthorized(c)
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil || claims.TokenType != auth.TokenTypeAccess {
			abortUnauthorized(c)
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}
