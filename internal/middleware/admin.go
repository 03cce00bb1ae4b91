package middleware

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminOnlyMiddleware restricts a route group to the configured admin
// usernames. The backend has no role model, so the allowlist lives in
// gateway configuration.
func AdminOnlyMiddleware(adminUsers []string) gin.HandlerFunc {
	// Build a lookup set once at wiring time
	allowed := make(map[string]struct{}, len(adminUsers))
	for _, u := range adminUsers {
		allowed[u] = struct{}{}
	}
	return func(c *gin.Context) {
		username, exists := c.Get(CtxUsername) // Get username from context
		// Check if username exists in context
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Check the allowlist
		if _, ok := allowed[username.(string)]; !ok {
			// If not an admin, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		// If admin, proceed to the next handler
		c.Next()
	}
}
