package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"rental_gateway/internal/session" // Session store
	"rental_gateway/internal/utils"   // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// Context keys set for downstream handlers
const (
	CtxUsername  = "username"   // Authenticated username
	CtxSession   = "session"    // Hydrated *domain.Session
	CtxSessionID = "session_id" // Persisted session record id
)

// SessionMiddleware validates the gateway JWT and hydrates the persisted
// session record before any authenticated handler runs, so nothing ever
// renders against a stale logged-out state.
func SessionMiddleware(secret string, store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		// Hydrate the persisted session record
		sess, ok, err := store.Load(c.Request.Context(), claims.SessionID)
		if err != nil || !ok || !sess.IsAuthed || sess.User == nil {
			// A valid token without a live session means the session was
			// logged out or expired server-side
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired, please log in again"})
			return
		}
		c.Set(CtxUsername, sess.User.Username) // Store username in context
		c.Set(CtxSession, sess)                // Store hydrated session in context
		c.Set(CtxSessionID, claims.SessionID)  // Store session id for writers
		c.Next()                               // Proceed to the next handler
	}
}
