package api

import (
	"net/http" // HTTP status codes
	"regexp"   // Regular expressions
	"strings"  // String manipulation

	"rental_gateway/internal/domain"     // Backend entity shapes
	"rental_gateway/internal/middleware" // Context keys
	"rental_gateway/internal/rental"     // Backend client
	"rental_gateway/internal/session"    // Session store
	"rental_gateway/internal/utils"      // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Request and Response structs
type RegisterRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Request struct for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Request struct for password reset
type ForgotPasswordRequest struct {
	Username    string `json:"username" binding:"required"`     // Username must be provided
	NewPassword string `json:"new_password" binding:"required"` // Replacement password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token   string          `json:"token"`   // Gateway JWT
	Session *domain.Session `json:"session"` // Persisted session record
}

// isValidUsername checks if the username contains only alphabetic characters
func isValidUsername(username string) bool {
	matched, _ := regexp.MatchString(`^[A-Za-z]+$`, username) // Regex to match alphabetic characters only
	return matched                                            // Return whether it matched
}

// isValidPassword checks if the password length is between 8 and 15 characters
func isValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= 15 // Return true if length is valid
}

// RegisterHandler validates the form and forwards account creation to the backend
func RegisterHandler(client *rental.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate username and password before any network call
		if !isValidUsername(req.Username) {
			// If username is invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be alphabetic only"})
			return
		}
		// Validate password length
		if !isValidPassword(req.Password) {
			// If password is invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-15 characters"})
			return
		}
		// Forward to the backend with a lowercase username to ensure uniqueness
		if err := client.Register(c.Request.Context(), strings.ToLower(req.Username), req.Password); err != nil {
			// Surface the backend rejection (e.g. duplicate username)
			c.JSON(errorStatus(err), gin.H{"error": errorMessage(err)})
			return
		}
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

// LoginHandler authenticates against the backend, persists a session and
// returns a gateway JWT
func LoginHandler(client *rental.Client, store session.Store, appName, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		username := strings.ToLower(req.Username) // Usernames are stored lowercase
		// The backend owns the credential check
		if err := client.Login(c.Request.Context(), username, req.Password); err != nil {
			c.JSON(errorStatus(err), gin.H{"error": errorMessage(err)})
			return
		}
		// Fetch the user record so the session starts with a known balance
		user, err := client.GetUser(c.Request.Context(), username)
		if err != nil {
			user = &domain.User{Username: username} // Minimal record when the fetch fails
		}
		sessionID := session.NewID() // New persisted record id
		// Generate the gateway JWT pointing at the session record
		token, err := utils.GenerateJWT(username, sessionID, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		sess := session.New(user, token, appName) // Fresh session record carrying the token
		if err := store.Save(c.Request.Context(), sessionID, sess); err != nil {
			logrus.WithFields(logrus.Fields{
				"username": username,
				"error":    err.Error(),
			}).Error("Failed to persist session") // Log persistence failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"username": username,
		}).Info("User logged in") // Log login
		// Return the token and the session record
		c.JSON(http.StatusOK, AuthResponse{Token: token, Session: sess})
	}
}

// ForgotPasswordHandler forwards a password reset to the backend
func ForgotPasswordHandler(client *rental.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ForgotPasswordRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate the replacement password length
		if !isValidPassword(req.NewPassword) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-15 characters"})
			return
		}
		// Forward to the backend
		if err := client.ForgotPassword(c.Request.Context(), strings.ToLower(req.Username), req.NewPassword); err != nil {
			c.JSON(errorStatus(err), gin.H{"error": errorMessage(err)})
			return
		}
		// Return success response
		c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
	}
}

// SessionHandler is the hydration endpoint: it resolves a bearer token to
// the persisted session record so the UI never renders a wrong
// logged-out state. An absent or dead token is not an error here.
func SessionHandler(store session.Store, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// No token means an anonymous visitor, not a failure
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusOK, gin.H{"authenticated": false})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")  // Extract the token string
		claims, err := utils.ParseJWT(tokenStr, jwtSecret)     // Parse the JWT token
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"authenticated": false}) // Expired or forged token
			return
		}
		// Hydrate the persisted record
		sess, ok, err := store.Load(c.Request.Context(), claims.SessionID)
		if err != nil || !ok {
			c.JSON(http.StatusOK, gin.H{"authenticated": false}) // Session gone server-side
			return
		}
		// Return the hydrated session
		c.JSON(http.StatusOK, gin.H{"authenticated": sess.IsAuthed, "session": sess})
	}
}

// LogoutHandler clears the persisted session record
func LogoutHandler(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetString(middleware.CtxSessionID) // Set by the session middleware
		if err := store.Delete(c.Request.Context(), sessionID); err != nil {
			logrus.WithFields(logrus.Fields{
				"session_id": sessionID,
				"error":      err.Error(),
			}).Error("Failed to clear session") // Log deletion failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
			return
		}
		// Return success response
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}
