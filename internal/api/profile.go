package api

import (
	"net/http" // HTTP status codes

	"rental_gateway/internal/domain"     // Backend entity shapes
	"rental_gateway/internal/middleware" // Context keys
	"rental_gateway/internal/rental"     // Backend client
	"rental_gateway/internal/session"    // Session store

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// UpdateProfileRequest carries the editable profile fields
type UpdateProfileRequest struct {
	Description string `json:"description"` // Profile description, may be empty
}

// GetProfileHandler returns the session user's backend record
func GetProfileHandler(client *rental.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString(middleware.CtxUsername) // Set by the session middleware
		user, err := client.GetUser(c.Request.Context(), username)
		if err != nil {
			c.JSON(errorStatus(err), gin.H{"error": errorMessage(err)})
			return
		}
		c.JSON(http.StatusOK, user) // Return the user record
	}
}

// UpdateProfileHandler saves the profile description and syncs the
// persisted session record with what the backend stored
func UpdateProfileHandler(client *rental.Client, store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString(middleware.CtxUsername) // Set by the session middleware
		var req UpdateProfileRequest                    // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := client.UpdateUserDescription(c.Request.Context(), username, req.Description)
		if err != nil {
			c.JSON(errorStatus(err), gin.H{"error": errorMessage(err)})
			return
		}
		// Mirror the saved description into the session record
		if sessVal, exists := c.Get(middleware.CtxSession); exists {
			if sess, ok := sessVal.(*domain.Session); ok && sess.User != nil {
				sess.User.Description = user.Description // Latest fetched value wins
				if err := store.Save(c.Request.Context(), c.GetString(middleware.CtxSessionID), sess); err != nil {
					logrus.WithFields(logrus.Fields{
						"username": username,
						"error":    err.Error(),
					}).Error("Failed to sync session profile") // Display state only
				}
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "Saved", "user": user})
	}
}

// DeleteProfileHandler deletes the account on the backend and destroys
// the session
func DeleteProfileHandler(client *rental.Client, store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString(middleware.CtxUsername) // Set by the session middleware
		if err := client.DeleteUser(c.Request.Context(), username); err != nil {
			c.JSON(errorStatus(err), gin.H{"error": errorMessage(err)})
			return
		}
		// The session is gone with the account
		if err := store.Delete(c.Request.Context(), c.GetString(middleware.CtxSessionID)); err != nil {
			logrus.WithFields(logrus.Fields{
				"username": username,
				"error":    err.Error(),
			}).Error("Failed to clear session after account delete")
		}
		logrus.WithFields(logrus.Fields{
			"username": username,
		}).Info("Account deleted") // Log account deletion
		c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
	}
}
