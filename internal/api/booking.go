package api

import (
	"errors"   // Error unwrapping
	"net/http" // HTTP status codes
	"strconv"  // Reference id formatting
	"time"     // Top-up reference timestamps

	"rental_gateway/internal/booking"    // Booking transaction coordinator
	"rental_gateway/internal/domain"     // Backend entity shapes
	"rental_gateway/internal/middleware" // Context keys
	"rental_gateway/internal/rental"     // Backend client
	"rental_gateway/internal/session"    // Session store

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// TopUpAmount is the fixed manual top-up size
const TopUpAmount = 100

// CreateBookingRequest is the booking form from the vehicle detail page
type CreateBookingRequest struct {
	VehicleID int    `json:"vehicle_id" binding:"required"` // Vehicle must be provided
	StartDate string `json:"start_date" binding:"required"` // Start date must be provided
	EndDate   string `json:"end_date"`                      // Optional, defaults to start date
}

// CreateBookingHandler runs the booking transaction: debit, create, and
// a compensating refund when the create fails after the debit
func CreateBookingHandler(coordinator *booking.Coordinator, client *rental.Client, store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString(middleware.CtxUsername) // Set by the session middleware
		var req CreateBookingRequest                    // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// The vehicle record carries the rental window and daily rate
		vehicle, err := client.GetVehicle(c.Request.Context(), req.VehicleID)
		if err != nil {
			c.JSON(errorStatus(err), gin.H{"error": errorMessage(err)})
			return
		}
		// The last known balance gates the attempt before any debit
		balance, err := client.GetBalance(c.Request.Context(), username)
		if err != nil {
			c.JSON(errorStatus(err), gin.H{"error": errorMessage(err)})
			return
		}
		// Run the coordinated attempt
		result, err := coordinator.Execute(c.Request.Context(), booking.Request{
			Vehicle:   vehicle,       // Vehicle being booked
			Username:  username,      // Booking owner
			StartDate: req.StartDate, // Requested range start
			EndDate:   req.EndDate,   // Requested range end
			Balance:   balance,       // Last known balance
		})
		if err != nil {
			// Precondition violations made no network call
			var validationErr *booking.ValidationError
			if errors.As(err, &validationErr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Reason, "state": result.State})
				return
			}
			// The balance shown after a partial failure is the re-fetched one
			syncSessionBalance(c, store, result.Balance)
			c.JSON(errorStatus(err), gin.H{
				"error":        errorMessage(err), // The original booking/debit error
				"state":        result.State,      // Terminal attempt state
				"coin_balance": result.Balance,    // Authoritative balance
			})
			return
		}
		// Adopt the post-debit balance as authoritative on success
		syncSessionBalance(c, store, result.Balance)
		c.JSON(http.StatusCreated, gin.H{
			"message":      "Booking created successfully!", // Confirmation message
			"booking":      result.Booking,                  // Created booking record
			"coins_used":   result.Cost,                     // Coins charged
			"coin_balance": result.Balance,                  // Balance after the charge
			"reference_id": result.ReferenceID,              // Ledger trace id
		})
	}
}

// TopUpHandler adds the fixed top-up amount to the session user's balance
func TopUpHandler(client *rental.Client, store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString(middleware.CtxUsername) // Set by the session middleware
		balance, err := client.AddCoins(c.Request.Context(), rental.CoinChange{
			Username:      username,           // Ledger owner
			Amount:        TopUpAmount,        // Fixed top-up size
			Reason:        rental.ReasonTopup, // Manual top-up
			ReferenceType: "manual",           // No referenced record
			ReferenceID:   "TOPUP-" + strconv.FormatInt(time.Now().UnixMilli(), 10), // Trace id
			Metadata:      map[string]any{"source": "booking_page"},                 // Where it came from
		})
		if err != nil {
			c.JSON(errorStatus(err), gin.H{"error": errorMessage(err)})
			return
		}
		logrus.WithFields(logrus.Fields{
			"username": username,
			"amount":   TopUpAmount,
		}).Info("Top-up") // Log the top-up
		syncSessionBalance(c, store, balance) // Keep the session record in step
		c.JSON(http.StatusOK, gin.H{
			"message":      "Top-up successful", // Confirmation message
			"coin_balance": balance,             // Balance after the credit
		})
	}
}

// BalanceHandler returns the authoritative balance for the session user
func BalanceHandler(client *rental.Client, store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString(middleware.CtxUsername) // Set by the session middleware
		balance, err := client.GetBalance(c.Request.Context(), username)
		if err != nil {
			c.JSON(errorStatus(err), gin.H{"error": errorMessage(err)})
			return
		}
		syncSessionBalance(c, store, balance) // Keep the session record in step
		c.JSON(http.StatusOK, gin.H{"username": username, "coin_balance": balance})
	}
}

// MyBookingsHandler lists the session user's bookings with derived status
func MyBookingsHandler(client *rental.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString(middleware.CtxUsername) // Set by the session middleware
		bookings, err := client.MyBookings(c.Request.Context(), username)
		if err != nil {
			c.JSON(errorStatus(err), gin.H{"error": errorMessage(err)})
			return
		}
		today := time.Now() // Status is derived against today
		for i := range bookings {
			bookings[i].Status = bookings[i].DeriveStatus(today) // upcoming/ongoing/completed
		}
		c.JSON(http.StatusOK, bookings) // Return the booking list
	}
}

// syncSessionBalance writes a fresh balance back into the persisted
// session record so hydration reflects the latest fetched value
func syncSessionBalance(c *gin.Context, store session.Store, balance int) {
	sessVal, exists := c.Get(middleware.CtxSession) // Hydrated session
	if !exists {
		return // Nothing to sync
	}
	sess, ok := sessVal.(*domain.Session) // Concrete session record
	if !ok || sess.User == nil {
		return // Nothing to sync
	}
	sess.User.CoinBalance = balance                                                      // Latest fetched value wins
	if err := store.Save(c.Request.Context(), c.GetString(middleware.CtxSessionID), sess); err != nil {
		logrus.WithFields(logrus.Fields{
			"username": sess.User.Username,
			"error":    err.Error(),
		}).Error("Failed to sync session balance") // Display state only, not authoritative
	}
}
