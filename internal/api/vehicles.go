package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"rental_gateway/internal/rental" // Backend client

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// ListVehiclesHandler translates the search form into backend query
// parameters; the backend is the source of truth for matches
func ListVehiclesHandler(client *rental.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Build the filter straight from the query string
		filter := rental.VehicleFilter{
			TypeOfCar: c.Query("type_of_car"), // Exact type match
			Brand:     c.Query("brand"),       // Exact brand match
			Model:     c.Query("model"),       // Exact model match
			FromDate:  c.Query("from_date"),   // Window lower bound
			ToDate:    c.Query("to_date"),     // Window upper bound
		}
		vehicles, err := client.ListVehicles(c.Request.Context(), filter)
		if err != nil {
			// Surface the backend rejection or a generic transport message
			c.JSON(errorStatus(err), gin.H{"error": errorMessage(err)})
			return
		}
		c.JSON(http.StatusOK, vehicles) // Return the matching vehicles
	}
}

// GetVehicleHandler returns one vehicle by id
func GetVehicleHandler(client *rental.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Parse the path id
		if err != nil {
			// If the id is not numeric, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle id"})
			return
		}
		vehicle, err := client.GetVehicle(c.Request.Context(), id)
		if err != nil {
			// Not-found and other rejections pass through
			c.JSON(errorStatus(err), gin.H{"error": errorMessage(err)})
			return
		}
		c.JSON(http.StatusOK, vehicle) // Return the vehicle
	}
}

// VehicleTypesHandler lists the distinct vehicle types
func VehicleTypesHandler(client *rental.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		types, err := client.VehicleTypes(c.Request.Context())
		if err != nil {
			c.JSON(errorStatus(err), gin.H{"error": errorMessage(err)})
			return
		}
		c.JSON(http.StatusOK, types) // Return the type list
	}
}

// VehicleBrandsHandler lists the distinct brands for a type
func VehicleBrandsHandler(client *rental.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		brands, err := client.VehicleBrands(c.Request.Context(), c.Query("type_of_car"))
		if err != nil {
			c.JSON(errorStatus(err), gin.H{"error": errorMessage(err)})
			return
		}
		c.JSON(http.StatusOK, brands) // Return the brand list
	}
}

// VehicleModelsHandler lists the distinct models for a type and brand
func VehicleModelsHandler(client *rental.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		models, err := client.VehicleModels(c.Request.Context(), c.Query("type_of_car"), c.Query("brand"))
		if err != nil {
			c.JSON(errorStatus(err), gin.H{"error": errorMessage(err)})
			return
		}
		c.JSON(http.StatusOK, models) // Return the model list
	}
}

// CreateVehicleRequest is the admin add-vehicle form
type CreateVehicleRequest struct {
	TypeOfCar      string `json:"type_of_car" binding:"required"` // Vehicle type must be provided
	Brand          string `json:"brand" binding:"required"`       // Brand must be provided
	Model          string `json:"model" binding:"required"`       // Model must be provided
	RentStartDate  string `json:"rent_start_date"`                // Optional window start
	RentEndDate    string `json:"rent_end_date"`                  // Optional window end
	CoinRatePerDay int    `json:"coin_rate_per_day"`              // Optional daily rate
}

// CreateVehicleHandler passes an add-vehicle form through to the backend
func CreateVehicleHandler(client *rental.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateVehicleRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Forward the create call
		vehicle, err := client.CreateVehicle(c.Request.Context(), rental.VehicleCreate{
			TypeOfCar:      req.TypeOfCar,      // Vehicle type
			Brand:          req.Brand,          // Brand name
			Model:          req.Model,          // Model name
			RentStartDate:  req.RentStartDate,  // Window start
			RentEndDate:    req.RentEndDate,    // Window end
			CoinRatePerDay: req.CoinRatePerDay, // Daily rate
		})
		if err != nil {
			c.JSON(errorStatus(err), gin.H{"error": errorMessage(err)})
			return
		}
		logrus.WithFields(logrus.Fields{
			"vehicle_id": vehicle.ID,
			"brand":      vehicle.Brand,
			"model":      vehicle.Model,
		}).Info("Vehicle added") // Log vehicle creation
		c.JSON(http.StatusCreated, vehicle) // Return the created vehicle
	}
}

// DeleteVehiclesRequest is a batch of vehicle ids to delete
type DeleteVehiclesRequest struct {
	IDs []int `json:"ids" binding:"required,min=1"` // At least one id must be provided
}

// DeleteVehiclesHandler deletes a batch of vehicles sequentially. The
// first failure aborts the batch: earlier deletes are not rolled back
// and later ids are never attempted.
func DeleteVehiclesHandler(client *rental.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DeleteVehiclesRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "No vehicle id provided"})
			return
		}
		deleted := make([]int, 0, len(req.IDs)) // Ids removed so far
		for _, id := range req.IDs {
			if err := client.DeleteVehicle(c.Request.Context(), id); err != nil {
				logrus.WithFields(logrus.Fields{
					"vehicle_id": id,
					"deleted":    deleted,
					"error":      err.Error(),
				}).Error("Batch delete aborted") // Log the aborting failure
				// Report the failure along with what already happened
				c.JSON(errorStatus(err), gin.H{
					"error":     errorMessage(err), // Why the batch stopped
					"failed_id": id,                // The id that failed
					"deleted":   deleted,           // Not rolled back
				})
				return
			}
			deleted = append(deleted, id) // Record the successful delete
		}
		logrus.WithFields(logrus.Fields{
			"deleted": deleted,
		}).Info("Vehicles deleted") // Log the completed batch
		c.JSON(http.StatusOK, gin.H{"message": "Vehicles deleted", "deleted": deleted})
	}
}
