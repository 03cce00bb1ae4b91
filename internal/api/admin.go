package api

import (
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"rental_gateway/internal/domain" // Backend entity shapes
	"rental_gateway/internal/rental" // Backend client
	"rental_gateway/internal/utils"  // Redis JSON cache

	"github.com/gin-gonic/gin" // Gin web framework
)

// metricsTTL bounds how stale the dashboard tiles may be
const metricsTTL = 60 * time.Second

// MetricsHandler serves the admin dashboard totals, cached in Redis so
// tile refreshes do not hammer the backend
func MetricsHandler(client *rental.Client, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context() // Request-scoped context
		var cached domain.Metrics  // Cache target
		// Try the cache first
		if cache != nil {
			found, err := cache.GetJSON(ctx, "metrics", &cached)
			if err == nil && found {
				// Return cached metrics
				c.JSON(http.StatusOK, gin.H{"metrics": cached, "cached": true})
				return
			}
		}
		// Not cached: fetch from the backend
		metrics, err := client.AdminMetrics(ctx)
		if err != nil {
			c.JSON(errorStatus(err), gin.H{"error": errorMessage(err)})
			return
		}
		if cache != nil {
			_ = cache.SetJSON(ctx, "metrics", metrics, metricsTTL) // Cache for the TTL
		}
		c.JSON(http.StatusOK, gin.H{"metrics": metrics, "cached": false})
	}
}
