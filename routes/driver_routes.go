package routes

import (
	"tripbid/internal/handlers/driver"
	"tripbid/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupDriverTripRoutes sets up the driver-facing trip commands
func SetupDriverTripRoutes(r *gin.RouterGroup, jwtSecret string, tripHandler *driver.TripHandler, bidHandler *driver.BidHandler) {
	trips := r.Group("/driver/trips")
	trips.Use(middleware.AuthRequired(jwtSecret), middleware.DriverRequired())
	{
		trips.POST("/start", tripHandler.StartTrip)
		trips.POST("/bids", bidHandler.SubmitBid)
	}
}
