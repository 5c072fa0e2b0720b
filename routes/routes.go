package routes

import (
	"time"

	"foodiespot/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint onto the router. The paths map 1:1
// onto the tool operations exposed to the conversational layer.
func RegisterRoutes(r *gin.Engine, catalogHandler *handlers.CatalogHandler, bookingHandler *handlers.BookingHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", handlers.HealthHandler)

	api := r.Group("/api")
	{
		restaurants := api.Group("/restaurants")
		{
			restaurants.GET("", catalogHandler.SearchRestaurantsHandler)
			restaurants.GET("/:id", catalogHandler.GetRestaurantHandler)
			restaurants.GET("/:id/availability", bookingHandler.CheckAvailabilityHandler)
			restaurants.GET("/:id/slots", bookingHandler.ListSlotsHandler)
			restaurants.GET("/:id/reservations", bookingHandler.ListReservationsHandler)
		}

		reservations := api.Group("/reservations")
		{
			reservations.POST("", bookingHandler.CreateReservationHandler)
			reservations.GET("", bookingHandler.ExportReservationsHandler)
			reservations.GET("/:id", bookingHandler.GetReservationHandler)
			reservations.DELETE("/:id", bookingHandler.CancelReservationHandler)
		}
	}
}
