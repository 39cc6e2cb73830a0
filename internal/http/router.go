package http

import (
	"net/http"

	intconfig "busnexus/internal/config"
	"busnexus/internal/domain"
	"busnexus/internal/http/handlers"
	"busnexus/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with the full route table. Public routes
// cover auth and trip search; everything else requires a valid token, and the
// fleet, scheduling and reporting surface additionally requires the
// coordinator role.
func NewRouter(env intconfig.Env) *gin.Engine {
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	handlers.SetJWTSecret(env.JWTSecret)

	r := gin.New()
	_ = r.SetTrustedProxies(nil)

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	api := r.Group("/api")

	api.GET("/health", handlers.Health)
	api.GET("/db-check", handlers.DBCheck)

	auth := api.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
	}

	// Search is open so the landing page works without an account.
	api.GET("/trips/search", handlers.SearchTrips)
	api.GET("/trips/origins", handlers.TripOrigins)
	api.GET("/trips/destinations", handlers.TripDestinations)

	authed := api.Group("")
	authed.Use(middleware.Auth(handlers.JWTSecret()))
	{
		authed.GET("/trips/:id", handlers.GetTrip)

		authed.POST("/bookings", handlers.CreateBooking)
		authed.GET("/bookings/:id", handlers.GetBooking)
		authed.POST("/bookings/:id/cancel", handlers.CancelBooking)
		authed.GET("/bookings/:id/tickets", handlers.GetBookingTickets)
		authed.GET("/bookings/:id/e-ticket", handlers.DownloadETicket)
		authed.GET("/users/:id/bookings", handlers.UserBookingHistory)
	}

	coord := api.Group("")
	coord.Use(middleware.Auth(handlers.JWTSecret()), middleware.RequireRole(domain.RoleCoordinator))
	{
		coord.GET("/trips", handlers.ListTrips)
		coord.POST("/trips", handlers.ScheduleTrip)
		coord.PUT("/trips/:id/status", handlers.UpdateTripStatus)

		coord.GET("/buses", handlers.ListBuses)
		coord.POST("/buses", handlers.CreateBus)
		coord.PUT("/buses/:id", handlers.UpdateBus)
		coord.DELETE("/buses/:id", handlers.DeleteBus)

		coord.GET("/routes", handlers.ListRoutes)
		coord.POST("/routes", handlers.CreateRoute)
		coord.PUT("/routes/:id", handlers.UpdateRoute)
		coord.DELETE("/routes/:id", handlers.DeleteRoute)

		coord.GET("/drivers", handlers.ListDrivers)
		coord.POST("/drivers", handlers.CreateDriver)
		coord.PUT("/drivers/:id", handlers.UpdateDriver)
		coord.DELETE("/drivers/:id", handlers.DeleteDriver)

		coord.GET("/reports/summary", handlers.ReportSummary)
		coord.GET("/reports/revenue", handlers.ReportRevenue)
		coord.GET("/reports/popular-routes", handlers.ReportPopularRoutes)
	}

	return r
}
