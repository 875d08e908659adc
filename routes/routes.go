package routes

import (
	"net/http"
	"time"

	"github.com/zanegreyy/zanos/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAccommodationRoutes registers the booking orchestration endpoint.
func RegisterAccommodationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/accommodation", hb.Accommodation.OrchestrateBooking)
}

// RegisterAgentRoutes registers the travel-advice chat endpoint.
func RegisterAgentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/agent", hb.Agent.HandleQuery)
}

// RegisterFlightRoutes registers flight search and airport autosuggest.
func RegisterFlightRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/flights", hb.Flights.SearchFlights)
	r.GET("/api/flights", hb.Flights.SuggestAirports)
}

// RegisterStripeRoutes registers the store checkout endpoints.
func RegisterStripeRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/stripe")
	{
		api.POST("/checkout", hb.Stripe.CreateCheckout)
		api.POST("/webhook", hb.Stripe.HandleWebhook)
		api.GET("/config", hb.Stripe.GetConfig)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm zanos"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Permissive CORS; this also answers the preflight OPTIONS requests.
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterAccommodationRoutes(r, hb)
	RegisterAgentRoutes(r, hb)
	RegisterFlightRoutes(r, hb)
	RegisterStripeRoutes(r, hb)
	RegisterHealthRoute(r)
}
