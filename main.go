// File: main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zanegreyy/zanos/config"
	"github.com/zanegreyy/zanos/handlers"
	"github.com/zanegreyy/zanos/middleware"
	"github.com/zanegreyy/zanos/routes"
	"github.com/zanegreyy/zanos/services/agent"
	"github.com/zanegreyy/zanos/services/flights"
	ai "github.com/zanegreyy/zanos/services/intelligence"
	"github.com/zanegreyy/zanos/services/payment"
	"github.com/zanegreyy/zanos/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// A nil completion client keeps every worker and agent on the
	// deterministic fallback path.
	var completionClient ai.CompletionClient
	if config.AppConfig.GeminiAPIKey != "" {
		client, err := ai.NewGeminiClient(context.Background(), config.AppConfig.GeminiAPIKey)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize Gemini client: %v", err)
		}
		defer client.Close()
		completionClient = client
	} else {
		logger.Sugar().Warn("main: GEMINI_API_KEY not set, running with mock data only")
	}

	// services.
	agentService := agent.NewService(completionClient, logger)
	flightClient := flights.NewClient(config.AppConfig.SkyscannerAPIKey, utils.GetCacheClient(), logger)
	paymentService := payment.NewService(
		config.AppConfig.StripeSecretKey,
		config.AppConfig.StripePublishableKey,
		config.AppConfig.StripeWebhookSecret,
		config.AppConfig.BaseURL,
		logger,
	)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Accommodation: handlers.NewAccommodationHandler(completionClient, logger),
		Agent:         handlers.NewAgentHandler(agentService, logger),
		Flights:       handlers.NewFlightsHandler(flightClient, logger),
		Stripe:        handlers.NewStripeHandler(paymentService, logger),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
