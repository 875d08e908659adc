package handlers

import (
	"net/http"

	"github.com/zanegreyy/zanos/models"
	ai "github.com/zanegreyy/zanos/services/intelligence"
	"github.com/zanegreyy/zanos/services/orchestrator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccommodationHandler drives the booking orchestration endpoint. Each
// request gets a fresh orchestrator, so concurrent requests share nothing.
type AccommodationHandler struct {
	client ai.CompletionClient
	logger *zap.Logger
}

func NewAccommodationHandler(client ai.CompletionClient, logger *zap.Logger) *AccommodationHandler {
	return &AccommodationHandler{client: client, logger: logger}
}

// OrchestrateBooking runs the full accommodation pipeline for one request.
// A failed run still responds 200; the body's status field distinguishes.
func (h *AccommodationHandler) OrchestrateBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if req.Destination == "" || req.CheckIn == "" || req.CheckOut == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Destination, check-in, and check-out dates are required"})
		return
	}

	orch := orchestrator.New(req.IncludeFlights, h.client, h.logger)
	result := orch.Run(c.Request.Context(), req)

	c.JSON(http.StatusOK, result)
}
