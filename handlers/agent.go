package handlers

import (
	"net/http"

	"github.com/zanegreyy/zanos/models"
	"github.com/zanegreyy/zanos/services/agent"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AgentHandler serves the travel-advice chat endpoint.
type AgentHandler struct {
	service *agent.Service
	logger  *zap.Logger
}

func NewAgentHandler(service *agent.Service, logger *zap.Logger) *AgentHandler {
	return &AgentHandler{service: service, logger: logger}
}

// HandleQuery classifies the query and routes it to a specialist agent.
func (h *AgentHandler) HandleQuery(c *gin.Context) {
	var req models.AgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required and must be a string"})
		return
	}
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required and must be a string"})
		return
	}

	response, err := h.service.Handle(c.Request.Context(), req.Message)
	if err != nil {
		h.logger.Error("agent request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process your travel query. Please try again."})
		return
	}

	c.JSON(http.StatusOK, response)
}
