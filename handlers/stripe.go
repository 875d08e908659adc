package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/zanegreyy/zanos/models"
	"github.com/zanegreyy/zanos/services/payment"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

// StripeHandler serves the store checkout, webhook and config endpoints.
type StripeHandler struct {
	service *payment.Service
	logger  *zap.Logger
}

func NewStripeHandler(service *payment.Service, logger *zap.Logger) *StripeHandler {
	return &StripeHandler{service: service, logger: logger}
}

// CreateCheckout validates the cart and opens a hosted checkout session.
func (h *StripeHandler) CreateCheckout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Items array is required"})
		return
	}
	if err := payment.ValidateCart(req.Items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID, err := h.service.CreateCheckoutSession(req.Items)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			status := stripeErr.HTTPStatusCode
			if status == 0 {
				status = http.StatusInternalServerError
			}
			h.logger.Error("Stripe checkout error",
				zap.String("type", string(stripeErr.Type)),
				zap.String("code", string(stripeErr.Code)),
				zap.Error(err))
			c.JSON(status, gin.H{"error": "Payment processing error", "details": stripeErr.Msg})
			return
		}
		h.logger.Error("checkout session creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating checkout session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionId": sessionID})
}

// HandleWebhook verifies the event signature and dispatches it. A bad
// signature is rejected before any event handling runs.
func (h *StripeHandler) HandleWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read request body"})
		return
	}

	event, err := h.service.VerifyWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		h.logger.Error("webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	if err := h.service.DispatchEvent(event); err != nil {
		h.logger.Error("webhook processing error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook processing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// GetConfig reports which payment credentials are configured.
func (h *StripeHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"environment": h.service.Environment()})
}
