// File: services/payment/stripe.go
package payment

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/zanegreyy/zanos/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// Countries a store order may ship to.
var allowedShippingCountries = []string{
	"US", "CA", "GB", "AU", "DE", "FR", "IT", "ES", "NL", "BE", "CH", "AT", "SE", "DK", "NO", "FI",
}

// Service wraps the Stripe API for the store checkout flow. Keys are
// passed in at construction rather than read from process globals.
type Service struct {
	secretKey      string
	publishableKey string
	webhookSecret  string
	baseURL        string
	logger         *zap.Logger
}

func NewService(secretKey, publishableKey, webhookSecret, baseURL string, logger *zap.Logger) *Service {
	stripe.Key = secretKey
	return &Service{
		secretKey:      secretKey,
		publishableKey: publishableKey,
		webhookSecret:  webhookSecret,
		baseURL:        baseURL,
		logger:         logger,
	}
}

// ValidateCart checks the shape of a checkout request; failures map to
// HTTP 400 in the handler.
func ValidateCart(items []models.CartItem) error {
	if items == nil {
		return errors.New("items array is required")
	}
	if len(items) == 0 {
		return errors.New("cart cannot be empty")
	}
	for _, item := range items {
		if item.Name == "" || item.Price <= 0 {
			return fmt.Errorf("invalid item structure: %q", item.Name)
		}
	}
	return nil
}

// CreateCheckoutSession builds the line items and opens a hosted checkout
// session, returning its identifier.
func (s *Service) CreateCheckoutSession(items []models.CartItem) (string, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(item.Name),
		}
		if item.Description != "" {
			productData.Description = stripe.String(item.Description)
		}
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String("usd"),
				ProductData: productData,
				// Stripe amounts are in cents.
				UnitAmount: stripe.Int64(int64(math.Round(item.Price * 100))),
			},
			Quantity: stripe.Int64(quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(s.baseURL + "/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:          stripe.String(s.baseURL + "/"),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice(allowedShippingCountries),
		},
	}
	params.AddMetadata("order_type", "nomad_store")

	sess, err := session.New(params)
	if err != nil {
		return "", err
	}

	s.logger.Info("Stripe checkout session created", zap.String("sessionId", sess.ID))
	return sess.ID, nil
}

// VerifyWebhook checks the signature header against the shared webhook
// secret and returns the decoded event.
func (s *Service) VerifyWebhook(payload []byte, signatureHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, signatureHeader, s.webhookSecret)
}

// DispatchEvent routes a verified webhook event. Handling is log-only;
// no order state is persisted.
func (s *Service) DispatchEvent(event stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return fmt.Errorf("failed to parse checkout session: %w", err)
		}
		fields := []zap.Field{
			zap.String("sessionId", sess.ID),
			zap.String("paymentStatus", string(sess.PaymentStatus)),
			zap.Int64("amountTotal", sess.AmountTotal),
		}
		if sess.CustomerDetails != nil {
			fields = append(fields, zap.String("customerEmail", sess.CustomerDetails.Email))
		}
		s.logger.Info("payment successful", fields...)

	case "payment_intent.succeeded":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return fmt.Errorf("failed to parse payment intent: %w", err)
		}
		s.logger.Info("payment intent succeeded", zap.String("paymentIntentId", intent.ID))

	case "payment_intent.payment_failed":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return fmt.Errorf("failed to parse payment intent: %w", err)
		}
		s.logger.Warn("payment failed", zap.String("paymentIntentId", intent.ID))

	default:
		s.logger.Info("unhandled webhook event type", zap.String("type", string(event.Type)))
	}
	return nil
}

// Environment reports which credentials are configured. Only short key
// prefixes are exposed, never full secrets.
func (s *Service) Environment() models.StripeEnvironment {
	return models.StripeEnvironment{
		HasSecretKey:         s.secretKey != "",
		HasPublishableKey:    s.publishableKey != "",
		HasWebhookSecret:     s.webhookSecret != "",
		SecretKeyPrefix:      keyPrefix(s.secretKey),
		PublishableKeyPrefix: keyPrefix(s.publishableKey),
	}
}

func keyPrefix(key string) string {
	if key == "" {
		return "not_set"
	}
	if len(key) < 7 {
		return key
	}
	return key[:7]
}
