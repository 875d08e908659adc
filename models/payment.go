package models

// CartItem is one entry in a checkout request.
type CartItem struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Quantity    int64   `json:"quantity,omitempty"`
}

// CheckoutRequest is the body of a checkout-session request.
type CheckoutRequest struct {
	Items []CartItem `json:"items"`
}

// StripeEnvironment reports which payment credentials are configured,
// exposing only short prefixes, never full keys.
type StripeEnvironment struct {
	HasSecretKey         bool   `json:"hasSecretKey"`
	HasPublishableKey    bool   `json:"hasPublishableKey"`
	HasWebhookSecret     bool   `json:"hasWebhookSecret"`
	SecretKeyPrefix      string `json:"secretKeyPrefix"`
	PublishableKeyPrefix string `json:"publishableKeyPrefix"`
}
