package handlers

// HandlerBundle aggregates all route handlers for registration.
type HandlerBundle struct {
	Accommodation *AccommodationHandler
	Agent         *AgentHandler
	Flights       *FlightsHandler
	Stripe        *StripeHandler
}
