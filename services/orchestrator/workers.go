package orchestrator

import (
	ai "github.com/zanegreyy/zanos/services/intelligence"
)

// Worker is a named role with a fixed instruction and the subset of tools
// it is permitted to invoke. Workers are static and never mutated.
type Worker struct {
	Name        string
	Instruction string
	Tools       []string
}

var workerTools = []ai.Tool{
	{
		Name:        "search_accommodations",
		Description: "Search for accommodations based on criteria",
		Params: []ai.ToolParam{
			{Name: "destination", Type: "string", Required: true},
			{Name: "checkIn", Type: "string", Required: true},
			{Name: "checkOut", Type: "string", Required: true},
			{Name: "budget", Type: "number", Required: true},
			{Name: "guests", Type: "number"},
			{Name: "accommodationType", Type: "string"},
		},
	},
	{
		Name:        "search_flights",
		Description: "Search for flights using Skyscanner API",
		Params: []ai.ToolParam{
			{Name: "origin", Type: "string", Required: true},
			{Name: "destination", Type: "string", Required: true},
			{Name: "departureDate", Type: "string", Required: true},
			{Name: "returnDate", Type: "string"},
			{Name: "passengers", Type: "object", Required: true},
			{Name: "cabinClass", Type: "string"},
			{Name: "budget", Type: "number"},
		},
	},
	{
		Name:        "compare_options",
		Description: "Compare accommodation options based on price, location, amenities",
		Params: []ai.ToolParam{
			{Name: "accommodations", Type: "array", Required: true},
			{Name: "criteria", Type: "array", Required: true},
		},
	},
	{
		Name:        "validate_booking",
		Description: "Validate booking details and availability",
		Params: []ai.ToolParam{
			{Name: "accommodationId", Type: "string", Required: true},
			{Name: "dates", Type: "object", Required: true},
			{Name: "guests", Type: "number"},
		},
	},
	{
		Name:        "create_booking",
		Description: "Create a booking reservation",
		Params: []ai.ToolParam{
			{Name: "accommodationId", Type: "string", Required: true},
			{Name: "guestDetails", Type: "object", Required: true},
			{Name: "paymentInfo", Type: "object"},
		},
	},
	{
		Name:        "track_booking",
		Description: "Track booking status and updates",
		Params: []ai.ToolParam{
			{Name: "bookingId", Type: "string", Required: true},
		},
	},
	{
		Name:        "send_notification",
		Description: "Send confirmation and updates to user",
		Params: []ai.ToolParam{
			{Name: "type", Type: "string", Required: true},
			{Name: "recipient", Type: "string", Required: true},
			{Name: "content", Type: "object", Required: true},
		},
	},
}

var workers = map[string]Worker{
	"SearchWorker": {
		Name: "SearchWorker",
		Instruction: `You are a SearchWorker specializing in finding accommodations and flights.
Your job is to search for accommodations using the search_accommodations tool and flights using the search_flights tool.
Always provide detailed search results with property details, pricing, and availability.
Focus on finding options that match the user's budget and preferences.
For flight searches, consider departure times, airlines, and total journey time.`,
		Tools: []string{"search_accommodations", "search_flights"},
	},
	"CompareWorker": {
		Name: "CompareWorker",
		Instruction: `You are a CompareWorker specializing in analyzing accommodation options.
Your job is to compare different accommodations using the compare_options tool.
Evaluate based on price, location, amenities, reviews, and value for money.
Provide clear recommendations with pros and cons.`,
		Tools: []string{"compare_options"},
	},
	"ValidateWorker": {
		Name: "ValidateWorker",
		Instruction: `You are a ValidateWorker specializing in booking validation.
Your job is to validate accommodation availability and booking details using the validate_booking tool.
Check dates, room availability, pricing accuracy, and booking terms.
Ensure all details are correct before proceeding.`,
		Tools: []string{"validate_booking"},
	},
	"BookingWorker": {
		Name: "BookingWorker",
		Instruction: `You are a BookingWorker specializing in creating reservations.
Your job is to create actual bookings using the create_booking tool.
Handle payment processing, guest information, and reservation confirmation.
Ensure secure and accurate booking creation.`,
		Tools: []string{"create_booking"},
	},
	"TrackingWorker": {
		Name: "TrackingWorker",
		Instruction: `You are a TrackingWorker specializing in booking monitoring.
Your job is to track booking status and updates using the track_booking tool.
Monitor confirmation status, payment processing, and any changes.
Provide real-time updates on booking progress.`,
		Tools: []string{"track_booking"},
	},
	"NotificationWorker": {
		Name: "NotificationWorker",
		Instruction: `You are a NotificationWorker specializing in user communication.
Your job is to send notifications and updates using the send_notification tool.
Send booking confirmations, payment receipts, and status updates.
Ensure clear and timely communication with users.`,
		Tools: []string{"send_notification"},
	},
}

// toolsFor returns the tool schemas a worker is allowed to use.
func toolsFor(w Worker) []ai.Tool {
	allowed := make(map[string]bool, len(w.Tools))
	for _, name := range w.Tools {
		allowed[name] = true
	}
	var tools []ai.Tool
	for _, t := range workerTools {
		if allowed[t.Name] {
			tools = append(tools, t)
		}
	}
	return tools
}
