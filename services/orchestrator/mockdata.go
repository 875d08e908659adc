package orchestrator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// generateMockResults is the deterministic stand-in for real inventory and
// booking systems. For a given action and parameter map the structure of
// the output is always the same; only identifier fields derive from the
// clock or randomness.
func generateMockResults(action string, params map[string]any) map[string]any {
	switch action {
	case "search_flights":
		origin := strParam(params, "origin")
		destination := strParam(params, "destination")
		departureDate := strParam(params, "departureDate")
		cabinClass := strParam(params, "cabinClass")
		if cabinClass == "" {
			cabinClass = "economy"
		}
		budget := numParam(params, "budget")
		priceA, priceB := 299.0, 259.0
		if budget > 0 {
			priceA = budget * 0.8
			priceB = budget * 0.6
		}
		return map[string]any{
			"flights": []any{
				map[string]any{
					"id":           "flight_001",
					"airline":      "British Airways",
					"flightNumber": "BA178",
					"departure": map[string]any{
						"airport": origin + " Airport",
						"time":    "08:00",
						"date":    departureDate,
					},
					"arrival": map[string]any{
						"airport": destination + " Airport",
						"time":    "14:30",
						"date":    departureDate,
					},
					"duration":   "6h 30m",
					"price":      priceA,
					"stops":      0,
					"cabinClass": cabinClass,
					"bookingUrl": "https://skyscanner.com/book/flight_001",
				},
				map[string]any{
					"id":           "flight_002",
					"airline":      "Virgin Atlantic",
					"flightNumber": "VS123",
					"departure": map[string]any{
						"airport": origin + " Airport",
						"time":    "10:30",
						"date":    departureDate,
					},
					"arrival": map[string]any{
						"airport": destination + " Airport",
						"time":    "18:45",
						"date":    departureDate,
					},
					"duration":   "8h 15m",
					"price":      priceB,
					"stops":      1,
					"cabinClass": cabinClass,
					"bookingUrl": "https://skyscanner.com/book/flight_002",
				},
			},
			"searchCriteria": params,
			"totalResults":   2,
		}

	case "search_accommodations":
		destination := strParam(params, "destination")
		accommodationType := strParam(params, "accommodationType")
		budget := numParam(params, "budget")
		return map[string]any{
			"accommodations": []any{
				map[string]any{
					"id":           "hotel_001",
					"name":         "Luxury Hotel " + destination,
					"type":         accommodationType,
					"price":        budget * 0.9,
					"rating":       4.5,
					"amenities":    []any{"WiFi", "Pool", "Gym"},
					"location":     "Central " + destination,
					"availability": true,
				},
				map[string]any{
					"id":           "hotel_002",
					"name":         "Budget Inn " + destination,
					"type":         accommodationType,
					"price":        budget * 0.7,
					"rating":       4.0,
					"amenities":    []any{"WiFi", "Breakfast"},
					"location":     "Near city center " + destination,
					"availability": true,
				},
			},
			"searchCriteria": params,
		}

	case "compare_options":
		return map[string]any{
			"recommended": map[string]any{
				"id":     "hotel_001",
				"reason": "Best value for money with excellent amenities and location",
				"score":  9.2,
			},
			"comparison": []any{
				map[string]any{"id": "hotel_001", "score": 9.2, "strengths": []any{"Location", "Amenities"}},
				map[string]any{"id": "hotel_002", "score": 7.8, "strengths": []any{"Price", "Breakfast"}},
			},
		}

	case "validate_booking":
		return map[string]any{
			"accommodationId": strParam(params, "accommodationId"),
			"available":       true,
			"totalCost":       450.0,
			"terms":           "Free cancellation up to 24 hours before check-in",
		}

	case "create_booking":
		booking := map[string]any{
			"bookingId":        fmt.Sprintf("BK%d", time.Now().UnixMilli()),
			"accommodationId":  strParam(params, "accommodationId"),
			"status":           "confirmed",
			"confirmationCode": "ZN" + strings.ToUpper(randomBase36(8)),
			"totalAmount":      450.0,
			"paymentStatus":    "completed",
		}
		if flightBooking, ok := params["flightBooking"].(map[string]any); ok {
			flightPrice := numParam(flightBooking, "budget") * 0.8
			if flightPrice == 0 {
				flightPrice = 299
			}
			selected, _ := flightBooking["selectedFlight"].(map[string]any)
			booking["flightBooking"] = map[string]any{
				"flightId":      "FL" + strings.ToUpper(randomBase36(8)),
				"airline":       strParamOr(selected, "airline", "British Airways"),
				"flightNumber":  strParamOr(selected, "flightNumber", "BA178"),
				"departure":     valueOr(selected, "departure", "08:00"),
				"arrival":       valueOr(selected, "arrival", "14:30"),
				"price":         flightPrice,
				"bookingStatus": "confirmed",
			}
			booking["totalAmount"] = 450.0 + flightPrice
		}
		return booking

	case "track_booking":
		return map[string]any{
			"bookingId":   strParam(params, "bookingId"),
			"status":      "confirmed",
			"lastUpdated": time.Now().UTC().Format(time.RFC3339),
			"nextAction":  "Check-in available 24 hours before arrival",
		}

	case "send_notification":
		return map[string]any{
			"notificationId": fmt.Sprintf("NT%d", time.Now().UnixMilli()),
			"type":           strParam(params, "type"),
			"status":         "sent",
			"timestamp":      time.Now().UTC().Format(time.RFC3339),
		}

	default:
		return map[string]any{"action": action, "completed": true}
	}
}

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomBase36(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = base36Alphabet[rand.Intn(len(base36Alphabet))]
	}
	return string(b)
}

func strParam(params map[string]any, key string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}

func strParamOr(params map[string]any, key, fallback string) string {
	if v := strParam(params, key); v != "" {
		return v
	}
	return fallback
}

func valueOr(params map[string]any, key string, fallback any) any {
	if params != nil {
		if v, ok := params[key]; ok && v != nil {
			return v
		}
	}
	return fallback
}

func numParam(params map[string]any, key string) float64 {
	switch v := params[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}
