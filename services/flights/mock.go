// File: services/flights/mock.go
package flights

import (
	"fmt"
	"strings"
	"time"

	"github.com/zanegreyy/zanos/models"
)

var mockAirports = []models.Airport{
	{IATA: "JFK", Name: "John F. Kennedy International Airport", City: "New York", Country: "United States"},
	{IATA: "LHR", Name: "London Heathrow Airport", City: "London", Country: "United Kingdom"},
	{IATA: "CDG", Name: "Charles de Gaulle Airport", City: "Paris", Country: "France"},
	{IATA: "NRT", Name: "Narita International Airport", City: "Tokyo", Country: "Japan"},
	{IATA: "LAX", Name: "Los Angeles International Airport", City: "Los Angeles", Country: "United States"},
	{IATA: "FRA", Name: "Frankfurt Airport", City: "Frankfurt", Country: "Germany"},
	{IATA: "SIN", Name: "Singapore Changi Airport", City: "Singapore", Country: "Singapore"},
	{IATA: "DXB", Name: "Dubai International Airport", City: "Dubai", Country: "United Arab Emirates"},
}

// mockAirportSuggestions filters the fixed airport set by a case
// insensitive substring match against name, city and IATA code.
func mockAirportSuggestions(query string) []models.Airport {
	q := strings.ToLower(query)
	var matches []models.Airport
	for _, airport := range mockAirports {
		if strings.Contains(strings.ToLower(airport.Name), q) ||
			strings.Contains(strings.ToLower(airport.City), q) ||
			strings.Contains(strings.ToLower(airport.IATA), q) {
			matches = append(matches, airport)
		}
	}
	return matches
}

// mockFlightResults is the static fallback used when the upstream API is
// unavailable for any reason.
func mockFlightResults(params models.FlightSearchParams) *models.FlightSearchResponse {
	validUntil := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
	mockFlights := []models.FlightItinerary{
		{
			ID:    "flight_1",
			Price: models.Price{Amount: 299, Currency: params.Currency},
			Outbound: []models.FlightSegment{{
				DepartureDateTime: "2024-01-15T08:00:00Z",
				ArrivalDateTime:   "2024-01-15T14:30:00Z",
				DepartureAirport:  models.Airport{IATA: "JFK", Name: "JFK Airport", City: "New York", Country: "US"},
				ArrivalAirport:    models.Airport{IATA: "LHR", Name: "Heathrow Airport", City: "London", Country: "UK"},
				Airline:           models.Airline{IATA: "BA", Name: "British Airways"},
				FlightNumber:      "BA178",
				DurationMinutes:   390,
				Stops:             0,
			}},
			TotalDuration:  390,
			Stops:          0,
			IsDirectFlight: true,
			BookingURL:     "https://skyscanner.com/book/flight_1",
			ValidUntil:     validUntil,
			Score:          85,
		},
		{
			ID:    "flight_2",
			Price: models.Price{Amount: 259, Currency: params.Currency},
			Outbound: []models.FlightSegment{{
				DepartureDateTime: "2024-01-15T10:30:00Z",
				ArrivalDateTime:   "2024-01-15T18:45:00Z",
				DepartureAirport:  models.Airport{IATA: "JFK", Name: "JFK Airport", City: "New York", Country: "US"},
				ArrivalAirport:    models.Airport{IATA: "LHR", Name: "Heathrow Airport", City: "London", Country: "UK"},
				Airline:           models.Airline{IATA: "VS", Name: "Virgin Atlantic"},
				FlightNumber:      "VS123",
				DurationMinutes:   495,
				Stops:             1,
			}},
			TotalDuration:  495,
			Stops:          1,
			IsDirectFlight: false,
			BookingURL:     "https://skyscanner.com/book/flight_2",
			ValidUntil:     validUntil,
			Score:          78,
		},
	}

	return &models.FlightSearchResponse{
		SearchID:     fmt.Sprintf("mock_search_%d", time.Now().UnixMilli()),
		Results:      mockFlights,
		TotalResults: len(mockFlights),
		SearchParams: params,
		Currency:     params.Currency,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Cheapest:     &mockFlights[1],
		Fastest:      &mockFlights[0],
		Best:         &mockFlights[0],
	}
}
