package handlers

import (
	"net/http"

	"github.com/zanegreyy/zanos/models"
	"github.com/zanegreyy/zanos/services/flights"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FlightsHandler serves flight search and airport autosuggest.
type FlightsHandler struct {
	client *flights.Client
	logger *zap.Logger
}

func NewFlightsHandler(client *flights.Client, logger *zap.Logger) *FlightsHandler {
	return &FlightsHandler{client: client, logger: logger}
}

// flightSearchInput mirrors the request body; Passengers is a pointer so
// a missing field is distinguishable from an empty one.
type flightSearchInput struct {
	Origin        string             `json:"origin"`
	Destination   string             `json:"destination"`
	DepartureDate string             `json:"departureDate"`
	ReturnDate    string             `json:"returnDate"`
	Passengers    *models.Passengers `json:"passengers"`
	CabinClass    string             `json:"cabinClass"`
	Currency      string             `json:"currency"`
	Locale        string             `json:"locale"`
	MaxPrice      float64            `json:"maxPrice"`
	Stops         string             `json:"stops"`
}

// SearchFlights handles a flight search request.
func (h *FlightsHandler) SearchFlights(c *gin.Context) {
	var input flightSearchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if input.Origin == "" || input.Destination == "" || input.DepartureDate == "" || input.Passengers == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing required fields: origin, destination, departureDate, passengers",
		})
		return
	}

	params := models.FlightSearchParams{
		Origin:        input.Origin,
		Destination:   input.Destination,
		DepartureDate: input.DepartureDate,
		ReturnDate:    input.ReturnDate,
		Passengers: models.Passengers{
			Adults:   input.Passengers.Adults,
			Children: input.Passengers.Children,
			Infants:  input.Passengers.Infants,
		},
		CabinClass: input.CabinClass,
		Currency:   input.Currency,
		Locale:     input.Locale,
		MaxPrice:   input.MaxPrice,
		Stops:      input.Stops,
	}
	if params.Passengers.Adults == 0 {
		params.Passengers.Adults = 1
	}
	if params.CabinClass == "" {
		params.CabinClass = "economy"
	}
	if params.Currency == "" {
		params.Currency = "USD"
	}
	if params.Locale == "" {
		params.Locale = "en-US"
	}

	results, err := h.client.SearchFlights(c.Request.Context(), params)
	if err != nil {
		h.logger.Error("flight search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search flights", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, results)
}

// SuggestAirports handles airport autocomplete queries.
func (h *FlightsHandler) SuggestAirports(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": `Query parameter "q" is required`})
		return
	}
	locale := c.DefaultQuery("locale", "en-US")

	airports, err := h.client.AirportSuggestions(c.Request.Context(), query, locale)
	if err != nil {
		h.logger.Error("airport search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search airports", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"airports": airports})
}
