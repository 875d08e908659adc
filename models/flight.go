package models

// Passengers breaks a party down by fare class.
type Passengers struct {
	Adults   int `json:"adults"`
	Children int `json:"children,omitempty"`
	Infants  int `json:"infants,omitempty"`
}

// FlightSearchParams describes one flight search against the upstream API.
type FlightSearchParams struct {
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	DepartureDate string     `json:"departureDate"`
	ReturnDate    string     `json:"returnDate,omitempty"`
	Passengers    Passengers `json:"passengers"`
	CabinClass    string     `json:"cabinClass"`
	Currency      string     `json:"currency"`
	Locale        string     `json:"locale"`
	MaxPrice      float64    `json:"maxPrice,omitempty"`
	Stops         string     `json:"stops,omitempty"`
}

// Airport identifies an airport for autosuggest and itinerary display.
type Airport struct {
	IATA    string `json:"iata"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// Airline identifies a carrier.
type Airline struct {
	IATA string `json:"iata"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

// FlightSegment is one leg of an itinerary.
type FlightSegment struct {
	DepartureDateTime string  `json:"departureDateTime"`
	ArrivalDateTime   string  `json:"arrivalDateTime"`
	DepartureAirport  Airport `json:"departureAirport"`
	ArrivalAirport    Airport `json:"arrivalAirport"`
	Airline           Airline `json:"airline"`
	FlightNumber      string  `json:"flightNumber"`
	DurationMinutes   int     `json:"duration"`
	Stops             int     `json:"stops"`
	Aircraft          string  `json:"aircraft,omitempty"`
}

// Price is an amount in a named currency.
type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// FlightItinerary is one bookable result.
type FlightItinerary struct {
	ID             string          `json:"id"`
	Price          Price           `json:"price"`
	Outbound       []FlightSegment `json:"outbound"`
	Inbound        []FlightSegment `json:"inbound,omitempty"`
	TotalDuration  int             `json:"totalDuration"`
	Stops          int             `json:"stops"`
	IsDirectFlight bool            `json:"isDirectFlight"`
	BookingURL     string          `json:"bookingUrl"`
	ValidUntil     string          `json:"validUntil"`
	Score          int             `json:"score"`
}

// FlightSearchResponse is the full answer to a flight search, including
// conveniences picked out of the result list.
type FlightSearchResponse struct {
	SearchID     string             `json:"searchId"`
	Results      []FlightItinerary  `json:"results"`
	TotalResults int                `json:"totalResults"`
	SearchParams FlightSearchParams `json:"searchParams"`
	Currency     string             `json:"currency"`
	Timestamp    string             `json:"timestamp"`
	Cheapest     *FlightItinerary   `json:"cheapest,omitempty"`
	Fastest      *FlightItinerary   `json:"fastest,omitempty"`
	Best         *FlightItinerary   `json:"best,omitempty"`
}
