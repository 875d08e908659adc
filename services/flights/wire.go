// File: services/flights/wire.go
package flights

import (
	"math/rand"

	"github.com/zanegreyy/zanos/models"
)

// Raw shapes of the Skyscanner pricing-session payload. Cross references
// between itineraries, legs, segments, carriers and places are by ID.

type skyResponse struct {
	Status         string         `json:"Status"`
	Itineraries    []skyItinerary `json:"Itineraries"`
	PricingOptions []skyPricing   `json:"PricingOptions"`
	Legs           []skyLeg       `json:"Legs"`
	Segments       []skySegment   `json:"Segments"`
	Carriers       []skyCarrier   `json:"Carriers"`
	Places         []skyPlace     `json:"Places"`
}

type skyItinerary struct {
	OutboundLegID string `json:"OutboundLegId"`
	InboundLegID  string `json:"InboundLegId"`
}

type skyPricing struct {
	OutboundLegID string  `json:"OutboundLegId"`
	InboundLegID  string  `json:"InboundLegId"`
	Price         float64 `json:"Price"`
	QuoteDateTime string  `json:"QuoteDateTime"`
}

type skyLeg struct {
	ID         string   `json:"Id"`
	SegmentIDs []string `json:"SegmentIds"`
}

type skySegment struct {
	ID                 string   `json:"Id"`
	Carrier            string   `json:"Carrier"`
	DepartureDateTime  string   `json:"DepartureDateTime"`
	ArrivalDateTime    string   `json:"ArrivalDateTime"`
	OriginStation      string   `json:"OriginStation"`
	DestinationStation string   `json:"DestinationStation"`
	FlightNumber       string   `json:"FlightNumber"`
	Duration           int      `json:"Duration"`
	Stops              []string `json:"Stops"`
	Aircraft           string   `json:"Aircraft"`
}

type skyCarrier struct {
	ID       string `json:"Id"`
	Code     string `json:"Code"`
	Name     string `json:"Name"`
	ImageURL string `json:"ImageUrl"`
}

type skyPlace struct {
	ID          string `json:"Id"`
	Code        string `json:"Code"`
	Name        string `json:"Name"`
	CityName    string `json:"CityName"`
	CountryName string `json:"CountryName"`
	PlaceID     string `json:"PlaceId"`
	PlaceName   string `json:"PlaceName"`
}

func (d *skyResponse) findPricing(itin skyItinerary) skyPricing {
	for _, p := range d.PricingOptions {
		if p.OutboundLegID == itin.OutboundLegID && p.InboundLegID == itin.InboundLegID {
			return p
		}
	}
	return skyPricing{}
}

func (d *skyResponse) findLeg(id string) *skyLeg {
	for i := range d.Legs {
		if d.Legs[i].ID == id {
			return &d.Legs[i]
		}
	}
	return nil
}

func (d *skyResponse) findSegment(id string) *skySegment {
	for i := range d.Segments {
		if d.Segments[i].ID == id {
			return &d.Segments[i]
		}
	}
	return nil
}

func (d *skyResponse) findCarrier(id string) *skyCarrier {
	for i := range d.Carriers {
		if d.Carriers[i].ID == id {
			return &d.Carriers[i]
		}
	}
	return nil
}

func (d *skyResponse) formatAirport(stationID string) models.Airport {
	for _, p := range d.Places {
		if p.ID == stationID {
			return models.Airport{IATA: p.Code, Name: p.Name, City: p.CityName, Country: p.CountryName}
		}
	}
	return models.Airport{}
}

func (d *skyResponse) formatFlightSegments(legID string) []models.FlightSegment {
	leg := d.findLeg(legID)
	if leg == nil {
		return nil
	}

	segments := make([]models.FlightSegment, 0, len(leg.SegmentIDs))
	for _, segmentID := range leg.SegmentIDs {
		segment := d.findSegment(segmentID)
		if segment == nil {
			continue
		}
		airline := models.Airline{}
		flightNumber := segment.FlightNumber
		if carrier := d.findCarrier(segment.Carrier); carrier != nil {
			airline = models.Airline{IATA: carrier.Code, Name: carrier.Name, Logo: carrier.ImageURL}
			flightNumber = carrier.Code + segment.FlightNumber
		}
		segments = append(segments, models.FlightSegment{
			DepartureDateTime: segment.DepartureDateTime,
			ArrivalDateTime:   segment.ArrivalDateTime,
			DepartureAirport:  d.formatAirport(segment.OriginStation),
			ArrivalAirport:    d.formatAirport(segment.DestinationStation),
			Airline:           airline,
			FlightNumber:      flightNumber,
			DurationMinutes:   segment.Duration,
			Stops:             len(segment.Stops),
			Aircraft:          segment.Aircraft,
		})
	}
	return segments
}

// scoreItinerary assigns a display quality score. The upstream feed does
// not expose one, so this stays synthetic.
func scoreItinerary(_ float64) int {
	return rand.Intn(100)
}
