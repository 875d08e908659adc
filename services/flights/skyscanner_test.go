// File: services/flights/skyscanner_test.go
package flights

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zanegreyy/zanos/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func searchParams() models.FlightSearchParams {
	return models.FlightSearchParams{
		Origin:        "JFK",
		Destination:   "LHR",
		DepartureDate: "2024-03-01",
		Passengers:    models.Passengers{Adults: 1},
		CabinClass:    "economy",
		Currency:      "USD",
		Locale:        "en-US",
	}
}

// newTestClient points a keyed client at a stub upstream with the poll
// delays shrunk so tests finish quickly.
func newTestClient(baseURL string, cache *redis.Client) *Client {
	c := NewClient("test-key", cache, zap.NewNop())
	c.baseURL = baseURL
	c.rateLimitDelay = time.Millisecond
	c.pollRetryDelay = time.Millisecond
	return c
}

func stubUpstreamPayload() *skyResponse {
	return &skyResponse{
		Status: "UpdatesComplete",
		Itineraries: []skyItinerary{
			{OutboundLegID: "leg-expensive"},
			{OutboundLegID: "leg-cheap"},
		},
		PricingOptions: []skyPricing{
			{OutboundLegID: "leg-expensive", Price: 540, QuoteDateTime: "https://partners.example/deeplink/1"},
			{OutboundLegID: "leg-cheap", Price: 310, QuoteDateTime: "https://partners.example/deeplink/2"},
		},
		Legs: []skyLeg{
			{ID: "leg-expensive", SegmentIDs: []string{"seg-1"}},
			{ID: "leg-cheap", SegmentIDs: []string{"seg-2"}},
		},
		Segments: []skySegment{
			{
				ID: "seg-1", Carrier: "carrier-ba",
				DepartureDateTime: "2024-03-01T08:00:00", ArrivalDateTime: "2024-03-01T14:30:00",
				OriginStation: "place-jfk", DestinationStation: "place-lhr",
				FlightNumber: "178", Duration: 390,
			},
			{
				ID: "seg-2", Carrier: "carrier-vs",
				DepartureDateTime: "2024-03-01T10:30:00", ArrivalDateTime: "2024-03-01T18:45:00",
				OriginStation: "place-jfk", DestinationStation: "place-lhr",
				FlightNumber: "123", Duration: 495, Stops: []string{"place-bos"},
			},
		},
		Carriers: []skyCarrier{
			{ID: "carrier-ba", Code: "BA", Name: "British Airways"},
			{ID: "carrier-vs", Code: "VS", Name: "Virgin Atlantic"},
		},
		Places: []skyPlace{
			{ID: "place-jfk", Code: "JFK", Name: "John F. Kennedy International", CityName: "New York", CountryName: "United States"},
			{ID: "place-lhr", Code: "LHR", Name: "Heathrow", CityName: "London", CountryName: "United Kingdom"},
		},
	}
}

// stubUpstream serves the pricing-session flow: session creation answers
// with a Location header, polling answers with the given payload.
func stubUpstream(t *testing.T, payload *skyResponse, sessions *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/pricing/v1.0", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "JFK", r.PostForm.Get("originPlace"))
		assert.Equal(t, "LHR", r.PostForm.Get("destinationPlace"))
		if sessions != nil {
			atomic.AddInt32(sessions, 1)
		}
		w.Header().Set("Location", "apiservices/pricing/uk2/v1.0/sess-123")
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("/pricing/uk2/v1.0/sess-123", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	})
	return httptest.NewServer(mux)
}

func TestSearchFlights_ValidationErrors(t *testing.T) {
	c := NewClient("", nil, zap.NewNop())

	cases := []struct {
		name   string
		mutate func(*models.FlightSearchParams)
		want   string
	}{
		{"missing origin", func(p *models.FlightSearchParams) { p.Origin = "" }, "origin and destination"},
		{"missing destination", func(p *models.FlightSearchParams) { p.Destination = "" }, "origin and destination"},
		{"missing departure date", func(p *models.FlightSearchParams) { p.DepartureDate = "" }, "departure date"},
		{"no adults", func(p *models.FlightSearchParams) { p.Passengers.Adults = 0 }, "at least one adult"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := searchParams()
			tc.mutate(&params)
			resp, err := c.SearchFlights(context.Background(), params)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestSearchFlights_NoAPIKeyUsesMock(t *testing.T) {
	c := NewClient("", nil, zap.NewNop())

	resp, err := c.SearchFlights(context.Background(), searchParams())

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.SearchID, "mock_search_"))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, 2, resp.TotalResults)
	assert.Equal(t, "USD", resp.Currency)

	require.NotNil(t, resp.Cheapest)
	assert.Equal(t, "flight_2", resp.Cheapest.ID)
	assert.Equal(t, 259.0, resp.Cheapest.Price.Amount)
	require.NotNil(t, resp.Fastest)
	assert.Equal(t, "flight_1", resp.Fastest.ID)
	assert.True(t, resp.Fastest.IsDirectFlight)
}

func TestSearchFlights_UpstreamHappyPath(t *testing.T) {
	srv := stubUpstream(t, stubUpstreamPayload(), nil)
	defer srv.Close()
	c := newTestClient(srv.URL, nil)

	resp, err := c.SearchFlights(context.Background(), searchParams())

	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, 2, resp.TotalResults)

	// Results come back sorted by price.
	assert.Equal(t, 310.0, resp.Results[0].Price.Amount)
	assert.Equal(t, 540.0, resp.Results[1].Price.Amount)
	require.NotNil(t, resp.Cheapest)
	assert.Equal(t, 310.0, resp.Cheapest.Price.Amount)
	require.NotNil(t, resp.Fastest)
	assert.Equal(t, 390, resp.Fastest.TotalDuration)

	direct := resp.Results[1]
	require.Len(t, direct.Outbound, 1)
	seg := direct.Outbound[0]
	assert.Equal(t, "BA178", seg.FlightNumber)
	assert.Equal(t, "British Airways", seg.Airline.Name)
	assert.Equal(t, "JFK", seg.DepartureAirport.IATA)
	assert.Equal(t, "London", seg.ArrivalAirport.City)
	assert.True(t, direct.IsDirectFlight)

	oneStop := resp.Results[0]
	assert.Equal(t, 1, oneStop.Stops)
	assert.False(t, oneStop.IsDirectFlight)
}

func TestSearchFlights_UpstreamFailureFallsBackToMock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	c := newTestClient(srv.URL, nil)

	resp, err := c.SearchFlights(context.Background(), searchParams())

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.SearchID, "mock_search_"))
	assert.Len(t, resp.Results, 2)
}

func TestSearchFlights_EmptyUpstreamFallsBackToMock(t *testing.T) {
	payload := stubUpstreamPayload()
	payload.Itineraries = nil
	srv := stubUpstream(t, payload, nil)
	defer srv.Close()
	c := newTestClient(srv.URL, nil)

	resp, err := c.SearchFlights(context.Background(), searchParams())

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.SearchID, "mock_search_"))
}

func TestSearchFlights_SecondCallServedFromCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	var sessions int32
	srv := stubUpstream(t, stubUpstreamPayload(), &sessions)
	defer srv.Close()
	c := newTestClient(srv.URL, cache)

	first, err := c.SearchFlights(context.Background(), searchParams())
	require.NoError(t, err)
	second, err := c.SearchFlights(context.Background(), searchParams())
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&sessions))
	assert.Equal(t, first.SearchID, second.SearchID)
	assert.Equal(t, first.Results, second.Results)
}

func TestSearchFlights_CacheUnavailableStillSearches(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()
	mr.Close() // cache reads and writes now fail

	srv := stubUpstream(t, stubUpstreamPayload(), nil)
	defer srv.Close()
	c := newTestClient(srv.URL, cache)

	resp, err := c.SearchFlights(context.Background(), searchParams())

	require.NoError(t, err)
	assert.Len(t, resp.Results, 2)
}

func TestAirportSuggestions_EmptyQueryRejected(t *testing.T) {
	c := NewClient("", nil, zap.NewNop())

	_, err := c.AirportSuggestions(context.Background(), "", "en-US")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "query is required")
}

func TestAirportSuggestions_NoAPIKeyFiltersMockSet(t *testing.T) {
	c := NewClient("", nil, zap.NewNop())

	airports, err := c.AirportSuggestions(context.Background(), "lon", "en-US")
	require.NoError(t, err)
	require.Len(t, airports, 1)
	assert.Equal(t, "LHR", airports[0].IATA)

	airports, err = c.AirportSuggestions(context.Background(), "JFK", "")
	require.NoError(t, err)
	require.Len(t, airports, 1)
	assert.Equal(t, "New York", airports[0].City)

	airports, err = c.AirportSuggestions(context.Background(), "zzz", "en-US")
	require.NoError(t, err)
	assert.Empty(t, airports)
}

func TestAirportSuggestions_Upstream(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/autosuggest/v1.0/en-US/lisbon", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		payload := map[string]any{"Places": []map[string]any{
			{"PlaceId": "LIS-sky", "PlaceName": "Lisbon Humberto Delgado", "CityName": "Lisbon", "CountryName": "Portugal"},
			{"PlaceId": "", "PlaceName": "nameless"},
		}}
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	c := newTestClient(srv.URL, nil)

	airports, err := c.AirportSuggestions(context.Background(), "lisbon", "en-US")

	require.NoError(t, err)
	require.Len(t, airports, 1)
	assert.Equal(t, "LIS-sky", airports[0].IATA)
	assert.Equal(t, "Lisbon", airports[0].City)
	assert.Equal(t, "Portugal", airports[0].Country)
}
