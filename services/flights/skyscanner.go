// File: services/flights/skyscanner.go
package flights

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/zanegreyy/zanos/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://partners.api.skyscanner.net/apiservices"

	searchCachePrefix  = "flights:search:"
	suggestCachePrefix = "flights:suggest:"
	searchCacheTTL     = 5 * time.Minute
	suggestCacheTTL    = time.Hour
)

// Client wraps the Skyscanner flight-search API. When no API key is
// configured, or when any upstream step fails, searches fall back to the
// fixed mock result set instead of returning an error.
type Client struct {
	apiKey          string
	baseURL         string
	httpc           *http.Client
	cache           *redis.Client
	logger          *zap.Logger
	rateLimitDelay  time.Duration
	pollRetryDelay  time.Duration
	maxPollAttempts int
}

// NewClient builds a flight-search client. The cache client may be nil,
// in which case every call goes upstream.
func NewClient(apiKey string, cache *redis.Client, logger *zap.Logger) *Client {
	return &Client{
		apiKey:          apiKey,
		baseURL:         defaultBaseURL,
		httpc:           &http.Client{Timeout: 15 * time.Second},
		cache:           cache,
		logger:          logger,
		rateLimitDelay:  time.Second,
		pollRetryDelay:  2 * time.Second,
		maxPollAttempts: 10,
	}
}

// SearchFlights runs one flight search. Parameter validation is the only
// error path; everything upstream degrades to mock results.
func (c *Client) SearchFlights(ctx context.Context, params models.FlightSearchParams) (*models.FlightSearchResponse, error) {
	if err := validateSearchParams(params); err != nil {
		return nil, err
	}

	if c.apiKey == "" {
		c.logger.Warn("Skyscanner API key not configured, using mock flight data")
		return mockFlightResults(params), nil
	}

	cacheKey := searchCachePrefix + hashParams(params)
	if cached := c.cacheGet(ctx, cacheKey); cached != nil {
		var resp models.FlightSearchResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return &resp, nil
		}
	}

	resp, err := c.searchUpstream(ctx, params)
	if err != nil {
		c.logger.Error("flight search failed, falling back to mock data", zap.Error(err))
		return mockFlightResults(params), nil
	}

	c.cacheSet(ctx, cacheKey, resp, searchCacheTTL)
	return resp, nil
}

// AirportSuggestions returns airport matches for an autocomplete query,
// with the same key-absent/failure mock fallback as flight search.
func (c *Client) AirportSuggestions(ctx context.Context, query, locale string) ([]models.Airport, error) {
	if query == "" {
		return nil, errors.New("query is required")
	}
	if locale == "" {
		locale = "en-US"
	}

	if c.apiKey == "" {
		c.logger.Warn("Skyscanner API key not configured, using mock airport data")
		return mockAirportSuggestions(query), nil
	}

	cacheKey := suggestCachePrefix + locale + ":" + strings.ToLower(query)
	if cached := c.cacheGet(ctx, cacheKey); cached != nil {
		var airports []models.Airport
		if err := json.Unmarshal(cached, &airports); err == nil {
			return airports, nil
		}
	}

	airports, err := c.suggestUpstream(ctx, query, locale)
	if err != nil {
		c.logger.Error("airport search failed, falling back to mock data", zap.Error(err))
		return mockAirportSuggestions(query), nil
	}

	c.cacheSet(ctx, cacheKey, airports, suggestCacheTTL)
	return airports, nil
}

func (c *Client) searchUpstream(ctx context.Context, params models.FlightSearchParams) (*models.FlightSearchResponse, error) {
	sessionKey, err := c.createSearchSession(ctx, params)
	if err != nil {
		return nil, err
	}
	raw, err := c.pollSearchResults(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if len(raw.Itineraries) == 0 {
		return nil, errors.New("no itineraries in upstream response")
	}
	return c.processFlightResults(raw, params), nil
}

// createSearchSession starts a pricing session; the session key comes back
// in the Location header.
func (c *Client) createSearchSession(ctx context.Context, params models.FlightSearchParams) (string, error) {
	form := url.Values{}
	form.Set("country", "US")
	form.Set("currency", params.Currency)
	form.Set("locale", params.Locale)
	form.Set("originPlace", params.Origin)
	form.Set("destinationPlace", params.Destination)
	form.Set("outboundDate", params.DepartureDate)
	form.Set("adults", fmt.Sprintf("%d", params.Passengers.Adults))
	form.Set("children", fmt.Sprintf("%d", params.Passengers.Children))
	form.Set("infants", fmt.Sprintf("%d", params.Passengers.Infants))
	form.Set("cabinClass", params.CabinClass)
	form.Set("apikey", c.apiKey)
	if params.ReturnDate != "" {
		form.Set("inboundDate", params.ReturnDate)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/pricing/v1.0", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-RapidAPI-Key", c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("failed to create search session: %d", resp.StatusCode)
	}
	location := resp.Header.Get("Location")
	if location == "" {
		return "", errors.New("no session location returned")
	}
	parts := strings.Split(location, "/")
	return parts[len(parts)-1], nil
}

// pollSearchResults polls the session until results are complete or the
// attempt budget is spent.
func (c *Client) pollSearchResults(ctx context.Context, sessionKey string) (*skyResponse, error) {
	for attempt := 0; attempt < c.maxPollAttempts; attempt++ {
		if err := sleepCtx(ctx, c.rateLimitDelay); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet,
			fmt.Sprintf("%s/pricing/uk2/v1.0/%s?apikey=%s", c.baseURL, sessionKey, c.apiKey), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-RapidAPI-Key", c.apiKey)

		resp, err := c.httpc.Do(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			if attempt == c.maxPollAttempts-1 {
				return nil, fmt.Errorf("failed to get search results: %d", resp.StatusCode)
			}
			continue
		}

		var data skyResponse
		err = json.NewDecoder(resp.Body).Decode(&data)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("malformed search results: %w", err)
		}

		if data.Status == "UpdatesComplete" || len(data.Itineraries) > 0 {
			return &data, nil
		}

		if attempt < c.maxPollAttempts-1 {
			if err := sleepCtx(ctx, c.pollRetryDelay); err != nil {
				return nil, err
			}
		}
	}
	return nil, errors.New("search timeout - no results found")
}

func (c *Client) suggestUpstream(ctx context.Context, query, locale string) ([]models.Airport, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/autosuggest/v1.0/%s/%s?apikey=%s", c.baseURL, locale, url.PathEscape(query), c.apiKey), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-RapidAPI-Key", c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("autosuggest returned status %d", resp.StatusCode)
	}

	var data struct {
		Places []skyPlace `json:"Places"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("malformed autosuggest response: %w", err)
	}

	airports := make([]models.Airport, 0, len(data.Places))
	for _, place := range data.Places {
		if place.PlaceID == "" || place.PlaceName == "" {
			continue
		}
		city := place.CityName
		if city == "" {
			city = place.PlaceName
		}
		airports = append(airports, models.Airport{
			IATA:    place.PlaceID,
			Name:    place.PlaceName,
			City:    city,
			Country: place.CountryName,
		})
		if len(airports) == 10 {
			break
		}
	}
	return airports, nil
}

// processFlightResults maps the raw session payload into the public
// response shape, sorted by price with cheapest/fastest/best picked out.
func (c *Client) processFlightResults(data *skyResponse, params models.FlightSearchParams) *models.FlightSearchResponse {
	itineraries := make([]models.FlightItinerary, 0, len(data.Itineraries))
	for _, itin := range data.Itineraries {
		pricing := data.findPricing(itin)

		result := models.FlightItinerary{
			ID:         itin.OutboundLegID + itin.InboundLegID,
			Price:      models.Price{Amount: pricing.Price, Currency: params.Currency},
			Outbound:   data.formatFlightSegments(itin.OutboundLegID),
			ValidUntil: time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
			BookingURL: pricing.QuoteDateTime,
			Score:      scoreItinerary(pricing.Price),
		}
		if itin.InboundLegID != "" {
			result.Inbound = data.formatFlightSegments(itin.InboundLegID)
		}
		for _, seg := range result.Outbound {
			result.TotalDuration += seg.DurationMinutes
			result.Stops += seg.Stops
		}
		result.IsDirectFlight = result.Stops == 0
		itineraries = append(itineraries, result)
	}

	sort.Slice(itineraries, func(i, j int) bool {
		return itineraries[i].Price.Amount < itineraries[j].Price.Amount
	})

	resp := &models.FlightSearchResponse{
		SearchID:     fmt.Sprintf("search_%d", time.Now().UnixMilli()),
		Results:      itineraries,
		TotalResults: len(itineraries),
		SearchParams: params,
		Currency:     params.Currency,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}
	if len(itineraries) > 0 {
		resp.Cheapest = &itineraries[0]
		resp.Fastest = findFastestFlight(itineraries)
		resp.Best = findBestFlight(itineraries)
	}
	return resp
}

func validateSearchParams(params models.FlightSearchParams) error {
	if params.Origin == "" || params.Destination == "" {
		return errors.New("origin and destination are required")
	}
	if params.DepartureDate == "" {
		return errors.New("departure date is required")
	}
	if params.Passengers.Adults < 1 {
		return errors.New("at least one adult passenger is required")
	}
	return nil
}

func findFastestFlight(itineraries []models.FlightItinerary) *models.FlightItinerary {
	fastest := &itineraries[0]
	for i := range itineraries {
		if itineraries[i].TotalDuration < fastest.TotalDuration {
			fastest = &itineraries[i]
		}
	}
	return fastest
}

func findBestFlight(itineraries []models.FlightItinerary) *models.FlightItinerary {
	best := &itineraries[0]
	for i := range itineraries {
		if itineraries[i].Score > best.Score {
			best = &itineraries[i]
		}
	}
	return best
}

func (c *Client) cacheGet(ctx context.Context, key string) []byte {
	if c.cache == nil {
		return nil
	}
	data, err := c.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	return data
}

func (c *Client) cacheSet(ctx context.Context, key string, v any, ttl time.Duration) {
	if c.cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.Warn("failed to cache flight data", zap.String("key", key), zap.Error(err))
	}
}

func hashParams(params models.FlightSearchParams) string {
	data, _ := json.Marshal(params)
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
