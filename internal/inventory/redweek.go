package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"resortshare/internal/domain"
)

const (
	defaultImageURL    = "https://images.unsplash.com/photo-1566073771259-6a8506099945?w=800"
	defaultRating      = "4.0"
	defaultPriceMin    = 200
	defaultPriceMax    = 400
	defaultDestination = "Unknown Destination"
	defaultLocation    = "Unknown Location"
)

var defaultAmenities = []string{"Pool", "WiFi", "Parking"}

var ErrNotAuthenticated = errors.New("redweek provider not authenticated")

// RedWeekProvider talks to the RedWeek listings API. Outbound calls are gated
// by a rate limiter so bulk syncs stay inside the provider's quota.
type RedWeekProvider struct {
	baseURL string
	httpc   *http.Client
	limiter *rate.Limiter

	mu     sync.Mutex
	apiKey string
}

func NewRedWeekProvider(baseURL string, requestsPerMinute int) *RedWeekProvider {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	return &RedWeekProvider{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), requestsPerMinute),
	}
}

func (p *RedWeekProvider) Name() string { return "RedWeek" }

// Authenticate stores the API key and probes the test endpoint. A failed
// probe does not block later FetchInventory calls; callers must not assume
// authentication is enforced before fetch.
func (p *RedWeekProvider) Authenticate(ctx context.Context, credentials map[string]string) (bool, error) {
	key := credentials["apiKey"]
	p.mu.Lock()
	p.apiKey = key
	p.mu.Unlock()
	if key == "" {
		return false, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/test", nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+key)
	resp, err := p.httpc.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
}

func (p *RedWeekProvider) FetchInventory(ctx context.Context, filters *Filters) ([]ExternalListing, error) {
	p.mu.Lock()
	key := p.apiKey
	p.mu.Unlock()
	if key == "" {
		return nil, ErrNotAuthenticated
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	if filters != nil {
		if filters.Destination != "" {
			q.Set("destination", filters.Destination)
		}
		if filters.PriceMin > 0 {
			q.Set("price_min", strconv.Itoa(filters.PriceMin))
		}
		if filters.PriceMax > 0 {
			q.Set("price_max", strconv.Itoa(filters.PriceMax))
		}
		if filters.CheckIn != nil {
			q.Set("check_in", filters.CheckIn.Format("2006-01-02"))
		}
		if filters.CheckOut != nil {
			q.Set("check_out", filters.CheckOut.Format("2006-01-02"))
		}
		if filters.Limit > 0 {
			q.Set("limit", strconv.Itoa(filters.Limit))
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/listings?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("redweek api error: %d", resp.StatusCode)
	}

	var body struct {
		Listings []ExternalListing `json:"listings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("redweek decode: %w", err)
	}
	return body.Listings, nil
}

// TransformListing normalizes a raw listing, supplying a default for every
// optional catalog field so the output is always complete.
func (p *RedWeekProvider) TransformListing(l ExternalListing) (domain.InsertResort, error) {
	location := l.Location
	if location == "" {
		location = l.Destination
	}
	if location == "" {
		location = defaultLocation
	}
	destination := l.Destination
	if destination == "" {
		destination = defaultDestination
	}
	description := l.Description
	if description == "" {
		description = fmt.Sprintf("Beautiful %s resort", l.Name)
	}
	image := defaultImageURL
	if len(l.Images) > 0 {
		image = l.Images[0]
	}
	amenities := l.Amenities
	if len(amenities) == 0 {
		amenities = defaultAmenities
	}

	priceMin, priceMax := defaultPriceMin, defaultPriceMax
	if l.Price != nil {
		if l.Price.Min > 0 {
			priceMin = l.Price.Min
		}
		if l.Price.Max > 0 {
			priceMax = l.Price.Max
		}
	}
	rentals, isNew := 1, false
	if l.Availability != nil {
		if l.Availability.Count > 0 {
			rentals = l.Availability.Count
		}
		isNew = l.Availability.IsNew
	}

	return domain.InsertResort{
		Name:              l.Name,
		Location:          location,
		Destination:       destination,
		Description:       description,
		ImageURL:          image,
		Amenities:         amenities,
		Rating:            coerceRating(l.Rating),
		PriceMin:          priceMin,
		PriceMax:          priceMax,
		AvailableRentals:  rentals,
		IsNewAvailability: isNew,
	}, nil
}

// coerceRating normalizes the provider-dependent rating (number or string)
// to the catalog's string representation.
func coerceRating(r any) string {
	switch v := r.(type) {
	case nil:
		return defaultRating
	case string:
		if v == "" {
			return defaultRating
		}
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
