// Package geocode resolves place names and coordinates to a city and country.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/mindfulpath/internal/integrations/httpapi"
	"github.com/julianstephens/mindfulpath/internal/models"
)

var ErrNoResults = errors.New("no geocoding results")

type Geocoder interface {
	Forward(ctx context.Context, query string) (models.Location, error)
	Reverse(ctx context.Context, lat, lng float64) (models.Location, error)
}

type openCageResponse struct {
	Results []struct {
		Components struct {
			City    string `json:"city"`
			Town    string `json:"town"`
			Village string `json:"village"`
			State   string `json:"state"`
			Country string `json:"country"`
		} `json:"components"`
		Formatted string `json:"formatted"`
	} `json:"results"`
}

// OpenCage queries the OpenCage geocoding JSON API.
type OpenCage struct {
	client *httpapi.Client
	apiKey string
}

func NewOpenCage(endpoint, apiKey string, timeout time.Duration) *OpenCage {
	return &OpenCage{client: httpapi.New("opencage", endpoint, timeout), apiKey: apiKey}
}

func (o *OpenCage) lookup(ctx context.Context, q string) (models.Location, error) {
	params := url.Values{}
	params.Set("q", q)
	params.Set("key", o.apiKey)
	params.Set("limit", "1")
	params.Set("no_annotations", "1")

	var resp openCageResponse
	if err := o.client.Do(ctx, http.MethodGet, "?"+params.Encode(), nil, &resp); err != nil {
		return models.Location{}, fmt.Errorf("geocoding %q failed: %w", q, err)
	}
	if len(resp.Results) == 0 {
		return models.Location{}, fmt.Errorf("%w for %q", ErrNoResults, q)
	}

	r := resp.Results[0]
	city := r.Components.City
	for _, alt := range []string{r.Components.Town, r.Components.Village, r.Components.State} {
		if city != "" {
			break
		}
		city = alt
	}
	return models.Location{City: city, Country: r.Components.Country, Formatted: r.Formatted}, nil
}

func (o *OpenCage) Forward(ctx context.Context, query string) (models.Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.Location{}, errors.New("query cannot be empty")
	}
	return o.lookup(ctx, query)
}

func (o *OpenCage) Reverse(ctx context.Context, lat, lng float64) (models.Location, error) {
	q := strconv.FormatFloat(lat, 'f', 6, 64) + "+" + strconv.FormatFloat(lng, 'f', 6, 64)
	return o.lookup(ctx, q)
}

// Static resolves a fixed table of places without network access.
type Static struct{}

var knownPlaces = map[string]models.Location{
	"india":              {Country: "India", Formatted: "India"},
	"bangalore":          {City: "Bangalore", Country: "India", Formatted: "Bangalore, Karnataka, India"},
	"bengaluru":          {City: "Bangalore", Country: "India", Formatted: "Bangalore, Karnataka, India"},
	"chennai":            {City: "Chennai", Country: "India", Formatted: "Chennai, Tamil Nadu, India"},
	"hyderabad":          {City: "Hyderabad", Country: "India", Formatted: "Hyderabad, Telangana, India"},
	"mumbai":             {City: "Mumbai", Country: "India", Formatted: "Mumbai, Maharashtra, India"},
	"madurai":            {City: "Madurai", Country: "India", Formatted: "Madurai, Tamil Nadu, India"},
	"kozhikode":          {City: "Kozhikode", Country: "India", Formatted: "Kozhikode, Kerala, India"},
	"thiruvananthapuram": {City: "Thiruvananthapuram", Country: "India", Formatted: "Thiruvananthapuram, Kerala, India"},
	"london":             {City: "London", Country: "UK", Formatted: "London, United Kingdom"},
	"uk":                 {Country: "UK", Formatted: "United Kingdom"},
	"new york":           {City: "New York", Country: "USA", Formatted: "New York, NY, United States of America"},
	"usa":                {Country: "USA", Formatted: "United States of America"},
	"geneva":             {City: "Geneva", Country: "Switzerland", Formatted: "Geneva, Switzerland"},
}

func (Static) Forward(_ context.Context, query string) (models.Location, error) {
	loc, ok := knownPlaces[strings.ToLower(strings.TrimSpace(query))]
	if !ok {
		return models.Location{}, fmt.Errorf("%w for %q", ErrNoResults, query)
	}
	return loc, nil
}

func (Static) Reverse(_ context.Context, lat, lng float64) (models.Location, error) {
	return models.Location{}, fmt.Errorf("%w for %.4f,%.4f (offline geocoder)", ErrNoResults, lat, lng)
}
