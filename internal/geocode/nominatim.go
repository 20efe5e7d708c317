package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"workhub/internal/config"
)

// NominatimClient resolves free-text locations against a Nominatim-compatible
// search endpoint (openstreetmap.org, locationiq, or a self-hosted instance).
type NominatimClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *log.Logger
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		Country string `json:"country"`
	} `json:"address"`
}

func NewNominatimClient(cfg config.GeocoderConfig, logger *log.Logger) *NominatimClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &NominatimClient{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:  strings.TrimSpace(cfg.APIKey),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *NominatimClient) Resolve(ctx context.Context, cityText string) (Result, error) {
	if c == nil || c.client == nil {
		return Result{}, ErrUnavailable
	}
	cityText = strings.TrimSpace(cityText)
	if cityText == "" {
		return Result{}, ErrUnresolved
	}

	q := url.Values{}
	q.Set("q", cityText)
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("addressdetails", "1")
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}
	endpoint := c.baseURL + "/search?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "workhub/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Printf("[Geocode] provider request failed query=%q error=%v", cityText, err)
		}
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if c.logger != nil {
			c.logger.Printf("[Geocode] provider error status=%d body=%q", resp.StatusCode, strings.TrimSpace(string(rb)))
		}
		return Result{}, fmt.Errorf("%w: status=%d", ErrUnavailable, resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(places) == 0 {
		return Result{}, ErrUnresolved
	}

	p := places[0]
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(p.Lat), 64)
	lon, lonErr := strconv.ParseFloat(strings.TrimSpace(p.Lon), 64)
	if latErr != nil || lonErr != nil {
		return Result{}, ErrUnresolved
	}

	return Result{
		Lon:              lon,
		Lat:              lat,
		FormattedAddress: formattedAddress(p, cityText),
	}, nil
}

// formattedAddress prefers the provider's display name, then a
// "city, country" composition, then the raw input text.
func formattedAddress(p nominatimPlace, original string) string {
	if s := strings.TrimSpace(p.DisplayName); s != "" {
		return s
	}

	city := p.Address.City
	if city == "" {
		city = p.Address.Town
	}
	if city == "" {
		city = p.Address.Village
	}
	if city != "" && p.Address.Country != "" {
		return city + ", " + p.Address.Country
	}

	return original
}

var _ Geocoder = (*NominatimClient)(nil)
