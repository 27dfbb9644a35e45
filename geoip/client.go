// api/geoip/client.go

// Package geoip resolves approximate geolocation for an IP through an
// external ip-api style service. Lookups are best-effort: callers degrade to
// an unknown location instead of failing.
package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	StatusSuccess = "success"
	StatusFail    = "fail"
)

// Location is the lookup payload. Status is "success" or "fail".
type Location struct {
	Status   string  `json:"status"`
	Country  string  `json:"country"`
	Region   string  `json:"regionName"`
	City     string  `json:"city"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Timezone string  `json:"timezone"`
	ISP      string  `json:"isp"`
	Org      string  `json:"org"`
	Query    string  `json:"query"`
}

// Unknown returns the degraded placeholder used when a lookup fails.
func Unknown(ip string) Location {
	return Location{Status: StatusFail, Query: ip}
}

// Resolver is the lookup interface consumed by the audit service.
type Resolver interface {
	Lookup(ctx context.Context, ip string) (Location, error)
}

// Client calls the configured endpoint over HTTP with a bounded timeout.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Lookup fetches the location for an IP. A non-success payload is returned as
// a fail-status Location without an error so callers can persist it as-is.
func (c *Client) Lookup(ctx context.Context, ip string) (Location, error) {
	url := fmt.Sprintf("%s/%s", c.endpoint, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Unknown(ip), fmt.Errorf("failed to build geoip request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Unknown(ip), fmt.Errorf("geoip lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Unknown(ip), fmt.Errorf("geoip lookup returned status %d", resp.StatusCode)
	}

	var loc Location
	if err := json.NewDecoder(resp.Body).Decode(&loc); err != nil {
		return Unknown(ip), fmt.Errorf("failed to decode geoip response: %w", err)
	}

	if loc.Status != StatusSuccess {
		loc = Unknown(ip)
	}
	if loc.Query == "" {
		loc.Query = ip
	}
	return loc, nil
}
