// Package weather fetches current conditions for a coordinate pair from a
// pluggable upstream provider and caches the readings.
package weather

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"
)

// Reading is a normalized current-weather snapshot. Temperature is in whole
// degrees Celsius, rounded half away from zero. IconURL points at the
// OpenWeatherMap icon set regardless of which provider produced the reading.
type Reading struct {
	Temperature int    `json:"temperature"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	IconURL     string `json:"icon_url"`
	Provider    string `json:"provider"`
}

// Provider fetches current conditions from one upstream API.
// A (nil, nil) return means the provider is not configured and made no call.
type Provider interface {
	Name() string
	Current(ctx context.Context, lat, lon float64) (*Reading, error)
}

const (
	ProviderOpenWeatherMap = "openweathermap"
	ProviderOpenMeteo      = "openmeteo"

	iconURLTemplate = "https://openweathermap.org/img/wn/%s@2x.png"

	requestTimeout = 5 * time.Second
	maxRetries     = 2
	retryBackoff   = 100 * time.Millisecond
)

// KnownProvider reports whether name selects a supported provider.
func KnownProvider(name string) bool {
	return name == ProviderOpenWeatherMap || name == ProviderOpenMeteo
}

func iconURL(icon string) string {
	return fmt.Sprintf(iconURLTemplate, icon)
}

func roundTemp(celsius float64) int {
	return int(math.Round(celsius))
}

// doGet issues the request with a small retry budget. Retries cover transport
// errors and 5xx responses; 4xx responses fail immediately.
func doGet(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(retryBackoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("upstream returned %d", resp.StatusCode)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("upstream returned %d", resp.StatusCode)
		}

		return resp, nil
	}

	return nil, lastErr
}
