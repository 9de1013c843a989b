package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"unicode"
	"unicode/utf8"
)

const openWeatherMapBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// OpenWeatherMap fetches current conditions from the OpenWeatherMap API in
// metric units. An empty API key makes the provider a no-op.
type OpenWeatherMap struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewOpenWeatherMap(apiKey string, client *http.Client) *OpenWeatherMap {
	return &OpenWeatherMap{
		apiKey:  apiKey,
		baseURL: openWeatherMapBaseURL,
		client:  client,
	}
}

func (p *OpenWeatherMap) Name() string {
	return ProviderOpenWeatherMap
}

func (p *OpenWeatherMap) Current(ctx context.Context, lat, lon float64) (*Reading, error) {
	if p.apiKey == "" {
		slog.Debug("openweathermap api key not configured, skipping lookup")
		return nil, nil
	}

	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")

	resp, err := doGet(ctx, p.client, p.baseURL+"?"+values.Encode())
	if err != nil {
		return nil, fmt.Errorf("openweathermap request: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("openweathermap decode: %w", err)
	}

	var description, icon string
	if len(payload.Weather) > 0 {
		description = ucfirst(payload.Weather[0].Description)
		icon = payload.Weather[0].Icon
	}

	return &Reading{
		Temperature: roundTemp(payload.Main.Temp),
		Description: description,
		Icon:        icon,
		IconURL:     iconURL(icon),
		Provider:    ProviderOpenWeatherMap,
	}, nil
}

// ucfirst upper-cases the first rune; OpenWeatherMap descriptions arrive
// all-lowercase ("clear sky").
func ucfirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
