package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const openMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"

// OpenMeteo fetches current conditions from the Open-Meteo API. It needs no
// API key; WMO weather codes are translated into human-readable descriptions
// and mapped onto the OpenWeatherMap icon set so both providers render alike.
type OpenMeteo struct {
	baseURL string
	client  *http.Client
}

func NewOpenMeteo(client *http.Client) *OpenMeteo {
	return &OpenMeteo{
		baseURL: openMeteoBaseURL,
		client:  client,
	}
}

func (p *OpenMeteo) Name() string {
	return ProviderOpenMeteo
}

func (p *OpenMeteo) Current(ctx context.Context, lat, lon float64) (*Reading, error) {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	values.Set("current", "temperature_2m,weather_code")

	resp, err := doGet(ctx, p.client, p.baseURL+"?"+values.Encode())
	if err != nil {
		return nil, fmt.Errorf("openmeteo request: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Current struct {
			Temperature float64 `json:"temperature_2m"`
			WeatherCode int     `json:"weather_code"`
		} `json:"current"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("openmeteo decode: %w", err)
	}

	icon := openMeteoIcon(payload.Current.WeatherCode)

	return &Reading{
		Temperature: roundTemp(payload.Current.Temperature),
		Description: openMeteoDescription(payload.Current.WeatherCode),
		Icon:        icon,
		IconURL:     iconURL(icon),
		Provider:    ProviderOpenMeteo,
	}, nil
}

// wmoDescriptions maps WMO weather interpretation codes to descriptions.
var wmoDescriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Slight snow fall",
	73: "Moderate snow fall",
	75: "Heavy snow fall",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

func openMeteoDescription(code int) string {
	if desc, ok := wmoDescriptions[code]; ok {
		return desc
	}
	return "Unknown"
}

// openMeteoIcon buckets WMO codes into the nearest OpenWeatherMap icon.
func openMeteoIcon(code int) string {
	switch {
	case code == 0:
		return "01d"
	case code <= 3:
		return "02d"
	case code <= 48:
		return "50d"
	case code <= 57:
		return "09d"
	case code <= 67:
		return "10d"
	case code <= 77:
		return "13d"
	case code <= 82:
		return "09d"
	case code <= 86:
		return "13d"
	default:
		return "11d"
	}
}
