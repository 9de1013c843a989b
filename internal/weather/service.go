package weather

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"pinpoint/internal/cache"
	"pinpoint/internal/middleware"
)

// Service resolves current weather for a coordinate pair through a cache.
// Provider failures are absorbed: the caller gets a nil reading and the nil
// result is cached for the same TTL so a flapping upstream is not hammered.
type Service struct {
	defaultProvider string
	providers       map[string]Provider
	store           Store
	ttl             time.Duration
}

// NewService wires both supported providers and selects defaultProvider for
// lookups that do not override it. The store may be nil, which disables
// caching entirely.
func NewService(defaultProvider, openWeatherMapKey string, store Store) *Service {
	httpClient := &http.Client{Timeout: requestTimeout}

	providers := map[string]Provider{
		ProviderOpenWeatherMap: NewOpenWeatherMap(openWeatherMapKey, httpClient),
		ProviderOpenMeteo:      NewOpenMeteo(httpClient),
	}
	if !KnownProvider(defaultProvider) {
		defaultProvider = ProviderOpenWeatherMap
	}

	return &Service{
		defaultProvider: defaultProvider,
		providers:       providers,
		store:           store,
		ttl:             cache.WeatherTTL,
	}
}

// NewServiceWithProviders injects specific providers and TTL. Intended for tests.
func NewServiceWithProviders(defaultProvider string, providers map[string]Provider, store Store, ttl time.Duration) *Service {
	return &Service{
		defaultProvider: defaultProvider,
		providers:       providers,
		store:           store,
		ttl:             ttl,
	}
}

// DefaultProvider returns the provider name used when no override is given.
func (s *Service) DefaultProvider() string {
	return s.defaultProvider
}

// Current returns the cached or freshly fetched reading for the coordinate
// pair using the default provider. A nil reading with a nil error means the
// lookup is degraded (provider unconfigured or failing).
func (s *Service) Current(ctx context.Context, lat, lon float64) (*Reading, error) {
	return s.CurrentFrom(ctx, s.defaultProvider, lat, lon)
}

// CurrentFrom is Current with an explicit provider name. Unknown names are an error.
func (s *Service) CurrentFrom(ctx context.Context, providerName string, lat, lon float64) (*Reading, error) {
	provider, ok := s.providers[providerName]
	if !ok {
		return nil, fmt.Errorf("unknown weather provider %q", providerName)
	}

	key := CacheKey(providerName, lat, lon)

	if s.store != nil {
		if reading, found := s.store.Get(ctx, key); found {
			middleware.WeatherLookups.WithLabelValues(providerName, "hit").Inc()
			return reading, nil
		}
	}

	reading, err := provider.Current(ctx, lat, lon)
	if err != nil {
		slog.WarnContext(ctx, "weather lookup failed",
			"provider", providerName,
			"lat", lat,
			"lon", lon,
			"error", err.Error(),
		)
		middleware.WeatherLookups.WithLabelValues(providerName, "degraded").Inc()
		reading = nil
	} else {
		middleware.WeatherLookups.WithLabelValues(providerName, "miss").Inc()
	}

	// Cache nil results too so a dead upstream is only probed once per TTL.
	if s.store != nil {
		s.store.Set(ctx, key, reading, s.ttl)
	}

	return reading, nil
}

// CacheKey builds the per-provider, per-coordinate cache key. Coordinates keep
// their full precision, so nearby points cache independently.
func CacheKey(provider string, lat, lon float64) string {
	return fmt.Sprintf("weather_%s_%s_%s",
		provider,
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lon, 'f', -1, 64),
	)
}
