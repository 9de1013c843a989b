package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix  = "user:%d"
	PlaceKeyPrefix = "place:%d"
)

const (
	UserTTL  = 5 * time.Minute
	PlaceTTL = 30 * time.Minute
	// WeatherTTL is the freshness window for cached weather readings.
	WeatherTTL = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PlaceKey(placeID uint) string {
	return fmt.Sprintf(PlaceKeyPrefix, placeID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePlace(ctx context.Context, placeID uint) {
	Invalidate(ctx, PlaceKey(placeID))
}
