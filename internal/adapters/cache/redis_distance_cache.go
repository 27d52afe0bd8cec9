package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"loadboard-route-service/internal/ports"
)

// Cached road distances go stale slowly; a day balances freshness against
// re-resolution cost.
const redisDistanceTTL = 24 * time.Hour

// RedisDistanceCache is a Redis-backed alternative to the SQL cache for
// deployments that share distance lookups across instances.
type RedisDistanceCache struct {
	Client *redis.Client
}

func NewRedisDistanceCache(client *redis.Client) *RedisDistanceCache {
	return &RedisDistanceCache{Client: client}
}

func distanceKey(origin, destination string) string {
	return "distance:" + origin + "|" + destination
}

// Fetch the cached road distance for one origin/destination label pair.
func (r *RedisDistanceCache) Get(
	ctx context.Context,
	origin string,
	destination string,
) (ports.DistanceResult, bool, error) {
	if r.Client == nil {
		return ports.DistanceResult{}, false, errors.New("redis distance cache: client is nil")
	}
	origin, destination = strings.TrimSpace(origin), strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return ports.DistanceResult{}, false, errors.New("get redis distance cache: origin and destination must not be empty")
	}

	val, err := r.Client.Get(ctx, distanceKey(origin, destination)).Result()
	if errors.Is(err, redis.Nil) {
		return ports.DistanceResult{}, false, nil
	}
	if err != nil {
		return ports.DistanceResult{}, false, fmt.Errorf("get redis distance cache: %w", err)
	}

	miles, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return ports.DistanceResult{}, false, fmt.Errorf("get redis distance cache: parse %q: %w", val, err)
	}

	return ports.DistanceResult{Miles: miles}, true, nil
}

// Store a road distance for one origin/destination label pair.
func (r *RedisDistanceCache) Put(
	ctx context.Context,
	origin string,
	destination string,
	result ports.DistanceResult,
) error {
	if r.Client == nil {
		return errors.New("redis distance cache: client is nil")
	}
	origin, destination = strings.TrimSpace(origin), strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return errors.New("insert redis distance cache: origin and destination must not be empty")
	}

	val := strconv.FormatFloat(result.Miles, 'f', -1, 64)
	if err := r.Client.Set(ctx, distanceKey(origin, destination), val, redisDistanceTTL).Err(); err != nil {
		return fmt.Errorf("insert redis distance cache %q -> %q: %w", origin, destination, err)
	}

	return nil
}
