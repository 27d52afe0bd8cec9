package distance

import (
	"context"
	"errors"
	"fmt"
	"log"

	"loadboard-route-service/internal/domain"
	"loadboard-route-service/internal/ports"
)

// CachedProvider serves pre-computed road distances from a cache and falls
// back to an inner provider on misses, writing fresh results through. Cache
// failures degrade to the fallback rather than failing the lookup.
type CachedProvider struct {
	Cache    ports.DistanceCache
	Fallback ports.DistanceProvider
}

func NewCachedProvider(cache ports.DistanceCache, fallback ports.DistanceProvider) (*CachedProvider, error) {
	if fallback == nil {
		return nil, errors.New("cached distance provider: fallback is required")
	}
	return &CachedProvider{Cache: cache, Fallback: fallback}, nil
}

func (p *CachedProvider) GetDistance(
	ctx context.Context,
	from, to domain.Location,
) (ports.DistanceResult, error) {
	originKey, destKey := from.Label(), to.Label()

	if p.Cache != nil {
		result, ok, err := p.Cache.Get(ctx, originKey, destKey)
		if err != nil {
			log.Printf("distance cache read failed: %v", err)
		} else if ok {
			return result, nil
		}
	}

	result, err := p.Fallback.GetDistance(ctx, from, to)
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("get distance %q -> %q: %w", originKey, destKey, err)
	}

	if p.Cache != nil {
		if err := p.Cache.Put(ctx, originKey, destKey, result); err != nil {
			log.Printf("distance cache write failed: %v", err)
		}
	}

	return result, nil
}
