package distance

import (
	"context"
	"fmt"

	"loadboard-route-service/internal/domain"
	"loadboard-route-service/internal/ports"
)

type MockPair struct {
	From, To string
	Miles    float64
}

type MockDistanceProvider struct {
	m map[string]ports.DistanceResult
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[string]ports.DistanceResult, len(pairs))
	for _, p := range pairs {
		m[p.From+"|"+p.To] = ports.DistanceResult{Miles: p.Miles}
	}
	return &MockDistanceProvider{m: m}
}

func (p *MockDistanceProvider) GetDistance(ctx context.Context, from, to domain.Location) (ports.DistanceResult, error) {
	r, ok := p.m[from.Label()+"|"+to.Label()]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("missing pair %q -> %q", from.Label(), to.Label())
	}

	return r, nil
}
