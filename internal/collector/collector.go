package collector

import (
	"context"
	"fmt"
	"math"
	"sync"
)

// Quote is one scripted response of a MockFetcher.
type Quote struct {
	Price float64
	Err   error
}

// MockFetcher returns scripted quotes per pool for development and testing.
// Once a pool's script is exhausted its last quote repeats; unknown pools
// return Default.
type MockFetcher struct {
	mu      sync.Mutex
	Scripts map[string][]Quote
	Default float64
	Calls   []string
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchPrice(_ context.Context, chain, pool string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, chain+"/"+pool)
	script := m.Scripts[pool]
	if len(script) == 0 {
		return checkPrice(m.Default)
	}
	q := script[0]
	if len(script) > 1 {
		m.Scripts[pool] = script[1:]
	}
	if q.Err != nil {
		return 0, q.Err
	}
	return checkPrice(q.Price)
}

func checkPrice(p float64) (float64, error) {
	if !(p > 0) || math.IsInf(p, 1) {
		return 0, fmt.Errorf("%w: got %v", ErrNoPrice, p)
	}
	return p, nil
}
