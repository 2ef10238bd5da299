package collector

import (
	"context"
	"errors"
)

// Failure kinds returned by fetchers. Callers skip the pair for the cycle.
var (
	ErrRequest   = errors.New("price request failed")
	ErrMalformed = errors.New("malformed price response")
	ErrNoPrice   = errors.New("no price")
)

// Fetcher defines the interface for fetching the latest pool price.
type Fetcher interface {
	FetchPrice(ctx context.Context, chain, pool string) (float64, error)
	Name() string
}
