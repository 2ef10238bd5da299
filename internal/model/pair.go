package model

import (
	"fmt"
	"strings"
)

// Pair identifies a liquidity pool on a given network.
type Pair struct {
	Chain string
	Pool  string
}

// Key returns the identifier used to track the pair's price history.
func (p Pair) Key() string {
	return p.Chain + "_" + p.Pool
}

// Link returns the GeckoTerminal page for the pool.
func (p Pair) Link() string {
	return fmt.Sprintf("https://www.geckoterminal.com/%s/pools/%s", p.Chain, p.Pool)
}

// Short returns a compact label for logs and status output.
func (p Pair) Short() string {
	pool := p.Pool
	if len(pool) > 6 {
		pool = pool[:6]
	}
	return p.Chain + "/" + pool + "..."
}

func (p Pair) String() string {
	return p.Chain + "/" + p.Pool
}

// ChainLabel is the upper-cased chain name used in alert messages.
func (p Pair) ChainLabel() string {
	return strings.ToUpper(p.Chain)
}
