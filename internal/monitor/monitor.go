// Package monitor keeps a rolling price window per pair and turns each new
// price into an RSI reading.
package monitor

import (
	"math"
	"time"

	"PoolSentinel/internal/calculator"
	"PoolSentinel/internal/model"
)

const (
	// Window is the number of prices the RSI is computed over.
	Window = 14
	// seedCount copies of the first price are preloaded so the next real
	// price completes the window. Early readings are biased towards 0 or 100.
	seedCount = Window - 1
)

// Monitor owns the price histories. It is not safe for concurrent use.
type Monitor struct {
	histories map[string][]float64
}

// New creates an empty Monitor.
func New() *Monitor {
	return &Monitor{histories: make(map[string][]float64)}
}

// Seen reports whether a valid price was ever observed for key.
func (m *Monitor) Seen(key string) bool {
	return len(m.histories[key]) > 0
}

// Observe appends price to the history of key and returns the RSI once the
// window is full. Non-positive or non-finite prices are ignored.
func (m *Monitor) Observe(key string, price float64) (float64, bool) {
	if !validPrice(price) {
		return 0, false
	}

	h := m.histories[key]
	if len(h) == 0 {
		h = make([]float64, seedCount, Window+1)
		for i := range h {
			h[i] = price
		}
	}
	h = append(h, price)
	if len(h) > Window {
		h = append(h[:0], h[len(h)-Window:]...)
	}
	m.histories[key] = h

	if len(h) != Window {
		return 0, false
	}
	rsi, err := calculator.CalculateRSI(h, Window)
	if err != nil {
		return 0, false
	}
	return rsi, true
}

// Ready reports whether key has a full window.
func (m *Monitor) Ready(key string) bool {
	return len(m.histories[key]) == Window
}

// Len returns the number of prices held for key.
func (m *Monitor) Len(key string) int {
	return len(m.histories[key])
}

// History returns a copy of the window for key, oldest first.
func (m *Monitor) History(key string) []float64 {
	h := m.histories[key]
	if h == nil {
		return nil
	}
	out := make([]float64, len(h))
	copy(out, h)
	return out
}

// Evaluate applies the oversold rule. Every reading below the threshold
// alerts; there is no cooldown between consecutive cycles.
func Evaluate(pair model.Pair, rsi float64, at time.Time) (model.Alert, bool) {
	if rsi < model.OversoldThreshold {
		return model.Alert{Pair: pair, RSI: rsi, At: at}, true
	}
	return model.Alert{}, false
}

func validPrice(p float64) bool {
	return p > 0 && !math.IsInf(p, 0) && !math.IsNaN(p)
}
