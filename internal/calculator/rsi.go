package calculator

import (
	"errors"

	"gonum.org/v1/gonum/stat"
)

// ErrInsufficientData is returned when fewer closes than the window are given.
var ErrInsufficientData = errors.New("not enough data for RSI calculation")

// CalculateRSI computes a simple-average RSI over the last `window` closes.
// Gains and losses are averaged across all window-1 intervals, so flat
// intervals count as zero for both. Zero average loss yields 100.
func CalculateRSI(closes []float64, window int) (float64, error) {
	if window < 2 {
		return 0, errors.New("window must be at least 2")
	}
	if len(closes) < window {
		return 0, ErrInsufficientData
	}

	closes = closes[len(closes)-window:]
	gains := make([]float64, window-1)
	losses := make([]float64, window-1)
	for i := 1; i < window; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i-1] = change
		} else if change < 0 {
			losses[i-1] = -change
		}
	}

	avgGain := stat.Mean(gains, nil)
	avgLoss := stat.Mean(losses, nil)
	if avgLoss == 0 {
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}
