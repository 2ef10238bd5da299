package model

import "time"

// OversoldThreshold is the RSI level strictly below which an alert fires.
const OversoldThreshold = 30.0

// Reading is one observed price together with the RSI it produced.
type Reading struct {
	Pair     Pair
	Price    float64
	RSI      float64
	Oversold bool
	At       time.Time
}

// Alert is emitted whenever a freshly computed RSI is below OversoldThreshold.
type Alert struct {
	Pair Pair
	RSI  float64
	At   time.Time
}
