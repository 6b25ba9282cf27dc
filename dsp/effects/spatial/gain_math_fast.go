//go:build fastmath

package spatial

import "github.com/cwbudde/algo-approx"

// ln10Over20 converts dB to the natural exponent: 10^(x/20) = e^(x*ln(10)/20).
const ln10Over20 = 0.115129254649702284200899572734

// dbToGain computes 10^(db/20) using fast approximation.
func dbToGain(db float64) float64 {
	return approx.FastExp(db * ln10Over20)
}
