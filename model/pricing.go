package model

import "github.com/spetersoncode/stylist"

// Pricing contains pricing per million tokens (USD).
type Pricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

// Known returns true if the pricing has been filled in.
func (p Pricing) Known() bool {
	return p.InputPerMillion > 0 || p.OutputPerMillion > 0
}

// CalculateCost returns the USD cost of usage at the given pricing.
func CalculateCost(usage stylist.Usage, pricing Pricing) float64 {
	return float64(usage.InputTokens)/1_000_000*pricing.InputPerMillion +
		float64(usage.OutputTokens)/1_000_000*pricing.OutputPerMillion
}
