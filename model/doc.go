// Package model lists the vision-capable models stylist can route to.
//
// Each [VisionModel] knows its provider and its token pricing, so a caller can
// pick a default per provider and estimate the cost of a request:
//
//	m := model.DefaultFor(stylist.ProviderAnthropic)
//	cost := m.Cost(analysis.Usage)
package model
