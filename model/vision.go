package model

import "github.com/spetersoncode/stylist"

// VisionModel is a model that accepts an image plus text and answers in text.
type VisionModel struct {
	id       string
	provider stylist.Provider
	pricing  Pricing
}

// String returns the API identifier for this model.
func (m VisionModel) String() string { return m.id }

// Provider returns which provider this model belongs to.
func (m VisionModel) Provider() stylist.Provider { return m.provider }

// Pricing returns the pricing for this model.
func (m VisionModel) Pricing() Pricing { return m.pricing }

// Cost estimates the USD cost of a request with the given usage.
func (m VisionModel) Cost(usage stylist.Usage) float64 {
	return CalculateCost(usage, m.pricing)
}

// Anthropic Claude models.
var (
	ClaudeSonnet4  = VisionModel{id: "claude-sonnet-4-20250514", provider: stylist.ProviderAnthropic, pricing: Pricing{InputPerMillion: 3.00, OutputPerMillion: 15.00}}
	ClaudeSonnet45 = VisionModel{id: "claude-sonnet-4-5", provider: stylist.ProviderAnthropic, pricing: Pricing{InputPerMillion: 3.00, OutputPerMillion: 15.00}}
	ClaudeHaiku45  = VisionModel{id: "claude-haiku-4-5", provider: stylist.ProviderAnthropic, pricing: Pricing{InputPerMillion: 1.00, OutputPerMillion: 5.00}}
	ClaudeOpus45   = VisionModel{id: "claude-opus-4-5", provider: stylist.ProviderAnthropic, pricing: Pricing{InputPerMillion: 5.00, OutputPerMillion: 25.00}}
)

// OpenAI models.
var (
	GPT5     = VisionModel{id: "gpt-5", provider: stylist.ProviderOpenAI, pricing: Pricing{InputPerMillion: 1.25, OutputPerMillion: 10.00}}
	GPT5Mini = VisionModel{id: "gpt-5-mini", provider: stylist.ProviderOpenAI, pricing: Pricing{InputPerMillion: 0.25, OutputPerMillion: 1.00}}
	GPT4o    = VisionModel{id: "gpt-4o", provider: stylist.ProviderOpenAI, pricing: Pricing{InputPerMillion: 2.50, OutputPerMillion: 10.00}}
)

// Google Gemini models.
var (
	Gemini25Flash = VisionModel{id: "gemini-2.5-flash", provider: stylist.ProviderGoogle, pricing: Pricing{InputPerMillion: 0.30, OutputPerMillion: 2.50}}
	Gemini25Pro   = VisionModel{id: "gemini-2.5-pro", provider: stylist.ProviderGoogle, pricing: Pricing{InputPerMillion: 1.25, OutputPerMillion: 10.00}}
)

var all = []VisionModel{
	ClaudeSonnet4, ClaudeSonnet45, ClaudeHaiku45, ClaudeOpus45,
	GPT5, GPT5Mini, GPT4o,
	Gemini25Flash, Gemini25Pro,
}

// DefaultFor returns the default model for provider.
// Unknown providers fall back to the Anthropic default.
func DefaultFor(provider stylist.Provider) VisionModel {
	switch provider {
	case stylist.ProviderOpenAI:
		return GPT4o
	case stylist.ProviderGoogle:
		return Gemini25Flash
	default:
		return ClaudeSonnet4
	}
}

// Lookup finds a known model by its API identifier.
func Lookup(id string) (VisionModel, bool) {
	for _, m := range all {
		if m.id == id {
			return m, true
		}
	}
	return VisionModel{}, false
}

// Resolve returns the model to use for provider: the known model named by id,
// an unpriced model carrying id verbatim, or the provider default when id is empty.
func Resolve(provider stylist.Provider, id string) VisionModel {
	if id == "" {
		return DefaultFor(provider)
	}
	if m, ok := Lookup(id); ok && m.provider == provider {
		return m
	}
	return VisionModel{id: id, provider: provider}
}
