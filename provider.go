package stylist

import "context"

// Provider identifies a vision model provider.
type Provider string

// String returns the provider identifier.
func (p Provider) String() string { return string(p) }

// Supported providers.
const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderGoogle    Provider = "google"
)

// Label returns the human-readable provider name used in error messages.
func (p Provider) Label() string {
	switch p {
	case ProviderAnthropic:
		return "Anthropic"
	case ProviderOpenAI:
		return "OpenAI"
	case ProviderGoogle:
		return "Google"
	default:
		return string(p)
	}
}

// APIKeyEnv returns the environment variable conventionally holding the provider's key.
func (p Provider) APIKeyEnv() string {
	switch p {
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderGoogle:
		return "GOOGLE_API_KEY"
	default:
		return ""
	}
}

// ParseProvider resolves a provider name. The empty string selects Anthropic.
func ParseProvider(name string) (Provider, bool) {
	switch Provider(name) {
	case "", ProviderAnthropic:
		return ProviderAnthropic, true
	case ProviderOpenAI:
		return ProviderOpenAI, true
	case ProviderGoogle:
		return ProviderGoogle, true
	default:
		return "", false
	}
}

// Reply is the text answer of a vision model to a single image + prompt request.
type Reply struct {
	// Text holds the first text block of the model's answer, untrimmed.
	Text  string `json:"text"`
	Model string `json:"model,omitempty"`
	Usage Usage  `json:"usage"`
}

// Usage contains token usage information for a request.
type Usage struct {
	InputTokens  int `json:"inputTokens"`
	OutputTokens int `json:"outputTokens"`
}

// VisionProvider sends one image and one instruction to a model and returns its text reply.
// Implementations make exactly one API call per invocation and never retry.
type VisionProvider interface {
	Describe(ctx context.Context, image Image, prompt string, opts ...Option) (*Reply, error)
}
