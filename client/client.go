package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spetersoncode/stylist"
	"github.com/spetersoncode/stylist/internal/provider/anthropic"
	"github.com/spetersoncode/stylist/internal/provider/google"
	"github.com/spetersoncode/stylist/internal/provider/openai"
	"github.com/spetersoncode/stylist/model"
)

// APIKeys holds API keys for different providers.
// Only the key of the selected provider is required.
type APIKeys struct {
	Anthropic string
	OpenAI    string
	Google    string
}

// For returns the key configured for provider.
func (k APIKeys) For(provider stylist.Provider) string {
	switch provider {
	case stylist.ProviderAnthropic:
		return k.Anthropic
	case stylist.ProviderOpenAI:
		return k.OpenAI
	case stylist.ProviderGoogle:
		return k.Google
	default:
		return ""
	}
}

// Config holds configuration for creating a client.
type Config struct {
	APIKeys APIKeys

	// Provider selects the backend. Empty means Anthropic.
	Provider stylist.Provider

	// Model overrides the provider's default model.
	Model string

	// BaseURL overrides the provider API host.
	BaseURL string

	// Events is an optional channel for receiving client operation events.
	// Events are sent non-blocking; if the channel is full, events are dropped.
	Events chan<- Event
}

// ErrMissingAPIKey is returned when the selected provider has no API key.
type ErrMissingAPIKey struct {
	Provider stylist.Provider
}

func (e *ErrMissingAPIKey) Error() string {
	return fmt.Sprintf("no API key configured for %s", e.Provider)
}

// Hint is the caller-facing message naming the variable to set.
func (e *ErrMissingAPIKey) Hint() string {
	return fmt.Sprintf("%s not configured. Please add it to your environment variables.", e.Provider.APIKeyEnv())
}

// Client routes vision requests to the configured provider.
// The provider SDK client is created on first use, so a missing key is
// reported per request rather than at construction.
type Client struct {
	apiKeys  APIKeys
	provider stylist.Provider
	model    model.VisionModel
	baseURL  string
	events   chan<- Event

	mu        sync.Mutex
	vision    stylist.VisionProvider
	newVision func(ctx context.Context) (stylist.VisionProvider, error)
}

// New creates a client with the given configuration.
func New(cfg Config) *Client {
	provider := cfg.Provider
	if provider == "" {
		provider = stylist.ProviderAnthropic
	}

	c := &Client{
		apiKeys:  cfg.APIKeys,
		provider: provider,
		model:    model.Resolve(provider, cfg.Model),
		baseURL:  cfg.BaseURL,
		events:   cfg.Events,
	}
	c.newVision = c.buildProvider
	return c
}

// Provider returns the selected provider.
func (c *Client) Provider() stylist.Provider {
	return c.provider
}

// Model returns the model requests are sent to unless overridden per request.
func (c *Client) Model() model.VisionModel {
	return c.model
}

// getProvider returns the provider client, initializing it if needed.
// Failed initializations are not cached so a later request can succeed.
func (c *Client) getProvider(ctx context.Context) (stylist.VisionProvider, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.vision != nil {
		return c.vision, nil
	}

	if c.apiKeys.For(c.provider) == "" {
		missing := &ErrMissingAPIKey{Provider: c.provider}
		return nil, stylist.NewConfigError(missing.Hint(), missing)
	}

	vision, err := c.newVision(ctx)
	if err != nil {
		return nil, stylist.NewConfigError(fmt.Sprintf("failed to initialize %s client: %v", c.provider.Label(), err), err)
	}
	c.vision = vision
	return c.vision, nil
}

func (c *Client) buildProvider(ctx context.Context) (stylist.VisionProvider, error) {
	key := c.apiKeys.For(c.provider)
	switch c.provider {
	case stylist.ProviderAnthropic:
		return anthropic.New(key,
			anthropic.WithModel(c.model.String()),
			anthropic.WithBaseURL(c.baseURL),
		), nil
	case stylist.ProviderOpenAI:
		return openai.New(key,
			openai.WithModel(c.model.String()),
			openai.WithBaseURL(c.baseURL),
		), nil
	case stylist.ProviderGoogle:
		// The SDK client outlives the request that created it.
		gc, err := google.New(context.WithoutCancel(ctx), key,
			google.WithModel(c.model.String()),
			google.WithBaseURL(c.baseURL),
		)
		if err != nil {
			return nil, err
		}
		return gc, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", c.provider)
	}
}

// Describe sends image and prompt to the configured provider.
func (c *Client) Describe(ctx context.Context, image stylist.Image, prompt string, opts ...stylist.Option) (*stylist.Reply, error) {
	vision, err := c.getProvider(ctx)
	if err != nil {
		return nil, err
	}

	options := stylist.ApplyOptions(opts...)
	modelID := options.Model
	if modelID == "" {
		modelID = c.model.String()
		opts = append([]stylist.Option{stylist.WithModel(modelID)}, opts...)
	}

	start := time.Now()
	emit(c.events, Event{
		Type:     EventRequestStart,
		Provider: c.provider,
		Model:    modelID,
	})

	reply, err := vision.Describe(ctx, image, prompt, opts...)
	if err != nil {
		emit(c.events, Event{
			Type:     EventRequestError,
			Provider: c.provider,
			Model:    modelID,
			Duration: time.Since(start),
			Error:    err,
		})
		return nil, err
	}

	emit(c.events, Event{
		Type:     EventRequestComplete,
		Provider: c.provider,
		Model:    modelID,
		Duration: time.Since(start),
		Usage:    &reply.Usage,
	})
	return reply, nil
}

var _ stylist.VisionProvider = (*Client)(nil)
