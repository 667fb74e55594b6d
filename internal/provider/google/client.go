package google

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"

	"google.golang.org/genai"

	"github.com/spetersoncode/stylist"
	"github.com/spetersoncode/stylist/internal/provider/upstream"
)

// DefaultModel is used when neither the client nor the request names a model.
const DefaultModel = "gemini-2.5-flash"

// Client wraps the Google GenAI SDK to implement stylist.VisionProvider.
type Client struct {
	client  *genai.Client
	model   string
	baseURL string
	base    http.RoundTripper
}

// New creates a new Google GenAI client with the given API key.
// Non-success responses are intercepted at the transport so their body is kept.
func New(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	c := &Client{
		model: DefaultModel,
	}
	for _, opt := range opts {
		opt(c)
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPClient: &http.Client{
			Transport: &upstream.Transport{Provider: stylist.ProviderGoogle, Base: c.base},
		},
	}
	if c.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c.client = client
	return c, nil
}

// ClientOption configures the Google client.
type ClientOption func(*Client)

// WithModel sets the default model for requests.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL points the client at a different API host.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithTransport sets the round tripper underneath the error-capturing transport.
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *Client) {
		c.base = rt
	}
}

// Describe sends the image as inline data followed by the prompt and returns
// the first text part of the first candidate.
func (c *Client) Describe(ctx context.Context, image stylist.Image, prompt string, opts ...stylist.Option) (*stylist.Reply, error) {
	options := stylist.ApplyOptions(opts...)
	model := c.model
	if options.Model != "" {
		model = options.Model
	}

	data, err := base64.StdEncoding.DecodeString(image.Base64)
	if err != nil {
		return nil, stylist.NewUserInputError("Image data is not valid base64", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, image.MediaType()),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{}
	if options.MaxTokens > 0 {
		config.MaxOutputTokens = int32(options.MaxTokens)
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, wrapError(err)
	}

	text := ""
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if part.Text != "" {
				text = part.Text
				break
			}
		}
	}

	usage := stylist.Usage{}
	if resp.UsageMetadata != nil {
		usage.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		usage.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}

	return &stylist.Reply{
		Text:  text,
		Model: model,
		Usage: usage,
	}, nil
}

// wrapError maps SDK errors onto stylist upstream errors.
// genai.APIError does not keep the raw body, so its message stands in for it.
func wrapError(err error) error {
	var se *stylist.Error
	if errors.As(err, &se) {
		return se
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return stylist.NewUpstreamError(stylist.ProviderGoogle.Label(), apiErr.Code, apiErr.Message, err)
	}
	return err
}

var _ stylist.VisionProvider = (*Client)(nil)
