package anthropic

import (
	"context"
	"errors"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/spetersoncode/stylist"
	"github.com/spetersoncode/stylist/internal/provider/upstream"
)

// DefaultModel is used when neither the client nor the request names a model.
const DefaultModel = "claude-sonnet-4-20250514"

// DefaultMaxTokens is the output budget used when the request sets none.
const DefaultMaxTokens = 2000

// Client wraps the Anthropic SDK to implement stylist.VisionProvider.
type Client struct {
	client     *anthropic.Client
	model      string
	baseURL    string
	httpClient *http.Client
}

// New creates a new Anthropic client with the given API key.
// SDK retries are disabled: each Describe call is exactly one HTTP request.
func New(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		model: DefaultModel,
	}
	for _, opt := range opts {
		opt(c)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
		option.WithMiddleware(captureErrorBody),
	}
	if c.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(c.baseURL))
	}
	if c.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(c.httpClient))
	}

	client := anthropic.NewClient(reqOpts...)
	c.client = &client
	return c
}

// ClientOption configures the Anthropic client.
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

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// Describe sends a single user message holding the image followed by the
// prompt, and returns the first text block of the reply.
func (c *Client) Describe(ctx context.Context, image stylist.Image, prompt string, opts ...stylist.Option) (*stylist.Reply, error) {
	options := stylist.ApplyOptions(opts...)
	model := c.model
	if options.Model != "" {
		model = options.Model
	}

	maxTokens := int64(DefaultMaxTokens)
	if options.MaxTokens > 0 {
		maxTokens = int64(options.MaxTokens)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewImageBlockBase64(image.MediaType(), image.Base64),
				anthropic.NewTextBlock(prompt),
			),
		},
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}

	text := ""
	for _, block := range resp.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}

	return &stylist.Reply{
		Text:  text,
		Model: string(resp.Model),
		Usage: stylist.Usage{
			InputTokens:  int(resp.Usage.InputTokens),
			OutputTokens: int(resp.Usage.OutputTokens),
		},
	}, nil
}

// captureErrorBody fails non-success responses before the SDK parses them,
// keeping the raw body for the error message.
func captureErrorBody(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
	res, err := next(req)
	if err != nil {
		return nil, err
	}
	if !upstream.OK(res) {
		return nil, upstream.ReadError(stylist.ProviderAnthropic, res)
	}
	return res, nil
}

// wrapError maps SDK errors onto stylist upstream errors.
func wrapError(err error) error {
	var se *stylist.Error
	if errors.As(err, &se) {
		return se
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return stylist.NewUpstreamError(stylist.ProviderAnthropic.Label(), apiErr.StatusCode, apiErr.RawJSON(), err)
	}
	return err
}

var _ stylist.VisionProvider = (*Client)(nil)
