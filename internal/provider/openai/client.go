package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/spetersoncode/stylist"
	"github.com/spetersoncode/stylist/internal/provider/upstream"
)

// DefaultModel is used when neither the client nor the request names a model.
const DefaultModel = "gpt-4o"

// Client wraps the OpenAI SDK to implement stylist.VisionProvider.
type Client struct {
	client     *openai.Client
	model      string
	baseURL    string
	httpClient *http.Client
}

// New creates a new OpenAI client with the given API key.
// SDK retries are disabled.
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

	client := openai.NewClient(reqOpts...)
	c.client = &client
	return c
}

// ClientOption configures the OpenAI client.
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

// Describe sends the image as a data URI part followed by the prompt and
// returns the content of the first choice.
func (c *Client) Describe(ctx context.Context, image stylist.Image, prompt string, opts ...stylist.Option) (*stylist.Reply, error) {
	options := stylist.ApplyOptions(opts...)
	model := c.model
	if options.Model != "" {
		model = options.Model
	}

	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: dataURI(image),
		}),
		openai.TextContentPart(prompt),
	}

	params := openai.ChatCompletionNewParams{
		Model: model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfArrayOfContentParts: parts,
					},
				},
			},
		},
	}
	if options.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(options.MaxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}

	text := ""
	if len(resp.Choices) > 0 {
		text = resp.Choices[0].Message.Content
	}

	return &stylist.Reply{
		Text:  text,
		Model: resp.Model,
		Usage: stylist.Usage{
			InputTokens:  int(resp.Usage.PromptTokens),
			OutputTokens: int(resp.Usage.CompletionTokens),
		},
	}, nil
}

func dataURI(image stylist.Image) string {
	return fmt.Sprintf("data:%s;base64,%s", image.MediaType(), image.Base64)
}

func captureErrorBody(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
	res, err := next(req)
	if err != nil {
		return nil, err
	}
	if !upstream.OK(res) {
		return nil, upstream.ReadError(stylist.ProviderOpenAI, res)
	}
	return res, nil
}

// wrapError maps SDK errors onto stylist upstream errors.
func wrapError(err error) error {
	var se *stylist.Error
	if errors.As(err, &se) {
		return se
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return stylist.NewUpstreamError(stylist.ProviderOpenAI.Label(), apiErr.StatusCode, apiErr.RawJSON(), err)
	}
	return err
}

var _ stylist.VisionProvider = (*Client)(nil)
