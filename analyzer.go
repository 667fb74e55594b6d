package stylist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spetersoncode/stylist/prompt"
)

// Analysis is the outcome of a successful request.
type Analysis struct {
	// Result is the model's JSON reply, compacted but otherwise unmodified.
	Result json.RawMessage
	Model  string
	Usage  Usage
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithTemplate selects the prompt template.
func WithTemplate(t prompt.Template) AnalyzerOption {
	return func(a *Analyzer) {
		a.template = t
	}
}

// WithRequestOptions sets options passed to the provider on every request.
// They are applied after the template's token budget, so they override it.
func WithRequestOptions(opts ...Option) AnalyzerOption {
	return func(a *Analyzer) {
		a.requestOpts = append(a.requestOpts, opts...)
	}
}

// Analyzer turns an AnalysisRequest into styling suggestions with a single model call.
// It holds no per-request state and is safe for concurrent use.
type Analyzer struct {
	provider    VisionProvider
	template    prompt.Template
	requestOpts []Option
}

// NewAnalyzer creates an Analyzer backed by provider, using [prompt.Default]
// unless a template is given.
func NewAnalyzer(provider VisionProvider, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		provider: provider,
		template: prompt.Default,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Template returns the prompt template in use.
func (a *Analyzer) Template() prompt.Template {
	return a.template
}

// Prompt returns the instruction text that would be sent for req.
func (a *Analyzer) Prompt(req AnalysisRequest) string {
	return a.template.Build(req.PromptParams())
}

// Analyze validates req, sends the image and prompt to the provider and
// parses the reply. Errors are categorized; see [HTTPStatus].
func (a *Analyzer) Analyze(ctx context.Context, req AnalysisRequest) (*Analysis, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	text := a.Prompt(req)

	opts := make([]Option, 0, len(a.requestOpts)+1)
	if a.template.MaxTokens > 0 {
		opts = append(opts, WithMaxTokens(a.template.MaxTokens))
	}
	opts = append(opts, a.requestOpts...)

	reply, err := a.provider.Describe(ctx, NewJPEG(req.ImageData), text, opts...)
	if err != nil {
		return nil, err
	}

	result, err := ParseReply(reply.Text)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		Result: result,
		Model:  reply.Model,
		Usage:  reply.Usage,
	}, nil
}

// ParseReply trims the model's text and parses it as JSON.
// The reply is not checked against the shape the prompt asked for.
func ParseReply(text string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(text)

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(trimmed)); err != nil {
		return nil, NewResponseError(fmt.Sprintf("model reply is not valid JSON: %v", err), err)
	}
	return json.RawMessage(buf.Bytes()), nil
}
