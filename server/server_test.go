package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spetersoncode/stylist"
	"github.com/spetersoncode/stylist/client"
	"github.com/spetersoncode/stylist/internal/metrics"
)

const outfitJSON = `{"itemDescription":"navy linen shirt","styleCategory":"minimalist","colorPalette":["navy","white","sand"],"outfitSuggestions":[{"name":"Coastal","items":{"tops":"shirt","bottoms":"chinos","accessories":"loafers"},"vibe":"relaxed"}],"tips":["roll the sleeves"]}`

// recordingProvider is a VisionProvider that records every call.
type recordingProvider struct {
	calls   int32
	prompts []string
	reply   *stylist.Reply
	err     error
}

func (p *recordingProvider) Describe(ctx context.Context, image stylist.Image, prompt string, opts ...stylist.Option) (*stylist.Reply, error) {
	atomic.AddInt32(&p.calls, 1)
	p.prompts = append(p.prompts, prompt)
	if p.err != nil {
		return nil, p.err
	}
	return p.reply, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newHandler(p stylist.VisionProvider, opts ...Option) http.Handler {
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	return New(stylist.NewAnalyzer(p), opts...).Handler()
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func assertCORS(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestPreflight(t *testing.T) {
	p := &recordingProvider{}
	h := newHandler(p)

	rec := do(h, http.MethodOptions, "/api/analyze", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assertCORS(t, rec)
	assert.Empty(t, rec.Body.String())
	assert.Zero(t, p.calls)
}

func TestMethodNotAllowed(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			p := &recordingProvider{}
			h := newHandler(p)

			rec := do(h, method, "/api/analyze", "")
			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assertCORS(t, rec)
			assert.Equal(t, "Method not allowed", errorOf(t, rec))
			assert.Zero(t, p.calls)
		})
	}
}

func TestMissingImageData(t *testing.T) {
	for name, body := range map[string]string{
		"no field":    `{"style":"boho","season":"autumn"}`,
		"empty field": `{"imageData":""}`,
		"empty body":  "",
		"null":        "null",
	} {
		t.Run(name, func(t *testing.T) {
			p := &recordingProvider{}
			h := newHandler(p)

			rec := do(h, http.MethodPost, "/api/analyze", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "No image data provided", errorOf(t, rec))
			assert.Zero(t, p.calls)
		})
	}
}

func TestInvalidBody(t *testing.T) {
	p := &recordingProvider{}
	h := newHandler(p)

	rec := do(h, http.MethodPost, "/api/analyze", `["not","an","object"]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, strings.HasPrefix(errorOf(t, rec), "Invalid request body: "))
	assert.Zero(t, p.calls)
}

func TestSuccessPassesThroughModelOutput(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		contains []string
	}{
		{
			name:     "generic prompt",
			body:     `{"imageData":"aGVsbG8="}`,
			contains: []string{"Analyze this fashion item and provide styling suggestions."},
		},
		{
			name:     "style and season prompt",
			body:     `{"imageData":"aGVsbG8=","style":"minimalist","season":"summer"}`,
			contains: []string{"minimalist", "summer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &recordingProvider{reply: &stylist.Reply{Text: outfitJSON}}
			h := newHandler(p)

			rec := do(h, http.MethodPost, "/", tt.body)
			require.Equal(t, http.StatusOK, rec.Code)
			assertCORS(t, rec)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, outfitJSON, rec.Body.String())

			require.Len(t, p.prompts, 1)
			for _, s := range tt.contains {
				assert.Contains(t, p.prompts[0], s)
			}
		})
	}
}

func TestUpstreamErrorIsRelayed(t *testing.T) {
	body := `{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`
	p := &recordingProvider{err: stylist.NewUpstreamError("Anthropic", http.StatusTooManyRequests, body, nil)}
	h := newHandler(p)

	rec := do(h, http.MethodPost, "/api/analyze", `{"imageData":"aGVsbG8="}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	msg := errorOf(t, rec)
	assert.Contains(t, msg, "429")
	assert.Contains(t, msg, "rate_limit_error")
	assert.Equal(t, int32(1), p.calls)
}

func TestNonJSONReply(t *testing.T) {
	p := &recordingProvider{reply: &stylist.Reply{Text: "I think a denim jacket would work."}}
	h := newHandler(p)

	rec := do(h, http.MethodPost, "/api/analyze", `{"imageData":"aGVsbG8="}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, errorOf(t, rec))
}

func TestEmptyErrorMessage(t *testing.T) {
	p := &recordingProvider{err: stylist.NewResponseError("", nil)}
	h := newHandler(p)

	rec := do(h, http.MethodPost, "/api/analyze", `{"imageData":"aGVsbG8="}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", errorOf(t, rec))
}

func TestMissingAPIKey(t *testing.T) {
	c := client.New(client.Config{})
	h := New(stylist.NewAnalyzer(c), WithLogger(quietLogger())).Handler()

	t.Run("image checked first", func(t *testing.T) {
		rec := do(h, http.MethodPost, "/api/analyze", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("configuration error", func(t *testing.T) {
		rec := do(h, http.MethodPost, "/api/analyze", `{"imageData":"aGVsbG8="}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "ANTHROPIC_API_KEY not configured. Please add it to your environment variables.", errorOf(t, rec))
	})
}

func TestRequestID(t *testing.T) {
	h := newHandler(&recordingProvider{})

	t.Run("generated when absent", func(t *testing.T) {
		rec := do(h, http.MethodGet, "/health", "")
		assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
	})

	t.Run("inbound id is echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	})
}

func TestHealth(t *testing.T) {
	rec := do(newHandler(&recordingProvider{}), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetrics(t *testing.T) {
	m := metrics.New()
	p := &recordingProvider{reply: &stylist.Reply{
		Text:  outfitJSON,
		Model: "claude-sonnet-4-20250514",
		Usage: stylist.Usage{InputTokens: 1000, OutputTokens: 500},
	}}
	h := newHandler(p, WithMetrics(m))

	do(h, http.MethodPost, "/api/analyze", `{"imageData":"aGVsbG8="}`)
	do(h, http.MethodPost, "/api/analyze", `{}`)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("400")))
	assert.Equal(t, 500.0, testutil.ToFloat64(m.Tokens.WithLabelValues("output")))
	assert.InDelta(t, 0.0105, testutil.ToFloat64(m.CostUSD.WithLabelValues("claude-sonnet-4-20250514")), 1e-9)

	rec := do(h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "stylist_requests_total")
}

// TestEndToEndAnthropic drives the full stack against a stand-in Messages API.
func TestEndToEndAnthropic(t *testing.T) {
	type block struct {
		Type   string `json:"type"`
		Text   string `json:"text"`
		Source struct {
			MediaType string `json:"media_type"`
			Data      string `json:"data"`
		} `json:"source"`
	}
	var got struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		Messages  []struct {
			Content []block `json:"content"`
		} `json:"messages"`
	}

	reply := map[string]any{
		"id":            "msg_01",
		"type":          "message",
		"role":          "assistant",
		"model":         "claude-sonnet-4-20250514",
		"content":       []map[string]string{{"type": "text", "text": "\n" + outfitJSON + "\n"}},
		"stop_reason":   "end_turn",
		"stop_sequence": nil,
		"usage":         map[string]int{"input_tokens": 1200, "output_tokens": 300},
	}

	var calls int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(reply)
	}))
	defer upstream.Close()

	c := client.New(client.Config{
		APIKeys: client.APIKeys{Anthropic: "test-key"},
		BaseURL: upstream.URL + "/",
	})
	h := New(stylist.NewAnalyzer(c), WithLogger(quietLogger())).Handler()

	rec := do(h, http.MethodPost, "/api/analyze", `{"imageData":"aGVsbG8=","style":"minimalist","season":"summer"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, outfitJSON, rec.Body.String())
	assert.Equal(t, int32(1), calls)

	assert.Equal(t, "claude-sonnet-4-20250514", got.Model)
	assert.Equal(t, 2000, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	require.Len(t, got.Messages[0].Content, 2)
	assert.Equal(t, "image", got.Messages[0].Content[0].Type)
	assert.Equal(t, "image/jpeg", got.Messages[0].Content[0].Source.MediaType)
	assert.Equal(t, "aGVsbG8=", got.Messages[0].Content[0].Source.Data)
	assert.Equal(t, "text", got.Messages[0].Content[1].Type)
	assert.Contains(t, got.Messages[0].Content[1].Text, "minimalist style outfit suggestions specifically for summer season")
}

func TestEndToEndUpstreamFailure(t *testing.T) {
	var calls int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(529)
		w.Write([]byte(`{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`))
	}))
	defer upstream.Close()

	c := client.New(client.Config{
		APIKeys: client.APIKeys{Anthropic: "test-key"},
		BaseURL: upstream.URL + "/",
	})
	h := New(stylist.NewAnalyzer(c), WithLogger(quietLogger())).Handler()

	rec := do(h, http.MethodPost, "/api/analyze", `{"imageData":"aGVsbG8="}`)
	assert.Equal(t, 529, rec.Code)
	assert.Equal(t, `Anthropic API error: 529 - {"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`, errorOf(t, rec))
	assert.Equal(t, int32(1), calls)
}
