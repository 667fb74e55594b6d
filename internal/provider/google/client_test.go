package google

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spetersoncode/stylist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestWrapError(t *testing.T) {
	t.Run("keeps stylist errors", func(t *testing.T) {
		orig := stylist.NewUpstreamError("Google", 503, "maintenance", nil)
		err := wrapError(fmt.Errorf("doRequest: %w", orig))
		assert.Same(t, orig, err)
	})

	t.Run("maps API errors", func(t *testing.T) {
		err := wrapError(genai.APIError{Code: http.StatusForbidden, Message: "API key not valid", Status: "PERMISSION_DENIED"})
		require.Error(t, err)
		assert.True(t, stylist.IsUpstream(err))
		assert.Equal(t, http.StatusForbidden, stylist.HTTPStatus(err))
		assert.Equal(t, "Google API error: 403 - API key not valid", err.Error())
	})

	t.Run("passes other errors through", func(t *testing.T) {
		plain := errors.New("dial tcp: connection refused")
		assert.Equal(t, plain, wrapError(plain))
	})
}

func TestDescribeRejectsInvalidBase64(t *testing.T) {
	c, err := New(context.Background(), "test-key")
	require.NoError(t, err)

	_, err = c.Describe(context.Background(), stylist.NewJPEG("not base64!"), "p")
	require.Error(t, err)
	assert.True(t, stylist.IsUserInput(err))
}

func TestOptions(t *testing.T) {
	c, err := New(context.Background(), "test-key", WithModel("gemini-2.5-pro"), WithModel(""))
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", c.model)
}

const generateResponse = `{
  "candidates": [{
    "content": {"role": "model", "parts": [{"text": "{\"itemDescription\":\"denim jacket\"}"}]},
    "finishReason": "STOP"
  }],
  "usageMetadata": {"promptTokenCount": 800, "candidatesTokenCount": 250}
}`

func TestDescribe(t *testing.T) {
	var calls int32
	var body struct {
		Contents []struct {
			Role  string `json:"role"`
			Parts []struct {
				Text       string `json:"text"`
				InlineData struct {
					MimeType string `json:"mimeType"`
					Data     string `json:"data"`
				} `json:"inlineData"`
			} `json:"parts"`
		} `json:"contents"`
		GenerationConfig struct {
			MaxOutputTokens int `json:"maxOutputTokens"`
		} `json:"generationConfig"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-2.5-flash:generateContent"), r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(generateResponse))
	}))
	defer srv.Close()

	c, err := New(context.Background(), "test-key", WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)

	image := base64.StdEncoding.EncodeToString([]byte("jpeg bytes"))
	reply, err := c.Describe(context.Background(), stylist.NewJPEG(image), "style this", stylist.WithMaxTokens(1500))
	require.NoError(t, err)

	assert.Equal(t, `{"itemDescription":"denim jacket"}`, reply.Text)
	assert.Equal(t, DefaultModel, reply.Model)
	assert.Equal(t, 800, reply.Usage.InputTokens)
	assert.Equal(t, 250, reply.Usage.OutputTokens)
	assert.Equal(t, int32(1), calls)

	require.Len(t, body.Contents, 1)
	require.Len(t, body.Contents[0].Parts, 2)
	assert.Equal(t, "image/jpeg", body.Contents[0].Parts[0].InlineData.MimeType)
	assert.Equal(t, image, body.Contents[0].Parts[0].InlineData.Data)
	assert.Equal(t, "style this", body.Contents[0].Parts[1].Text)
	assert.Equal(t, 1500, body.GenerationConfig.MaxOutputTokens)
}

func TestDescribeRelaysErrorBody(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("backend unavailable\n"))
	}))
	defer srv.Close()

	c, err := New(context.Background(), "test-key", WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)

	_, err = c.Describe(context.Background(), stylist.NewJPEG("aGVsbG8="), "p")
	require.Error(t, err)
	assert.True(t, stylist.IsUpstream(err))
	assert.Equal(t, http.StatusServiceUnavailable, stylist.HTTPStatus(err))
	assert.Equal(t, "Google API error: 503 - backend unavailable", err.Error())
	assert.NotZero(t, atomic.LoadInt32(&calls))
}
