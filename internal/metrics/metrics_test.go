package metrics

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spetersoncode/stylist"
)

func TestObserveRequest(t *testing.T) {
	r := New()
	r.ObserveRequest(200)
	r.ObserveRequest(200)
	r.ObserveRequest(400)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.Requests.WithLabelValues("200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Requests.WithLabelValues("400")))
}

func TestObserveUpstream(t *testing.T) {
	r := New()
	r.ObserveUpstream(stylist.ProviderAnthropic, nil, 2*time.Second)
	r.ObserveUpstream(stylist.ProviderAnthropic, errors.New("boom"), time.Second)

	assert.Equal(t, 2, testutil.CollectAndCount(r.UpstreamDuration))
}

func TestObserveUsage(t *testing.T) {
	r := New()
	r.ObserveUsage("claude-sonnet-4-20250514", stylist.Usage{InputTokens: 1000, OutputTokens: 200}, 0.006)
	r.ObserveUsage("unpriced", stylist.Usage{InputTokens: 10, OutputTokens: 5}, 0)

	assert.Equal(t, 1010.0, testutil.ToFloat64(r.Tokens.WithLabelValues("input")))
	assert.Equal(t, 205.0, testutil.ToFloat64(r.Tokens.WithLabelValues("output")))
	assert.InDelta(t, 0.006, testutil.ToFloat64(r.CostUSD.WithLabelValues("claude-sonnet-4-20250514")), 1e-9)
	assert.Equal(t, 1, testutil.CollectAndCount(r.CostUSD))
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.ObserveRequest(500)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.Requests.WithLabelValues("500")))
	assert.Equal(t, 0, testutil.CollectAndCount(b.Requests))
}

func TestWritePrometheus(t *testing.T) {
	r := New()
	r.ObserveRequest(200)

	var buf bytes.Buffer
	require.NoError(t, r.WritePrometheus(&buf))
	assert.Contains(t, buf.String(), `stylist_requests_total{status="200"} 1`)
}

func TestHandler(t *testing.T) {
	r := New()
	r.ObserveRequest(529)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Body.String(), "# TYPE stylist_requests_total counter")
	assert.Contains(t, rec.Body.String(), `status="529"`)
}
