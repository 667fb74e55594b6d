// Package metrics holds the Prometheus collectors for the styling service.
package metrics

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/spetersoncode/stylist"
)

// Registry owns the service collectors. Each Registry is independent so
// servers and tests do not share counters.
type Registry struct {
	reg *prometheus.Registry

	// Requests counts handled analyze requests by response status.
	Requests *prometheus.CounterVec

	// UpstreamDuration records model call latency (seconds).
	UpstreamDuration *prometheus.HistogramVec

	// Tokens counts model tokens by direction (input | output).
	Tokens *prometheus.CounterVec

	// CostUSD accumulates estimated spend by model.
	CostUSD *prometheus.CounterVec
}

// New creates a Registry with all collectors registered.
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stylist_requests_total",
				Help: "Analyze requests by response status",
			},
			[]string{"status"},
		),
		UpstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stylist_upstream_duration_seconds",
				Help:    "Model call latency in seconds",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
			},
			[]string{"provider", "outcome"},
		),
		Tokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stylist_tokens_total",
				Help: "Model tokens by direction",
			},
			[]string{"direction"}, // input | output
		),
		CostUSD: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stylist_cost_usd_total",
				Help: "Estimated model spend in USD",
			},
			[]string{"model"},
		),
	}
	r.reg.MustRegister(r.Requests, r.UpstreamDuration, r.Tokens, r.CostUSD)
	return r
}

// ObserveRequest counts one handled request.
func (r *Registry) ObserveRequest(status int) {
	r.Requests.WithLabelValues(strconv.Itoa(status)).Inc()
}

// ObserveUpstream records the duration of one model call.
func (r *Registry) ObserveUpstream(provider stylist.Provider, err error, d time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.UpstreamDuration.WithLabelValues(string(provider), outcome).Observe(d.Seconds())
}

// ObserveUsage adds token counts and estimated cost.
func (r *Registry) ObserveUsage(model string, usage stylist.Usage, cost float64) {
	r.Tokens.WithLabelValues("input").Add(float64(usage.InputTokens))
	r.Tokens.WithLabelValues("output").Add(float64(usage.OutputTokens))
	if cost > 0 {
		r.CostUSD.WithLabelValues(model).Add(cost)
	}
}

// WritePrometheus writes all metrics to w in the Prometheus text format.
func (r *Registry) WritePrometheus(w io.Writer) error {
	families, err := r.reg.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

// Handler serves the metrics over HTTP.
func (r *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", string(expfmt.NewFormat(expfmt.TypeTextPlain)))
		if err := r.WritePrometheus(w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
