package main

import (
	"log/slog"

	"github.com/spetersoncode/stylist/client"
	"github.com/spetersoncode/stylist/internal/metrics"
)

// recordEvents feeds client events into metrics and the debug log until
// the channel is closed.
func recordEvents(log *slog.Logger, reg *metrics.Registry, events <-chan client.Event) {
	for e := range events {
		switch e.Type {
		case client.EventRequestStart:
			log.Debug("upstream request", "provider", e.Provider, "model", e.Model)
		case client.EventRequestComplete:
			reg.ObserveUpstream(e.Provider, nil, e.Duration)
			log.Debug("upstream response", "provider", e.Provider, "model", e.Model, "duration", e.Duration)
		case client.EventRequestError:
			reg.ObserveUpstream(e.Provider, e.Error, e.Duration)
			log.Debug("upstream failure", "provider", e.Provider, "model", e.Model, "duration", e.Duration, "error", e.Error)
		}
	}
}
