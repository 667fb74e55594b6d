// Command serve runs the outfit styling HTTP endpoint.
//
// Configuration is read from the environment (and a .env file if present):
//
//	PORT                  listen port (default 8000)
//	STYLIST_PROVIDER      anthropic, openai or google (default anthropic)
//	STYLIST_MODEL         model override
//	STYLIST_TEMPLATE      styled, seasonal or basic (default styled)
//	STYLIST_MAX_TOKENS    output budget override
//	STYLIST_BASE_URL      upstream API base URL override
//	STYLIST_LOG_LEVEL     debug, info, warn or error (default info)
//	STYLIST_LOG_FORMAT    text or json (default text)
//	ANTHROPIC_API_KEY, OPENAI_API_KEY, GOOGLE_API_KEY
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spetersoncode/stylist"
	"github.com/spetersoncode/stylist/client"
	"github.com/spetersoncode/stylist/internal/metrics"
	"github.com/spetersoncode/stylist/prompt"
	"github.com/spetersoncode/stylist/server"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg)
	slog.SetDefault(log)

	provider, _ := stylist.ParseProvider(cfg.Provider)
	reg := metrics.New()

	events := make(chan client.Event, 100)
	go recordEvents(log, reg, events)

	c := client.New(client.Config{
		APIKeys: client.APIKeys{
			Anthropic: cfg.AnthropicKey,
			OpenAI:    cfg.OpenAIKey,
			Google:    cfg.GoogleKey,
		},
		Provider: provider,
		Model:    cfg.Model,
		BaseURL:  cfg.BaseURL,
		Events:   events,
	})

	if cfg.apiKey() == "" {
		log.Warn("API key not set; requests will fail until it is configured", "env", provider.APIKeyEnv())
	}

	analyzer := stylist.NewAnalyzer(c, analyzerOptions(cfg)...)

	srv := server.New(analyzer,
		server.WithLogger(log),
		server.WithMetrics(reg),
		server.WithProvider(provider),
	)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // bounded by the upstream call
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			log.Error("shutdown error", "error", err)
		}
	}()

	log.Info("stylist server starting",
		"port", cfg.Port,
		"provider", provider,
		"model", c.Model().String(),
		"template", analyzer.Template().ID,
	)
	log.Info("endpoints",
		"analyze", "POST http://localhost:"+cfg.Port+"/api/analyze",
		"health", "GET http://localhost:"+cfg.Port+"/health",
		"metrics", "GET http://localhost:"+cfg.Port+"/metrics",
	)

	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}

func newLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func analyzerOptions(cfg *Config) []stylist.AnalyzerOption {
	tmpl, _ := prompt.Lookup(cfg.Template)
	opts := []stylist.AnalyzerOption{stylist.WithTemplate(tmpl)}
	if cfg.MaxTokens > 0 {
		opts = append(opts, stylist.WithRequestOptions(stylist.WithMaxTokens(cfg.MaxTokens)))
	}
	return opts
}

// apiKey returns the key of the configured provider.
func (c *Config) apiKey() string {
	provider, _ := stylist.ParseProvider(c.Provider)
	return client.APIKeys{
		Anthropic: c.AnthropicKey,
		OpenAI:    c.OpenAIKey,
		Google:    c.GoogleKey,
	}.For(provider)
}
