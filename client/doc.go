// Package client routes vision requests to one configured provider.
//
// The Client wraps the provider-specific implementations and provides:
//
//   - Provider selection: Anthropic, OpenAI or Google behind one interface
//   - Lazy initialization: SDK clients are built on first use
//   - Event emission: Observable operations via channel
//
// # Basic Usage
//
//	c := client.New(client.Config{
//	    APIKeys: client.APIKeys{
//	        Anthropic: os.Getenv("ANTHROPIC_API_KEY"),
//	    },
//	})
//
//	analyzer := stylist.NewAnalyzer(c)
//	result, err := analyzer.Analyze(ctx, req)
//
// # Missing Credentials
//
// A client without a key for its provider can still be created. Each
// Describe call then fails with a configuration error naming the
// environment variable to set, and no request leaves the process.
//
// # Events
//
// Observe operations via an event channel:
//
//	events := make(chan client.Event, 100)
//	c := client.New(client.Config{
//	    APIKeys: client.APIKeys{Anthropic: os.Getenv("ANTHROPIC_API_KEY")},
//	    Events:  events,
//	})
//
//	go func() {
//	    for e := range events {
//	        fmt.Printf("[%s] %s took %v\n", e.Type, e.Model, e.Duration)
//	    }
//	}()
package client
