// Command mcp serves the outfit analyzer as an MCP tool over stdio.
//
// Usage:
//
//	go run ./cmd/mcp
//
// Configuration for an MCP client (e.g. claude_desktop_config.json):
//
//	{
//	    "mcpServers": {
//	        "stylist": {
//	            "command": "go",
//	            "args": ["run", "./cmd/mcp"],
//	            "cwd": "/path/to/stylist",
//	            "env": {"ANTHROPIC_API_KEY": "..."}
//	        }
//	    }
//	}
//
// The provider, model and template are read from the same STYLIST_*
// variables as the HTTP server. Logs go to stderr; stdout carries the protocol.
package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/spetersoncode/stylist"
	"github.com/spetersoncode/stylist/client"
	"github.com/spetersoncode/stylist/mcp"
	"github.com/spetersoncode/stylist/prompt"
)

func main() {
	godotenv.Load() // Load .env file if present

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	provider, ok := stylist.ParseProvider(os.Getenv("STYLIST_PROVIDER"))
	if !ok {
		log.Error("unknown provider", "provider", os.Getenv("STYLIST_PROVIDER"))
		os.Exit(1)
	}

	tmpl, ok := prompt.Lookup(os.Getenv("STYLIST_TEMPLATE"))
	if !ok {
		log.Error("unknown template", "template", os.Getenv("STYLIST_TEMPLATE"))
		os.Exit(1)
	}

	c := client.New(client.Config{
		APIKeys: client.APIKeys{
			Anthropic: os.Getenv("ANTHROPIC_API_KEY"),
			OpenAI:    os.Getenv("OPENAI_API_KEY"),
			Google:    os.Getenv("GOOGLE_API_KEY"),
		},
		Provider: provider,
		Model:    os.Getenv("STYLIST_MODEL"),
		BaseURL:  os.Getenv("STYLIST_BASE_URL"),
	})

	analyzer := stylist.NewAnalyzer(c, stylist.WithTemplate(tmpl))

	log.Info("stylist MCP server starting", "provider", provider, "model", c.Model().String(), "template", tmpl.ID)
	if err := mcp.ServeStdio(analyzer,
		mcp.WithName("stylist"),
		mcp.WithVersion("1.0.0"),
	); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
