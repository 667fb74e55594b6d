// Package mcp exposes the outfit analyzer as a Model Context Protocol tool.
package mcp

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/spetersoncode/stylist"
)

// ToolName is the name of the analyze tool reported to MCP clients.
const ToolName = "analyze_outfit"

// Analyzer runs one styling analysis.
type Analyzer interface {
	Analyze(ctx context.Context, req stylist.AnalysisRequest) (*stylist.Analysis, error)
}

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	name    string
	version string
}

// WithName sets the server name reported to MCP clients.
func WithName(name string) ServerOption {
	return func(c *serverConfig) {
		c.name = name
	}
}

// WithVersion sets the server version reported to MCP clients.
func WithVersion(version string) ServerOption {
	return func(c *serverConfig) {
		c.version = version
	}
}

// AnalyzeTool describes the analyze_outfit tool.
func AnalyzeTool() mcp.Tool {
	return mcp.NewTool(ToolName,
		mcp.WithDescription("Analyze a photo of a clothing item and return outfit suggestions as JSON. "+
			"Provide the image either as base64 data or as a path to a local file."),
		mcp.WithString("image_base64", mcp.Description("Base64-encoded JPEG image")),
		mcp.WithString("image_path", mcp.Description("Path to a local image file, used when image_base64 is empty")),
		mcp.WithString("style", mcp.Description("Target style, e.g. minimalist, boho, streetwear")),
		mcp.WithString("season", mcp.Description("Target season"), mcp.Enum("spring", "summer", "autumn", "winter")),
		mcp.WithString("language", mcp.Description("Response language, e.g. Spanish. Defaults to English")),
	)
}

// NewServer creates an MCP server exposing analyzer as the analyze_outfit tool.
//
// Example:
//
//	mcpServer := mcp.NewServer(analyzer,
//	    mcp.WithName("stylist"),
//	    mcp.WithVersion("1.0.0"),
//	)
//
//	server.ServeStdio(mcpServer)
func NewServer(analyzer Analyzer, opts ...ServerOption) *server.MCPServer {
	cfg := &serverConfig{
		name:    "stylist-mcp-server",
		version: "1.0.0",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := server.NewMCPServer(
		cfg.name,
		cfg.version,
		server.WithToolCapabilities(true),
	)
	s.AddTool(AnalyzeTool(), analyzeHandler(analyzer))
	return s
}

// analyzeHandler adapts analyzer to an MCP tool handler. Analysis failures
// are reported as tool errors, not protocol errors.
func analyzeHandler(analyzer Analyzer) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		imageData, err := imageFromArgs(req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		analysis, err := analyzer.Analyze(ctx, stylist.AnalysisRequest{
			ImageData: imageData,
			Style:     req.GetString("style", ""),
			Season:    req.GetString("season", ""),
			Language:  req.GetString("language", ""),
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(string(analysis.Result)), nil
	}
}

// imageFromArgs returns the base64 image, reading image_path when no inline data is given.
func imageFromArgs(req mcp.CallToolRequest) (string, error) {
	if data := req.GetString("image_base64", ""); data != "" {
		return data, nil
	}

	path := req.GetString("image_path", "")
	if path == "" {
		return "", nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// ServeStdio starts an MCP server that communicates over stdin/stdout.
// This is the standard transport for MCP servers invoked as subprocesses.
func ServeStdio(analyzer Analyzer, opts ...ServerOption) error {
	return server.ServeStdio(NewServer(analyzer, opts...))
}
