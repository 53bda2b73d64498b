// Package mcp exposes the universe template catalog over the Model Context
// Protocol. Tools cover listing, search, detail lookup, and cloning;
// published templates are also readable as template://universe/{id}
// resources.
package mcp

import (
	"context"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/memex-universe/templatesd/internal/gitclone"
	"github.com/memex-universe/templatesd/internal/template"
)

// Server wires the template service and cloner into an MCP server.
type Server struct {
	mcp       *mcp.Server
	templates *template.Service
	cloner    *gitclone.Cloner
	metrics   *Metrics
	logger    *zap.Logger
}

// Config configures the MCP server.
type Config struct {
	// Name is the server implementation name (default: "universe-templates")
	Name string

	// Version is the server version (default: "0.1.0")
	Version string

	// Logger for structured logging
	Logger *zap.Logger
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Name:    "universe-templates",
		Version: "0.1.0",
		Logger:  zap.NewNop(),
	}
}

// NewServer creates an MCP server backed by the given services.
func NewServer(cfg *Config, templates *template.Service, cloner *gitclone.Cloner) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if templates == nil {
		return nil, fmt.Errorf("template service is required")
	}
	if cloner == nil {
		return nil, fmt.Errorf("cloner is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    cfg.Name,
			Version: cfg.Version,
		},
		nil,
	)

	s := &Server{
		mcp:       mcpServer,
		templates: templates,
		cloner:    cloner,
		metrics:   NewMetrics(cfg.Logger),
		logger:    cfg.Logger,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server on the stdio transport.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting MCP server on stdio transport")
	transport := &mcp.StdioTransport{}
	if err := s.mcp.Run(ctx, transport); err != nil {
		return fmt.Errorf("server run failed: %w", err)
	}
	return nil
}

// SSEHandler returns an HTTP handler serving the MCP SSE transport.
func (s *Server) SSEHandler() http.Handler {
	return mcp.NewSSEHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)
}

// StreamableHandler returns an HTTP handler serving the streamable HTTP
// transport.
func (s *Server) StreamableHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)
}
