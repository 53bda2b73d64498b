// Package http provides the web surface for templatesd: health and metadata
// endpoints, interactive docs, Prometheus metrics, a REST view of the
// catalog, and the MCP transports (/sse and /mcp).
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/memex-universe/templatesd/internal/config"
	"github.com/memex-universe/templatesd/internal/gitclone"
	"github.com/memex-universe/templatesd/internal/template"
)

// MCPHandlers supplies the HTTP-mounted MCP transports.
type MCPHandlers interface {
	SSEHandler() http.Handler
	StreamableHandler() http.Handler
}

// Server hosts the catalog web surface.
type Server struct {
	echo      *echo.Echo
	templates *template.Service
	cloner    *gitclone.Cloner
	logger    *zap.Logger
	config    config.ServerConfig
	version   string
}

// NewServer creates the web server and registers all routes.
func NewServer(cfg config.ServerConfig, version string, templates *template.Service, cloner *gitclone.Cloner, mcpHandlers MCPHandlers, logger *zap.Logger) (*Server, error) {
	if templates == nil {
		return nil, fmt.Errorf("template service is required")
	}
	if cloner == nil {
		return nil, fmt.Errorf("cloner is required")
	}
	if mcpHandlers == nil {
		return nil, fmt.Errorf("mcp handlers are required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	e.Use(NewHTTPMetrics(logger).MetricsMiddleware())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s := &Server{
		echo:      e,
		templates: templates,
		cloner:    cloner,
		logger:    logger,
		config:    cfg,
		version:   version,
	}

	s.registerRoutes(mcpHandlers)

	return s, nil
}

func (s *Server) registerRoutes(mcpHandlers MCPHandlers) {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/", s.handleRoot)
	s.echo.GET("/docs", s.handleDocs)
	s.echo.GET("/openapi.json", s.handleOpenAPI)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// MCP transports. SSE takes GET for the event stream and POST for
	// client messages; the streamable transport handles its own methods.
	sse := echo.WrapHandler(mcpHandlers.SSEHandler())
	s.echo.GET("/sse", sse)
	s.echo.POST("/sse", sse)
	s.echo.Any("/mcp", echo.WrapHandler(mcpHandlers.StreamableHandler()))

	v1 := s.echo.Group("/api/v1")
	v1.GET("/templates", s.handleListTemplates)
	v1.GET("/templates/search", s.handleSearchTemplates)
	v1.GET("/templates/:id", s.handleGetTemplate)
	v1.POST("/templates/:id/clone", s.handleCloneTemplate)
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Server string `json:"server"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status: "healthy",
		Server: config.ServerName,
	})
}

// RootResponse describes the service and its endpoints.
type RootResponse struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Transport   string            `json:"transport"`
	Endpoints   map[string]string `json:"endpoints"`
}

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, RootResponse{
		Name:        config.ServerName,
		Version:     s.version,
		Description: "MCP server for browsing and cloning Memex universe templates",
		Transport:   "SSE",
		Endpoints: map[string]string{
			"health":  "/health",
			"docs":    "/docs",
			"openapi": "/openapi.json",
			"metrics": "/metrics",
			"sse":     "/sse",
			"mcp":     "/mcp",
			"api":     "/api/v1/templates",
		},
	})
}

// ListTemplatesResponse is the response body for GET /api/v1/templates.
type ListTemplatesResponse struct {
	Count     int                `json:"count"`
	Templates []template.Project `json:"templates"`
}

func (s *Server) handleListTemplates(c echo.Context) error {
	limit, err := parseLimit(c.QueryParam("limit"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	projects, err := s.templates.List(c.Request().Context(), template.ListOptions{
		Domain:    c.QueryParam("domain"),
		CreatorID: c.QueryParam("creator_id"),
		Limit:     limit,
	})
	if err != nil {
		s.logger.Error("template listing failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list templates")
	}

	return c.JSON(http.StatusOK, ListTemplatesResponse{
		Count:     len(projects),
		Templates: projects,
	})
}

// SearchTemplatesResponse is the response body for GET /api/v1/templates/search.
type SearchTemplatesResponse struct {
	Query   string                  `json:"query"`
	Count   int                     `json:"count"`
	Results []template.SearchResult `json:"results"`
}

func (s *Server) handleSearchTemplates(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		query = c.QueryParam("query")
	}
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter 'q' is required")
	}

	limit, err := parseLimit(c.QueryParam("limit"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	results, err := s.templates.Search(c.Request().Context(), query, limit)
	if err != nil {
		s.logger.Error("template search failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to search templates")
	}

	return c.JSON(http.StatusOK, SearchTemplatesResponse{
		Query:   query,
		Count:   len(results),
		Results: results,
	})
}

func (s *Server) handleGetTemplate(c echo.Context) error {
	id := c.Param("id")

	project, err := s.templates.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, template.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("template '%s' not found", id))
		}
		s.logger.Error("template lookup failed", zap.String("id", id), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load template")
	}

	return c.JSON(http.StatusOK, project)
}

// CloneRequest is the request body for POST /api/v1/templates/:id/clone.
type CloneRequest struct {
	TargetDirectory string `json:"target_directory"`
	ProjectName     string `json:"project_name,omitempty"`
}

// CloneResponse is the response body for a successful clone.
type CloneResponse struct {
	Template string                `json:"template"`
	Result   *gitclone.CloneResult `json:"result"`
}

func (s *Server) handleCloneTemplate(c echo.Context) error {
	id := c.Param("id")

	var req CloneRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.TargetDirectory == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "target_directory is required")
	}

	ctx := c.Request().Context()

	project, err := s.templates.Get(ctx, id)
	if err != nil {
		if errors.Is(err, template.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("template '%s' not found", id))
		}
		s.logger.Error("template lookup failed", zap.String("id", id), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load template")
	}
	if project.Git == nil || project.Git.URL == "" {
		return echo.NewHTTPError(http.StatusConflict, fmt.Sprintf("template '%s' has no git repository", id))
	}

	result, err := s.cloner.Clone(ctx, gitclone.CloneOptions{
		URL:    project.Git.URL,
		Target: req.TargetDirectory,
		Branch: project.Git.Branch,
	})
	if err != nil {
		if errors.Is(err, gitclone.ErrTargetNotEmpty) {
			return echo.NewHTTPError(http.StatusConflict, "target directory exists and is not empty")
		}
		s.logger.Error("template clone failed",
			zap.String("id", id),
			zap.Error(err))
		return echo.NewHTTPError(http.StatusBadGateway, fmt.Sprintf("clone failed: %v", err))
	}

	return c.JSON(http.StatusOK, CloneResponse{
		Template: project.ProjectID,
		Result:   result,
	})
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid limit: %s", raw)
	}
	if limit < 0 {
		return 0, fmt.Errorf("limit must be positive")
	}
	return limit, nil
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}
