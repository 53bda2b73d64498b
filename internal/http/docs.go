package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/memex-universe/templatesd/internal/config"
)

const docsHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>universe-templates API</title>
  <style>
    body { font-family: -apple-system, sans-serif; max-width: 820px; margin: 2rem auto; padding: 0 1rem; color: #1a1a1a; }
    code { background: #f4f4f4; padding: 0.1rem 0.35rem; border-radius: 3px; }
    table { border-collapse: collapse; width: 100%; }
    th, td { text-align: left; padding: 0.4rem 0.6rem; border-bottom: 1px solid #ddd; }
  </style>
</head>
<body>
  <h1>universe-templates</h1>
  <p>MCP server for browsing and cloning Memex universe templates. The
  machine-readable spec lives at <a href="/openapi.json">/openapi.json</a>.</p>

  <h2>MCP transports</h2>
  <table>
    <tr><th>Endpoint</th><th>Transport</th></tr>
    <tr><td><code>GET/POST /sse</code></td><td>Server-Sent Events</td></tr>
    <tr><td><code>/mcp</code></td><td>Streamable HTTP</td></tr>
  </table>

  <h2>REST API</h2>
  <table>
    <tr><th>Method</th><th>Path</th><th>Description</th></tr>
    <tr><td>GET</td><td><code>/health</code></td><td>Liveness probe</td></tr>
    <tr><td>GET</td><td><code>/api/v1/templates</code></td><td>List published templates (query: domain, creator_id, limit)</td></tr>
    <tr><td>GET</td><td><code>/api/v1/templates/search</code></td><td>Search templates (query: q, limit)</td></tr>
    <tr><td>GET</td><td><code>/api/v1/templates/{id}</code></td><td>Template details</td></tr>
    <tr><td>POST</td><td><code>/api/v1/templates/{id}/clone</code></td><td>Clone a template to a local directory</td></tr>
    <tr><td>GET</td><td><code>/metrics</code></td><td>Prometheus metrics</td></tr>
  </table>
</body>
</html>
`

func (s *Server) handleDocs(c echo.Context) error {
	return c.HTML(http.StatusOK, docsHTML)
}

func (s *Server) handleOpenAPI(c echo.Context) error {
	spec := map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":       config.ServerName,
			"description": "MCP server for browsing and cloning Memex universe templates",
			"version":     s.version,
		},
		"paths": map[string]any{
			"/health": map[string]any{
				"get": map[string]any{
					"summary":   "Liveness probe",
					"responses": okJSON("Service is healthy"),
				},
			},
			"/api/v1/templates": map[string]any{
				"get": map[string]any{
					"summary": "List published templates",
					"parameters": []map[string]any{
						queryParam("domain", "Filter by domain"),
						queryParam("creator_id", "Filter by creator ID"),
						queryParam("limit", "Maximum results (default 20, max 100)"),
					},
					"responses": okJSON("Template listing"),
				},
			},
			"/api/v1/templates/search": map[string]any{
				"get": map[string]any{
					"summary": "Search templates by keyword",
					"parameters": []map[string]any{
						queryParam("q", "Search query"),
						queryParam("limit", "Maximum results (default 20, max 100)"),
					},
					"responses": okJSON("Scored search results"),
				},
			},
			"/api/v1/templates/{id}": map[string]any{
				"get": map[string]any{
					"summary":    "Get template details",
					"parameters": []map[string]any{pathParam("id", "Template ID")},
					"responses":  okJSON("Template details"),
				},
			},
			"/api/v1/templates/{id}/clone": map[string]any{
				"post": map[string]any{
					"summary":    "Clone a template repository",
					"parameters": []map[string]any{pathParam("id", "Template ID")},
					"responses":  okJSON("Clone result"),
				},
			},
		},
	}
	return c.JSON(http.StatusOK, spec)
}

func okJSON(description string) map[string]any {
	return map[string]any{
		"200": map[string]any{"description": description},
	}
}

func queryParam(name, description string) map[string]any {
	return map[string]any{
		"name":        name,
		"in":          "query",
		"description": description,
		"schema":      map[string]any{"type": "string"},
	}
}

func pathParam(name, description string) map[string]any {
	return map[string]any{
		"name":        name,
		"in":          "path",
		"required":    true,
		"description": description,
		"schema":      map[string]any{"type": "string"},
	}
}
