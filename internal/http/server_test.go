package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/memex-universe/templatesd/internal/cache"
	"github.com/memex-universe/templatesd/internal/config"
	"github.com/memex-universe/templatesd/internal/gitclone"
	"github.com/memex-universe/templatesd/internal/mcp"
	"github.com/memex-universe/templatesd/internal/template"
)

func setupTestServer(t *testing.T) *Server {
	t.Helper()

	svc, err := template.NewService(nil, cache.New(time.Minute), zap.NewNop())
	require.NoError(t, err)
	cloner, err := gitclone.NewCloner("main", time.Minute, zap.NewNop())
	require.NoError(t, err)
	mcpServer, err := mcp.NewServer(mcp.DefaultConfig(), svc, cloner)
	require.NoError(t, err)

	cfg := config.ServerConfig{Host: "127.0.0.1", Port: 8000, ShutdownTimeout: 5 * time.Second}
	server, err := NewServer(cfg, "0.1.0", svc, cloner, mcpServer, zap.NewNop())
	require.NoError(t, err)
	return server
}

func TestNewServerValidation(t *testing.T) {
	svc, err := template.NewService(nil, cache.New(time.Minute), zap.NewNop())
	require.NoError(t, err)
	cloner, err := gitclone.NewCloner("main", time.Minute, zap.NewNop())
	require.NoError(t, err)
	mcpServer, err := mcp.NewServer(mcp.DefaultConfig(), svc, cloner)
	require.NoError(t, err)
	cfg := config.ServerConfig{Host: "127.0.0.1", Port: 8000}

	_, err = NewServer(cfg, "0.1.0", nil, cloner, mcpServer, zap.NewNop())
	assert.Error(t, err)

	_, err = NewServer(cfg, "0.1.0", svc, nil, mcpServer, zap.NewNop())
	assert.Error(t, err)

	_, err = NewServer(cfg, "0.1.0", svc, cloner, nil, zap.NewNop())
	assert.Error(t, err)

	_, err = NewServer(cfg, "0.1.0", svc, cloner, mcpServer, nil)
	assert.Error(t, err)
}

func TestHandleHealth(t *testing.T) {
	server := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	server.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "universe-templates", resp.Server)
}

func TestHandleRoot(t *testing.T) {
	server := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	server.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp RootResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "universe-templates", resp.Name)
	assert.Equal(t, "0.1.0", resp.Version)
	assert.Equal(t, "SSE", resp.Transport)
	assert.Equal(t, "/sse", resp.Endpoints["sse"])
	assert.Equal(t, "/health", resp.Endpoints["health"])
}

func TestHandleDocs(t *testing.T) {
	server := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/docs", nil)
	rec := httptest.NewRecorder()

	server.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	assert.Contains(t, rec.Body.String(), "universe-templates")
}

func TestHandleOpenAPI(t *testing.T) {
	server := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	rec := httptest.NewRecorder()

	server.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var spec map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &spec))
	assert.Equal(t, "3.0.3", spec["openapi"])

	paths, ok := spec["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/api/v1/templates")
	assert.Contains(t, paths, "/api/v1/templates/{id}/clone")
}

func TestHandleMetrics(t *testing.T) {
	server := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	server.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleListTemplates(t *testing.T) {
	t.Run("lists seed templates", func(t *testing.T) {
		server := setupTestServer(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/templates", nil)
		rec := httptest.NewRecorder()

		server.echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp ListTemplatesResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 4, resp.Count)
		require.Len(t, resp.Templates, 4)
		assert.Equal(t, "ml-model-serving", resp.Templates[0].ProjectID)
	})

	t.Run("filters by domain", func(t *testing.T) {
		server := setupTestServer(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/templates?domain=Web+Development", nil)
		rec := httptest.NewRecorder()

		server.echo.ServeHTTP(rec, req)

		var resp ListTemplatesResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "nextjs-ai-chat", resp.Templates[0].ProjectID)
	})

	t.Run("applies limit", func(t *testing.T) {
		server := setupTestServer(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/templates?limit=2", nil)
		rec := httptest.NewRecorder()

		server.echo.ServeHTTP(rec, req)

		var resp ListTemplatesResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Count)
	})

	t.Run("rejects bad limit", func(t *testing.T) {
		server := setupTestServer(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/templates?limit=banana", nil)
		rec := httptest.NewRecorder()

		server.echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleSearchTemplates(t *testing.T) {
	t.Run("returns scored matches", func(t *testing.T) {
		server := setupTestServer(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/templates/search?q=fastapi", nil)
		rec := httptest.NewRecorder()

		server.echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp SearchTemplatesResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "fastapi", resp.Query)
		require.Equal(t, 2, resp.Count)
		assert.Equal(t, "python-fastapi-starter", resp.Results[0].Project.ProjectID)
		assert.Equal(t, 18, resp.Results[0].Score)
	})

	t.Run("zero matches returns empty array", func(t *testing.T) {
		server := setupTestServer(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/templates/search?q=zzz-no-match", nil)
		rec := httptest.NewRecorder()

		server.echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"results":[]`)

		var resp SearchTemplatesResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Zero(t, resp.Count)
	})

	t.Run("requires query", func(t *testing.T) {
		server := setupTestServer(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/templates/search", nil)
		rec := httptest.NewRecorder()

		server.echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleGetTemplate(t *testing.T) {
	t.Run("returns template", func(t *testing.T) {
		server := setupTestServer(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/templates/react-dashboard", nil)
		rec := httptest.NewRecorder()

		server.echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp template.Project
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "React Dashboard Template", resp.Title)
	})

	t.Run("unknown template is 404", func(t *testing.T) {
		server := setupTestServer(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/templates/no-such-id", nil)
		rec := httptest.NewRecorder()

		server.echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandleCloneTemplate(t *testing.T) {
	t.Run("requires target_directory", func(t *testing.T) {
		server := setupTestServer(t)

		body, _ := json.Marshal(CloneRequest{})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/templates/nextjs-ai-chat/clone", bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		server.echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown template is 404", func(t *testing.T) {
		server := setupTestServer(t)

		body, _ := json.Marshal(CloneRequest{TargetDirectory: t.TempDir()})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/templates/no-such-id/clone", bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		server.echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-empty target is 409", func(t *testing.T) {
		server := setupTestServer(t)

		target := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(target, "existing.txt"), []byte("x"), 0o644))

		body, _ := json.Marshal(CloneRequest{TargetDirectory: target})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/templates/nextjs-ai-chat/clone", bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		server.echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestParseLimit(t *testing.T) {
	limit, err := parseLimit("")
	require.NoError(t, err)
	assert.Equal(t, 0, limit)

	limit, err = parseLimit("42")
	require.NoError(t, err)
	assert.Equal(t, 42, limit)

	_, err = parseLimit("-1")
	assert.Error(t, err)

	_, err = parseLimit("abc")
	assert.Error(t, err)
}
