package firebase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/memex-universe/templatesd/internal/config"
	"github.com/memex-universe/templatesd/internal/template"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(config.FirebaseConfig{
		BaseURL:       baseURL,
		Timeout:       5 * time.Second,
		RatePerSecond: 100,
	}, zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestNewClientDerivesBaseURL(t *testing.T) {
	c, err := NewClient(config.FirebaseConfig{
		ProjectID:     "memex-desktop",
		Region:        "us-central1",
		RatePerSecond: 5,
	}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "https://us-central1-memex-desktop.cloudfunctions.net", c.baseURL)
}

func TestNewClientRequiresProjectOrBaseURL(t *testing.T) {
	_, err := NewClient(config.FirebaseConfig{Region: "us-central1"}, zap.NewNop())
	require.Error(t, err)

	_, err = NewClient(config.FirebaseConfig{ProjectID: "x"}, zap.NewNop())
	require.Error(t, err)
}

func TestListProjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/listUniverseProjects", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var envelope struct {
			Data map[string]any `json:"data"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&envelope))
		assert.Equal(t, "user-123", envelope.Data["creator_id"])

		resp := map[string]any{
			"result": []map[string]any{
				{
					"project_id":   "nextjs-ai-chat",
					"title":        "Next.js AI Chat Template",
					"is_published": true,
					"created_at":   "2024-12-01T10:00:00Z",
					"updated_at":   "2024-12-01T10:00:00Z",
				},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	projects, err := c.ListProjects(context.Background(), "user-123")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "nextjs-ai-chat", projects[0].ProjectID)
	assert.True(t, projects[0].IsPublished)
}

func TestListProjectsOmitsEmptyCreator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var envelope struct {
			Data map[string]any `json:"data"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&envelope))
		assert.NotContains(t, envelope.Data, "creator_id")

		_, _ = w.Write([]byte(`{"result": []}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	projects, err := c.ListProjects(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestGetProject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/getUniverseProjectDetails", r.URL.Path)

		var envelope struct {
			Data map[string]any `json:"data"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&envelope))
		assert.Equal(t, "react-dashboard", envelope.Data["project_id"])

		_, _ = w.Write([]byte(`{"result": {"project_id": "react-dashboard", "title": "React Dashboard Template", "created_at": "2024-10-20T16:45:00Z", "updated_at": "2024-11-25T11:20:00Z"}}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	p, err := c.GetProject(context.Background(), "react-dashboard")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "React Dashboard Template", p.Title)
}

func TestGetProjectNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	p, err := c.GetProject(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestGetProjectRequiresID(t *testing.T) {
	c := testClient(t, "http://localhost:0")
	_, err := c.GetProject(context.Background(), "")
	require.Error(t, err)
}

func TestServerErrorSurfacesAsCallableError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.ListProjects(context.Background(), "")
	require.Error(t, err)

	var ce *CallableError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusInternalServerError, ce.StatusCode)
	assert.Equal(t, "listUniverseProjects", ce.Function)
}

func TestMissingResultField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": "bad request"}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.ListProjects(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing result field")
}

func TestClientImplementsSource(t *testing.T) {
	var _ template.Source = (*Client)(nil)
}
