// Package firebase is an HTTP client for the public callable Cloud
// Functions that serve the universe project catalog. No credentials are
// involved: the endpoints are public and use the callable envelope, a
// {"data": ...} request wrapping and a {"result": ...} response wrapping.
package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/memex-universe/templatesd/internal/config"
	"github.com/memex-universe/templatesd/internal/template"
)

const (
	listFunction    = "listUniverseProjects"
	detailsFunction = "getUniverseProjectDetails"

	// Responses larger than this are refused rather than buffered.
	maxResponseBytes = 8 << 20
)

// Client calls the catalog's callable functions.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewClient builds a client from config. The base URL defaults to the
// standard callable endpoint for the configured region and project.
func NewClient(cfg config.FirebaseConfig, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		if cfg.Region == "" || cfg.ProjectID == "" {
			return nil, fmt.Errorf("firebase region and project_id are required when base_url is not set")
		}
		baseURL = fmt.Sprintf("https://%s-%s.cloudfunctions.net", cfg.Region, cfg.ProjectID)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	rps := cfg.RatePerSecond
	if rps <= 0 {
		rps = 5
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}

	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  logger,
	}, nil
}

// CallableError reports a non-2xx response from a callable function.
type CallableError struct {
	Function   string
	StatusCode int
	Body       string
}

func (e *CallableError) Error() string {
	return fmt.Sprintf("callable %s returned %d: %s", e.Function, e.StatusCode, e.Body)
}

// ListProjects fetches the catalog, optionally filtered by creator.
func (c *Client) ListProjects(ctx context.Context, creatorID string) ([]template.Project, error) {
	data := map[string]any{}
	if creatorID != "" {
		data["creator_id"] = creatorID
	}

	var projects []template.Project
	if err := c.call(ctx, listFunction, data, &projects); err != nil {
		return nil, err
	}

	c.logger.Debug("listed catalog projects",
		zap.Int("count", len(projects)),
		zap.String("creator_id", creatorID))
	return projects, nil
}

// GetProject fetches one project by ID. Returns (nil, nil) when the backend
// has no matching project.
func (c *Client) GetProject(ctx context.Context, projectID string) (*template.Project, error) {
	if projectID == "" {
		return nil, fmt.Errorf("project id is required")
	}

	var project *template.Project
	err := c.call(ctx, detailsFunction, map[string]any{"project_id": projectID}, &project)
	if err != nil {
		var ce *CallableError
		if errors.As(err, &ce) && ce.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	if project != nil && project.ProjectID == "" {
		return nil, nil
	}
	return project, nil
}

// call posts a callable envelope and decodes the result field into out.
func (c *Client) call(ctx context.Context, function string, data any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := json.Marshal(map[string]any{"data": data})
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", function, err)
	}

	url := c.baseURL + "/" + function
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building %s request: %w", function, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", function, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("reading %s response: %w", function, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &CallableError{
			Function:   function,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(raw), 256),
		}
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decoding %s envelope: %w", function, err)
	}
	if envelope.Result == nil {
		return fmt.Errorf("%s response missing result field", function)
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("decoding %s result: %w", function, err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
