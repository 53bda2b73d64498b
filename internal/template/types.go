// Package template defines the universe template catalog: project types,
// seed data, and the service that resolves templates from the remote
// catalog with a local fallback.
package template

import (
	"errors"
	"time"
)

// Listing limits shared by the MCP tools and the REST surface.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ErrNotFound is returned when no template matches the requested ID.
var ErrNotFound = errors.New("template not found")

// Git identifies the repository backing a template.
type Git struct {
	URL    string `json:"url"`
	Branch string `json:"branch,omitempty"`
	Remote string `json:"remote,omitempty"`
}

// Tool describes one tool or framework a template is built with.
type Tool struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Version string `json:"version,omitempty"`
	Role    string `json:"role,omitempty"`
}

// Storage describes where a template's assets live.
type Storage struct {
	GCSPath            string     `json:"gcs_path,omitempty"`
	SizeBytes          int64      `json:"size_bytes,omitempty"`
	LastSync           *time.Time `json:"last_sync,omitempty"`
	CompressionEnabled bool       `json:"compression_enabled,omitempty"`
	MaxFileSizeMB      int        `json:"max_file_size_mb,omitempty"`
}

// Deployment points at a live demo of the template.
type Deployment struct {
	URL          string     `json:"url"`
	Type         string     `json:"type,omitempty"`
	LastDeployed *time.Time `json:"last_deployed,omitempty"`
}

// Requirement is a prerequisite for using a template.
type Requirement struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Pill is a suggested quick action shown alongside a template.
type Pill struct {
	Label  string `json:"label"`
	Prompt string `json:"prompt"`
	Icon   string `json:"icon,omitempty"`
}

// Project is one universe template as served by the catalog backend.
//
// JSON tags follow the catalog wire format, snake_case throughout.
type Project struct {
	ProjectID   string     `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Slug        string     `json:"slug"`
	Domain      string     `json:"domain"`
	CreatorID   string     `json:"creator_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`

	Features     []string      `json:"features,omitempty"`
	Requirements []Requirement `json:"requirements,omitempty"`
	Tools        []Tool        `json:"tools,omitempty"`

	Icon      string `json:"icon,omitempty"`
	CardImage string `json:"card_image,omitempty"`
	HeroImage string `json:"hero_image,omitempty"`

	Git        *Git        `json:"git,omitempty"`
	Storage    *Storage    `json:"storage,omitempty"`
	Deployment *Deployment `json:"deployment,omitempty"`

	GettingStartedScreen      bool   `json:"getting_started_screen,omitempty"`
	GettingStartedScreenIndex *int   `json:"getting_started_screen_index,omitempty"`
	Pills                     []Pill `json:"pills,omitempty"`
}

// ListOptions filters and bounds a catalog listing.
type ListOptions struct {
	Domain    string
	CreatorID string
	Limit     int
}

// SearchResult pairs a matching project with its relevance score.
type SearchResult struct {
	Project Project `json:"project"`
	Score   int     `json:"score"`
}

// clampLimit applies the default and maximum listing bounds.
func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
