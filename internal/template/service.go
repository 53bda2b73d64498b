package template

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Source fetches templates from a remote catalog backend.
type Source interface {
	// ListProjects returns catalog projects, optionally filtered by creator.
	ListProjects(ctx context.Context, creatorID string) ([]Project, error)
	// GetProject returns one project, or nil when the backend has no match.
	GetProject(ctx context.Context, projectID string) (*Project, error)
}

// Store caches catalog snapshots between backend fetches.
type Store interface {
	Projects() ([]Project, bool)
	Project(projectID string) (*Project, bool)
	SetProjects(projects []Project)
	SetProject(project Project)
}

// Service resolves templates with a three-step fallback: cache, then the
// remote backend, then the built-in seed catalog. A backend failure is
// logged and absorbed so the catalog stays available offline.
type Service struct {
	source Source
	store  Store
	seed   []Project
	logger *zap.Logger
}

// NewService creates a template service. source may be nil when the remote
// backend is disabled; store and logger are required.
func NewService(source Source, store Store, logger *zap.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Service{
		source: source,
		store:  store,
		seed:   SeedProjects(),
		logger: logger,
	}, nil
}

// List returns published templates matching opts, sorted by title.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Project, error) {
	projects := s.snapshot(ctx, opts.CreatorID)

	filtered := make([]Project, 0, len(projects))
	for _, p := range projects {
		if !p.IsPublished {
			continue
		}
		if opts.Domain != "" && !strings.EqualFold(p.Domain, opts.Domain) {
			continue
		}
		if opts.CreatorID != "" && p.CreatorID != opts.CreatorID {
			continue
		}
		filtered = append(filtered, p)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Title < filtered[j].Title
	})

	limit := clampLimit(opts.Limit)
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

// Get returns one template by ID. Returns ErrNotFound when no backend,
// cache, or seed entry matches.
func (s *Service) Get(ctx context.Context, projectID string) (*Project, error) {
	if projectID == "" {
		return nil, fmt.Errorf("project id is required")
	}

	if p, ok := s.store.Project(projectID); ok {
		return p, nil
	}

	if s.source != nil {
		p, err := s.source.GetProject(ctx, projectID)
		if err != nil {
			s.logger.Warn("catalog backend lookup failed",
				zap.String("project_id", projectID),
				zap.Error(err))
		} else if p != nil {
			s.store.SetProject(*p)
			return p, nil
		}
	}

	for i := range s.seed {
		if s.seed[i].ProjectID == projectID {
			p := s.seed[i]
			s.store.SetProject(p)
			return &p, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, projectID)
}

// Search scores published templates against query and returns matches in
// descending relevance order. Title matches weigh 10, description 5,
// features 3, domain 2.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}

	projects := s.snapshot(ctx, "")

	// Non-nil even with zero matches so callers serialize an empty array.
	results := make([]SearchResult, 0)
	for _, p := range projects {
		if !p.IsPublished {
			continue
		}
		if score := relevance(&p, query); score > 0 {
			results = append(results, SearchResult{Project: p, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	limit = clampLimit(limit)
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// snapshot returns the current catalog: cached when fresh, otherwise the
// backend, otherwise the seed data. Creator-filtered fetches bypass the
// cache so the unfiltered snapshot is never poisoned.
func (s *Service) snapshot(ctx context.Context, creatorID string) []Project {
	if creatorID == "" {
		if projects, ok := s.store.Projects(); ok {
			return projects
		}
	}

	if s.source != nil {
		projects, err := s.source.ListProjects(ctx, creatorID)
		if err != nil {
			s.logger.Warn("catalog backend list failed, using seed data", zap.Error(err))
		} else if len(projects) > 0 {
			if creatorID == "" {
				s.store.SetProjects(projects)
			}
			return projects
		}
	}

	s.logger.Debug("serving seed catalog", zap.Int("count", len(s.seed)))
	return s.seed
}

func relevance(p *Project, query string) int {
	score := 0
	if strings.Contains(strings.ToLower(p.Title), query) {
		score += 10
	}
	if strings.Contains(strings.ToLower(p.Description), query) {
		score += 5
	}
	if strings.Contains(strings.ToLower(strings.Join(p.Features, " ")), query) {
		score += 3
	}
	if strings.Contains(strings.ToLower(p.Domain), query) {
		score += 2
	}
	return score
}
