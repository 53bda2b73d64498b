// Package cache provides a TTL-bounded in-memory snapshot of the template
// catalog. One snapshot expiry covers the whole cache: individual entries
// never outlive the snapshot that produced them.
package cache

import (
	"sync"
	"time"

	"github.com/memex-universe/templatesd/internal/template"
)

// DefaultTTL matches the catalog backend's refresh cadence.
const DefaultTTL = 5 * time.Minute

// Cache holds catalog projects keyed by project ID.
type Cache struct {
	mu       sync.RWMutex
	ttl      time.Duration
	projects map[string]template.Project
	order    []string
	fetched  time.Time
	now      func() time.Time
}

// New creates a cache with the given TTL. A non-positive ttl falls back to
// DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:      ttl,
		projects: make(map[string]template.Project),
		now:      time.Now,
	}
}

// Projects returns the cached snapshot in insertion order, or false when the
// snapshot is absent or expired. An expired snapshot is dropped on read.
func (c *Cache) Projects() ([]template.Project, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.expiredLocked() {
		c.clearLocked()
		return nil, false
	}
	if len(c.order) == 0 {
		return nil, false
	}

	out := make([]template.Project, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.projects[id])
	}
	return out, true
}

// Project returns one cached project by ID.
func (c *Cache) Project(projectID string) (*template.Project, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.expiredLocked() {
		c.clearLocked()
		return nil, false
	}

	p, ok := c.projects[projectID]
	if !ok {
		return nil, false
	}
	return &p, true
}

// SetProjects replaces the snapshot and resets the TTL clock.
func (c *Cache) SetProjects(projects []template.Project) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearLocked()
	for _, p := range projects {
		if p.ProjectID == "" {
			continue
		}
		if _, exists := c.projects[p.ProjectID]; !exists {
			c.order = append(c.order, p.ProjectID)
		}
		c.projects[p.ProjectID] = p
	}
	c.fetched = c.now()
}

// SetProject caches a single project. Starts the TTL clock if this is the
// first entry; otherwise the existing snapshot expiry applies.
func (c *Cache) SetProject(p template.Project) {
	if p.ProjectID == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.expiredLocked() {
		c.clearLocked()
	}
	if _, exists := c.projects[p.ProjectID]; !exists {
		c.order = append(c.order, p.ProjectID)
	}
	c.projects[p.ProjectID] = p
	if c.fetched.IsZero() {
		c.fetched = c.now()
	}
}

// Invalidate drops the snapshot immediately.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
}

func (c *Cache) expiredLocked() bool {
	return !c.fetched.IsZero() && c.now().Sub(c.fetched) > c.ttl
}

func (c *Cache) clearLocked() {
	c.projects = make(map[string]template.Project)
	c.order = nil
	c.fetched = time.Time{}
}
