package template

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore struct {
	snapshot []Project
	byID     map[string]Project
}

func newFakeStore() *fakeStore {
	return &fakeStore{byID: make(map[string]Project)}
}

func (f *fakeStore) Projects() ([]Project, bool) {
	return f.snapshot, f.snapshot != nil
}

func (f *fakeStore) Project(id string) (*Project, bool) {
	p, ok := f.byID[id]
	if !ok {
		return nil, false
	}
	return &p, true
}

func (f *fakeStore) SetProjects(projects []Project) {
	f.snapshot = projects
	f.byID = make(map[string]Project)
	for _, p := range projects {
		f.byID[p.ProjectID] = p
	}
}

func (f *fakeStore) SetProject(p Project) {
	f.byID[p.ProjectID] = p
}

type fakeSource struct {
	projects []Project
	err      error
}

func (f *fakeSource) ListProjects(_ context.Context, creatorID string) ([]Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	if creatorID == "" {
		return f.projects, nil
	}
	var out []Project
	for _, p := range f.projects {
		if p.CreatorID == creatorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeSource) GetProject(_ context.Context, projectID string) (*Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.projects {
		if f.projects[i].ProjectID == projectID {
			return &f.projects[i], nil
		}
	}
	return nil, nil
}

func newTestService(t *testing.T, source Source) (*Service, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	svc, err := NewService(source, store, zap.NewNop())
	require.NoError(t, err)
	return svc, store
}

func TestNewServiceValidation(t *testing.T) {
	_, err := NewService(nil, nil, zap.NewNop())
	require.Error(t, err)

	_, err = NewService(nil, newFakeStore(), nil)
	require.Error(t, err)
}

func TestListSeedFallback(t *testing.T) {
	svc, _ := newTestService(t, nil)

	projects, err := svc.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.Len(t, projects, 4)

	// Sorted by title.
	assert.Equal(t, "ML Model Serving API", projects[0].Title)
	assert.Equal(t, "Next.js AI Chat Template", projects[1].Title)
	assert.Equal(t, "Python FastAPI Starter", projects[2].Title)
	assert.Equal(t, "React Dashboard Template", projects[3].Title)
}

func TestListDomainFilterCaseInsensitive(t *testing.T) {
	svc, _ := newTestService(t, nil)

	projects, err := svc.List(context.Background(), ListOptions{Domain: "machine learning"})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "ml-model-serving", projects[0].ProjectID)
}

func TestListCreatorFilter(t *testing.T) {
	svc, _ := newTestService(t, nil)

	projects, err := svc.List(context.Background(), ListOptions{CreatorID: "user-456"})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "python-fastapi-starter", projects[0].ProjectID)
}

func TestListExcludesUnpublished(t *testing.T) {
	source := &fakeSource{projects: []Project{
		{ProjectID: "pub", Title: "Published", IsPublished: true},
		{ProjectID: "draft", Title: "Draft", IsPublished: false},
	}}
	svc, _ := newTestService(t, source)

	projects, err := svc.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "pub", projects[0].ProjectID)
}

func TestListLimit(t *testing.T) {
	svc, _ := newTestService(t, nil)

	projects, err := svc.List(context.Background(), ListOptions{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestListBackendErrorFallsBackToSeed(t *testing.T) {
	source := &fakeSource{err: errors.New("connection refused")}
	svc, _ := newTestService(t, source)

	projects, err := svc.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Len(t, projects, 4)
}

func TestListCachesBackendSnapshot(t *testing.T) {
	source := &fakeSource{projects: []Project{
		{ProjectID: "remote", Title: "Remote", IsPublished: true},
	}}
	svc, store := newTestService(t, source)

	_, err := svc.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.NotNil(t, store.snapshot)
	assert.Equal(t, "remote", store.snapshot[0].ProjectID)

	// Backend goes away; the cached snapshot still serves.
	source.err = errors.New("down")
	projects, err := svc.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "remote", projects[0].ProjectID)
}

func TestCreatorFilteredFetchSkipsCache(t *testing.T) {
	source := &fakeSource{projects: []Project{
		{ProjectID: "a", Title: "A", CreatorID: "user-1", IsPublished: true},
		{ProjectID: "b", Title: "B", CreatorID: "user-2", IsPublished: true},
	}}
	svc, store := newTestService(t, source)

	_, err := svc.List(context.Background(), ListOptions{CreatorID: "user-1"})
	require.NoError(t, err)
	assert.Nil(t, store.snapshot)
}

func TestGet(t *testing.T) {
	t.Run("from seed", func(t *testing.T) {
		svc, _ := newTestService(t, nil)

		p, err := svc.Get(context.Background(), "react-dashboard")
		require.NoError(t, err)
		assert.Equal(t, "React Dashboard Template", p.Title)
	})

	t.Run("from cache", func(t *testing.T) {
		svc, store := newTestService(t, nil)
		store.SetProject(Project{ProjectID: "cached", Title: "Cached"})

		p, err := svc.Get(context.Background(), "cached")
		require.NoError(t, err)
		assert.Equal(t, "Cached", p.Title)
	})

	t.Run("from backend caches result", func(t *testing.T) {
		source := &fakeSource{projects: []Project{
			{ProjectID: "remote", Title: "Remote"},
		}}
		svc, store := newTestService(t, source)

		p, err := svc.Get(context.Background(), "remote")
		require.NoError(t, err)
		assert.Equal(t, "Remote", p.Title)

		_, ok := store.Project("remote")
		assert.True(t, ok)
	})

	t.Run("not found", func(t *testing.T) {
		svc, _ := newTestService(t, nil)

		_, err := svc.Get(context.Background(), "no-such-template")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		svc, _ := newTestService(t, nil)

		_, err := svc.Get(context.Background(), "")
		require.Error(t, err)
	})
}

func TestSearchRelevanceOrdering(t *testing.T) {
	svc, _ := newTestService(t, nil)

	results, err := svc.Search(context.Background(), "fastapi", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// "Python FastAPI Starter" matches in title, description, and features
	// (10+5+3); "ML Model Serving API" only in features (3).
	assert.Equal(t, "python-fastapi-starter", results[0].Project.ProjectID)
	assert.Equal(t, 18, results[0].Score)
	assert.Equal(t, "ml-model-serving", results[1].Project.ProjectID)
	assert.Equal(t, 3, results[1].Score)
}

func TestSearchDomainMatch(t *testing.T) {
	svc, _ := newTestService(t, nil)

	results, err := svc.Search(context.Background(), "machine learning", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "ml-model-serving", results[0].Project.ProjectID)
	// Description (5) plus domain (2).
	assert.Equal(t, 7, results[0].Score)
}

func TestSearchNoMatches(t *testing.T) {
	svc, _ := newTestService(t, nil)

	results, err := svc.Search(context.Background(), "cobol mainframe", 10)
	require.NoError(t, err)
	// Empty but non-nil: the tool and REST layers serialize this as [].
	require.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearchEmptyQuery(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.Search(context.Background(), "   ", 10)
	require.Error(t, err)
}

func TestSearchLimit(t *testing.T) {
	svc, _ := newTestService(t, nil)

	results, err := svc.Search(context.Background(), "template", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, clampLimit(0))
	assert.Equal(t, DefaultLimit, clampLimit(-5))
	assert.Equal(t, 7, clampLimit(7))
	assert.Equal(t, MaxLimit, clampLimit(500))
}
