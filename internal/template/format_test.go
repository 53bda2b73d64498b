package template

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedByID(t *testing.T, id string) *Project {
	t.Helper()
	for _, p := range SeedProjects() {
		if p.ProjectID == id {
			return &p
		}
	}
	t.Fatalf("seed project %q not found", id)
	return nil
}

func TestFormatCard(t *testing.T) {
	p := seedByID(t, "nextjs-ai-chat")
	card := FormatCard(p)

	assert.Contains(t, card, "**Next.js AI Chat Template**")
	assert.Contains(t, card, "ID: nextjs-ai-chat")
	assert.Contains(t, card, "Domain: Web Development")
	assert.Contains(t, card, "Published: Yes")
	assert.Contains(t, card, "Features: Next.js, TypeScript, AI Integration, Real-time Chat, Authentication")
	assert.Contains(t, card, "Git Repository: https://github.com/memex-universe/nextjs-ai-chat-template.git")
	assert.Contains(t, card, "Branch: main")
	assert.Contains(t, card, "Live Demo: https://nextjs-ai-chat-demo.vercel.app")
}

func TestFormatCardMinimalProject(t *testing.T) {
	card := FormatCard(&Project{})

	assert.Contains(t, card, "**Untitled**")
	assert.Contains(t, card, "ID: N/A")
	assert.Contains(t, card, "Description: No description")
	assert.Contains(t, card, "Published: No")
	assert.NotContains(t, card, "Git Repository")
	assert.NotContains(t, card, "Live Demo")
}

func TestFormatDetails(t *testing.T) {
	p := seedByID(t, "python-fastapi-starter")
	details := FormatDetails(p)

	assert.Contains(t, details, "**Additional Details:**")
	assert.Contains(t, details, "Tools: FastAPI, SQLAlchemy, Pytest")
	assert.Contains(t, details, "Requirements:\n  - Python: Version 3.11 or higher")
	assert.Contains(t, details, "Quick Actions:\n  - Setup Environment: Set up the development environment with poetry")
}

func TestFormatList(t *testing.T) {
	projects := SeedProjects()
	out := FormatList(projects[:2])

	assert.True(t, strings.HasPrefix(out, "Found 2 universe templates:"))
	assert.Contains(t, out, "1. **Next.js AI Chat Template**")
	assert.Contains(t, out, "2. **Python FastAPI Starter**")
	assert.Contains(t, out, "   Git: https://github.com/memex-universe/nextjs-ai-chat-template.git")
}

func TestFormatListEmpty(t *testing.T) {
	assert.Equal(t, "No templates found matching the criteria.", FormatList(nil))
}

func TestFormatSearchResults(t *testing.T) {
	p := seedByID(t, "react-dashboard")
	out := FormatSearchResults("dashboard", []SearchResult{{Project: *p, Score: 15}})

	require.True(t, strings.HasPrefix(out, "Found 1 templates matching 'dashboard':"))
	assert.Contains(t, out, "1. **React Dashboard Template** (relevance: 15)")
}

func TestFormatSearchResultsEmpty(t *testing.T) {
	assert.Equal(t, "No templates found matching 'zzz'.", FormatSearchResults("zzz", nil))
}
