package template

import (
	"fmt"
	"strings"
)

// FormatCard renders the summary card shown for a single template.
func FormatCard(p *Project) string {
	published := "No"
	if p.IsPublished {
		published = "Yes"
	}

	lines := []string{
		fmt.Sprintf("**%s**", orDefault(p.Title, "Untitled")),
		fmt.Sprintf("ID: %s", orDefault(p.ProjectID, "N/A")),
		fmt.Sprintf("Description: %s", orDefault(p.Description, "No description")),
		fmt.Sprintf("Domain: %s", orDefault(p.Domain, "N/A")),
		fmt.Sprintf("Creator: %s", orDefault(p.CreatorID, "N/A")),
		fmt.Sprintf("Created: %s", p.CreatedAt.Format("2006-01-02T15:04:05Z07:00")),
		fmt.Sprintf("Published: %s", published),
	}

	if len(p.Features) > 0 {
		lines = append(lines, fmt.Sprintf("Features: %s", strings.Join(p.Features, ", ")))
	}
	if p.Git != nil && p.Git.URL != "" {
		lines = append(lines, fmt.Sprintf("Git Repository: %s", p.Git.URL))
		if p.Git.Branch != "" {
			lines = append(lines, fmt.Sprintf("Branch: %s", p.Git.Branch))
		}
	}
	if p.Deployment != nil && p.Deployment.URL != "" {
		lines = append(lines, fmt.Sprintf("Live Demo: %s", p.Deployment.URL))
	}

	return strings.Join(lines, "\n")
}

// FormatDetails renders the full detail view: the summary card plus tools,
// requirements, and quick actions.
func FormatDetails(p *Project) string {
	lines := []string{FormatCard(p), "\n**Additional Details:**"}

	if len(p.Tools) > 0 {
		names := make([]string, 0, len(p.Tools))
		for _, t := range p.Tools {
			names = append(names, t.Name)
		}
		lines = append(lines, fmt.Sprintf("Tools: %s", strings.Join(names, ", ")))
	}

	if len(p.Requirements) > 0 {
		reqs := make([]string, 0, len(p.Requirements))
		for _, r := range p.Requirements {
			reqs = append(reqs, fmt.Sprintf("%s: %s", r.Type, r.Description))
		}
		lines = append(lines, "Requirements:\n  - "+strings.Join(reqs, "\n  - "))
	}

	if len(p.Pills) > 0 {
		pills := make([]string, 0, len(p.Pills))
		for _, pl := range p.Pills {
			pills = append(pills, fmt.Sprintf("%s: %s", pl.Label, pl.Prompt))
		}
		lines = append(lines, "Quick Actions:\n  - "+strings.Join(pills, "\n  - "))
	}

	return strings.Join(lines, "\n")
}

// FormatList renders a numbered listing of templates.
func FormatList(projects []Project) string {
	if len(projects) == 0 {
		return "No templates found matching the criteria."
	}

	lines := []string{fmt.Sprintf("Found %d universe templates:\n", len(projects))}
	for i, p := range projects {
		lines = append(lines,
			fmt.Sprintf("%d. **%s**", i+1, orDefault(p.Title, "Untitled")),
			fmt.Sprintf("   ID: %s", orDefault(p.ProjectID, "N/A")),
			fmt.Sprintf("   Description: %s", orDefault(p.Description, "No description")),
			fmt.Sprintf("   Domain: %s", orDefault(p.Domain, "N/A")),
			fmt.Sprintf("   Features: %s", strings.Join(p.Features, ", ")),
		)
		if p.Git != nil && p.Git.URL != "" {
			lines = append(lines, fmt.Sprintf("   Git: %s", p.Git.URL))
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// FormatSearchResults renders scored search matches for a query.
func FormatSearchResults(query string, results []SearchResult) string {
	if len(results) == 0 {
		return fmt.Sprintf("No templates found matching '%s'.", query)
	}

	lines := []string{fmt.Sprintf("Found %d templates matching '%s':\n", len(results), query)}
	for i, r := range results {
		p := r.Project
		lines = append(lines,
			fmt.Sprintf("%d. **%s** (relevance: %d)", i+1, orDefault(p.Title, "Untitled"), r.Score),
			fmt.Sprintf("   ID: %s", orDefault(p.ProjectID, "N/A")),
			fmt.Sprintf("   Description: %s", orDefault(p.Description, "No description")),
			fmt.Sprintf("   Domain: %s", orDefault(p.Domain, "N/A")),
			fmt.Sprintf("   Features: %s", strings.Join(p.Features, ", ")),
			"",
		)
	}
	return strings.Join(lines, "\n")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
