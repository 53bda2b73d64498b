package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/memex-universe/templatesd/internal/gitclone"
	"github.com/memex-universe/templatesd/internal/template"
)

type listTemplatesInput struct {
	Domain    string `json:"domain,omitempty" jsonschema:"Filter by domain (e.g. 'AI', 'Web Development')"`
	CreatorID string `json:"creator_id,omitempty" jsonschema:"Filter by creator ID"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of templates to return (default 20, max 100)"`
}

type listTemplatesOutput struct {
	Count     int                `json:"count" jsonschema:"Number of templates returned"`
	Templates []template.Project `json:"templates" jsonschema:"Matching templates"`
}

type templateDetailsInput struct {
	TemplateID string `json:"template_id" jsonschema:"required,The unique ID of the template"`
}

type templateDetailsOutput struct {
	Found    bool              `json:"found" jsonschema:"Whether the template exists"`
	Template *template.Project `json:"template,omitempty" jsonschema:"The template, when found"`
}

type searchTemplatesInput struct {
	Query string `json:"query" jsonschema:"required,Search query (keywords to search for)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results to return (default 20, max 100)"`
}

type searchTemplatesOutput struct {
	Count   int                     `json:"count" jsonschema:"Number of matches returned"`
	Results []template.SearchResult `json:"results" jsonschema:"Matches in descending relevance order"`
}

type cloneTemplateInput struct {
	TemplateID      string `json:"template_id" jsonschema:"required,The unique ID of the template to clone"`
	TargetDirectory string `json:"target_directory" jsonschema:"required,The local directory path where the template should be cloned"`
	ProjectName     string `json:"project_name,omitempty" jsonschema:"Optional project name (defaults to template title)"`
}

type cloneTemplateOutput struct {
	Success bool                 `json:"success" jsonschema:"Whether the clone completed"`
	Result  *gitclone.CloneResult `json:"result,omitempty" jsonschema:"Clone details on success"`
}

type directoryStatusInput struct {
	Path string `json:"path" jsonschema:"required,Directory path to check"`
}

func (s *Server) registerTools() {
	s.registerCatalogTools()
	s.registerCloneTools()
}

func (s *Server) registerCatalogTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_universe_templates",
		Description: "List all available universe templates with optional filtering",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args listTemplatesInput) (*mcp.CallToolResult, listTemplatesOutput, error) {
		start := time.Now()
		s.metrics.IncrementActive(ctx, "list_universe_templates")
		var toolErr error
		defer func() {
			s.metrics.DecrementActive(ctx, "list_universe_templates")
			s.metrics.RecordInvocation(ctx, "list_universe_templates", time.Since(start), toolErr)
		}()

		projects, err := s.templates.List(ctx, template.ListOptions{
			Domain:    args.Domain,
			CreatorID: args.CreatorID,
			Limit:     args.Limit,
		})
		if err != nil {
			toolErr = err
			return nil, listTemplatesOutput{}, err
		}

		return textResult(template.FormatList(projects)), listTemplatesOutput{
			Count:     len(projects),
			Templates: projects,
		}, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_template_details",
		Description: "Get detailed information about a specific universe template",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args templateDetailsInput) (*mcp.CallToolResult, templateDetailsOutput, error) {
		start := time.Now()
		s.metrics.IncrementActive(ctx, "get_template_details")
		var toolErr error
		defer func() {
			s.metrics.DecrementActive(ctx, "get_template_details")
			s.metrics.RecordInvocation(ctx, "get_template_details", time.Since(start), toolErr)
		}()

		project, err := s.templates.Get(ctx, args.TemplateID)
		if err != nil {
			if errors.Is(err, template.ErrNotFound) {
				msg := fmt.Sprintf("Template with ID '%s' not found.", args.TemplateID)
				return textResult(msg), templateDetailsOutput{Found: false}, nil
			}
			toolErr = err
			return nil, templateDetailsOutput{}, err
		}

		return textResult(template.FormatDetails(project)), templateDetailsOutput{
			Found:    true,
			Template: project,
		}, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_templates",
		Description: "Search universe templates by keywords in title, description, or features",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args searchTemplatesInput) (*mcp.CallToolResult, searchTemplatesOutput, error) {
		start := time.Now()
		s.metrics.IncrementActive(ctx, "search_templates")
		var toolErr error
		defer func() {
			s.metrics.DecrementActive(ctx, "search_templates")
			s.metrics.RecordInvocation(ctx, "search_templates", time.Since(start), toolErr)
		}()

		results, err := s.templates.Search(ctx, args.Query, args.Limit)
		if err != nil {
			toolErr = err
			return nil, searchTemplatesOutput{}, err
		}

		return textResult(template.FormatSearchResults(args.Query, results)), searchTemplatesOutput{
			Count:   len(results),
			Results: results,
		}, nil
	})
}

func (s *Server) registerCloneTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "clone_template",
		Description: "Clone a universe template repository to a local directory",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args cloneTemplateInput) (*mcp.CallToolResult, cloneTemplateOutput, error) {
		start := time.Now()
		s.metrics.IncrementActive(ctx, "clone_template")
		var toolErr error
		defer func() {
			s.metrics.DecrementActive(ctx, "clone_template")
			s.metrics.RecordInvocation(ctx, "clone_template", time.Since(start), toolErr)
		}()

		if args.TargetDirectory == "" {
			toolErr = fmt.Errorf("target_directory is required")
			return nil, cloneTemplateOutput{}, toolErr
		}

		project, err := s.templates.Get(ctx, args.TemplateID)
		if err != nil {
			if errors.Is(err, template.ErrNotFound) {
				msg := fmt.Sprintf("Template with ID '%s' not found.", args.TemplateID)
				return textResult(msg), cloneTemplateOutput{}, nil
			}
			toolErr = err
			return nil, cloneTemplateOutput{}, err
		}

		if project.Git == nil || project.Git.URL == "" {
			msg := fmt.Sprintf("Template '%s' does not have a git repository associated with it.", project.Title)
			return textResult(msg), cloneTemplateOutput{}, nil
		}

		result, err := s.cloner.Clone(ctx, gitclone.CloneOptions{
			URL:    project.Git.URL,
			Target: args.TargetDirectory,
			Branch: project.Git.Branch,
		})
		if err != nil {
			if errors.Is(err, gitclone.ErrTargetNotEmpty) {
				msg := fmt.Sprintf("Target directory '%s' already exists and is not empty. Please choose a different location or remove the existing directory.", args.TargetDirectory)
				return textResult(msg), cloneTemplateOutput{}, nil
			}
			toolErr = err
			s.logger.Error("template clone failed",
				zap.String("template_id", args.TemplateID),
				zap.Error(err))
			msg := fmt.Sprintf("❌ Failed to clone template: %s\n\nPlease check that:\n- The git repository is accessible\n- You have proper permissions\n- The target directory path is valid", err)
			return textResult(msg), cloneTemplateOutput{}, nil
		}

		return textResult(formatCloneSuccess(project, result)), cloneTemplateOutput{
			Success: true,
			Result:  result,
		}, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "check_directory_status",
		Description: "Check the status of a directory (exists, empty, git repo, etc.)",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args directoryStatusInput) (*mcp.CallToolResult, gitclone.DirectoryStatus, error) {
		start := time.Now()
		s.metrics.IncrementActive(ctx, "check_directory_status")
		var toolErr error
		defer func() {
			s.metrics.DecrementActive(ctx, "check_directory_status")
			s.metrics.RecordInvocation(ctx, "check_directory_status", time.Since(start), toolErr)
		}()

		if args.Path == "" {
			toolErr = fmt.Errorf("path is required")
			return nil, gitclone.DirectoryStatus{}, toolErr
		}

		status, err := gitclone.Inspect(args.Path)
		if err != nil {
			toolErr = err
			return nil, gitclone.DirectoryStatus{}, err
		}

		return textResult(formatDirectoryStatus(status)), *status, nil
	})
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// formatCloneSuccess renders the post-clone summary with next steps.
func formatCloneSuccess(p *template.Project, result *gitclone.CloneResult) string {
	commitID := result.CommitID
	if len(commitID) > 8 {
		commitID = commitID[:8]
	}

	lines := []string{
		fmt.Sprintf("✅ Successfully cloned template '%s'!", p.Title),
		"",
		"**Template Details:**",
		fmt.Sprintf("- Name: %s", p.Title),
		fmt.Sprintf("- Description: %s", p.Description),
		fmt.Sprintf("- Domain: %s", p.Domain),
		"",
		"**Clone Details:**",
		fmt.Sprintf("- Local Path: %s", result.Path),
		fmt.Sprintf("- Git Repository: %s", result.RemoteURL),
		fmt.Sprintf("- Branch: %s", result.Branch),
		fmt.Sprintf("- Latest Commit: %s", commitID),
		fmt.Sprintf("- Commit Message: %s", result.CommitMessage),
		fmt.Sprintf("- Commit Author: %s", result.CommitAuthor),
		"",
		"**Next Steps:**",
		fmt.Sprintf("1. Navigate to the project directory: cd %s", result.Path),
		"2. Review the README.md file for setup instructions",
		"3. Install any required dependencies",
		"4. Start developing your project based on this template!",
	}

	if len(p.Requirements) > 0 {
		lines = append(lines, "", "**Template Requirements:**")
		for _, r := range p.Requirements {
			lines = append(lines, fmt.Sprintf("- %s: %s", r.Type, r.Description))
		}
	}
	if len(p.Pills) > 0 {
		lines = append(lines, "", "**Quick Actions Available:**")
		for _, pl := range p.Pills {
			lines = append(lines, fmt.Sprintf("- %s: %s", pl.Label, pl.Prompt))
		}
	}

	return strings.Join(lines, "\n")
}

// formatDirectoryStatus renders an Inspect result with clone guidance.
func formatDirectoryStatus(status *gitclone.DirectoryStatus) string {
	lines := []string{
		fmt.Sprintf("**Directory Status: %s**", status.Path),
		"",
		fmt.Sprintf("Exists: %s", yesNo(status.Exists)),
	}

	if status.Exists {
		lines = append(lines,
			fmt.Sprintf("Is Directory: %s", yesNo(status.IsDirectory)),
			fmt.Sprintf("Is Empty: %s", yesNo(status.IsEmpty)),
			fmt.Sprintf("File Count: %d", status.FileCount),
			fmt.Sprintf("Size: %d bytes", status.SizeBytes),
			fmt.Sprintf("Is Git Repository: %s", yesNo(status.IsGitRepo)),
		)
		if !status.IsEmpty {
			lines = append(lines, "", "⚠️  Directory is not empty. Cloning to this location may fail.")
		}
	} else {
		lines = append(lines, "", "✅ Directory does not exist. Safe to clone here.")
	}

	return strings.Join(lines, "\n")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
