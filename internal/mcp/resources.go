package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/memex-universe/templatesd/internal/template"
)

const (
	// resourceURIPrefix is the scheme and authority under which published
	// templates are addressable.
	resourceURIPrefix = "template://universe/"

	catalogURI = "template://universe/catalog"
)

// registerResources exposes the catalog as MCP resources: one static
// catalog listing plus a URI template for individual projects.
func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		URI:         catalogURI,
		Name:        "Universe Template Catalog",
		Description: "All published universe templates",
		MIMEType:    "text/plain",
	}, s.readCatalog)

	s.mcp.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: resourceURIPrefix + "{project_id}",
		Name:        "Universe Template",
		Description: "Details for one universe template",
		MIMEType:    "text/plain",
	}, s.readTemplate)
}

func (s *Server) readCatalog(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	projects, err := s.templates.List(ctx, template.ListOptions{Limit: template.MaxLimit})
	if err != nil {
		return nil, fmt.Errorf("listing catalog: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      catalogURI,
			MIMEType: "text/plain",
			Text:     template.FormatList(projects),
		}},
	}, nil
}

func (s *Server) readTemplate(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI
	projectID := strings.TrimPrefix(uri, resourceURIPrefix)
	if projectID == uri || projectID == "" || strings.Contains(projectID, "/") {
		return nil, mcp.ResourceNotFoundError(uri)
	}

	project, err := s.templates.Get(ctx, projectID)
	if err != nil {
		s.logger.Debug("resource read failed",
			zap.String("uri", uri),
			zap.Error(err))
		return nil, mcp.ResourceNotFoundError(uri)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     template.FormatCard(project),
		}},
	}, nil
}
