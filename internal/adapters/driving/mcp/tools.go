package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/confrep/internal/core/domain"
	"github.com/custodia-labs/confrep/internal/reportdef"
)

// DefinitionInput selects a report definition, inline or by file path.
type DefinitionInput struct {
	Definition string `json:"definition,omitempty" jsonschema:"report definition as TOML text"`
	Path       string `json:"path,omitempty" jsonschema:"path to a report definition TOML file"`
}

// RenderOutput is the output schema for the render_report tool.
type RenderOutput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Units int    `json:"units"`
}

// PublishInput is the input schema for the publish_report tool.
type PublishInput struct {
	Definition string `json:"definition,omitempty" jsonschema:"report definition as TOML text"`
	Path       string `json:"path,omitempty" jsonschema:"path to a report definition TOML file"`

	Space     string `json:"space,omitempty" jsonschema:"target space key (default from definition or settings)"`
	ParentID  string `json:"parent_id,omitempty" jsonschema:"parent page id for new pages"`
	Overwrite string `json:"overwrite,omitempty" jsonschema:"always or never (default never)"`
	Mode      string `json:"mode,omitempty" jsonschema:"replace or append when overwriting (default replace)"`
}

// PageInput identifies a page.
type PageInput struct {
	PageID string `json:"page_id" jsonschema:"the page id"`
}

// PageOutput describes a page.
type PageOutput struct {
	Outcome string `json:"outcome,omitempty"`
	PageID  string `json:"page_id"`
	Title   string `json:"title"`
	Space   string `json:"space,omitempty"`
	Version int    `json:"version"`
	URL     string `json:"url,omitempty"`
	Body    string `json:"body,omitempty"`
}

// DeleteOutput is the output schema for the delete_page tool.
type DeleteOutput struct {
	Status int `json:"status"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "render_report",
		Description: "Render a report definition to validated storage markup without publishing",
	}, s.handleRender)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "publish_report",
		Description: "Publish a report definition as a page, creating it or overwriting a page with the same title",
	}, s.handlePublish)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_page",
		Description: "Fetch a page with its storage body and version",
	}, s.handleGetPage)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_page",
		Description: "Delete a page and return the HTTP status code",
	}, s.handleDeletePage)
}

// handleRender handles the render_report tool invocation.
func (s *Server) handleRender(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DefinitionInput,
) (*mcp.CallToolResult, RenderOutput, error) {
	def, units, err := s.resolve(ctx, input)
	if err != nil {
		return nil, RenderOutput{}, err
	}

	body, err := s.ports.Report.Render(units)
	if err != nil {
		return nil, RenderOutput{}, err
	}

	return nil, RenderOutput{Title: def.Title, Body: body, Units: len(units)}, nil
}

// handlePublish handles the publish_report tool invocation. Nobody can
// answer a prompt here, so the ask policy is refused.
func (s *Server) handlePublish(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PublishInput,
) (*mcp.CallToolResult, PageOutput, error) {
	policy := domain.NeverOverwrite
	if input.Overwrite != "" {
		p, err := domain.ParseOverwritePolicy(input.Overwrite)
		if err != nil || p == domain.AskCaller {
			return nil, PageOutput{}, fmt.Errorf("%w: overwrite must be always or never", domain.ErrInvalidInput)
		}
		policy = p
	}

	var mode domain.UpdateMode
	if input.Mode != "" {
		m, err := domain.ParseUpdateMode(input.Mode)
		if err != nil {
			return nil, PageOutput{}, fmt.Errorf("%w: mode must be replace or append", domain.ErrInvalidInput)
		}
		mode = m
	}

	def, units, err := s.resolve(ctx, DefinitionInput{Definition: input.Definition, Path: input.Path})
	if err != nil {
		return nil, PageOutput{}, err
	}

	req := def.Request(units, s.defaults(), reportdef.Overrides{
		Space:    input.Space,
		ParentID: input.ParentID,
		Policy:   policy,
		Mode:     mode,
	}, domain.NeverOverwrite)

	result, err := s.ports.Report.Publish(ctx, req)
	if err != nil {
		return nil, PageOutput{}, err
	}

	out := s.pageOutput(result.Page)
	out.Outcome = result.Outcome.String()
	out.Body = ""
	return nil, out, nil
}

// handleGetPage handles the get_page tool invocation.
func (s *Server) handleGetPage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PageInput,
) (*mcp.CallToolResult, PageOutput, error) {
	page, err := s.ports.Report.Get(ctx, input.PageID)
	if err != nil {
		return nil, PageOutput{}, err
	}
	return nil, s.pageOutput(page), nil
}

// handleDeletePage handles the delete_page tool invocation.
func (s *Server) handleDeletePage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PageInput,
) (*mcp.CallToolResult, DeleteOutput, error) {
	status, err := s.ports.Report.Delete(ctx, input.PageID)
	if err != nil {
		return nil, DeleteOutput{}, err
	}
	return nil, DeleteOutput{Status: status}, nil
}

// resolve loads the selected definition and resolves its blocks.
func (s *Server) resolve(ctx context.Context, input DefinitionInput) (*reportdef.Definition, []domain.ContentUnit, error) {
	var (
		def *reportdef.Definition
		err error
	)

	switch {
	case input.Definition != "" && input.Path == "":
		def, err = reportdef.Parse([]byte(input.Definition))
	case input.Path != "" && input.Definition == "":
		def, err = reportdef.Load(input.Path)
	default:
		return nil, nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, errDefinitionSource)
	}
	if err != nil {
		return nil, nil, err
	}

	units, err := s.ports.Resolver.Units(ctx, def)
	if err != nil {
		return nil, nil, err
	}
	return def, units, nil
}

// defaults returns the configured placement, or zero values when settings
// are unavailable.
func (s *Server) defaults() domain.ConfluenceSettings {
	if s.ports.Settings == nil {
		return domain.ConfluenceSettings{}
	}
	settings, err := s.ports.Settings.Get()
	if err != nil {
		return domain.ConfluenceSettings{}
	}
	return settings.Confluence
}

func (s *Server) pageOutput(page *domain.RemotePage) PageOutput {
	if page == nil {
		return PageOutput{}
	}
	out := PageOutput{
		PageID:  page.ID,
		Title:   page.Title,
		Space:   page.SpaceKey,
		Version: page.Version,
		Body:    page.Body,
	}
	if s.ports.PageURL != nil && page.ID != "" {
		out.URL = s.ports.PageURL(page.ID)
	}
	return out
}
