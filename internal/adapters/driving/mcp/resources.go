package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for confrep resources.
	uriScheme = "confrep://"

	historyLimit = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the local publish history.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Recent page publishes made from this machine",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	// Template for page bodies.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "pages/{pageId}",
		Name:        "page-body",
		Description: "Storage-format body of a page",
		MIMEType:    "application/xml",
	}, s.handlePageResource)
}

// handleHistoryResource returns the most recent publish records.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	records, err := s.ports.History.Recent(ctx, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}

	type recordInfo struct {
		PageID      string    `json:"page_id"`
		Space       string    `json:"space"`
		Title       string    `json:"title"`
		Version     int       `json:"version"`
		Outcome     string    `json:"outcome"`
		PublishedAt time.Time `json:"published_at"`
	}

	infos := make([]recordInfo, len(records))
	for i := range records {
		infos[i] = recordInfo{
			PageID:      records[i].PageID,
			Space:       records[i].SpaceKey,
			Title:       records[i].Title,
			Version:     records[i].Version,
			Outcome:     records[i].Outcome.String(),
			PublishedAt: records[i].PublishedAt,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling history: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handlePageResource returns the storage body of a page.
func (s *Server) handlePageResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract pageId from URI: confrep://pages/{pageId}
	pageID := extractPageID(req.Params.URI)
	if pageID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	page, err := s.ports.Report.Get(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("getting page: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/xml",
			Text:     page.Body,
		}},
	}, nil
}

// extractPageID extracts the page ID from a URI like confrep://pages/{pageId}.
func extractPageID(uri string) string {
	const prefix = uriScheme + "pages/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
