package mcp

import (
	"github.com/custodia-labs/confrep/internal/core/ports/driving"
	"github.com/custodia-labs/confrep/internal/reportdef"
)

// Ports aggregates everything the MCP server drives.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Report renders and publishes pages.
	Report driving.ReportService

	// History backs the history resource. Optional.
	History driving.HistoryService

	// Settings supplies the default space and parent. Optional.
	Settings driving.SettingsService

	// Resolver turns definitions into content units. Optional; without
	// one only inline, file and CSV sources resolve.
	Resolver *reportdef.Resolver

	// PageURL builds a browser link for a page id. Optional.
	PageURL func(id string) string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Report == nil {
		return ErrMissingReportService
	}
	return nil
}
