// Package mcp provides an MCP (Model Context Protocol) server adapter for confrep.
// It lets AI assistants render report definitions and publish them as pages.
package mcp

import "errors"

// ErrMissingReportService is returned when the report service is not provided.
var ErrMissingReportService = errors.New("mcp: report service is required")

// errDefinitionSource is returned when a tool gets neither or both of an
// inline definition and a path.
var errDefinitionSource = errors.New("exactly one of definition or path is required")
