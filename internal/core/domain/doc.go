// Package domain defines the core business entities for confrep.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has no dependencies beyond validation rules and defines the
// fundamental types:
//
//   - ContentUnit: One semantic block of report content (table, image, panel, ...)
//   - RemotePage: A page on the remote content platform, with its version
//   - Credentials: Base URL and API credentials for one content client
//   - PublishResult: The outcome of a create/update workflow
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. All other packages depend on
// domain, never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library, github.com/go-ozzo/ozzo-validation/v4
//   - Cannot Import: Any internal/ package
package domain
