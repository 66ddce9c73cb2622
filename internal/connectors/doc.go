// Package connectors holds the table and image sources a report definition
// can draw from: local files, GitHub pull requests and Google Sheets.
//
// Each source turns external data into domain content units; none of them
// talk to the content platform.
package connectors
