// Package filesystem reads report tables and images from local files and
// watches report definitions for changes.
package filesystem
