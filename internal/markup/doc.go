// Package markup converts content units into the platform's storage format,
// an XHTML dialect extended with ac: and ri: namespaced macros.
//
// Every emitter is a pure function of its input. Text fields are escaped,
// with one deliberate exception: table cells are written verbatim so that
// callers can nest links, status lozenges or other markup inside a table.
// Callers holding untrusted cell data must escape it (EscapeText) before
// building a domain.Table. Characters XML forbids, such as C0 controls and
// invalid UTF-8, are removed from every field including cells.
//
// Images are embedded inline as base64 data URIs. No attachment references
// are produced, so a rendered body never depends on a separate upload.
//
// Render dispatches a single unit, RenderAll concatenates several in order,
// and Check/Validate parse an assembled body before it is submitted.
package markup
