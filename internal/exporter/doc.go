// Package exporter turns an export payload into a downloadable artifact.
//
// Three serializers share one entry point:
//
// CSV: a deterministic text layout with a metrics table, one labeled block
// per chart channel and a metadata block. The row order is fixed and covered
// by golden tests.
//
// PDF: a captured screenshot of the live dashboard region embedded on a
// landscape title page, followed by paginated plain-text metric summaries,
// printed through the same headless browser that took the capture.
//
// PNG: a single screenshot of the dashboard region at 2x pixel density on a
// white background.
//
// An export runs to completion or failure: no retry, no cancellation, and no
// partial artifact is left behind. Coordinating overlapping exports is the
// caller's responsibility.
package exporter
