// Package app wires the InsightFlow application together: configuration,
// logging, the session store, the import and export pipelines, and the Chi
// router with its middleware stack. The cmd/web binary is a thin shell
// around Application.Run.
package app
