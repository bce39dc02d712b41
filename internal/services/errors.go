package services

import "errors"

// Service-level sentinel errors mapped to API errors by the transport layer.
var (
	// ErrInvalidDateRange is returned for unknown date-range filter labels.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrNoEntries is returned when a manual import carries no rows.
	ErrNoEntries = errors.New("no data entries provided")
)
