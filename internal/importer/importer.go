// Package importer converts raw uploaded file content into ordered sequences
// of loosely typed records. Supported formats are CSV, JSON and XLSX; the
// parsers impose no schema across rows.
package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"insightflow/pkg/contracts/domain"
)

// Format identifies a supported import file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ErrUnsupportedFormat is returned for file extensions no parser handles.
var ErrUnsupportedFormat = errors.New("unsupported import format")

// ParseError wraps a parser failure with the format that was attempted.
type ParseError struct {
	Format Format
	Err    error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Format, e.Err)
}

// Unwrap allows errors.Is and errors.As to reach the cause.
func (e *ParseError) Unwrap() error { return e.Err }

// DetectFormat maps a filename extension to an import format.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filename)
	}
}

// Parse converts raw file content into records using the declared format.
// Empty input yields zero records, not an error.
func Parse(format Format, data []byte) ([]domain.Record, error) {
	switch format {
	case FormatCSV:
		return ParseCSV(data)
	case FormatJSON:
		return ParseJSON(data)
	case FormatXLSX:
		return ParseXLSX(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
