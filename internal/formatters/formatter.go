// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"fone-scan/internal/detector"
	"fone-scan/internal/results"
)

// TimestampLayout is the day-first extraction date written on every row
const TimestampLayout = "02/01/2006 15:04"

// Column headers of the phone report, in order
var Columns = []string{"Telefone", "DDD", "Arquivo de Origem", "Páginas", "Data Extração"}

// DiscardColumns are the headers of the discarded-candidates report
var DiscardColumns = []string{"pdf", "page", "pattern", "cleaned", "reason"}

// Report is everything a formatter may render for one run
type Report struct {
	Rows        []results.Row
	Records     []results.PhoneRecord
	Discards    []detector.DiscardEntry
	Documents   int      // Documents scanned successfully
	Failures    []string // Operator-facing document error messages
	Diagnostics bool     // Whether the discard list was collected at all
	PageLabel   string   // Prefix of page numbers in discard listings
	GeneratedAt time.Time
}

// NewReport snapshots the accumulated results of a run
func NewReport(res *results.Results, discards []detector.DiscardEntry, generatedAt time.Time) *Report {
	return &Report{
		Rows:        res.Rows(),
		Records:     res.Records(),
		Discards:    discards,
		GeneratedAt: generatedAt,
	}
}

// Timestamp renders GeneratedAt with TimestampLayout
func (r *Report) Timestamp() string {
	return r.GeneratedAt.Format(TimestampLayout)
}

// FormatterOptions defines configuration options for formatters
type FormatterOptions struct {
	NoColor      bool // Whether to disable colored output
	Verbose      bool // Whether to display per-source detail
	ShowDiscards bool // Whether to list discarded candidates
}

// Formatter interface defines methods that all output formatters must implement
type Formatter interface {
	// Format renders the report in the formatter's specific output format
	Format(report *Report, options FormatterOptions) ([]byte, error)

	// Name returns the name of the formatter (e.g., "xlsx", "csv", "json")
	Name() string

	// Description returns a brief description of what this formatter outputs
	Description() string

	// FileExtension returns the recommended file extension for this format (e.g., ".xlsx", ".csv")
	FileExtension() string
}

// Registry holds all registered formatters
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates a new formatter registry
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
	}
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) {
	r.formatters[formatter.Name()] = formatter
}

// Get retrieves a formatter by name
func (r *Registry) Get(name string) (Formatter, bool) {
	formatter, exists := r.formatters[name]
	return formatter, exists
}

// List returns all registered formatter names, sorted
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatInfo provides metadata about a formatter
type FormatInfo struct {
	Name        string
	Description string
	Extension   string
	MimeType    string
}

// DefaultRegistry is the global formatter registry
var DefaultRegistry = NewRegistry()

// Register is a convenience function to register a formatter with the default registry
func Register(formatter Formatter) {
	DefaultRegistry.Register(formatter)
}

// Get is a convenience function to get a formatter from the default registry
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// List is a convenience function to list all formatters in the default registry
func List() []string {
	return DefaultRegistry.List()
}

// Export renders report with the named formatter
func Export(format string, report *Report, options FormatterOptions) ([]byte, error) {
	formatter, exists := Get(format)
	if !exists {
		return nil, fmt.Errorf("unsupported format '%s'. Available formats: %s", format, strings.Join(List(), ", "))
	}
	return formatter.Format(report, options)
}

// GetFormatInfo returns metadata about a specific formatter
func GetFormatInfo(name string) FormatInfo {
	formatter, exists := Get(name)
	if !exists {
		return FormatInfo{}
	}

	info := FormatInfo{
		Name:        formatter.Name(),
		Description: formatter.Description(),
		Extension:   formatter.FileExtension(),
	}

	switch name {
	case "json":
		info.MimeType = "application/json"
	case "csv":
		info.MimeType = "text/csv"
	case "yaml":
		info.MimeType = "application/x-yaml"
	case "xlsx":
		info.MimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "text":
		info.MimeType = "text/plain"
	default:
		info.MimeType = "application/octet-stream"
	}

	return info
}

// GetSupportedFormats returns information about all available formatters
func GetSupportedFormats() []FormatInfo {
	var formats []FormatInfo
	for _, name := range List() {
		formats = append(formats, GetFormatInfo(name))
	}
	return formats
}
