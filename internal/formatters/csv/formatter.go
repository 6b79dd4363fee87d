// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"bytes"
	"strconv"
	"strings"

	"fone-scan/internal/detector"
	"fone-scan/internal/formatters"
	"fone-scan/internal/formatters/shared"
)

// utf8BOM makes spreadsheet tools pick UTF-8 for the accented headers
const utf8BOM = "\ufeff"

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values (UTF-8 with BOM) for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

// Format writes one row per (phone, source document)
func (f *Formatter) Format(report *formatters.Report, options formatters.FormatterOptions) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	writeRow(&buf, formatters.Columns)

	timestamp := report.Timestamp()
	for _, row := range report.Rows {
		writeRow(&buf, []string{row.Phone, row.AreaCode, row.Document, row.Pages, timestamp})
	}

	return buf.Bytes(), nil
}

// FormatDiscards writes the discarded-candidates report
func FormatDiscards(entries []detector.DiscardEntry) []byte {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	writeRow(&buf, formatters.DiscardColumns)

	for _, e := range entries {
		writeRow(&buf, []string{e.Document, strconv.Itoa(e.Page), e.Pattern, e.Cleaned, e.Message})
	}

	return buf.Bytes()
}

func writeRow(buf *bytes.Buffer, fields []string) {
	escaped := make([]string, len(fields))
	for i, field := range fields {
		escaped[i] = shared.EscapeCSVField(field)
	}
	buf.WriteString(strings.Join(escaped, ","))
	buf.WriteString("\r\n")
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
