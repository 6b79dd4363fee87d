// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shared

import (
	"fmt"
	"strings"
	"time"

	"fone-scan/internal/detector"
	"fone-scan/internal/formatters"
	"fone-scan/internal/results"
)

// JSONResponse represents the top-level response structure for JSON/YAML output
type JSONResponse struct {
	GeneratedAt string                  `json:"generated_at" yaml:"generated_at"`
	Summary     JSONSummary             `json:"summary" yaml:"summary"`
	Results     []JSONPhone             `json:"results" yaml:"results"`
	Discarded   []detector.DiscardEntry `json:"discarded,omitempty" yaml:"discarded,omitempty"`
	Failures    []string                `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// JSONSummary holds the run totals
type JSONSummary struct {
	Phones    int `json:"phones" yaml:"phones"`
	Documents int `json:"documents" yaml:"documents"`
	Discarded int `json:"discarded" yaml:"discarded"`
}

// JSONPhone represents a single phone record in JSON/YAML format
type JSONPhone struct {
	Phone    string           `json:"phone" yaml:"phone"`
	AreaCode string           `json:"area_code" yaml:"area_code"`
	Sources  []results.Source `json:"sources" yaml:"sources"`
}

// ConvertReport converts a report to the JSON/YAML structure. Discards are
// only included when requested.
func ConvertReport(report *formatters.Report, options formatters.FormatterOptions) JSONResponse {
	phones := make([]JSONPhone, 0, len(report.Records))
	for _, rec := range report.Records {
		phones = append(phones, JSONPhone{
			Phone:    rec.Phone,
			AreaCode: rec.AreaCode,
			Sources:  rec.Sources,
		})
	}

	response := JSONResponse{
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		Summary: JSONSummary{
			Phones:    len(report.Records),
			Documents: report.Documents,
			Discarded: len(report.Discards),
		},
		Results:  phones,
		Failures: report.Failures,
	}
	if options.ShowDiscards {
		response.Discarded = report.Discards
	}
	return response
}

// EscapeCSVField properly escapes a field for CSV format and prevents CSV injection
func EscapeCSVField(field string) string {
	field = SanitizeFormulaInjection(field)

	// If field contains comma, quote, or newline, wrap in quotes and escape internal quotes
	if strings.ContainsAny(field, ",\"\n\r") {
		escaped := strings.ReplaceAll(field, "\"", "\"\"")
		return fmt.Sprintf("\"%s\"", escaped)
	}
	return field
}

// SanitizeFormulaInjection prefixes a single quote to fields a spreadsheet
// would evaluate as a formula
func SanitizeFormulaInjection(field string) string {
	if len(field) == 0 {
		return field
	}

	firstChar := field[0]
	if firstChar == '=' || firstChar == '+' || firstChar == '-' || firstChar == '@' {
		return "'" + field
	}

	return field
}
