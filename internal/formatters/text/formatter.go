// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"fone-scan/internal/detector"
	"fone-scan/internal/formatters"
	"fone-scan/internal/results"

	"github.com/fatih/color"
)

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen),
			"yellow": color.New(color.FgYellow),
			"red":    color.New(color.FgRed),
			"cyan":   color.New(color.FgCyan),
			"white":  color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable table and run summary"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) paint(key, s string, options formatters.FormatterOptions) string {
	if options.NoColor {
		return s
	}
	return f.colors[key].Sprint(s)
}

func (f *Formatter) Format(report *formatters.Report, options formatters.FormatterOptions) ([]byte, error) {
	var builder strings.Builder

	if len(report.Rows) == 0 {
		builder.WriteString(f.paint("yellow", "No phones found.", options))
		builder.WriteString("\n")
	} else {
		f.appendTable(&builder, report.Rows, options)
		builder.WriteString("\n")
		builder.WriteString(f.paint("green",
			fmt.Sprintf("✓ %d unique phone(s) found in %d document(s)", len(report.Records), report.Documents), options))
		builder.WriteString("\n")
	}

	if len(report.Failures) > 0 {
		builder.WriteString("\n")
		for _, failure := range report.Failures {
			builder.WriteString(f.paint("red", "✗ "+failure, options))
			builder.WriteString("\n")
		}
	}

	if options.ShowDiscards && report.Diagnostics {
		builder.WriteString("\n")
		label := report.PageLabel
		if label == "" {
			label = results.DefaultPageLabel
		}
		f.appendDiscards(&builder, report.Discards, label, options)
	}

	return []byte(builder.String()), nil
}

func (f *Formatter) appendTable(builder *strings.Builder, rows []results.Row, options formatters.FormatterOptions) {
	phoneWidth, docWidth := len("TELEFONE"), len("ARQUIVO")
	for _, r := range rows {
		phoneWidth = max(phoneWidth, utf8.RuneCountInString(r.Phone))
		docWidth = max(docWidth, utf8.RuneCountInString(r.Document))
	}

	header := fmt.Sprintf("%-*s  %-4s  %s  %s", phoneWidth, "TELEFONE", "DDD", pad("ARQUIVO", docWidth), "PÁGINAS")
	builder.WriteString(f.paint("white", header, options))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", phoneWidth+2+4+2+docWidth+2+utf8.RuneCountInString("PÁGINAS")))
	builder.WriteString("\n")

	for _, r := range rows {
		fmt.Fprintf(builder, "%s  %-4s  %s  %s\n",
			f.paint("cyan", fmt.Sprintf("%-*s", phoneWidth, r.Phone), options),
			r.AreaCode, pad(r.Document, docWidth), r.Pages)
	}
}

// pad left-aligns s to width runes; %-*s counts bytes, which breaks on accents
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func (f *Formatter) appendDiscards(builder *strings.Builder, entries []detector.DiscardEntry, pageLabel string, options formatters.FormatterOptions) {
	if len(entries) == 0 {
		builder.WriteString("No candidates discarded.\n")
		return
	}

	builder.WriteString(f.paint("yellow", fmt.Sprintf("Discarded candidates (%d):", len(entries)), options))
	builder.WriteString("\n")
	for i, e := range entries {
		fmt.Fprintf(builder, "%s\n", FormatDiscardLine(i+1, e, pageLabel))
	}
}

// FormatDiscardLine renders one numbered discard entry:
// "01. [doc.pdf] Página 2 - '(00) 91234-5678' → invalid area code (00)"
func FormatDiscardLine(n int, e detector.DiscardEntry, pageLabel string) string {
	return fmt.Sprintf("%02d. [%s] %s %d - '%s' → %s", n, e.Document, pageLabel, e.Page, e.Pattern, e.Message)
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
