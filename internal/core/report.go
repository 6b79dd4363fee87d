// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fone-scan/internal/formatters"
	csvformatter "fone-scan/internal/formatters/csv"
)

const (
	// ReportPrefix names the phone report files
	ReportPrefix = "telefones"
	// DiscardsPrefix names the discarded-candidates file
	DiscardsPrefix = "telefones_descartados"

	fileTimestampLayout = "20060102_150405"
)

// SaveOptions control which report files are written and where
type SaveOptions struct {
	OutputDir string
	Formats   []string
	Options   formatters.FormatterOptions
}

// ReportFileName returns "<prefix>_<YYYYmmdd_HHMMSS><ext>"
func ReportFileName(prefix string, generatedAt time.Time, ext string) string {
	return fmt.Sprintf("%s_%s%s", prefix, generatedAt.Format(fileTimestampLayout), ext)
}

// SaveReport writes one phone report per format plus, when diagnostics were
// collected and something was discarded, the discards CSV. A run with no
// phones writes no phone report. A failing writer does not stop the others;
// all failures are joined in the returned error.
func SaveReport(report *formatters.Report, opts SaveOptions) ([]string, error) {
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	var errs []error

	write := func(name string, data []byte) {
		path := filepath.Join(opts.OutputDir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			errs = append(errs, fmt.Errorf("failed to write %s: %w", name, err))
			return
		}
		written = append(written, path)
	}

	if len(report.Rows) > 0 {
		fileOptions := opts.Options
		fileOptions.NoColor = true

		for _, format := range opts.Formats {
			formatter, ok := formatters.Get(format)
			if !ok {
				errs = append(errs, fmt.Errorf("unsupported format '%s'", format))
				continue
			}
			data, err := formatter.Format(report, fileOptions)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s report: %w", format, err))
				continue
			}
			write(ReportFileName(ReportPrefix, report.GeneratedAt, formatter.FileExtension()), data)
		}
	}

	if report.Diagnostics && len(report.Discards) > 0 {
		write(ReportFileName(DiscardsPrefix, report.GeneratedAt, ".csv"), csvformatter.FormatDiscards(report.Discards))
	}

	return written, errors.Join(errs...)
}
