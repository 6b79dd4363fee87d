// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"fmt"

	"fone-scan/internal/formatters"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the phone rows
const SheetName = "Telefones"

// columnWidths follow the header order: phone, DDD, document, pages, date
var columnWidths = []struct {
	col   string
	width float64
}{
	{"A", 20},
	{"B", 8},
	{"C", 30},
	{"D", 15},
	{"E", 20},
}

// Formatter implements the Excel workbook output
type Formatter struct{}

// NewFormatter creates a new xlsx formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "xlsx"
}

func (f *Formatter) Description() string {
	return "Excel workbook with one filterable row per phone and source document"
}

func (f *Formatter) FileExtension() string {
	return ".xlsx"
}

func (f *Formatter) Format(report *formatters.Report, options formatters.FormatterOptions) ([]byte, error) {
	wb := excelize.NewFile()
	defer wb.Close()

	if err := wb.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}

	for i, h := range formatters.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = wb.SetCellValue(SheetName, cell, h)
	}
	if style, err := wb.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		lastHeader, _ := excelize.CoordinatesToCellName(len(formatters.Columns), 1)
		_ = wb.SetCellStyle(SheetName, "A1", lastHeader, style)
	}

	timestamp := report.Timestamp()
	for i, r := range report.Rows {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = wb.SetCellValue(SheetName, cell, v)
		}
		write(1, r.Phone)
		write(2, r.AreaCode)
		write(3, r.Document)
		write(4, r.Pages)
		write(5, timestamp)
	}

	lastCell, _ := excelize.CoordinatesToCellName(len(formatters.Columns), len(report.Rows)+1)
	if err := wb.AutoFilter(SheetName, "A1:"+lastCell, nil); err != nil {
		return nil, fmt.Errorf("xlsx autofilter: %w", err)
	}

	for _, cw := range columnWidths {
		_ = wb.SetColWidth(SheetName, cw.col, cw.col, cw.width)
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
