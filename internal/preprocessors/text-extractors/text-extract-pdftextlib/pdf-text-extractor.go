// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package textextractpdftextlib

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrCorruptPDF marks a file that cannot be read as a PDF at all
var ErrCorruptPDF = errors.New("corrupt or unreadable PDF")

// Options control how a PDF is opened
type Options struct {
	// MaxPages caps how many pages are exposed; 0 means no limit
	MaxPages int
	// Preflight validates the file structure with pdfcpu before reading text
	Preflight bool
}

// Document is an open PDF exposing its text one page at a time
type Document struct {
	name      string
	file      *os.File
	reader    *pdf.Reader
	pageCount int
	total     int
}

// Seams over the reader so tests can simulate a panicking page tree
var (
	openPDF  = pdf.Open
	numPages = func(r *pdf.Reader) int { return r.NumPage() }
)

// Preflight validates the PDF structure in relaxed mode, which tolerates the
// common spec violations real-world generators produce
func Preflight(filePath string) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.ValidateFile(filePath, conf); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptPDF, filepath.Base(filePath), err)
	}
	return nil
}

// Open opens a PDF for page-wise text extraction using ledongthuc/pdf
func Open(filePath string, opts Options) (doc *Document, err error) {
	if opts.Preflight {
		if err := Preflight(filePath); err != nil {
			return nil, err
		}
	}

	var f *os.File

	// The reader panics on some malformed xref tables
	defer func() {
		if r := recover(); r != nil {
			if f != nil {
				f.Close()
			}
			doc = nil
			err = fmt.Errorf("%w: %s: %v", ErrCorruptPDF, filepath.Base(filePath), r)
		}
	}()

	f, r, err := openPDF(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptPDF, filepath.Base(filePath), err)
	}

	total := numPages(r)
	count := total
	if opts.MaxPages > 0 && count > opts.MaxPages {
		count = opts.MaxPages
	}

	return &Document{
		name:      filepath.Base(filePath),
		file:      f,
		reader:    r,
		pageCount: count,
		total:     total,
	}, nil
}

// Name returns the document base name
func (d *Document) Name() string {
	return d.name
}

// PageCount returns the number of pages exposed, after any MaxPages cap
func (d *Document) PageCount() int {
	return d.pageCount
}

// Truncated reports whether MaxPages hid trailing pages
func (d *Document) Truncated() bool {
	return d.pageCount < d.total
}

// PageText returns the cleaned text of a 1-based page. A page without a
// content object yields empty text.
func (d *Document) PageText(n int) (text string, err error) {
	if n < 1 || n > d.pageCount {
		return "", fmt.Errorf("page %d out of range (1-%d)", n, d.pageCount)
	}

	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("page %d: text extraction panic: %v", n, r)
		}
	}()

	p := d.reader.Page(n)
	if p.V.IsNull() {
		return "", nil
	}

	raw, err := extractTextWithProperSpacing(p)
	if err != nil {
		return "", fmt.Errorf("page %d: %w", n, err)
	}
	return cleanTextPreservingStructure(raw), nil
}

// Close releases the underlying file
func (d *Document) Close() error {
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

// cleanTextPreservingStructure trims lines and collapses runs of blanks
// while keeping line breaks, so a number never spans two lines by accident
func cleanTextPreservingStructure(text string) string {
	// Non-breaking spaces are common between DDD and number
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = strings.ReplaceAll(text, "\t", " ")

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}

	return strings.Join(cleaned, "\n")
}

// extractTextWithProperSpacing extracts text using row-based positioning for better spacing
func extractTextWithProperSpacing(p pdf.Page) (string, error) {
	rows, err := p.GetTextByRow()
	if err != nil {
		// Fallback to simple text extraction if row-based fails
		return p.GetPlainText(nil)
	}

	sortedRows := make([]*pdf.Row, 0, len(rows))
	for _, row := range rows {
		if row != nil && len(row.Content) > 0 {
			sortedRows = append(sortedRows, row)
		}
	}

	// PDF Y grows upwards, so the top row has the largest Y
	sort.SliceStable(sortedRows, func(i, j int) bool {
		return getAverageY(sortedRows[i].Content) > getAverageY(sortedRows[j].Content)
	})

	var buf bytes.Buffer
	for _, row := range sortedRows {
		rowText := reconstructRowText(row.Content)
		if strings.TrimSpace(rowText) != "" {
			buf.WriteString(rowText)
			buf.WriteString("\n")
		}
	}

	return buf.String(), nil
}

// getAverageY calculates the average Y coordinate for text elements in a row
func getAverageY(textElements []pdf.Text) float64 {
	if len(textElements) == 0 {
		return 0
	}

	var totalY float64
	for _, element := range textElements {
		totalY += element.Y
	}

	return totalY / float64(len(textElements))
}

// reconstructRowText joins the glyph runs of a row left to right, inserting
// a space wherever the horizontal gap exceeds a fifth of the font size
func reconstructRowText(textElements []pdf.Text) string {
	if len(textElements) == 0 {
		return ""
	}

	sortedElements := make([]pdf.Text, len(textElements))
	copy(sortedElements, textElements)
	sort.SliceStable(sortedElements, func(i, j int) bool {
		return sortedElements[i].X < sortedElements[j].X
	})

	var buf bytes.Buffer
	for i, element := range sortedElements {
		buf.WriteString(element.S)

		if i == len(sortedElements)-1 {
			break
		}

		gap := sortedElements[i+1].X - (element.X + element.W)
		fontSize := element.FontSize
		if fontSize <= 0 {
			fontSize = 12
		}
		if gap > fontSize*0.2 {
			buf.WriteString(" ")
		}
	}

	return buf.String()
}
