// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package textextractplaintextlib

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// MaxFileSize is the largest text file accepted (100 MB)
const MaxFileSize = int64(100 * 1024 * 1024)

// PageBreak separates pages in text dumps produced by pdftotext and friends
const PageBreak = "\f"

// ErrBinaryContent marks a file that does not look like text
var ErrBinaryContent = errors.New("file does not contain text")

// Document is a text file split into form-feed separated pages
type Document struct {
	name  string
	pages []string
}

// Open reads a text file fully and splits it into pages. maxPages caps the
// page count; 0 means no limit.
func Open(filePath string, maxPages int) (*Document, error) {
	cleanPath := filepath.Clean(filePath)

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)", info.Size(), MaxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return nil, fmt.Errorf("%w: %s", ErrBinaryContent, filepath.Base(filePath))
	}

	return FromString(filepath.Base(filePath), string(data), maxPages), nil
}

// FromString builds a document from text already in memory
func FromString(name, content string, maxPages int) *Document {
	content = strings.TrimPrefix(content, "\ufeff")
	if !utf8.ValidString(content) {
		content = strings.ToValidUTF8(content, "")
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")

	pages := strings.Split(content, PageBreak)
	// A trailing form feed closes the last page rather than opening a new one
	if len(pages) > 1 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}
	if maxPages > 0 && len(pages) > maxPages {
		pages = pages[:maxPages]
	}

	return &Document{name: name, pages: pages}
}

// Name returns the document base name
func (d *Document) Name() string {
	return d.name
}

// PageCount returns the number of pages
func (d *Document) PageCount() int {
	return len(d.pages)
}

// PageText returns the text of a 1-based page
func (d *Document) PageText(n int) (string, error) {
	if n < 1 || n > len(d.pages) {
		return "", fmt.Errorf("page %d out of range (1-%d)", n, len(d.pages))
	}
	return d.pages[n-1], nil
}

// Close is a no-op; the content is held in memory
func (d *Document) Close() error {
	return nil
}
