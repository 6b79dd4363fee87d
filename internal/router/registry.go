// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"sort"
	"strings"
)

// Document is an opened input whose text is read one page at a time.
// Pages are numbered from 1.
type Document interface {
	Name() string
	PageCount() int
	PageText(n int) (string, error)
	Close() error
}

// OpenOptions are passed to every extractor
type OpenOptions struct {
	MaxPages     int  // 0 means no limit
	PDFPreflight bool // Structural validation before text extraction
}

// Extractor opens the files of the extensions it claims
type Extractor interface {
	Name() string
	Extensions() []string
	Open(filePath string, opts OpenOptions) (Document, error)
}

// ExtractorRegistry maps lower-case extensions to extractors
type ExtractorRegistry struct {
	byExt map[string]Extractor
}

// NewExtractorRegistry creates an empty registry
func NewExtractorRegistry() *ExtractorRegistry {
	return &ExtractorRegistry{
		byExt: make(map[string]Extractor),
	}
}

// Register claims every extension of e. A later registration wins.
func (r *ExtractorRegistry) Register(e Extractor) {
	for _, ext := range e.Extensions() {
		r.byExt[normalizeExt(ext)] = e
	}
}

// Lookup returns the extractor for an extension
func (r *ExtractorRegistry) Lookup(ext string) (Extractor, bool) {
	e, ok := r.byExt[normalizeExt(ext)]
	return e, ok
}

// Extensions returns every registered extension, sorted
func (r *ExtractorRegistry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
