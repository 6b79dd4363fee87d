// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fone-scan/internal/observability"
)

// ErrUnsupportedDocument is returned for files no extractor claims
var ErrUnsupportedDocument = errors.New("unsupported document type")

// MaxFileSize is the default maximum file size the router will process (100 MB).
const MaxFileSize = int64(100 * 1024 * 1024)

// FileRouter picks the extractor for a file by extension and opens it
type FileRouter struct {
	registry *ExtractorRegistry
	options  OpenOptions
	metrics  *RouterMetrics
	observer *observability.StandardObserver
}

// RouterMetrics counts routing outcomes. Workers share one router.
type RouterMetrics struct {
	mu       sync.Mutex
	Opened   int
	Failed   int
	Rejected int
}

func (m *RouterMetrics) record(opened, rejected bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch {
	case rejected:
		m.Rejected++
	case opened:
		m.Opened++
	default:
		m.Failed++
	}
}

// Snapshot returns the current counters
func (m *RouterMetrics) Snapshot() (opened, failed, rejected int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Opened, m.Failed, m.Rejected
}

// NewFileRouter creates a router with no extractors registered
func NewFileRouter(opts OpenOptions) *FileRouter {
	return &FileRouter{
		registry: NewExtractorRegistry(),
		options:  opts,
		metrics:  &RouterMetrics{},
	}
}

// NewDefaultFileRouter creates a router with the PDF and plain text extractors
func NewDefaultFileRouter(opts OpenOptions) *FileRouter {
	fr := NewFileRouter(opts)
	fr.RegisterExtractor(PDFExtractor{})
	fr.RegisterExtractor(PlainTextExtractor{})
	return fr
}

// RegisterExtractor adds an extractor for its extensions
func (fr *FileRouter) RegisterExtractor(e Extractor) {
	fr.registry.Register(e)
}

// SetObserver sets the observability component
func (fr *FileRouter) SetObserver(observer *observability.StandardObserver) {
	fr.observer = observer
}

// Extensions returns the extensions that can be opened
func (fr *FileRouter) Extensions() []string {
	return fr.registry.Extensions()
}

// GetMetrics returns the routing counters
func (fr *FileRouter) GetMetrics() *RouterMetrics {
	return fr.metrics
}

// CanProcessFile determines if a file can be processed, with a reason
func (fr *FileRouter) CanProcessFile(filePath string) (bool, string) {
	ext := strings.ToLower(filepath.Ext(filePath))
	e, ok := fr.registry.Lookup(ext)
	if !ok {
		return false, "Unsupported file type"
	}

	cleanPath := filepath.Clean(filePath)
	if info, err := os.Stat(cleanPath); err == nil && info.Size() > MaxFileSize {
		return false, fmt.Sprintf("File too large (max: %dMB)", MaxFileSize/(1024*1024))
	}

	return true, e.Name()
}

// Open routes filePath to its extractor. Unclaimed or oversized files fail
// with ErrUnsupportedDocument.
func (fr *FileRouter) Open(filePath string) (Document, error) {
	var finishTiming func(bool, map[string]interface{})
	if fr.observer != nil {
		finishTiming = fr.observer.StartTiming("router", "open_document", filePath)
	}

	ok, reason := fr.CanProcessFile(filePath)
	if !ok {
		fr.metrics.record(false, true)
		if finishTiming != nil {
			finishTiming(false, map[string]interface{}{"reason": reason})
		}
		return nil, fmt.Errorf("%w: %s: %s", ErrUnsupportedDocument, filepath.Base(filePath), reason)
	}

	e, _ := fr.registry.Lookup(filepath.Ext(filePath))
	doc, err := e.Open(filePath, fr.options)
	fr.metrics.record(err == nil, false)

	if finishTiming != nil {
		meta := map[string]interface{}{"extractor": e.Name()}
		if err != nil {
			meta["error"] = err.Error()
		} else {
			meta["page_count"] = doc.PageCount()
		}
		finishTiming(err == nil, meta)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filepath.Base(filePath), err)
	}
	return doc, nil
}
