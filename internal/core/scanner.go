// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"fone-scan/internal/detector"
	"fone-scan/internal/diagnostics"
	"fone-scan/internal/formatters"
	"fone-scan/internal/observability"
	"fone-scan/internal/parallel"
	"fone-scan/internal/results"
	"fone-scan/internal/router"
	"fone-scan/internal/validators/phone"
)

// ErrUnsupportedDocument is returned for inputs no extractor can open
var ErrUnsupportedDocument = router.ErrUnsupportedDocument

// Document is an opened input read page by page
type Document = router.Document

// TextExtractor opens documents for page-wise reading
type TextExtractor interface {
	Open(filePath string) (Document, error)
}

// DocumentError is a failure confined to one document. The run continues.
type DocumentError struct {
	Path string
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s: %v", filepath.Base(e.Path), e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// ScanConfig holds configuration for scanning operations.
type ScanConfig struct {
	Diagnostics bool // Keep a DiscardEntry per rejected candidate
	Workers     int  // 1 scans sequentially; 0 picks one worker per core
	PageLabel   string
	Validator   phone.Options
}

// DefaultScanConfig scans sequentially with diagnostics on
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		Diagnostics: true,
		Workers:     1,
		PageLabel:   results.DefaultPageLabel,
		Validator:   phone.DefaultOptions(),
	}
}

// Stats are the run totals
type Stats struct {
	Documents  int // Scanned successfully
	Failed     int
	Pages      int
	PageErrors int
	Candidates int
}

// ProgressFunc is called once per document, in input order
type ProgressFunc func(index, total int, filePath string, shard *parallel.Shard, err error)

// Scanner is one extraction run. It owns the global phone mapping and the
// diagnostics list; both only ever grow.
type Scanner struct {
	config    ScanConfig
	extractor TextExtractor
	validator *phone.Validator
	results   *results.Results
	sink      *diagnostics.Sink
	errors    []*DocumentError
	stats     Stats
	observer  *observability.StandardObserver
	progress  ProgressFunc
}

// NewScanner creates a run reading documents through extractor
func NewScanner(extractor TextExtractor, config ScanConfig) *Scanner {
	return &Scanner{
		config:    config,
		extractor: extractor,
		validator: phone.NewValidator(config.Validator),
		results:   results.New(config.PageLabel),
		sink:      diagnostics.NewSink(config.Diagnostics),
	}
}

// SetObserver sets the observability component
func (s *Scanner) SetObserver(observer *observability.StandardObserver) {
	s.observer = observer
	s.validator.SetObserver(observer)
}

// SetProgress registers a per-document callback
func (s *Scanner) SetProgress(progress ProgressFunc) {
	s.progress = progress
}

// Validator returns the phone validator used by the run
func (s *Scanner) Validator() *phone.Validator {
	return s.validator
}

// stepLog reports whether indented debug steps may be written; the debug
// observer is not safe for concurrent steps
func (s *Scanner) stepLog() bool {
	return s.observer != nil && s.observer.DebugObserver != nil && s.config.Workers == 1
}

// ProcessDocument extracts and scans one document without touching the
// run's state. It is safe to call from several goroutines.
func (s *Scanner) ProcessDocument(ctx context.Context, filePath string) (*parallel.Shard, error) {
	var finishTiming func(bool, map[string]interface{})
	var finishStep func(bool, string)
	if s.observer != nil {
		finishTiming = s.observer.StartTiming("scanner", "process_document", filePath)
	}
	if s.stepLog() {
		finishStep = s.observer.DebugObserver.StartStep("scanner", "process_document", filePath)
	}

	shard, err := s.processDocument(ctx, filePath)

	if finishTiming != nil {
		meta := map[string]interface{}{}
		if err != nil {
			meta["error"] = err.Error()
		} else {
			meta["pages"] = shard.Pages
			meta["phone_count"] = shard.Document.Len()
			meta["discards"] = len(shard.Discards)
		}
		finishTiming(err == nil, meta)
	}
	if finishStep != nil {
		if err != nil {
			finishStep(false, err.Error())
		} else {
			finishStep(true, fmt.Sprintf("%d page(s), %d phone(s)", shard.Pages, shard.Document.Len()))
		}
	}

	return shard, err
}

func (s *Scanner) processDocument(ctx context.Context, filePath string) (*parallel.Shard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := s.extractor.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	name := doc.Name()
	shard := &parallel.Shard{
		Document: results.NewDocumentResult(name),
		Pages:    doc.PageCount(),
	}

	for page := 1; page <= doc.PageCount(); page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := doc.PageText(page)
		if err != nil {
			shard.PageErrors = append(shard.PageErrors, err)
			if s.stepLog() {
				s.observer.DebugObserver.LogDetail("scanner", fmt.Sprintf("page %d skipped: %v", page, err))
			}
			continue
		}

		outcomes := s.validator.ValidateContent(text, page)
		shard.Candidates += len(outcomes)

		for _, outcome := range outcomes {
			if outcome.Accepted() {
				shard.Document.Add(outcome.Phone, page, outcome.Candidate.Text)
				continue
			}
			if s.config.Diagnostics {
				shard.Discards = append(shard.Discards, detector.NewDiscardEntry(name, outcome.Candidate, *outcome.Rejection))
			}
			if s.stepLog() {
				s.observer.DebugObserver.LogDiscard(page, outcome.Candidate.Text, outcome.Rejection.Message())
			}
		}
	}

	return shard, nil
}

// Merge folds a document shard into the run
func (s *Scanner) Merge(shard *parallel.Shard) {
	if shard == nil {
		return
	}
	s.results.Merge(shard.Document)
	s.sink.Append(shard.Discards...)

	s.stats.Documents++
	s.stats.Pages += shard.Pages
	s.stats.PageErrors += len(shard.PageErrors)
	s.stats.Candidates += shard.Candidates
}

func (s *Scanner) collect(index, total int, filePath string, shard *parallel.Shard, err error) {
	if err != nil {
		s.errors = append(s.errors, &DocumentError{Path: filePath, Err: err})
		s.stats.Failed++
	} else {
		s.Merge(shard)
	}
	if s.progress != nil {
		s.progress(index, total, filePath, shard, err)
	}
}

// ScanPaths scans every document in order. Document failures are collected
// (see Errors) and never stop the run; only cancellation is returned.
func (s *Scanner) ScanPaths(ctx context.Context, paths []string) error {
	var finishTiming func(bool, map[string]interface{})
	if s.observer != nil {
		finishTiming = s.observer.StartTiming("scanner", "scan_paths", "")
	}

	workers := parallel.OptimalWorkerCount(s.config.Workers, len(paths))
	if s.config.Workers == 1 || workers == 1 {
		for i, path := range paths {
			if ctx.Err() != nil {
				break
			}
			shard, err := s.ProcessDocument(ctx, path)
			s.collect(i, len(paths), path, shard, err)
		}
	} else {
		for _, r := range parallel.RunOrdered(ctx, workers, paths, s.ProcessDocument, s.observer) {
			s.collect(r.Index, len(paths), r.FilePath, r.Shard, r.Error)
		}
	}

	err := ctx.Err()
	if finishTiming != nil {
		finishTiming(err == nil, map[string]interface{}{
			"documents":   s.stats.Documents,
			"failed":      s.stats.Failed,
			"workers":     workers,
			"phone_count": s.results.Len(),
			"discards":    s.sink.Len(),
		})
	}
	return err
}

// Results returns the global phone mapping
func (s *Scanner) Results() *results.Results {
	return s.results
}

// Discards returns the diagnostics entries in discovery order
func (s *Scanner) Discards() []detector.DiscardEntry {
	return s.sink.Entries()
}

// Errors returns the document-level failures in input order
func (s *Scanner) Errors() []*DocumentError {
	return s.errors
}

// Stats returns the run totals
func (s *Scanner) Stats() Stats {
	return s.stats
}

// Report snapshots the run for the formatters
func (s *Scanner) Report(generatedAt time.Time) *formatters.Report {
	report := formatters.NewReport(s.results, s.sink.Entries(), generatedAt)
	report.Documents = s.stats.Documents
	report.Diagnostics = s.sink.Enabled()
	report.PageLabel = s.config.PageLabel
	for _, e := range s.errors {
		if errors.Is(e.Err, context.Canceled) {
			continue
		}
		report.Failures = append(report.Failures, e.Error())
	}
	return report
}
