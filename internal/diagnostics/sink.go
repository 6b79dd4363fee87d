// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package diagnostics

import (
	"fmt"

	"fone-scan/internal/detector"
)

// Sink is the append-only list of discarded candidates for a run. A
// disabled sink drops everything.
//
// Overlapping patterns routinely hit the same substring, so a candidate is
// identified by (document, page, cleaned digits, reason) and recorded once.
type Sink struct {
	enabled bool
	entries []detector.DiscardEntry
	seen    map[string]struct{}
}

// NewSink creates a sink; enabled mirrors the diagnostics switch
func NewSink(enabled bool) *Sink {
	return &Sink{
		enabled: enabled,
		seen:    make(map[string]struct{}),
	}
}

// Enabled reports whether the sink keeps entries
func (s *Sink) Enabled() bool {
	return s != nil && s.enabled
}

func entryKey(e detector.DiscardEntry) string {
	return fmt.Sprintf("%s\x00%d\x00%s\x00%s", e.Document, e.Page, e.Cleaned, e.Reason)
}

// Record appends the discard of candidate from document. It returns false
// when the sink is disabled or the candidate was already recorded.
func (s *Sink) Record(document string, candidate detector.RawCandidate, rejection detector.Rejection) bool {
	return s.add(detector.NewDiscardEntry(document, candidate, rejection))
}

// Append merges entries gathered elsewhere (a worker shard) in order
func (s *Sink) Append(entries ...detector.DiscardEntry) {
	for _, e := range entries {
		s.add(e)
	}
}

func (s *Sink) add(e detector.DiscardEntry) bool {
	if !s.Enabled() {
		return false
	}
	key := entryKey(e)
	if _, dup := s.seen[key]; dup {
		return false
	}
	s.seen[key] = struct{}{}
	s.entries = append(s.entries, e)
	return true
}

// Len returns the number of recorded entries
func (s *Sink) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Entries returns a copy of the entries in discovery order
func (s *Sink) Entries() []detector.DiscardEntry {
	if s == nil {
		return nil
	}
	out := make([]detector.DiscardEntry, len(s.entries))
	copy(out, s.entries)
	return out
}
