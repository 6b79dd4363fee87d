// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package diagnostics

import (
	"testing"

	"fone-scan/internal/detector"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var badArea = detector.Rejection{Reason: detector.ReasonAreaCode, Detail: "00", Cleaned: "00912345678"}

func TestSink_DeduplicatesOverlappingPatterns(t *testing.T) {
	sink := NewSink(true)

	assert.True(t, sink.Record("a.pdf", detector.RawCandidate{Text: "(00) 91234-5678", Page: 1, Pattern: "area_code"}, badArea))
	assert.False(t, sink.Record("a.pdf", detector.RawCandidate{Text: "(00) 91234-5678", Page: 1, Pattern: "separated"}, badArea))
	assert.True(t, sink.Record("a.pdf", detector.RawCandidate{Text: "(00) 91234-5678", Page: 2}, badArea))
	assert.True(t, sink.Record("b.pdf", detector.RawCandidate{Text: "(00) 91234-5678", Page: 1}, badArea))

	entries := sink.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, detector.DiscardEntry{
		Document: "a.pdf",
		Page:     1,
		Pattern:  "(00) 91234-5678",
		Cleaned:  "00912345678",
		Reason:   detector.ReasonAreaCode,
		Message:  "invalid area code (00)",
	}, entries[0])
}

func TestSink_Disabled(t *testing.T) {
	sink := NewSink(false)
	assert.False(t, sink.Record("a.pdf", detector.RawCandidate{Text: "2019-2021", Page: 1}, detector.Rejection{Reason: detector.ReasonYear}))
	sink.Append(detector.DiscardEntry{Document: "a.pdf"})

	assert.False(t, sink.Enabled())
	assert.Equal(t, 0, sink.Len())
	assert.Empty(t, sink.Entries())
}

func TestSink_AppendKeepsOrder(t *testing.T) {
	sink := NewSink(true)
	sink.Append(
		detector.DiscardEntry{Document: "a.pdf", Page: 2, Cleaned: "2020", Reason: detector.ReasonYear},
		detector.DiscardEntry{Document: "a.pdf", Page: 1, Cleaned: "123", Reason: detector.ReasonLength},
		detector.DiscardEntry{Document: "a.pdf", Page: 2, Cleaned: "2020", Reason: detector.ReasonYear},
	)

	entries := sink.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, 2, entries[0].Page)
	assert.Equal(t, 1, entries[1].Page)

	entries[0].Page = 7
	assert.Equal(t, 2, sink.Entries()[0].Page)
}

func TestSink_Nil(t *testing.T) {
	var sink *Sink
	assert.False(t, sink.Enabled())
	assert.Equal(t, 0, sink.Len())
	assert.Nil(t, sink.Entries())
}
