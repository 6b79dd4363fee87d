// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

import "fmt"

// RawCandidate is a phone-like substring pulled out of page text by one
// pattern of the matcher cascade. It only lives for one extraction pass.
type RawCandidate struct {
	Text    string // Matched substring, untouched
	Page    int    // 1-based page number the text came from
	Pattern string // Name of the pattern that produced the match
}

// CanonicalPhone is a number that passed numbering-plan validation.
// Number is the national display form and doubles as the dedup key.
type CanonicalPhone struct {
	Number   string
	AreaCode string
}

// DiscardReason identifies the stage that rejected a candidate
type DiscardReason string

const (
	ReasonYear          DiscardReason = "year"
	ReasonLength        DiscardReason = "length"
	ReasonAreaCode      DiscardReason = "area_code"
	ReasonParse         DiscardReason = "parse"
	ReasonNumberingPlan DiscardReason = "numbering_plan"
)

// Message returns the operator-facing explanation for a reason.
// detail is only used by reasons that carry a value (the rejected area code).
func (r DiscardReason) Message(detail string) string {
	switch r {
	case ReasonYear:
		return "looks like a year/year-range"
	case ReasonLength:
		return "invalid length"
	case ReasonAreaCode:
		return fmt.Sprintf("invalid area code (%s)", detail)
	case ReasonParse:
		return "unparseable per numbering-plan rules"
	case ReasonNumberingPlan:
		return "invalid per numbering-plan rules"
	default:
		return string(r)
	}
}

// Rejection is the tagged discard signal a pipeline stage hands back
// instead of its next-stage input.
type Rejection struct {
	Reason  DiscardReason
	Detail  string
	Cleaned string // Digit string as it stood when the stage gave up
}

// Message is shorthand for Reason.Message(Detail)
func (r Rejection) Message() string {
	return r.Reason.Message(r.Detail)
}

// DiscardEntry records one candidate that did not become a phone record
type DiscardEntry struct {
	Document string        `json:"pdf" yaml:"pdf"`
	Page     int           `json:"page" yaml:"page"`
	Pattern  string        `json:"pattern" yaml:"pattern"`
	Cleaned  string        `json:"cleaned" yaml:"cleaned"`
	Reason   DiscardReason `json:"reason_code" yaml:"reason_code"`
	Message  string        `json:"reason" yaml:"reason"`
}

// NewDiscardEntry builds the diagnostics row for a rejected candidate
func NewDiscardEntry(document string, candidate RawCandidate, rejection Rejection) DiscardEntry {
	return DiscardEntry{
		Document: document,
		Page:     candidate.Page,
		Pattern:  candidate.Text,
		Cleaned:  rejection.Cleaned,
		Reason:   rejection.Reason,
		Message:  rejection.Message(),
	}
}
