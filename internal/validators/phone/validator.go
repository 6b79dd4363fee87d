// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phone

import (
	"fone-scan/internal/detector"
	"fone-scan/internal/observability"
)

// stageResult carries either the next stage's input or the reason the
// candidate was dropped. Stages are chained with then; a rejection
// short-circuits the rest of the chain.
type stageResult struct {
	digits    string
	rejection *detector.Rejection
}

func pass(digits string) stageResult {
	return stageResult{digits: digits}
}

func reject(reason detector.DiscardReason, detail, cleaned string) stageResult {
	return stageResult{rejection: &detector.Rejection{Reason: reason, Detail: detail, Cleaned: cleaned}}
}

func (r stageResult) then(stage func(string) stageResult) stageResult {
	if r.rejection != nil {
		return r
	}
	return stage(r.digits)
}

// Outcome is the verdict on one candidate: a validated phone or a rejection
type Outcome struct {
	Candidate detector.RawCandidate
	Phone     detector.CanonicalPhone
	Rejection *detector.Rejection
}

// Accepted reports whether the candidate became a canonical phone
func (o Outcome) Accepted() bool {
	return o.Rejection == nil
}

// Options tune the matcher cascade
type Options struct {
	// BareDigitFallback keeps the undelimited 10-11 digit run pattern
	BareDigitFallback bool
}

// DefaultOptions matches the behavior of the full cascade
func DefaultOptions() Options {
	return Options{BareDigitFallback: true}
}

// Validator runs page text through matcher, repair, region filter and
// numbering-plan validation
type Validator struct {
	matcher *Matcher

	// Observability
	observer *observability.StandardObserver
}

// NewValidator creates a Validator with the given options
func NewValidator(opts Options) *Validator {
	return &Validator{
		matcher: NewMatcher(opts.BareDigitFallback),
	}
}

// SetObserver sets the observability component
func (v *Validator) SetObserver(observer *observability.StandardObserver) {
	v.observer = observer
}

// Matcher returns the candidate matcher in use
func (v *Validator) Matcher() *Matcher {
	return v.matcher
}

// Check runs a single candidate through every stage
func (v *Validator) Check(candidate detector.RawCandidate) Outcome {
	result := repair(candidate.Text).then(filterRegion)
	if result.rejection != nil {
		return Outcome{Candidate: candidate, Rejection: result.rejection}
	}

	phone, rejection := normalize(result.digits)
	return Outcome{Candidate: candidate, Phone: phone, Rejection: rejection}
}

// ValidateContent checks every candidate found in one page of text.
// Outcomes come back in matcher order; empty text yields none.
func (v *Validator) ValidateContent(content string, page int) []Outcome {
	var finishTiming func(bool, map[string]interface{})
	if v.observer != nil {
		finishTiming = v.observer.StartTiming("phone_validator", "validate_content", "")
	}

	var outcomes []Outcome
	accepted := 0
	v.matcher.Each(content, page, func(candidate detector.RawCandidate) bool {
		outcome := v.Check(candidate)
		if outcome.Accepted() {
			accepted++
		}
		outcomes = append(outcomes, outcome)
		return true
	})

	if finishTiming != nil {
		finishTiming(true, map[string]interface{}{
			"page":           page,
			"candidates":     len(outcomes),
			"accepted":       accepted,
			"content_length": len(content),
		})
	}

	return outcomes
}
