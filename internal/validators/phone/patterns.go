// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phone

import (
	"regexp"

	"fone-scan/internal/detector"
)

// phonePattern represents one entry of the matcher cascade with its format info
type phonePattern struct {
	name   string
	regex  *regexp.Regexp
	format string
}

// Name of the bare digit-run fallback, which can be switched off
const bareDigitsPattern = "bare_digits"

// defaultPatterns is ordered from most to least specific. Broad entries are
// intentional: the length window, the DDD table and numbering-plan
// validation weed out what they over-match. year_range only exists so date
// spans reach the year guard and show up as discards.
func defaultPatterns() []phonePattern {
	return []phonePattern{
		{
			name:   "keyword",
			regex:  regexp.MustCompile(`(?i)(?:tel|cel|whatsapp|telefone)[.:]?\s*\(?\d{2}\)?\s?9?\d{4}[- .]?\d{4}`),
			format: "tel: (XX) 9XXXX-XXXX",
		},
		{
			name:   "country_code",
			regex:  regexp.MustCompile(`\+55\s?\(?\d{2}\)?\s?9?\d{4}[- .]?\d{4}`),
			format: "+55 (XX) 9XXXX-XXXX",
		},
		{
			name:   "area_code",
			regex:  regexp.MustCompile(`\(?\d{2}\)?\s?9?\d{4}[- .]?\d{4}`),
			format: "(XX) 9XXXX-XXXX",
		},
		{
			name:   "area_code_plain",
			regex:  regexp.MustCompile(`\d{2}\s?9?\d{4}[- .]?\d{4}`),
			format: "XX 9XXXX-XXXX",
		},
		{
			name:   "country_code_compact",
			regex:  regexp.MustCompile(`\+55\d{10,11}`),
			format: "+55XX9XXXXXXXX",
		},
		{
			name:   "separated",
			regex:  regexp.MustCompile(`\(?\d{2}\)?[ .\-/]?\d{4}[ .\-/]?\d{4}`),
			format: "XX.XXXX.XXXX",
		},
		{
			name:   "separated_mobile",
			regex:  regexp.MustCompile(`\(?\d{2}\)?[ .\-/]?9\d{4}[ .\-/]?\d{4}`),
			format: "XX/9XXXX/XXXX",
		},
		{
			name:   "slashed",
			regex:  regexp.MustCompile(`\(?\d{2}\)?\s?9?\d{4}/\d{4}`),
			format: "(XX) 9XXXX/XXXX",
		},
		{
			name:   "dotted_international",
			regex:  regexp.MustCompile(`\+55\.\d{2}\.\d{4}\.\d{4}`),
			format: "+55.XX.XXXX.XXXX",
		},
		{
			name:   "dotted_international_mobile",
			regex:  regexp.MustCompile(`\+55\.\d{2}\.9\d{4}\.\d{4}`),
			format: "+55.XX.9XXXX.XXXX",
		},
		{
			name:   "year_range",
			regex:  regexp.MustCompile(`\b20\d{2}-20\d{2}\b`),
			format: "20XX-20XX",
		},
		{
			name:   bareDigitsPattern,
			regex:  regexp.MustCompile(`\d{10,11}`),
			format: "XXXXXXXXXXX",
		},
	}
}

// Matcher scans page text with an ordered cascade of independent patterns.
// A Matcher holds no state between calls, so scanning the same text twice
// yields the same candidates in the same order.
type Matcher struct {
	patterns []phonePattern
}

// NewMatcher builds the cascade. When bareDigits is false the 10-11 digit
// run fallback is left out.
func NewMatcher(bareDigits bool) *Matcher {
	all := defaultPatterns()
	patterns := make([]phonePattern, 0, len(all))
	for _, p := range all {
		if p.name == bareDigitsPattern && !bareDigits {
			continue
		}
		patterns = append(patterns, p)
	}
	return &Matcher{patterns: patterns}
}

// Each calls yield for every candidate in cascade order: all matches of the
// first pattern, then all of the second, and so on. Iteration stops early
// when yield returns false.
func (m *Matcher) Each(text string, page int, yield func(detector.RawCandidate) bool) {
	if text == "" {
		return
	}
	for _, pattern := range m.patterns {
		for _, match := range pattern.regex.FindAllString(text, -1) {
			if !yield(detector.RawCandidate{Text: match, Page: page, Pattern: pattern.name}) {
				return
			}
		}
	}
}

// Candidates collects every candidate of a page
func (m *Matcher) Candidates(text string, page int) []detector.RawCandidate {
	var candidates []detector.RawCandidate
	m.Each(text, page, func(c detector.RawCandidate) bool {
		candidates = append(candidates, c)
		return true
	})
	return candidates
}

// PatternInfo describes one cascade entry for help output
type PatternInfo struct {
	Name   string
	Regex  string
	Format string
}

// Patterns lists the active cascade in scan order
func (m *Matcher) Patterns() []PatternInfo {
	info := make([]PatternInfo, 0, len(m.patterns))
	for _, p := range m.patterns {
		info = append(info, PatternInfo{Name: p.name, Regex: p.regex.String(), Format: p.format})
	}
	return info
}
