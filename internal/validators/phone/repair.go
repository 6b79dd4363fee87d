// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phone

import (
	"regexp"

	"fone-scan/internal/detector"
)

const (
	minDigits = 10
	maxDigits = 13
)

var (
	// A list index or similar short number bleeding in before "(DDD)"
	leadingNoiseRegex = regexp.MustCompile(`(?:^|\s)[0-9]{1,3}\s*\(`)

	nonDigitRegex = regexp.MustCompile(`[^\d+]`)

	// Cleaned digits never keep the dash, so a range shows up as 20NN20NN
	yearRegex = regexp.MustCompile(`^20\d{2}(?:-?20\d{2})?$`)

	// DDD plus 4-5 and 4 digit blocks, anchored to the end of the capture
	salvageRegex = regexp.MustCompile(`\(?\d{2}\)?\s?\d{4,5}[- ]?\d{4}$`)
)

// stripLeadingNoise removes a 1-3 digit token sitting right before "("
func stripLeadingNoise(raw string) string {
	return leadingNoiseRegex.ReplaceAllString(raw, "(")
}

// cleanDigits keeps only digits and '+'
func cleanDigits(s string) string {
	return nonDigitRegex.ReplaceAllString(s, "")
}

func inLengthWindow(digits string) bool {
	return len(digits) >= minDigits && len(digits) <= maxDigits
}

// repair turns raw matched text into a digit string inside the length
// window, or rejects it. A wrong-length capture gets exactly one salvage
// attempt against the trailing part of the text.
func repair(raw string) stageResult {
	text := stripLeadingNoise(raw)
	digits := cleanDigits(text)

	if yearRegex.MatchString(digits) {
		return reject(detector.ReasonYear, "", digits)
	}

	if inLengthWindow(digits) {
		return pass(digits)
	}

	salvaged, ok := salvage(text)
	if !ok || !inLengthWindow(salvaged) {
		return reject(detector.ReasonLength, "", digits)
	}
	return pass(salvaged)
}

// salvage re-matches the tail of the text with a stricter pattern
func salvage(text string) (string, bool) {
	match := salvageRegex.FindString(text)
	if match == "" {
		return "", false
	}
	return cleanDigits(match), true
}
