// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phone

import (
	"sort"
	"strings"

	"fone-scan/internal/detector"
)

// validAreaCodes is the set of Brazilian DDDs in service
var validAreaCodes = map[string]struct{}{
	"11": {}, "12": {}, "13": {}, "14": {}, "15": {}, "16": {}, "17": {}, "18": {}, "19": {},
	"21": {}, "22": {}, "24": {}, "27": {}, "28": {},
	"31": {}, "32": {}, "33": {}, "34": {}, "35": {}, "37": {}, "38": {},
	"41": {}, "42": {}, "43": {}, "44": {}, "45": {}, "46": {}, "47": {}, "48": {}, "49": {},
	"51": {}, "53": {}, "54": {}, "55": {},
	"61": {}, "62": {}, "63": {}, "64": {}, "65": {}, "66": {}, "67": {}, "68": {}, "69": {},
	"71": {}, "73": {}, "74": {}, "75": {}, "77": {}, "79": {},
	"81": {}, "82": {}, "83": {}, "84": {}, "85": {}, "86": {}, "87": {}, "88": {}, "89": {},
	"91": {}, "92": {}, "93": {}, "94": {}, "95": {}, "96": {}, "97": {}, "98": {}, "99": {},
}

// IsValidAreaCode reports whether ddd is a Brazilian area code in service
func IsValidAreaCode(ddd string) bool {
	_, ok := validAreaCodes[ddd]
	return ok
}

// AreaCodes returns the region table in ascending order
func AreaCodes() []string {
	codes := make([]string, 0, len(validAreaCodes))
	for code := range validAreaCodes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// DeriveAreaCode estimates the DDD of a cleaned digit string.
// The rules are applied in order: a bare "55" country prefix, then "+55",
// then the first two characters.
func DeriveAreaCode(digits string) string {
	switch {
	case strings.HasPrefix(digits, "55") && len(digits) >= 12:
		return digits[2:4]
	case strings.HasPrefix(digits, "+55") && len(digits) >= 13:
		return digits[3:5]
	case len(digits) >= 2:
		return digits[:2]
	default:
		return digits
	}
}

// filterRegion passes digits through when their derived DDD is in service
func filterRegion(digits string) stageResult {
	ddd := DeriveAreaCode(digits)
	if !IsValidAreaCode(ddd) {
		return reject(detector.ReasonAreaCode, ddd, digits)
	}
	return pass(digits)
}
