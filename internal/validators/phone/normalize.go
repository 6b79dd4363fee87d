// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phone

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"fone-scan/internal/detector"
)

const (
	// RegionBR is the numbering plan every candidate is parsed under
	RegionBR = "BR"

	countryPrefix = "+55"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// normalize parses digits under the Brazilian numbering plan and returns
// the national display form. The DDD of record comes from the parsed
// national number, not from the region filter's estimate.
func normalize(digits string) (detector.CanonicalPhone, *detector.Rejection) {
	cleaned := whitespaceRegex.ReplaceAllString(digits, "")
	if !strings.HasPrefix(cleaned, "+") && (len(cleaned) == 10 || len(cleaned) == 11) {
		cleaned = countryPrefix + cleaned
	}

	num, err := phonenumbers.Parse(cleaned, RegionBR)
	if err != nil {
		return detector.CanonicalPhone{}, &detector.Rejection{
			Reason:  detector.ReasonParse,
			Detail:  err.Error(),
			Cleaned: digits,
		}
	}
	if !phonenumbers.IsValidNumber(num) {
		return detector.CanonicalPhone{}, &detector.Rejection{
			Reason:  detector.ReasonNumberingPlan,
			Cleaned: digits,
		}
	}

	national := phonenumbers.GetNationalSignificantNumber(num)
	areaCode := national
	if len(areaCode) > 2 {
		areaCode = areaCode[:2]
	}

	return detector.CanonicalPhone{
		Number:   phonenumbers.Format(num, phonenumbers.NATIONAL),
		AreaCode: areaCode,
	}, nil
}

// Normalize exposes the numbering-plan step on its own, for callers that
// already hold a cleaned digit string
func Normalize(digits string) (detector.CanonicalPhone, bool) {
	phone, rejection := normalize(digits)
	return phone, rejection == nil
}
