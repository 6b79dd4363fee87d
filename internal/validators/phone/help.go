// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phone

import (
	"fone-scan/internal/detector"
	"fone-scan/internal/help"
)

// GetCheckInfo returns standardized information about the phone check
func (v *Validator) GetCheckInfo() help.CheckInfo {
	patterns := v.matcher.Patterns()
	lines := make([]help.PatternLine, 0, len(patterns))
	for _, p := range patterns {
		lines = append(lines, help.PatternLine{Name: p.Name, Format: p.Format, Regex: p.Regex})
	}

	return help.CheckInfo{
		Name:             "PHONE_BR",
		ShortDescription: "Extracts Brazilian phone numbers and their DDD",
		DetailedDescription: `Every page is scanned by an ordered cascade of patterns, from keyword-labelled numbers down to bare digit runs.
The cascade over-matches on purpose. Each candidate is cleaned to digits, checked against a 10-13 character window
(with one salvage attempt), filtered by area code and finally validated against the Brazilian numbering plan.
Accepted numbers are deduplicated by their national format across pages and documents.`,
		Patterns: lines,
		Stages: []help.StageLine{
			{Name: "year guard", Reason: detector.ReasonYear.Message("")},
			{Name: "length window", Reason: detector.ReasonLength.Message("")},
			{Name: "region filter", Reason: detector.ReasonAreaCode.Message("DDD")},
			{Name: "numbering plan (parse)", Reason: detector.ReasonParse.Message("")},
			{Name: "numbering plan (valid)", Reason: detector.ReasonNumberingPlan.Message("")},
		},
		AreaCodes: AreaCodes(),
		Examples: []string{
			"fone-scan scan ./contratos",
			"fone-scan scan ./contratos --recursive=false --format csv",
			"fone-scan scan . --diagnostics=false --workers 4",
		},
	}
}
