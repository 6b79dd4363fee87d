// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phone

import (
	"testing"

	"fone-scan/internal/detector"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func check(text string) Outcome {
	return NewValidator(DefaultOptions()).Check(detector.RawCandidate{Text: text, Page: 1})
}

func TestCheck_Accepted(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     string
		areaCode string
	}{
		{"keyword prefix", "tel. (11) 98765-4321", "(11) 98765-4321", "11"},
		{"plain mobile", "11 98765-4321", "(11) 98765-4321", "11"},
		{"landline", "(11) 3456-7890", "(11) 3456-7890", "11"},
		{"other region", "(21) 99876-5432", "(21) 99876-5432", "21"},
		{"country code salvaged", "+5511987654321", "(11) 98765-4321", "11"},
		{"list index before parenthesis", "1 (11) 98765-4321", "(11) 98765-4321", "11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := check(tt.raw)
			require.True(t, outcome.Accepted(), "rejected: %+v", outcome.Rejection)
			assert.Equal(t, tt.want, outcome.Phone.Number)
			assert.Equal(t, tt.areaCode, outcome.Phone.AreaCode)
			assert.Equal(t, tt.raw, outcome.Candidate.Text)
		})
	}
}

func TestCheck_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		reason  detector.DiscardReason
		detail  string
		cleaned string
	}{
		{"year range", "2019-2021", detector.ReasonYear, "", "20192021"},
		{"single year", "2020", detector.ReasonYear, "", "2020"},
		{"too short", "123-456", detector.ReasonLength, "", "123456"},
		{"area code not in service", "(00) 91234-5678", detector.ReasonAreaCode, "00", "00912345678"},
		{"area code 20", "(20) 3456-7890", detector.ReasonAreaCode, "20", "2034567890"},
		{"landline starting with 1", "(11) 1234-5678", detector.ReasonNumberingPlan, "", "1112345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := check(tt.raw)
			require.False(t, outcome.Accepted())
			assert.Equal(t, tt.reason, outcome.Rejection.Reason)
			assert.Equal(t, tt.detail, outcome.Rejection.Detail)
			assert.Equal(t, tt.cleaned, outcome.Rejection.Cleaned)
		})
	}
}

func TestCheck_CanonicalFormIsStable(t *testing.T) {
	for _, raw := range []string{"tel: 11 98765-4321", "(11) 3456-7890", "+55 (48) 99999-1234"} {
		first := check(raw)
		require.True(t, first.Accepted(), raw)

		again := check(first.Phone.Number)
		require.True(t, again.Accepted(), first.Phone.Number)
		assert.Equal(t, first.Phone, again.Phone)
	}
}

func TestValidateContent(t *testing.T) {
	v := NewValidator(DefaultOptions())

	t.Run("empty page", func(t *testing.T) {
		assert.Empty(t, v.ValidateContent("", 1))
	})

	t.Run("keyword candidate first", func(t *testing.T) {
		outcomes := v.ValidateContent("Contato: tel. (11) 98765-4321", 2)
		require.NotEmpty(t, outcomes)
		assert.Equal(t, "keyword", outcomes[0].Candidate.Pattern)
		assert.Equal(t, "tel. (11) 98765-4321", outcomes[0].Candidate.Text)

		for _, o := range outcomes {
			assert.Equal(t, 2, o.Candidate.Page)
			require.True(t, o.Accepted(), "%s: %+v", o.Candidate.Text, o.Rejection)
			assert.Equal(t, "(11) 98765-4321", o.Phone.Number)
		}
	})

	t.Run("year range is the only candidate", func(t *testing.T) {
		outcomes := v.ValidateContent("Vigência 2019-2021", 1)
		require.Len(t, outcomes, 1)
		assert.Equal(t, detector.ReasonYear, outcomes[0].Rejection.Reason)
	})

	t.Run("same text same outcomes", func(t *testing.T) {
		text := "Ligue (11) 98765-4321 ou (00) 91234-5678. Fax 21 3456-7890, protocolo 2019-2021."
		assert.Equal(t, v.ValidateContent(text, 1), v.ValidateContent(text, 1))
	})
}

func TestValidateContent_LengthWindow(t *testing.T) {
	v := NewValidator(DefaultOptions())
	text := "Ligue (11) 98765-4321 ou (00) 91234-5678.\n" +
		"+55 11 98765-4321 / 021 3456 7890 / 123456789012345\n" +
		"1 (47) 3333-4444, 2 (99) 1234-5678"

	for _, o := range v.ValidateContent(text, 1) {
		if o.Accepted() {
			continue
		}
		switch o.Rejection.Reason {
		case detector.ReasonAreaCode, detector.ReasonParse, detector.ReasonNumberingPlan:
			n := len(o.Rejection.Cleaned)
			assert.True(t, n >= 10 && n <= 13, "%q reached %s with %d characters", o.Candidate.Text, o.Rejection.Reason, n)
		}
	}
}

func TestValidateContent_InternationalNumbersLeaveNoDiscards(t *testing.T) {
	v := NewValidator(DefaultOptions())

	for _, text := range []string{"55 11 3456-7890", "+55.11.3456.7890", "+55 11 98765-4321"} {
		t.Run(text, func(t *testing.T) {
			outcomes := v.ValidateContent(text, 1)
			require.NotEmpty(t, outcomes)
			for _, o := range outcomes {
				assert.True(t, o.Accepted(), "[%s] %q: %+v", o.Candidate.Pattern, o.Candidate.Text, o.Rejection)
			}
		})
	}
}

func TestMatcher_YearRangeOnlyMatchesDateSpans(t *testing.T) {
	matches := func(text string) []string {
		var found []string
		for _, c := range NewMatcher(true).Candidates(text, 1) {
			if c.Pattern == "year_range" {
				found = append(found, c.Text)
			}
		}
		return found
	}

	assert.Equal(t, []string{"2019-2021"}, matches("vigente 2019-2021"))
	assert.Empty(t, matches("55 11 3456-7890"))
	assert.Empty(t, matches("120190-20213"))
}

func TestMatcher_BareDigitFallback(t *testing.T) {
	text := "codigo 11987654321 fim"

	hasBare := func(candidates []detector.RawCandidate) bool {
		for _, c := range candidates {
			if c.Pattern == bareDigitsPattern {
				return true
			}
		}
		return false
	}

	assert.True(t, hasBare(NewMatcher(true).Candidates(text, 1)))
	assert.False(t, hasBare(NewMatcher(false).Candidates(text, 1)))

	assert.Len(t, NewMatcher(true).Patterns(), 12)
	assert.Len(t, NewMatcher(false).Patterns(), 11)
}

func TestMatcher_KeywordIsCaseInsensitive(t *testing.T) {
	candidates := NewMatcher(true).Candidates("TEL: 11 98765-4321", 1)
	require.NotEmpty(t, candidates)
	assert.Equal(t, "keyword", candidates[0].Pattern)
	assert.Equal(t, "TEL: 11 98765-4321", candidates[0].Text)
}

func TestMatcher_EachStopsEarly(t *testing.T) {
	seen := 0
	NewMatcher(true).Each("(11) 98765-4321 e (21) 99876-5432", 1, func(detector.RawCandidate) bool {
		seen++
		return false
	})
	assert.Equal(t, 1, seen)
}

func TestDeriveAreaCode(t *testing.T) {
	tests := map[string]string{
		"5511987654321":  "11",
		"551134567890":   "11",
		"+5511987654321": "11",
		"+551134567890":  "11",
		"11987654321":    "11",
		"4833334444":     "48",
		"5598765432":     "55",
		"7":              "7",
	}
	for digits, want := range tests {
		assert.Equal(t, want, DeriveAreaCode(digits), digits)
	}
}

func TestAreaCodes(t *testing.T) {
	codes := AreaCodes()
	assert.Len(t, codes, 67)
	assert.True(t, IsValidAreaCode("11"))
	assert.True(t, IsValidAreaCode("99"))
	assert.False(t, IsValidAreaCode("20"))
	assert.False(t, IsValidAreaCode("00"))
	assert.IsIncreasing(t, codes)
}

func TestNormalize(t *testing.T) {
	phone, ok := Normalize("11987654321")
	require.True(t, ok)
	assert.Equal(t, "(11) 98765-4321", phone.Number)
	assert.Equal(t, "11", phone.AreaCode)

	phone, ok = Normalize("+5511987654321")
	require.True(t, ok)
	assert.Equal(t, "(11) 98765-4321", phone.Number)

	_, ok = Normalize("1112345678")
	assert.False(t, ok)
}

func TestGetCheckInfo(t *testing.T) {
	info := NewValidator(DefaultOptions()).GetCheckInfo()
	assert.Equal(t, "PHONE_BR", info.Name)
	assert.Len(t, info.Patterns, 12)
	assert.Equal(t, "keyword", info.Patterns[0].Name)
	assert.Len(t, info.Stages, 5)
	assert.Equal(t, AreaCodes(), info.AreaCodes)
}
