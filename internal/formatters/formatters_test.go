// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"fone-scan/internal/detector"
	"fone-scan/internal/formatters"
	csvformatter "fone-scan/internal/formatters/csv"
	_ "fone-scan/internal/formatters/json"
	textformatter "fone-scan/internal/formatters/text"
	xlsxformatter "fone-scan/internal/formatters/xlsx"
	_ "fone-scan/internal/formatters/yaml"
	"fone-scan/internal/results"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

var generatedAt = time.Date(2024, time.March, 5, 14, 7, 0, 0, time.UTC)

func sampleReport(t *testing.T) *formatters.Report {
	t.Helper()
	res := results.New("")

	a := results.NewDocumentResult("a.pdf")
	a.Add(detector.CanonicalPhone{Number: "(21) 3456-7890", AreaCode: "21"}, 2, "21 3456-7890")
	a.Add(detector.CanonicalPhone{Number: "(11) 98765-4321", AreaCode: "11"}, 3, "(11) 98765-4321")
	a.Add(detector.CanonicalPhone{Number: "(11) 98765-4321", AreaCode: "11"}, 1, "(11) 98765-4321")
	res.Merge(a)

	b := results.NewDocumentResult("b.pdf")
	b.Add(detector.CanonicalPhone{Number: "(11) 98765-4321", AreaCode: "11"}, 5, "11 98765 4321")
	res.Merge(b)

	discards := []detector.DiscardEntry{
		detector.NewDiscardEntry("a.pdf",
			detector.RawCandidate{Text: "(00) 91234-5678", Page: 2, Pattern: "area_code"},
			detector.Rejection{Reason: detector.ReasonAreaCode, Detail: "00", Cleaned: "00912345678"}),
		detector.NewDiscardEntry("b.pdf",
			detector.RawCandidate{Text: "2019-2021", Page: 1, Pattern: "year_range"},
			detector.Rejection{Reason: detector.ReasonYear, Cleaned: "20192021"}),
	}

	report := formatters.NewReport(res, discards, generatedAt)
	report.Documents = 2
	report.Diagnostics = true
	return report
}

func TestRegistry_AllFormatsRegistered(t *testing.T) {
	assert.Equal(t, []string{"csv", "json", "text", "xlsx", "yaml"}, formatters.List())

	info := formatters.GetFormatInfo("xlsx")
	assert.Equal(t, ".xlsx", info.Extension)
	assert.Contains(t, info.MimeType, "spreadsheetml")

	_, err := formatters.Export("sarif", sampleReport(t), formatters.FormatterOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Available formats: csv, json, text, xlsx, yaml")
}

func TestCSV_RowsSortedWithBOM(t *testing.T) {
	out, err := formatters.Export("csv", sampleReport(t), formatters.FormatterOptions{})
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(out, []byte("\ufeff")))
	lines := strings.Split(strings.TrimRight(strings.TrimPrefix(string(out), "\ufeff"), "\r\n"), "\r\n")

	assert.Equal(t, []string{
		"Telefone,DDD,Arquivo de Origem,Páginas,Data Extração",
		`(11) 98765-4321,11,a.pdf,"Página 1, Página 3",05/03/2024 14:07`,
		`(11) 98765-4321,11,b.pdf,Página 5,05/03/2024 14:07`,
		`(21) 3456-7890,21,a.pdf,Página 2,05/03/2024 14:07`,
	}, lines)
}

func TestCSV_Discards(t *testing.T) {
	out := csvformatter.FormatDiscards(sampleReport(t).Discards)
	lines := strings.Split(strings.TrimRight(strings.TrimPrefix(string(out), "\ufeff"), "\r\n"), "\r\n")

	assert.Equal(t, []string{
		"pdf,page,pattern,cleaned,reason",
		"a.pdf,2,(00) 91234-5678,00912345678,invalid area code (00)",
		"b.pdf,1,2019-2021,20192021,looks like a year/year-range",
	}, lines)
}

func TestCSV_FormulaInjectionNeutralized(t *testing.T) {
	res := results.New("")
	doc := results.NewDocumentResult("=HYPERLINK(x).pdf")
	doc.Add(detector.CanonicalPhone{Number: "(11) 98765-4321", AreaCode: "11"}, 1, "x")
	res.Merge(doc)

	out, err := formatters.Export("csv", formatters.NewReport(res, nil, generatedAt), formatters.FormatterOptions{})
	require.NoError(t, err)
	assert.Contains(t, string(out), ",'=HYPERLINK(x).pdf,")
}

func TestXLSX_Workbook(t *testing.T) {
	out, err := formatters.Export("xlsx", sampleReport(t), formatters.FormatterOptions{})
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{xlsxformatter.SheetName}, wb.GetSheetList())

	rows, err := wb.GetRows(xlsxformatter.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, formatters.Columns, rows[0])
	assert.Equal(t, []string{"(11) 98765-4321", "11", "a.pdf", "Página 1, Página 3", "05/03/2024 14:07"}, rows[1])
	assert.Equal(t, "(21) 3456-7890", rows[3][0])

	width, err := wb.GetColWidth(xlsxformatter.SheetName, "C")
	require.NoError(t, err)
	assert.Equal(t, 30.0, width)
}

func TestJSON_Structure(t *testing.T) {
	out, err := formatters.Export("json", sampleReport(t), formatters.FormatterOptions{ShowDiscards: true})
	require.NoError(t, err)

	var decoded struct {
		Summary struct {
			Phones    int `json:"phones"`
			Documents int `json:"documents"`
			Discarded int `json:"discarded"`
		} `json:"summary"`
		Results []struct {
			Phone    string           `json:"phone"`
			AreaCode string           `json:"area_code"`
			Sources  []results.Source `json:"sources"`
		} `json:"results"`
		Discarded []detector.DiscardEntry `json:"discarded"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))

	assert.Equal(t, 2, decoded.Summary.Phones)
	assert.Equal(t, 2, decoded.Summary.Discarded)
	require.Len(t, decoded.Results, 2)
	assert.Equal(t, "(11) 98765-4321", decoded.Results[0].Phone)
	assert.Len(t, decoded.Results[0].Sources, 2)
	require.Len(t, decoded.Discarded, 2)
	assert.Equal(t, detector.ReasonAreaCode, decoded.Discarded[0].Reason)
}

func TestJSON_DiscardsOmittedByDefault(t *testing.T) {
	out, err := formatters.Export("json", sampleReport(t), formatters.FormatterOptions{})
	require.NoError(t, err)
	assert.NotContains(t, string(out), `"discarded": [`)
}

func TestYAML_Structure(t *testing.T) {
	out, err := formatters.Export("yaml", sampleReport(t), formatters.FormatterOptions{})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Contains(t, decoded, "results")
	assert.Contains(t, decoded, "summary")
	assert.Len(t, decoded["results"], 2)
}

func TestText_Summary(t *testing.T) {
	out, err := formatters.Export("text", sampleReport(t), formatters.FormatterOptions{NoColor: true, ShowDiscards: true})
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "TELEFONE")
	assert.Contains(t, text, "2 unique phone(s) found in 2 document(s)")
	assert.Contains(t, text, "Discarded candidates (2):")
	assert.Contains(t, text, "01. [a.pdf] Página 2 - '(00) 91234-5678' → invalid area code (00)")
	assert.Contains(t, text, "02. [b.pdf] Página 1 - '2019-2021' → looks like a year/year-range")
	assert.Less(t, strings.Index(text, "(11) 98765-4321"), strings.Index(text, "(21) 3456-7890"))
}

func TestText_Empty(t *testing.T) {
	report := formatters.NewReport(results.New(""), nil, generatedAt)
	out, err := textformatter.NewFormatter().Format(report, formatters.FormatterOptions{NoColor: true})
	require.NoError(t, err)
	assert.Equal(t, "No phones found.\n", string(out))
}
