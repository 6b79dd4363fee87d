// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package router

import (
	textextractpdftextlib "fone-scan/internal/preprocessors/text-extractors/text-extract-pdftextlib"
	textextractplaintextlib "fone-scan/internal/preprocessors/text-extractors/text-extract-plaintextlib"
)

// PDFExtractor reads PDF page text with ledongthuc/pdf
type PDFExtractor struct{}

func (PDFExtractor) Name() string         { return "PDF Text Extractor" }
func (PDFExtractor) Extensions() []string { return []string{".pdf"} }

func (PDFExtractor) Open(filePath string, opts OpenOptions) (Document, error) {
	doc, err := textextractpdftextlib.Open(filePath, textextractpdftextlib.Options{
		MaxPages:  opts.MaxPages,
		Preflight: opts.PDFPreflight,
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// PlainTextExtractor reads text dumps, one page per form-feed section
type PlainTextExtractor struct{}

func (PlainTextExtractor) Name() string         { return "Plain Text Extractor" }
func (PlainTextExtractor) Extensions() []string { return []string{".txt", ".text"} }

func (PlainTextExtractor) Open(filePath string, opts OpenOptions) (Document, error) {
	doc, err := textextractplaintextlib.Open(filePath, opts.MaxPages)
	if err != nil {
		return nil, err
	}
	return doc, nil
}
