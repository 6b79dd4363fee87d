// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"os"
	"path/filepath"
	"testing"

	textextractpdftextlib "fone-scan/internal/preprocessors/text-extractors/text-extract-pdftextlib"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractorRegistry(t *testing.T) {
	r := NewExtractorRegistry()
	r.Register(PDFExtractor{})
	r.Register(PlainTextExtractor{})

	e, ok := r.Lookup(".PDF")
	require.True(t, ok)
	assert.Equal(t, "PDF Text Extractor", e.Name())

	e, ok = r.Lookup("txt")
	require.True(t, ok)
	assert.Equal(t, "Plain Text Extractor", e.Name())

	_, ok = r.Lookup(".docx")
	assert.False(t, ok)

	assert.Equal(t, []string{".pdf", ".text", ".txt"}, r.Extensions())
}

func TestFileRouter_OpenPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contrato.txt")
	require.NoError(t, os.WriteFile(path, []byte("Tel: (11) 98765-4321\fpágina dois"), 0600))

	fr := NewDefaultFileRouter(OpenOptions{})
	doc, err := fr.Open(path)
	require.NoError(t, err)
	defer doc.Close()

	assert.Equal(t, "contrato.txt", doc.Name())
	assert.Equal(t, 2, doc.PageCount())

	opened, failed, rejected := fr.GetMetrics().Snapshot()
	assert.Equal(t, 1, opened)
	assert.Zero(t, failed)
	assert.Zero(t, rejected)
}

func TestFileRouter_Unsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planilha.docx")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))

	fr := NewDefaultFileRouter(OpenOptions{})
	ok, reason := fr.CanProcessFile(path)
	assert.False(t, ok)
	assert.Equal(t, "Unsupported file type", reason)

	_, err := fr.Open(path)
	assert.ErrorIs(t, err, ErrUnsupportedDocument)

	_, _, rejected := fr.GetMetrics().Snapshot()
	assert.Equal(t, 1, rejected)
}

func TestFileRouter_CorruptPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quebrado.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0600))

	fr := NewDefaultFileRouter(OpenOptions{PDFPreflight: true})
	_, err := fr.Open(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, textextractpdftextlib.ErrCorruptPDF)
	assert.NotErrorIs(t, err, ErrUnsupportedDocument)

	_, failed, _ := fr.GetMetrics().Snapshot()
	assert.Equal(t, 1, failed)
}
