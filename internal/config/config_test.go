// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fone-scan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.True(t, cfg.Defaults.Diagnostics)
	assert.True(t, cfg.Defaults.Recursive)
	assert.Equal(t, 1, cfg.Defaults.Workers)
	assert.Equal(t, "output", cfg.Defaults.OutputDir)
	assert.Equal(t, []string{"xlsx", "csv"}, cfg.Defaults.Formats)
	assert.Equal(t, []string{".pdf"}, cfg.Defaults.Extensions)
	assert.True(t, cfg.Extraction.BareDigitFallback)
	assert.True(t, cfg.Extraction.PDFPreflight)
	assert.Equal(t, "Página", cfg.Extraction.PageLabel)
	assert.Contains(t, cfg.ListProfiles(), "fast")
}

func TestLoadConfig_FileKeepsUnsetDefaults(t *testing.T) {
	path := writeConfig(t, `
defaults:
  formats: [csv, xlsx]
  workers: 4
extraction:
  bare_digit_fallback: false
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"csv", "xlsx"}, cfg.Defaults.Formats)
	assert.Equal(t, 4, cfg.Defaults.Workers)
	assert.False(t, cfg.Extraction.BareDigitFallback)

	// Absent keys keep their defaults
	assert.True(t, cfg.Defaults.Diagnostics)
	assert.True(t, cfg.Extraction.PDFPreflight)
	assert.Equal(t, "output", cfg.Defaults.OutputDir)
}

func TestLoadConfig_Profiles(t *testing.T) {
	path := writeConfig(t, `
profiles:
  audit:
    description: Full diagnostics into a shared folder
    output_dir: /srv/audit
    diagnostics: true
    workers: 2
    formats: [xlsx, csv]
  fast:
    description: Overridden
    quiet: false
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"audit", "fast"}, cfg.ListProfiles())
	assert.Equal(t, "Overridden", cfg.GetProfile("fast").Description)
	assert.Nil(t, cfg.GetProfile("missing"))

	effective, err := cfg.ApplyProfile("audit")
	require.NoError(t, err)
	assert.Equal(t, "/srv/audit", effective.Defaults.OutputDir)
	assert.Equal(t, 2, effective.Defaults.Workers)
	assert.Equal(t, []string{"xlsx", "csv"}, effective.Defaults.Formats)
	assert.True(t, effective.Extraction.BareDigitFallback)

	// The base configuration is untouched
	assert.Equal(t, "output", cfg.Defaults.OutputDir)
	assert.Equal(t, 1, cfg.Defaults.Workers)
}

func TestApplyProfile_BuiltinFast(t *testing.T) {
	effective, err := Default().ApplyProfile("fast")
	require.NoError(t, err)
	assert.False(t, effective.Defaults.Diagnostics)
	assert.True(t, effective.Defaults.Quiet)
	assert.Equal(t, 0, effective.Defaults.Workers)
}

func TestApplyProfile_Unknown(t *testing.T) {
	_, err := Default().ApplyProfile("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile 'nope' not found")
	assert.Contains(t, err.Error(), "fast")
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"negative workers": "defaults:\n  workers: -1\n",
		"empty formats":    "defaults:\n  formats: []\n",
		"bad extension":    "defaults:\n  extensions: [pdf]\n",
		"empty label":      "extraction:\n  page_label: \"\"\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "configuration validation failed")
		})
	}
}

func TestLoadConfig_Unparseable(t *testing.T) {
	tests := map[string]string{
		"unclosed sequence": "defaults: [",
		"wrong type":        "defaults:\n  workers: abc\n",
		"scalar document":   ":::invalid yaml:::",
		"sequence document": "- xlsx\n- csv\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, content))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "error parsing config file")
		})
	}
}

func TestLoadConfig_EmptyFileKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default().Defaults, cfg.Defaults)
}

func TestLoadConfigOrDefault(t *testing.T) {
	t.Run("missing file falls back with error", func(t *testing.T) {
		cfg, err := LoadConfigOrDefault("/nonexistent/path/fone-scan.yaml")
		require.Error(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, "output", cfg.Defaults.OutputDir)
	})

	t.Run("invalid yaml falls back with error", func(t *testing.T) {
		cfg, err := LoadConfigOrDefault(writeConfig(t, "defaults: ["))
		require.Error(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, []string{"xlsx", "csv"}, cfg.Defaults.Formats)
	})

	t.Run("valid file", func(t *testing.T) {
		cfg, err := LoadConfigOrDefault(writeConfig(t, "defaults:\n  output_dir: relatorios\n"))
		require.NoError(t, err)
		assert.Equal(t, "relatorios", cfg.Defaults.OutputDir)
	})
}

func TestFindConfigFile_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("FONE_SCAN_CONFIG_DIR", t.TempDir())

	assert.Equal(t, "", FindConfigFile())

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".fone-scan.yaml"), []byte("{}"), 0600))
	assert.Equal(t, ".fone-scan.yaml", FindConfigFile())
}
