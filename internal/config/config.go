// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fone-scan/internal/paths"

	"gopkg.in/yaml.v3"
)

// Defaults holds the settings a run starts from
type Defaults struct {
	Diagnostics bool     `yaml:"diagnostics"`
	Debug       bool     `yaml:"debug"`
	Recursive   bool     `yaml:"recursive"`
	NoColor     bool     `yaml:"no_color"`
	Quiet       bool     `yaml:"quiet"`
	Workers     int      `yaml:"workers"`
	OutputDir   string   `yaml:"output_dir"`
	Formats     []string `yaml:"formats"`
	MaxPages    int      `yaml:"max_pages"`
	Extensions  []string `yaml:"extensions"`
}

// Extraction tunes the candidate pipeline and the document readers
type Extraction struct {
	BareDigitFallback bool   `yaml:"bare_digit_fallback"`
	PageLabel         string `yaml:"page_label"`
	PDFPreflight      bool   `yaml:"pdf_preflight"`
}

// Config represents the application configuration
type Config struct {
	Defaults   Defaults           `yaml:"defaults"`
	Extraction Extraction         `yaml:"extraction"`
	Profiles   map[string]Profile `yaml:"profiles"`
}

// Profile overrides part of the defaults. Nil fields are left alone.
type Profile struct {
	Description       string   `yaml:"description"`
	Diagnostics       *bool    `yaml:"diagnostics"`
	Debug             *bool    `yaml:"debug"`
	Recursive         *bool    `yaml:"recursive"`
	NoColor           *bool    `yaml:"no_color"`
	Quiet             *bool    `yaml:"quiet"`
	Workers           *int     `yaml:"workers"`
	OutputDir         string   `yaml:"output_dir"`
	Formats           []string `yaml:"formats"`
	MaxPages          *int     `yaml:"max_pages"`
	Extensions        []string `yaml:"extensions"`
	BareDigitFallback *bool    `yaml:"bare_digit_fallback"`
}

// Default returns the built-in configuration
func Default() *Config {
	config := &Config{
		Profiles: make(map[string]Profile),
	}

	config.Defaults.Diagnostics = true
	config.Defaults.Debug = false
	config.Defaults.Recursive = true
	config.Defaults.NoColor = false
	config.Defaults.Quiet = false
	config.Defaults.Workers = 1
	config.Defaults.OutputDir = "output"
	config.Defaults.Formats = []string{"xlsx", "csv"}
	config.Defaults.MaxPages = 0
	config.Defaults.Extensions = []string{".pdf"}

	config.Extraction.BareDigitFallback = true
	config.Extraction.PageLabel = "Página"
	config.Extraction.PDFPreflight = true

	// Quick pass over large batches: every core, no discards file
	on, off, allCores := true, false, 0
	config.Profiles["fast"] = Profile{
		Description: "Parallel scan without diagnostics",
		Diagnostics: &off,
		Workers:     &allCores,
		Quiet:       &on,
	}

	return config
}

// LoadConfig loads configuration from the specified file path. An empty
// path returns the defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := Default()

	if configPath == "" {
		return config, nil
	}

	cleanPath := filepath.Clean(paths.ExpandHome(configPath))
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Profiles from the file replace the built-in ones of the same name
	builtin := config.Profiles
	config.Profiles = nil

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	// An empty file decodes to a zero node and keeps the defaults
	if len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("error parsing config file: line %d: top level must be a mapping of settings", root.Line)
		}
		if err := root.Decode(config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if config.Profiles == nil {
		config.Profiles = make(map[string]Profile)
	}
	for name, profile := range builtin {
		if _, ok := config.Profiles[name]; !ok {
			config.Profiles[name] = profile
		}
	}

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in standard locations:
// the working directory first, then the user configuration directory.
func FindConfigFile() string {
	for _, name := range []string{"fone-scan.yaml", "fone-scan.yml", ".fone-scan.yaml", ".fone-scan.yml"} {
		if fileExists(name) {
			return name
		}
	}

	if configFile := paths.GetConfigFile(); fileExists(configFile) {
		return configFile
	}

	if home, err := os.UserHomeDir(); err == nil {
		legacy := filepath.Join(home, ".fone-scan.yaml")
		if fileExists(legacy) {
			return legacy
		}
	}

	return ""
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// ListProfiles returns the available profile names, sorted
func (c *Config) ListProfiles() []string {
	profiles := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		profiles = append(profiles, name)
	}
	sort.Strings(profiles)
	return profiles
}

// GetProfile returns a profile by name, or nil if not found
func (c *Config) GetProfile(name string) *Profile {
	if profile, ok := c.Profiles[name]; ok {
		return &profile
	}
	return nil
}

// ApplyProfile returns a copy of the configuration with the named profile
// layered over the defaults. An empty name returns an unchanged copy.
func (c *Config) ApplyProfile(name string) (*Config, error) {
	out := *c
	out.Defaults.Formats = append([]string(nil), c.Defaults.Formats...)
	out.Defaults.Extensions = append([]string(nil), c.Defaults.Extensions...)

	if name == "" {
		return &out, nil
	}

	p := c.GetProfile(name)
	if p == nil {
		return nil, fmt.Errorf("profile '%s' not found (available: %s)", name, strings.Join(c.ListProfiles(), ", "))
	}

	setBool(&out.Defaults.Diagnostics, p.Diagnostics)
	setBool(&out.Defaults.Debug, p.Debug)
	setBool(&out.Defaults.Recursive, p.Recursive)
	setBool(&out.Defaults.NoColor, p.NoColor)
	setBool(&out.Defaults.Quiet, p.Quiet)
	setBool(&out.Extraction.BareDigitFallback, p.BareDigitFallback)
	if p.Workers != nil {
		out.Defaults.Workers = *p.Workers
	}
	if p.MaxPages != nil {
		out.Defaults.MaxPages = *p.MaxPages
	}
	if p.OutputDir != "" {
		out.Defaults.OutputDir = p.OutputDir
	}
	if len(p.Formats) > 0 {
		out.Defaults.Formats = append([]string(nil), p.Formats...)
	}
	if len(p.Extensions) > 0 {
		out.Defaults.Extensions = append([]string(nil), p.Extensions...)
	}

	if err := ValidateConfig(&out); err != nil {
		return nil, fmt.Errorf("profile '%s': %w", name, err)
	}
	return &out, nil
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// ValidateConfig checks value ranges. Format names are checked by the
// caller against the formatter registry.
func ValidateConfig(config *Config) error {
	if config == nil {
		return errors.New("config is nil")
	}

	var errs []error
	if config.Defaults.Workers < 0 {
		errs = append(errs, fmt.Errorf("defaults.workers must be >= 0, got %d", config.Defaults.Workers))
	}
	if config.Defaults.MaxPages < 0 {
		errs = append(errs, fmt.Errorf("defaults.max_pages must be >= 0, got %d", config.Defaults.MaxPages))
	}
	if strings.TrimSpace(config.Defaults.OutputDir) == "" {
		errs = append(errs, errors.New("defaults.output_dir must not be empty"))
	}
	if len(config.Defaults.Formats) == 0 {
		errs = append(errs, errors.New("defaults.formats must list at least one format"))
	}
	for _, ext := range config.Defaults.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("extension %q must start with '.'", ext))
		}
	}
	if strings.TrimSpace(config.Extraction.PageLabel) == "" {
		errs = append(errs, errors.New("extraction.page_label must not be empty"))
	}

	return errors.Join(errs...)
}

// LoadConfigOrDefault loads configuration from configFile (or searches
// standard locations when configFile is empty). If loading fails, it
// returns the defaults along with the error so the caller can warn.
func LoadConfigOrDefault(configFile string) (*Config, error) {
	if configFile == "" {
		configFile = FindConfigFile()
	}
	if configFile == "" {
		return Default(), nil
	}

	cfg, err := LoadConfig(configFile)
	if err != nil {
		return Default(), err
	}
	return cfg, nil
}
