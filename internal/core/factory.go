// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fone-scan/internal/config"
	"fone-scan/internal/inputs"
	"fone-scan/internal/router"
	"fone-scan/internal/validators/phone"
)

// BuildScanConfig maps the effective configuration onto a run
func BuildScanConfig(cfg *config.Config) ScanConfig {
	if cfg == nil {
		return DefaultScanConfig()
	}
	return ScanConfig{
		Diagnostics: cfg.Defaults.Diagnostics,
		Workers:     cfg.Defaults.Workers,
		PageLabel:   cfg.Extraction.PageLabel,
		Validator: phone.Options{
			BareDigitFallback: cfg.Extraction.BareDigitFallback,
		},
	}
}

// BuildFileRouter creates the document router with every built-in reader
func BuildFileRouter(cfg *config.Config) *router.FileRouter {
	opts := router.OpenOptions{PDFPreflight: true}
	if cfg != nil {
		opts.MaxPages = cfg.Defaults.MaxPages
		opts.PDFPreflight = cfg.Extraction.PDFPreflight
	}
	return router.NewDefaultFileRouter(opts)
}

// BuildDiscoveryOptions maps the configuration onto input discovery
func BuildDiscoveryOptions(cfg *config.Config) inputs.Options {
	if cfg == nil {
		return inputs.Options{Recursive: true, SkipHidden: true}
	}
	return inputs.Options{
		Recursive:  cfg.Defaults.Recursive,
		Extensions: cfg.Defaults.Extensions,
		SkipHidden: true,
	}
}
