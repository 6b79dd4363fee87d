// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package inputs turns command-line paths (files, directories or glob
// patterns) into the ordered list of documents a run will scan.
package inputs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fone-scan/internal/paths"
)

// DefaultExtensions are scanned when no extension filter is configured
var DefaultExtensions = []string{".pdf"}

// Options control discovery
type Options struct {
	Recursive  bool
	Extensions []string // Case-insensitive, with or without the leading dot
	SkipHidden bool
}

// SkippedFile represents a file or directory left out of the run
type SkippedFile struct {
	Path   string
	Reason string
}

// Result holds the outcome of discovery. Files are in lexical walk order
// and never repeat.
type Result struct {
	Files   []string
	Skipped []SkippedFile
}

func (r *Result) add(path string, seen map[string]struct{}) {
	if _, dup := seen[path]; dup {
		return
	}
	seen[path] = struct{}{}
	r.Files = append(r.Files, path)
}

func extensionSet(exts []string) map[string]struct{} {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	set := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e != "" {
			set["."+e] = struct{}{}
		}
	}
	return set
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return len(base) > 1 && strings.HasPrefix(base, ".") && base != ".."
}

// Discover resolves every input path in order. A path that does not exist
// (and is not a glob) fails the whole discovery.
func Discover(inputPaths []string, opts Options) (*Result, error) {
	result := &Result{}
	seen := make(map[string]struct{})
	exts := extensionSet(opts.Extensions)

	for _, p := range inputPaths {
		if err := discoverOne(p, opts, exts, result, seen); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func discoverOne(inputPath string, opts Options, exts map[string]struct{}, result *Result, seen map[string]struct{}) error {
	inputPath = paths.ExpandHome(inputPath)
	if err := paths.ValidatePath(inputPath); err != nil {
		return err
	}
	cleanPath := filepath.Clean(inputPath)

	info, err := os.Stat(cleanPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && strings.ContainsAny(inputPath, "*?[") {
			return discoverGlob(cleanPath, exts, result, seen)
		}
		return fmt.Errorf("path does not exist or is not accessible: %w", err)
	}

	// An explicitly named file is always taken; the router decides if it can be read
	if info.Mode().IsRegular() {
		result.add(cleanPath, seen)
		return nil
	}
	if !info.IsDir() {
		return fmt.Errorf("path is neither a regular file nor a directory: %s", inputPath)
	}

	err = filepath.WalkDir(cleanPath, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			result.Skipped = append(result.Skipped, SkippedFile{Path: path, Reason: walkErr.Error()})
			return nil
		}
		if path == cleanPath {
			return nil
		}
		if opts.SkipHidden && isHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if !opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if _, ok := exts[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}
		result.add(path, seen)
		return nil
	})
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	return nil
}

func discoverGlob(pattern string, exts map[string]struct{}, result *Result, seen map[string]struct{}) error {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no files match pattern: %s", pattern)
	}
	sort.Strings(matches)

	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if _, ok := exts[strings.ToLower(filepath.Ext(match))]; !ok {
			result.Skipped = append(result.Skipped, SkippedFile{Path: match, Reason: "extension not selected"})
			continue
		}
		result.add(filepath.Clean(match), seen)
	}
	return nil
}
