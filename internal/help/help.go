// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// CheckInfo contains standardized information about a check
type CheckInfo struct {
	Name                string        // Name of the check (e.g., "PHONE_BR")
	ShortDescription    string        // Short description for the checks list
	DetailedDescription string        // Detailed description of what the check does
	Patterns            []PatternLine // Matcher cascade in scan order
	Stages              []StageLine   // Filters a candidate goes through
	AreaCodes           []string      // Region table
	Examples            []string      // Usage examples
}

// PatternLine describes one matcher pattern
type PatternLine struct {
	Name   string
	Format string
	Regex  string
}

// StageLine describes one filter stage and the discard reason it emits
type StageLine struct {
	Name   string
	Reason string
}

// Provider defines the interface for help content providers
type Provider interface {
	GetCheckInfo() CheckInfo
}

// System renders help content
type System struct {
	noColor bool
	colors  map[string]*color.Color
}

// NewSystem creates a new help system
func NewSystem(noColor bool) *System {
	// Disable colors if requested
	if noColor {
		color.NoColor = true
	}

	return &System{
		noColor: noColor,
		colors: map[string]*color.Color{
			"title":   color.New(color.FgWhite, color.Bold),
			"header":  color.New(color.FgBlue, color.Bold),
			"item":    color.New(color.FgCyan),
			"example": color.New(color.FgMagenta),
		},
	}
}

// ShowCheckHelp writes the detailed help of one provider
func (h *System) ShowCheckHelp(out io.Writer, provider Provider) {
	info := provider.GetCheckInfo()

	h.colors["title"].Fprintf(out, "%s - %s\n", info.Name, info.ShortDescription)
	fmt.Fprintln(out, strings.Repeat("=", len(info.Name)+3+len(info.ShortDescription)))
	fmt.Fprintln(out)
	fmt.Fprintln(out, info.DetailedDescription)
	fmt.Fprintln(out)

	h.colors["header"].Fprintln(out, "PATTERNS (scan order):")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for i, p := range info.Patterns {
		fmt.Fprintf(w, "  %2d.\t%s\t%s\t%s\n", i+1, p.Name, p.Format, p.Regex)
	}
	w.Flush()
	fmt.Fprintln(out)

	h.colors["header"].Fprintln(out, "STAGES:")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, s := range info.Stages {
		fmt.Fprintf(w, "  %s\t→ %s\n", s.Name, s.Reason)
	}
	w.Flush()
	fmt.Fprintln(out)

	if len(info.AreaCodes) > 0 {
		h.colors["header"].Fprintln(out, "AREA CODES (DDD):")
		for i := 0; i < len(info.AreaCodes); i += 15 {
			end := i + 15
			if end > len(info.AreaCodes) {
				end = len(info.AreaCodes)
			}
			h.colors["item"].Fprintf(out, "  %s\n", strings.Join(info.AreaCodes[i:end], " "))
		}
		fmt.Fprintln(out)
	}

	if len(info.Examples) > 0 {
		h.colors["header"].Fprintln(out, "EXAMPLES:")
		for _, example := range info.Examples {
			h.colors["example"].Fprintf(out, "  %s\n", example)
		}
	}
}
