// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"fone-scan/internal/config"
	"fone-scan/internal/core"
	"fone-scan/internal/formatters"
	"fone-scan/internal/help"
	"fone-scan/internal/inputs"
	"fone-scan/internal/observability"
	"fone-scan/internal/parallel"
	"fone-scan/internal/validators/phone"
	"fone-scan/internal/version"

	// Import formatters to register them
	_ "fone-scan/internal/formatters/csv"
	_ "fone-scan/internal/formatters/json"
	_ "fone-scan/internal/formatters/text"
	_ "fone-scan/internal/formatters/xlsx"
	_ "fone-scan/internal/formatters/yaml"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// scanFlags mirrors the configuration keys a command line may override
type scanFlags struct {
	configFile   string
	profile      string
	outputDir    string
	formats      []string
	debug        bool
	diagnostics  bool
	recursive    bool
	noColor      bool
	quiet        bool
	noBareDigits bool
	workers      int
	maxPages     int
}

var (
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	green  = color.New(color.FgGreen)
	cyan   = color.New(color.FgCyan)
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fone-scan",
		Short: "Brazilian phone number extractor for PDF documents",
		Long: `fone-scan reads PDF (and plain-text) documents page by page, extracts
Brazilian telephone numbers, validates them against the national numbering
plan and writes a deduplicated report of every number with its DDD and the
documents and pages it was found on.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate(version.Info() + "\n")

	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(patternsCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		red.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func scanCmd() *cobra.Command {
	cmd, _ := newScanCommand()
	return cmd
}

func newScanCommand() (*cobra.Command, *scanFlags) {
	flags := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "scan [path...]",
		Short: "Extract phone numbers from documents",
		Long: `Scan files, directories or glob patterns (default: the current directory).

Reports are written to the output directory as telefones_<timestamp>.<ext>,
plus telefones_descartados_<timestamp>.csv when diagnostics are on and some
candidates were discarded.`,
		Example: `  fone-scan scan ./contratos
  fone-scan scan ./contratos --format xlsx,csv --output-dir relatorios
  fone-scan scan "arquivos/*.pdf" --workers 0 --diagnostics=false`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, flags, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.configFile, "config", "", "Configuration file (default: search fone-scan.yaml, then the user config dir)")
	f.StringVar(&flags.profile, "profile", "", "Configuration profile to apply")
	f.StringVarP(&flags.outputDir, "output-dir", "o", "", "Directory for the report files")
	f.StringSliceVarP(&flags.formats, "format", "f", nil, "Report formats: "+strings.Join(formatters.List(), ", "))
	f.BoolVar(&flags.debug, "debug", false, "Log each processing step to stderr")
	f.BoolVar(&flags.diagnostics, "diagnostics", true, "Keep and report discarded candidates")
	f.BoolVarP(&flags.recursive, "recursive", "r", true, "Descend into subdirectories")
	f.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	f.BoolVarP(&flags.quiet, "quiet", "q", false, "Print only errors")
	f.BoolVar(&flags.noBareDigits, "no-bare-digits", false, "Skip the undelimited 10-11 digit fallback pattern")
	f.IntVarP(&flags.workers, "workers", "w", 1, "Documents processed concurrently (0 = one per CPU core)")
	f.IntVar(&flags.maxPages, "max-pages", 0, "Read at most this many pages per document (0 = all)")

	return cmd, flags
}

// resolveConfig layers defaults < config file < profile < flags the user
// actually set
func resolveConfig(cmd *cobra.Command, flags *scanFlags) (*config.Config, error) {
	configFile := flags.configFile
	if configFile == "" {
		configFile = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigOrDefault(configFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configFile, err)
	}

	effective, err := cfg.ApplyProfile(flags.profile)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	d := &effective.Defaults
	if changed("output-dir") {
		d.OutputDir = flags.outputDir
	}
	if changed("format") {
		d.Formats = flags.formats
	}
	if changed("debug") {
		d.Debug = flags.debug
	}
	if changed("diagnostics") {
		d.Diagnostics = flags.diagnostics
	}
	if changed("recursive") {
		d.Recursive = flags.recursive
	}
	if changed("no-color") {
		d.NoColor = flags.noColor
	}
	if changed("quiet") {
		d.Quiet = flags.quiet
	}
	if changed("workers") {
		d.Workers = flags.workers
	}
	if changed("max-pages") {
		d.MaxPages = flags.maxPages
	}
	if changed("no-bare-digits") {
		effective.Extraction.BareDigitFallback = !flags.noBareDigits
	}

	for i, format := range d.Formats {
		d.Formats[i] = strings.ToLower(strings.TrimSpace(format))
		if _, ok := formatters.Get(d.Formats[i]); !ok {
			return nil, fmt.Errorf("unsupported format '%s'. Available formats: %s", format, strings.Join(formatters.List(), ", "))
		}
	}

	if err := config.ValidateConfig(effective); err != nil {
		return nil, err
	}
	return effective, nil
}

func runScan(cmd *cobra.Command, flags *scanFlags, args []string) error {
	cfg, err := resolveConfig(cmd, flags)
	if err != nil {
		return err
	}
	d := cfg.Defaults

	// Auto-detect non-interactive environment
	if d.NoColor || !isTerminal(os.Stdout) || os.Getenv("CI") != "" {
		color.NoColor = true
	}

	var observer *observability.StandardObserver
	if d.Debug {
		debugObs := observability.NewDebugObserver(os.Stderr)
		observer = debugObs.StandardObserver
		observer.DebugObserver = debugObs
		debugObs.LogDetail("main", fmt.Sprintf("run %s, workers=%d, formats=%s, output=%s",
			observer.RunID(), d.Workers, strings.Join(d.Formats, ","), d.OutputDir))
	} else {
		observer = observability.NewStandardObserver(observability.ObservabilityMetrics, os.Stderr)
	}

	if len(args) == 0 {
		args = []string{"."}
	}
	discovered, err := inputs.Discover(args, core.BuildDiscoveryOptions(cfg))
	if err != nil {
		return err
	}
	if observer.DebugObserver != nil {
		for _, s := range discovered.Skipped {
			observer.DebugObserver.LogDetail("inputs", fmt.Sprintf("skipped %s: %s", s.Path, s.Reason))
		}
	}
	if len(discovered.Files) == 0 {
		if !d.Quiet {
			yellow.Fprintf(os.Stderr, "No documents found in %s\n", strings.Join(args, ", "))
		}
		return nil
	}

	fileRouter := core.BuildFileRouter(cfg)
	fileRouter.SetObserver(observer)

	scanner := core.NewScanner(fileRouter, core.BuildScanConfig(cfg))
	scanner.SetObserver(observer)
	if !d.Quiet {
		scanner.SetProgress(printProgress)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !d.Quiet {
		cyan.Fprintf(os.Stderr, "Scanning %d document(s) with %d worker(s)\n",
			len(discovered.Files), parallel.OptimalWorkerCount(d.Workers, len(discovered.Files)))
	}

	if err := scanner.ScanPaths(ctx, discovered.Files); err != nil {
		if !errors.Is(err, context.Canceled) {
			return err
		}
		yellow.Fprintln(os.Stderr, "Interrupted, saving partial results")
	}

	report := scanner.Report(time.Now())

	if !d.Quiet {
		summary, err := formatters.Export("text", report, formatters.FormatterOptions{
			NoColor:      color.NoColor,
			ShowDiscards: d.Diagnostics,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout)
		os.Stdout.Write(summary)
	} else {
		for _, failure := range report.Failures {
			red.Fprintf(os.Stderr, "✗ %s\n", failure)
		}
	}

	if observer.DebugObserver != nil {
		opened, failed, rejected := fileRouter.GetMetrics().Snapshot()
		stats := scanner.Stats()
		observer.DebugObserver.LogMetric("router", "opened", opened)
		observer.DebugObserver.LogMetric("router", "failed", failed)
		observer.DebugObserver.LogMetric("router", "rejected", rejected)
		observer.DebugObserver.LogMetric("scanner", "pages", stats.Pages)
		observer.DebugObserver.LogMetric("scanner", "page_errors", stats.PageErrors)
		observer.DebugObserver.LogMetric("scanner", "candidates", stats.Candidates)
	}

	written, err := core.SaveReport(report, core.SaveOptions{
		OutputDir: d.OutputDir,
		Formats:   d.Formats,
		Options:   formatters.FormatterOptions{ShowDiscards: d.Diagnostics},
	})
	if !d.Quiet {
		for _, path := range written {
			green.Fprintf(os.Stderr, "Saved %s\n", path)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func printProgress(index, total int, filePath string, shard *parallel.Shard, err error) {
	prefix := fmt.Sprintf("[%d/%d] %s", index+1, total, filepath.Base(filePath))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		red.Fprintf(os.Stderr, "%s: %v\n", prefix, err)
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %d page(s), %d phone(s)\n", prefix, shard.Pages, shard.Document.Len())
	if len(shard.PageErrors) > 0 {
		yellow.Fprintf(os.Stderr, "  %d page(s) could not be read\n", len(shard.PageErrors))
	}
}

func patternsCmd() *cobra.Command {
	var noBareDigits, noColor bool

	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Describe the matcher cascade, filter stages and area codes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if !isTerminal(os.Stdout) {
				noColor = true
			}
			opts := phone.DefaultOptions()
			opts.BareDigitFallback = !noBareDigits
			help.NewSystem(noColor).ShowCheckHelp(cmd.OutOrStdout(), phone.NewValidator(opts))
		},
	}
	cmd.Flags().BoolVar(&noBareDigits, "no-bare-digits", false, "Show the cascade without the digit-run fallback")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Info())
		},
	}
}

// isTerminal checks if the file descriptor is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
