package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jenian/chartgrd/internal/analyzer"
	chartlog "github.com/jenian/chartgrd/internal/log"
	"github.com/jenian/chartgrd/internal/output"
	"github.com/jenian/chartgrd/internal/references"
	"github.com/jenian/chartgrd/internal/scanner"
	"github.com/jenian/chartgrd/internal/values"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type unusedOptions struct {
	valuesFile   string
	templatesDir string
	skipSections []string
	namespace    string
	jsonOutput   bool
	silent       bool
	noHeader     bool
	includeGlobs []string
	excludeGlobs []string
}

func newUnusedCommand(root *rootOptions) *cobra.Command {
	opts := &unusedOptions{}
	cmd := &cobra.Command{
		Use:   "unused [chart-dir]",
		Short: "Find values that no template references",
		Long: "Compare the keys declared in values.yaml with the .Values references and named includes " +
			"found in the chart templates, and report the keys nothing uses.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnused(cmd, root, opts, chartDir(args))
		},
	}

	cmd.Flags().StringVar(&opts.valuesFile, "values", "", "Values file (default: <chart-dir>/values.yaml)")
	cmd.Flags().StringVar(&opts.templatesDir, "templates", "", "Templates directory (default: <chart-dir>/templates)")
	cmd.Flags().StringArrayVar(&opts.skipSections, "skip-section", nil, "Top-level values section to skip (repeatable, default: redis, postgresql, externalSecret, weaviate)")
	cmd.Flags().StringVar(&opts.namespace, "namespace", "", "Named template namespace used by include (default: dify)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output results in JSON format")
	cmd.Flags().BoolVar(&opts.silent, "silent", false, "Silent mode (exit code only)")
	cmd.Flags().BoolVar(&opts.noHeader, "no-header", false, "Skip printing the header")
	cmd.Flags().StringSliceVar(&opts.includeGlobs, "include", []string{}, "Glob patterns of templates to include")
	cmd.Flags().StringSliceVar(&opts.excludeGlobs, "exclude", []string{}, "Glob patterns of templates to exclude")

	return cmd
}

func runUnused(cmd *cobra.Command, root *rootOptions, opts *unusedOptions, dir string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	valuesFile := opts.valuesFile
	if valuesFile == "" {
		valuesFile = filepath.Join(dir, "values.yaml")
	}
	templatesDir := opts.templatesDir
	if templatesDir == "" {
		templatesDir = filepath.Join(dir, "templates")
	}

	// Preconditions are checked before any analysis runs
	if _, err := os.Stat(valuesFile); err != nil {
		return &ExitError{Code: 1, Message: fmt.Sprintf("Error: %s not found", valuesFile)}
	}
	if info, err := os.Stat(templatesDir); err != nil || !info.IsDir() {
		return &ExitError{Code: 1, Message: fmt.Sprintf("Error: %s not found", templatesDir)}
	}

	cfg := root.loadConfig(stderr, opts.silent)
	skip := cfg.SkipSections(opts.skipSections)
	namespace := opts.namespace
	if namespace == "" {
		namespace = cfg.Templates.Namespace
	}

	log := chartlog.InitLogs(stderr, root.debug)
	if opts.silent {
		log = chartlog.Discard()
	}

	if !opts.noHeader && !opts.jsonOutput && !opts.silent {
		printHeader(stdout, root.version)
	}

	fileScanner := scanner.NewScanner()
	fileScanner.SetLogger(log)
	if len(cfg.Templates.Extensions) > 0 {
		fileScanner.SetExtensions(cfg.Templates.Extensions)
	}
	if len(cfg.Ignores.Folders) > 0 {
		fileScanner.AddExcludeDirs(cfg.Ignores.Folders)
	}
	if len(opts.includeGlobs) > 0 {
		fileScanner.SetIncludeGlobs(opts.includeGlobs)
	}
	if len(opts.excludeGlobs) > 0 {
		fileScanner.SetExcludeGlobs(opts.excludeGlobs)
	}

	if !opts.silent {
		fmt.Fprintf(stderr, "Scanning %s...\n", templatesDir)
	}
	files, err := fileScanner.Scan(templatesDir)
	if err != nil {
		return fmt.Errorf("failed to scan templates: %w", err)
	}
	if !opts.silent {
		fmt.Fprintln(stderr, reportFileCounts(files))
	}

	tree, err := values.Load(valuesFile)
	if err != nil {
		return err
	}

	refs, readErrs := references.NewExtractor(namespace, log).ExtractFiles(files)
	log.WithFields(logrus.Fields{
		"templates":  len(files),
		"skipped":    len(readErrs),
		"references": len(refs),
	}).Debug("extracted template references")

	result := analyzer.Analyze(tree, refs, skip)
	log.WithFields(logrus.Fields{
		"declared": result.Declared(),
		"unused":   len(result.Unused),
	}).Debug("resolved values usage")

	if err := output.Format(stdout, result, opts.jsonOutput, opts.silent); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if output.HasIssues(result) {
		return &ExitError{Code: 1}
	}
	return nil
}

// reportFileCounts summarizes the templates found per kind
func reportFileCounts(files []scanner.FileInfo) string {
	counts := scanner.CountByKind(files)

	var parts []string
	for _, kind := range []scanner.Kind{scanner.KindYAML, scanner.KindTpl, scanner.KindText, scanner.KindUnknown} {
		if counts[kind] > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", kind, humanize.Comma(int64(counts[kind]))))
		}
	}

	total := humanize.Comma(int64(len(files)))
	if len(parts) == 0 {
		return fmt.Sprintf("Found %s template files", total)
	}
	return fmt.Sprintf("Found %s template files (%s)", total, strings.Join(parts, ", "))
}
