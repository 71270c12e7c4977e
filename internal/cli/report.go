package cli

import (
	"fmt"

	chartlog "github.com/jenian/chartgrd/internal/log"
	"github.com/jenian/chartgrd/internal/output"
	"github.com/jenian/chartgrd/internal/trivy"
	"github.com/spf13/cobra"
)

type reportOptions struct {
	version      string
	outputFile   string
	render       bool
	vendorPrefix string
	vendorTitle  string
}

func newReportCommand(root *rootOptions) *cobra.Command {
	opts := &reportOptions{}
	cmd := &cobra.Command{
		Use:   "cve-report <dir-with-trivy-json>",
		Short: "Render Trivy scan results as a Markdown report",
		Long: "Read one Trivy JSON result per image from a directory and print a Markdown report " +
			"with critical and high vulnerability counts, split into first-party and third-party images.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.version, "version", "", "Version printed in the report (default: 1.0)")
	cmd.Flags().StringVarP(&opts.outputFile, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.render, "render", false, "Render the report for the terminal")
	cmd.Flags().StringVar(&opts.vendorPrefix, "vendor-prefix", "", "Image prefix of first-party images (default: langgenius/)")
	cmd.Flags().StringVar(&opts.vendorTitle, "vendor-title", "", "Heading for first-party images (default: Langgenius)")

	return cmd
}

func runReport(cmd *cobra.Command, root *rootOptions, opts *reportOptions, dir string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	log := chartlog.InitLogs(stderr, root.debug)

	cfg := root.loadConfig(stderr, false)
	version := firstNonEmpty(opts.version, cfg.Report.Version, "1.0")
	vendorPrefix := firstNonEmpty(opts.vendorPrefix, cfg.Report.VendorPrefix)
	vendorTitle := firstNonEmpty(opts.vendorTitle, cfg.Report.VendorTitle, "Langgenius")

	counts, err := trivy.LoadDir(dir, log)
	if err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}
	log.Debugf("loaded scan results for %d images", len(counts))

	report := output.BuildReport(counts, vendorPrefix, vendorTitle, version, root.now())
	markdown := output.RenderMarkdown(report)

	if opts.outputFile != "" {
		if err := output.WriteFileAtomic(opts.outputFile, []byte(markdown+"\n")); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "Wrote %s\n", opts.outputFile)
	}

	if opts.render {
		rendered, err := output.RenderTerminal(markdown)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(stdout, rendered)
		return err
	}

	if opts.outputFile == "" {
		_, err = fmt.Fprintln(stdout, markdown)
	}
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
