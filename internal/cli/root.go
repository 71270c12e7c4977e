// Package cli wires the chartgrd commands together.
package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jenian/chartgrd/internal/config"
	"github.com/spf13/cobra"
)

// DefaultChartDir is where the chart lives relative to the repository root
const DefaultChartDir = "charts/dify"

// ExitError carries the process exit code out of a command.
// An empty Message means the command already reported everything.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Message
}

// Option customizes the root command
type Option func(*rootOptions)

// WithClock overrides the clock used for report timestamps
func WithClock(now func() time.Time) Option {
	return func(o *rootOptions) {
		o.now = now
	}
}

type rootOptions struct {
	version    string
	configPath string
	debug      bool
	now        func() time.Time
}

// loadConfig loads the config file, falling back to defaults with a warning
func (o *rootOptions) loadConfig(stderr io.Writer, silent bool) *config.Config {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		if !silent {
			fmt.Fprintf(stderr, "Warning: failed to load %s: %v\n", o.configPath, err)
		}
		return config.Default()
	}
	return cfg
}

// NewRootCommand builds the chartgrd command tree
func NewRootCommand(version string, opts ...Option) *cobra.Command {
	o := &rootOptions{
		version: version,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}

	rootCmd := &cobra.Command{
		Use:           "chartgrd",
		Short:         "CI checks for a Helm chart",
		Long:          "A CLI tool that finds unused chart values, lists default chart images and renders vulnerability scan reports.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&o.configPath, "config", config.FileName, "Path to the chartgrd config file")
	rootCmd.PersistentFlags().BoolVar(&o.debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newUnusedCommand(o))
	rootCmd.AddCommand(newImagesCommand(o))
	rootCmd.AddCommand(newReportCommand(o))
	rootCmd.AddCommand(newInitConfigCommand(o))
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  "Print the version number of chartgrd",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), o.version)
		},
	})

	return rootCmd
}

var banner = []string{
	"      _                _                _ ",
	"  ___| |__   __ _ _ __| |_ __ _ _ __ __| |",
	" / __| '_ \\ / _' | '__| __/ _' | '__/ _' |",
	"| (__| | | | (_| | |  | || (_| | | | (_| |",
	" \\___|_| |_|\\__,_|_|   \\__\\__, |_|  \\__,_|",
	"                          |___/           ",
}

func printHeader(w io.Writer, version string) {
	fmt.Fprintln(w, strings.Join(banner, "\n"))
	fmt.Fprintf(w, "Version: %s\n\n", version)
}

func chartDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return DefaultChartDir
}
