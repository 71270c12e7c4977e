package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jenian/chartgrd/internal/images"
	chartlog "github.com/jenian/chartgrd/internal/log"
	"github.com/jenian/chartgrd/internal/output"
	"github.com/spf13/cobra"
)

type imagesOptions struct {
	valuesFile     string
	chartFile      string
	keys           []string
	appVersionKeys []string
}

func newImagesCommand(root *rootOptions) *cobra.Command {
	opts := &imagesOptions{}
	cmd := &cobra.Command{
		Use:   "images [chart-dir]",
		Short: "List the container images used by chart defaults",
		Long: "Read the image blocks of values.yaml together with Chart.yaml and print one " +
			"repository:tag reference per line, for feeding image scans.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImages(cmd, root, opts, chartDir(args))
		},
	}

	cmd.Flags().StringVar(&opts.valuesFile, "values", "", "Values file (default: <chart-dir>/values.yaml)")
	cmd.Flags().StringVar(&opts.chartFile, "chart", "", "Chart file (default: <chart-dir>/Chart.yaml)")
	cmd.Flags().StringSliceVar(&opts.keys, "key", nil, "Image blocks under .Values.image to read")
	cmd.Flags().StringSliceVar(&opts.appVersionKeys, "app-version-key", nil, "Image blocks whose tag defaults to the chart appVersion")

	return cmd
}

func runImages(cmd *cobra.Command, root *rootOptions, opts *imagesOptions, dir string) error {
	stderr := cmd.ErrOrStderr()

	valuesFile := opts.valuesFile
	if valuesFile == "" {
		valuesFile = filepath.Join(dir, "values.yaml")
	}
	chartFile := opts.chartFile
	if chartFile == "" {
		chartFile = filepath.Join(dir, "Chart.yaml")
	}

	if _, err := os.Stat(valuesFile); err != nil {
		return &ExitError{Code: 1, Message: fmt.Sprintf("%s not found", filepath.Base(valuesFile))}
	}
	if _, err := os.Stat(chartFile); err != nil {
		return &ExitError{Code: 1, Message: fmt.Sprintf("%s not found", filepath.Base(chartFile))}
	}

	cfg := root.loadConfig(stderr, false)
	imgOpts := images.Options{
		Keys:           cfg.Images.Keys,
		AppVersionKeys: cfg.Images.AppVersionKeys,
	}
	if len(opts.keys) > 0 {
		imgOpts.Keys = opts.keys
	}
	if len(opts.appVersionKeys) > 0 {
		imgOpts.AppVersionKeys = opts.appVersionKeys
	}

	imageValues, err := images.LoadImageValues(valuesFile)
	if err != nil {
		return err
	}
	chart, err := images.LoadChart(chartFile)
	if err != nil {
		return err
	}

	log := chartlog.InitLogs(stderr, root.debug)
	refs := images.Extract(imageValues, chart, imgOpts, log)

	return output.FormatImages(cmd.OutOrStdout(), refs)
}
