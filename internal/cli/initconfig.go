package cli

import (
	"fmt"
	"os"

	"github.com/jenian/chartgrd/internal/config"
	"github.com/spf13/cobra"
)

func newInitConfigCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Create a .chartgrd.config file in the current directory",
		Long:  "Creates a .chartgrd.config file with the default configuration, or at the path given by --config.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := root.configPath

			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}

			if err := os.WriteFile(path, []byte(config.Template), 0644); err != nil {
				return fmt.Errorf("failed to create %s: %w", path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
}
