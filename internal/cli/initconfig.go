package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"clinkermap/pkg/config"
)

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write a default configuration file",
	Long: `Write the default YAML configuration, including the classifier
thresholds, to the path given by --config so it can be edited for the
sample at hand.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.CreateDefaultConfigFile(configPath); err != nil {
			return err
		}
		fmt.Printf("Default configuration written to %s\n", configPath)
		return nil
	},
}
