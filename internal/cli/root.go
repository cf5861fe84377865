// Package cli provides the command-line interface for clinkermap.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	configPath string
	verbose    bool
	logFile    string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "clinkermap",
	Short: "Clinker phase mapping from elemental concentration maps",
	Long: `Clinkermap turns a calibrated multi-channel elemental concentration map
of a polished cement-clinker section (Ca, Si, Al, Fe, S, K, Na, Mg) into a
discrete mineralogical phase map with per-phase volume, boundary-area, and
mass statistics.`,
	Version: Version,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "clinkermap.yaml", "configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(initConfigCmd)
}
