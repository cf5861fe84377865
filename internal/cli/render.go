package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"clinkermap/pkg/config"
	"clinkermap/pkg/imgio"
	"clinkermap/pkg/render"
)

var (
	renderInput  string
	renderOutput string
	renderLegend bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a persisted phase grid as a PNG image",
	Long: `Render converts a previously written phase grid into a false-color PNG
using the fixed phase palette.

Examples:
  clinkermap render --input sample.clkphs --output sample.png
  clinkermap render --input sample.clkphs --output sample.png --legend`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "input", "i", "", "phase grid file (required)")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "phases.png", "output PNG")
	renderCmd.Flags().BoolVar(&renderLegend, "legend", false, "print the phase color key")
	renderCmd.MarkFlagRequired("input")
}

func runRender(cmd *cobra.Command, args []string) error {
	logger, cleanup := setupLogger(logFile, slog.LevelInfo)
	defer cleanup()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	limits := imgio.Limits{MaxWidth: cfg.Limits.MaxWidth, MaxHeight: cfg.Limits.MaxHeight}

	m, err := imgio.ReadPhaseGridFile(renderInput, limits)
	if err != nil {
		return err
	}
	if err := render.SavePNG(m, renderOutput); err != nil {
		return err
	}
	logger.Info("rendered phase map written", "path", renderOutput,
		"width", m.Width, "height", m.Height)

	if renderLegend {
		fmt.Printf("\nPhase color key:\n")
		for _, e := range render.Legend() {
			fmt.Printf("%-10s #%02x%02x%02x\n", e.Label, e.Color.R, e.Color.G, e.Color.B)
		}
	}
	return nil
}
