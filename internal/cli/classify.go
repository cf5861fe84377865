package cli

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/spf13/cobra"

	"clinkermap/internal/models"
	"clinkermap/pkg/classifier"
	"clinkermap/pkg/config"
	"clinkermap/pkg/imgio"
	"clinkermap/pkg/mapping"
	"clinkermap/pkg/render"
	"clinkermap/pkg/stats"
)

var (
	classifyInput        string
	classifyChannels     string
	classifyOutput       string
	classifyPNG          string
	classifyStatsLog     string
	classifyIntermediary string
	classifySaveStages   bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Run the full phase-mapping pipeline over one sample",
	Long: `Classify an elemental concentration sample into a mineralogical phase
map, repair single-pixel defects, apply the escalating-radius consistency
filters, and report per-phase statistics.

The sample is read either from a native container (--input) or from a
directory holding one grayscale raster per element channel (--channels),
named ca.png, si.png, al.png, fe.png, s.png, k.png, na.png, mg.png
(PNG, JPEG, or TIFF).

Examples:
  clinkermap classify --input sample.clkmap --output sample.clkphs
  clinkermap classify --channels ./channels --png phases.png`,
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().StringVarP(&classifyInput, "input", "i", "", "native element-map container")
	classifyCmd.Flags().StringVar(&classifyChannels, "channels", "", "directory of per-element rasters")
	classifyCmd.Flags().StringVarP(&classifyOutput, "output", "o", "phases.clkphs", "output phase grid")
	classifyCmd.Flags().StringVar(&classifyPNG, "png", "", "also render the phase map to this PNG")
	classifyCmd.Flags().StringVar(&classifyStatsLog, "stats-log", "", "override the cumulative statistics log path")
	classifyCmd.Flags().BoolVar(&classifySaveStages, "save-intermediary", false, "save the phase map after every stage")
	classifyCmd.Flags().StringVar(&classifyIntermediary, "intermediary-dir", "intermediary_results", "directory for per-stage phase maps")
}

func runClassify(cmd *cobra.Command, args []string) error {
	logger, cleanup := setupLogger(logFile, slog.LevelInfo)
	defer cleanup()

	if (classifyInput == "") == (classifyChannels == "") {
		return fmt.Errorf("exactly one of --input or --channels is required")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	limits := imgio.Limits{MaxWidth: cfg.Limits.MaxWidth, MaxHeight: cfg.Limits.MaxHeight}

	// Load the sample
	var sample *models.ElementSample
	sampleName := classifyInput
	if classifyInput != "" {
		sample, err = imgio.ReadSampleFile(classifyInput, limits)
	} else {
		sampleName = classifyChannels
		sample, err = imgio.ReadChannelDir(classifyChannels, limits)
	}
	if err != nil {
		return fmt.Errorf("loading sample: %w", err)
	}
	logger.Info("sample loaded", "source", sampleName, "width", sample.Width, "height", sample.Height)

	params := &mapping.Params{
		Thresholds:              thresholdsFromConfig(cfg),
		Verbose:                 verbose || cfg.Output.Verbose,
		SaveIntermediaryResults: classifySaveStages || cfg.Output.SaveIntermediaryResults,
		IntermediaryDir:         classifyIntermediary,
	}

	mapper := mapping.NewMapper(params, sample)
	startTime := time.Now()
	if err := mapper.Process(); err != nil {
		return fmt.Errorf("phase mapping failed: %w", err)
	}
	logger.Info("pipeline finished", "elapsed", time.Since(startTime).String())

	// Persist the phase grid
	if err := imgio.WritePhaseGridFile(classifyOutput, mapper.PhaseMap()); err != nil {
		return err
	}
	logger.Info("phase grid written", "path", classifyOutput)

	// Optional rendering
	if classifyPNG != "" {
		if err := render.SavePNG(mapper.PhaseMap(), classifyPNG); err != nil {
			return err
		}
		logger.Info("rendered phase map written", "path", classifyPNG)
	}

	// Append to the cumulative statistics log
	rec := mapper.Statistics()
	statsLog := cfg.Output.StatsLog
	if classifyStatsLog != "" {
		statsLog = classifyStatsLog
	}
	if statsLog != "" {
		runID, err := rec.AppendLog(statsLog, sampleName)
		if err != nil {
			return err
		}
		logger.Info("statistics appended", "log", statsLog, "run", runID.String())
	}

	printSummary(rec)
	return nil
}

// printSummary prints the per-phase fraction table for the run.
func printSummary(rec *stats.Record) {
	clinker := models.MaskOf(models.ClinkerPhases...)

	fmt.Printf("\nPhase statistics:\n")
	fmt.Printf("=================\n")
	fmt.Printf("%-10s %10s %10s %10s %10s\n", "Phase", "Pixels", "Volume", "Area", "Mass")
	for p := models.Phase(1); p < models.NumPhases; p++ {
		area, mass := "-", "-"
		if clinker.Contains(p) {
			area = formatFraction(rec.AreaFraction[p])
			mass = formatFraction(rec.MassFraction[p])
		}
		fmt.Printf("%-10s %10d %10s %10s %10s\n",
			p, rec.Counts[p], formatFraction(rec.VolumeFraction[p]), area, mass)
	}
	fmt.Printf("\nTotal pixels: %d, solids: %d\n", rec.TotalPixels, rec.TotalSolids)
}

// formatFraction renders a fraction, using "undef" for degenerate values.
func formatFraction(v float64) string {
	if math.IsNaN(v) {
		return "undef"
	}
	return fmt.Sprintf("%.4f", v)
}

// thresholdsFromConfig copies the configured cutoffs into a ThresholdSet.
func thresholdsFromConfig(cfg *config.Config) classifier.ThresholdSet {
	t := classifier.ThresholdSet{
		CaSiRatio: cfg.Thresholds.CaSiRatio,
		FreeLime:  cfg.Thresholds.FreeLime,
		Silica:    cfg.Thresholds.Silica,
		Blend:     cfg.Thresholds.Blend,
	}
	t.Element[models.ChCa] = cfg.Thresholds.Ca
	t.Element[models.ChSi] = cfg.Thresholds.Si
	t.Element[models.ChAl] = cfg.Thresholds.Al
	t.Element[models.ChFe] = cfg.Thresholds.Fe
	t.Element[models.ChS] = cfg.Thresholds.S
	t.Element[models.ChK] = cfg.Thresholds.K
	t.Element[models.ChNa] = cfg.Thresholds.Na
	t.Element[models.ChMg] = cfg.Thresholds.Mg
	return t
}
