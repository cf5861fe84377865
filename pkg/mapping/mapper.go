// Package mapping sequences the phase-mapping pipeline: classification,
// defect repair, consistency filtering, and statistics, in a fixed order.
package mapping

import (
	"fmt"
	"os"
	"path/filepath"

	"clinkermap/internal/models"
	"clinkermap/pkg/classifier"
	"clinkermap/pkg/filter"
	"clinkermap/pkg/imgio"
	"clinkermap/pkg/render"
	"clinkermap/pkg/stats"
)

// Params holds the phase-mapping configuration. These parameters control
// the classifier thresholds and the output behavior of the pipeline.
type Params struct {
	// Thresholds drives the pixel classifier. Read-only during processing.
	Thresholds classifier.ThresholdSet

	// Verbose enables per-stage progress output.
	Verbose bool

	// SaveIntermediaryResults determines whether the phase map is saved
	// after every pipeline stage.
	SaveIntermediaryResults bool

	// IntermediaryDir is the directory where intermediary phase maps are
	// saved. Only used when SaveIntermediaryResults is true.
	IntermediaryDir string
}

// Mapper runs the complete phase-mapping pipeline over one element sample.
//
// The pipeline consists of several steps:
// 1. Classifying every pixel against the element thresholds
// 2. Removing isolated solid specks
// 3. Filling pore voids, in two escalating-strictness passes
// 4. Coarse consistency vote at radii 2 and 3
// 5. Fine consistency vote at radii 1 and 2
// 6. Computing volume, boundary-area, and mass statistics
//
// The order is significant: speck removal must precede void filling so
// eliminated specks do not count as solid neighbors, and void filling must
// precede the consistency votes so filled pixels participate in them.
type Mapper struct {
	// params stores the pipeline configuration
	params *Params

	// sample is the immutable input grid of element intensity vectors
	sample *models.ElementSample

	// phases is the working phase map, rewritten stage by stage
	phases *models.PhaseMap

	// record stores the statistics computed from the final phase map
	record *stats.Record
}

// NewMapper creates a mapper for one sample with the provided parameters.
func NewMapper(params *Params, sample *models.ElementSample) *Mapper {
	return &Mapper{
		params: params,
		sample: sample,
	}
}

// Process runs the complete phase-mapping pipeline
func (m *Mapper) Process() error {
	if m.sample == nil {
		return fmt.Errorf("mapper has no element sample")
	}
	if m.params.SaveIntermediaryResults {
		if err := os.MkdirAll(m.params.IntermediaryDir, 0755); err != nil {
			return fmt.Errorf("failed to create intermediary directory: %w", err)
		}
	}

	// Step 1: Classify every pixel
	m.logf("Step 1: Classifying %dx%d sample...", m.sample.Width, m.sample.Height)
	pm, err := classifier.Classify(m.sample, &m.params.Thresholds)
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}
	m.phases = pm
	if err := m.saveIntermediary("01_classified"); err != nil {
		return err
	}

	state, err := filter.NewState(m.phases)
	if err != nil {
		return fmt.Errorf("failed to allocate filter state: %w", err)
	}

	// Step 2: Remove isolated solid specks
	m.logf("Step 2: Removing isolated specks...")
	changed := state.RemoveSpecks()
	m.logf("         %d speck pixels cleared", changed)
	if err := m.saveIntermediary("02_specks_removed"); err != nil {
		return err
	}

	// Step 3: Fill pore voids, two passes of increasing strictness
	m.logf("Step 3: Filling pore voids (pass 1)...")
	changed = state.FillVoids(7, 0.3)
	m.logf("         %d void pixels filled", changed)
	if err := m.saveIntermediary("03_voids_filled_1"); err != nil {
		return err
	}

	m.logf("Step 4: Filling pore voids (pass 2)...")
	changed = state.FillVoids(8, 0.3)
	m.logf("         %d void pixels filled", changed)
	if err := m.saveIntermediary("04_voids_filled_2"); err != nil {
		return err
	}

	// Step 5 and 6: Escalating-radius consistency votes, coarse then fine
	m.logf("Step 5: Consistency vote at radii 2/3...")
	changed = state.Consistency(2, 3)
	m.logf("         %d pixels reassigned", changed)
	if err := m.saveIntermediary("05_consistency_coarse"); err != nil {
		return err
	}

	m.logf("Step 6: Consistency vote at radii 1/2...")
	changed = state.Consistency(1, 2)
	m.logf("         %d pixels reassigned", changed)
	if err := m.saveIntermediary("06_consistency_fine"); err != nil {
		return err
	}

	// Step 7: Derive statistics from the final map
	m.logf("Step 7: Computing phase statistics...")
	m.record = stats.Compute(m.phases)

	return nil
}

// PhaseMap returns the working phase map; after Process it is the final
// assignment.
func (m *Mapper) PhaseMap() *models.PhaseMap { return m.phases }

// Statistics returns the record computed by the final pipeline step, or nil
// if Process has not completed.
func (m *Mapper) Statistics() *stats.Record { return m.record }

// saveIntermediary writes the current phase map as both a raw grid and a
// rendered PNG under the intermediary directory.
func (m *Mapper) saveIntermediary(stage string) error {
	if !m.params.SaveIntermediaryResults {
		return nil
	}
	grid := filepath.Join(m.params.IntermediaryDir, stage+".clkphs")
	if err := imgio.WritePhaseGridFile(grid, m.phases); err != nil {
		return fmt.Errorf("saving intermediary %s: %w", stage, err)
	}
	img := filepath.Join(m.params.IntermediaryDir, stage+".png")
	if err := render.SavePNG(m.phases, img); err != nil {
		return fmt.Errorf("rendering intermediary %s: %w", stage, err)
	}
	return nil
}

// logf prints step progress when verbose output is enabled.
func (m *Mapper) logf(format string, args ...any) {
	if m.params.Verbose {
		fmt.Printf(format+"\n", args...)
	}
}
