// Package classifier assigns a mineralogical phase to every pixel of an
// elemental concentration sample by comparing the eight calibrated intensity
// channels against operator-supplied thresholds.
package classifier

import (
	"clinkermap/internal/models"
)

// ThresholdSet holds the cutoff intensities that drive the pixel classifier.
// It is created once from operator input and read-only through the pipeline.
type ThresholdSet struct {
	// Element is the per-channel cutoff, indexed by models.Channel.
	Element [models.NumChannels]float64

	// CaSiRatio separates C3S from C2S: a calcium silicate pixel whose
	// Ca/Si intensity ratio exceeds this value is C3S, otherwise C2S.
	CaSiRatio float64

	// FreeLime is the higher Ca cutoff for uncombined CaO.
	FreeLime float64

	// Silica is the higher Si cutoff for free quartz.
	Silica float64

	// Blend marks a blended cement containing supplementary material.
	Blend bool
}

// above reports whether the channel intensity exceeds its cutoff.
func (t *ThresholdSet) above(v models.ElementVector, c models.Channel) bool {
	return v[c] > t.Element[c]
}

// rule is one row of the classification decision table. Predicates capture
// the full branch path of the original decision tree, so the table reads
// top to bottom and the first matching rule wins.
type rule struct {
	phase models.Phase
	match func(t *ThresholdSet, v models.ElementVector) bool
}

// ruleTable encodes the classification tree in priority order. Branch order
// determines the outcome on boundary cases and must not be rearranged.
var ruleTable = []rule{
	// Calcium-rich pixels: aluminates and ferrite first
	{models.C4AF, func(t *ThresholdSet, v models.ElementVector) bool {
		return t.above(v, models.ChCa) && t.above(v, models.ChAl) && t.above(v, models.ChFe)
	}},
	{models.Slag, func(t *ThresholdSet, v models.ElementVector) bool {
		return t.above(v, models.ChCa) && t.above(v, models.ChAl) && !t.above(v, models.ChFe) &&
			t.above(v, models.ChSi) && t.above(v, models.ChMg)
	}},
	{models.CAS, func(t *ThresholdSet, v models.ElementVector) bool {
		return t.above(v, models.ChCa) && t.above(v, models.ChAl) && !t.above(v, models.ChFe) &&
			t.above(v, models.ChSi) && !t.above(v, models.ChMg) && t.Blend
	}},
	{models.C3A, func(t *ThresholdSet, v models.ElementVector) bool {
		return t.above(v, models.ChCa) && t.above(v, models.ChAl) && !t.above(v, models.ChFe) &&
			!t.above(v, models.ChSi)
	}},

	// Calcium silicates
	{models.Slag, func(t *ThresholdSet, v models.ElementVector) bool {
		return t.above(v, models.ChCa) && !t.above(v, models.ChAl) &&
			t.above(v, models.ChSi) && t.above(v, models.ChMg)
	}},
	{models.C3S, func(t *ThresholdSet, v models.ElementVector) bool {
		return t.above(v, models.ChCa) && !t.above(v, models.ChAl) &&
			t.above(v, models.ChSi) && !t.above(v, models.ChMg) &&
			v[models.ChSi] > 0 && v[models.ChCa]/v[models.ChSi] > t.CaSiRatio
	}},
	{models.C2S, func(t *ThresholdSet, v models.ElementVector) bool {
		return t.above(v, models.ChCa) && !t.above(v, models.ChAl) &&
			t.above(v, models.ChSi) && !t.above(v, models.ChMg)
	}},

	// Calcium-rich, silicon-poor pixels
	{models.Gypsum, func(t *ThresholdSet, v models.ElementVector) bool {
		return t.above(v, models.ChCa) && !t.above(v, models.ChAl) &&
			!t.above(v, models.ChSi) && t.above(v, models.ChS)
	}},
	{models.Periclase, func(t *ThresholdSet, v models.ElementVector) bool {
		return t.above(v, models.ChCa) && !t.above(v, models.ChAl) &&
			!t.above(v, models.ChSi) && !t.above(v, models.ChS) && t.above(v, models.ChMg)
	}},
	{models.FreeLime, func(t *ThresholdSet, v models.ElementVector) bool {
		return t.above(v, models.ChCa) && !t.above(v, models.ChAl) &&
			!t.above(v, models.ChSi) && !t.above(v, models.ChS) && !t.above(v, models.ChMg) &&
			v[models.ChCa] > t.FreeLime
	}},

	// Magnesium-rich pixels without calcium
	{models.Slag, func(t *ThresholdSet, v models.ElementVector) bool {
		return !t.above(v, models.ChCa) && t.above(v, models.ChMg) &&
			t.above(v, models.ChSi) && t.above(v, models.ChAl)
	}},
	{models.Periclase, func(t *ThresholdSet, v models.ElementVector) bool {
		return !t.above(v, models.ChCa) && t.above(v, models.ChMg)
	}},

	// Alkali sulfates
	{models.K2SO4, func(t *ThresholdSet, v models.ElementVector) bool {
		return !t.above(v, models.ChCa) && !t.above(v, models.ChMg) &&
			t.above(v, models.ChS) && t.above(v, models.ChK)
	}},
	{models.Na2SO4, func(t *ThresholdSet, v models.ElementVector) bool {
		return !t.above(v, models.ChCa) && !t.above(v, models.ChMg) &&
			t.above(v, models.ChS) && !t.above(v, models.ChK) && t.above(v, models.ChNa)
	}},
	{models.Gypsum, func(t *ThresholdSet, v models.ElementVector) bool {
		return !t.above(v, models.ChCa) && !t.above(v, models.ChMg) && t.above(v, models.ChS)
	}},

	// Siliceous pixels: clay before quartz
	{models.Kaolinite, func(t *ThresholdSet, v models.ElementVector) bool {
		return !t.above(v, models.ChCa) && !t.above(v, models.ChMg) && !t.above(v, models.ChS) &&
			t.above(v, models.ChSi) && v[models.ChAl] > 1.5*t.Element[models.ChAl]
	}},
	{models.Silica, func(t *ThresholdSet, v models.ElementVector) bool {
		return !t.above(v, models.ChCa) && !t.above(v, models.ChMg) && !t.above(v, models.ChS) &&
			t.above(v, models.ChSi) && v[models.ChSi] > t.Silica
	}},
	{models.Kaolinite, func(t *ThresholdSet, v models.ElementVector) bool {
		return !t.above(v, models.ChCa) && !t.above(v, models.ChMg) && !t.above(v, models.ChS) &&
			t.above(v, models.ChSi) && t.above(v, models.ChAl)
	}},
}

// ClassifyPixel assigns a phase to a single element vector. Pixels matching
// no rule are Pore.
func ClassifyPixel(t *ThresholdSet, v models.ElementVector) models.Phase {
	for _, r := range ruleTable {
		if r.match(t, v) {
			return r.phase
		}
	}
	return models.Pore
}

// Classify maps every pixel of the sample to a phase. The result has the
// same dimensions as the sample; classification is pure and deterministic.
func Classify(sample *models.ElementSample, t *ThresholdSet) (*models.PhaseMap, error) {
	pm, err := models.NewPhaseMap(sample.Width, sample.Height)
	if err != nil {
		return nil, err
	}
	for y := 0; y < sample.Height; y++ {
		for x := 0; x < sample.Width; x++ {
			pm.Set(x, y, ClassifyPixel(t, sample.At(x, y)))
		}
	}
	return pm, nil
}
