package classifier

import (
	"testing"

	"clinkermap/internal/models"
)

// testThresholds returns the threshold set used across the branch tests:
// every element cutoff at 100, ratio cutoff 2.5, free lime 150, silica 180.
func testThresholds(blend bool) *ThresholdSet {
	t := &ThresholdSet{
		CaSiRatio: 2.5,
		FreeLime:  150,
		Silica:    180,
		Blend:     blend,
	}
	for c := models.Channel(0); c < models.NumChannels; c++ {
		t.Element[c] = 100
	}
	return t
}

// vec builds an element vector from channel/value pairs, all other channels
// zero.
func vec(pairs map[models.Channel]float64) models.ElementVector {
	var v models.ElementVector
	for c, val := range pairs {
		v[c] = val
	}
	return v
}

func TestClassifyPixelBranches(t *testing.T) {
	hi := 120.0
	tests := []struct {
		name  string
		blend bool
		v     models.ElementVector
		want  models.Phase
	}{
		{"C4AF", false, vec(map[models.Channel]float64{
			models.ChCa: hi, models.ChAl: hi, models.ChFe: hi}), models.C4AF},
		{"FeBeatsSi", false, vec(map[models.Channel]float64{
			models.ChCa: hi, models.ChAl: hi, models.ChFe: hi, models.ChSi: hi}), models.C4AF},
		{"SlagViaAluminate", false, vec(map[models.Channel]float64{
			models.ChCa: hi, models.ChAl: hi, models.ChSi: hi, models.ChMg: hi}), models.Slag},
		{"CASWhenBlend", true, vec(map[models.Channel]float64{
			models.ChCa: hi, models.ChAl: hi, models.ChSi: hi}), models.CAS},
		{"NoCASWithoutBlend", false, vec(map[models.Channel]float64{
			models.ChCa: hi, models.ChAl: hi, models.ChSi: hi}), models.Pore},
		{"C3A", false, vec(map[models.Channel]float64{
			models.ChCa: hi, models.ChAl: hi}), models.C3A},
		{"SlagViaSilicate", false, vec(map[models.Channel]float64{
			models.ChCa: hi, models.ChSi: hi, models.ChMg: hi}), models.Slag},
		{"C3SHighRatio", false, vec(map[models.Channel]float64{
			models.ChCa: 330, models.ChSi: 110}), models.C3S},
		{"C2SLowRatio", false, vec(map[models.Channel]float64{
			models.ChCa: 220, models.ChSi: 110}), models.C2S},
		{"C2SRatioAtCutoff", false, vec(map[models.Channel]float64{
			models.ChCa: 275, models.ChSi: 110}), models.C2S},
		{"GypsumWithCalcium", false, vec(map[models.Channel]float64{
			models.ChCa: hi, models.ChS: hi}), models.Gypsum},
		{"PericlaseWithCalcium", false, vec(map[models.Channel]float64{
			models.ChCa: hi, models.ChMg: hi}), models.Periclase},
		{"FreeLime", false, vec(map[models.Channel]float64{
			models.ChCa: 200}), models.FreeLime},
		{"CaAboveButBelowFreeLime", false, vec(map[models.Channel]float64{
			models.ChCa: 120}), models.Pore},
		{"SlagWithoutCalcium", false, vec(map[models.Channel]float64{
			models.ChMg: hi, models.ChSi: hi, models.ChAl: hi}), models.Slag},
		{"PericlaseWithoutCalcium", false, vec(map[models.Channel]float64{
			models.ChMg: hi, models.ChSi: hi}), models.Periclase},
		{"K2SO4", false, vec(map[models.Channel]float64{
			models.ChS: hi, models.ChK: hi}), models.K2SO4},
		{"Na2SO4", false, vec(map[models.Channel]float64{
			models.ChS: hi, models.ChNa: hi}), models.Na2SO4},
		{"KBeatsNa", false, vec(map[models.Channel]float64{
			models.ChS: hi, models.ChK: hi, models.ChNa: hi}), models.K2SO4},
		{"GypsumWithoutAlkalis", false, vec(map[models.Channel]float64{
			models.ChS: hi}), models.Gypsum},
		{"KaoliniteHighAl", false, vec(map[models.Channel]float64{
			models.ChSi: hi, models.ChAl: 160}), models.Kaolinite},
		{"Silica", false, vec(map[models.Channel]float64{
			models.ChSi: 200}), models.Silica},
		{"KaoliniteModerateAl", false, vec(map[models.Channel]float64{
			models.ChSi: hi, models.ChAl: 110}), models.Kaolinite},
		{"SilicaCutoffBeatsModerateAl", false, vec(map[models.Channel]float64{
			models.ChSi: 200, models.ChAl: 110}), models.Silica},
		{"BareSiBelowSilicaCutoff", false, vec(map[models.Channel]float64{
			models.ChSi: 110}), models.Pore},
		{"AllZero", false, models.ElementVector{}, models.Pore},
		{"AllAtThreshold", false, vec(map[models.Channel]float64{
			models.ChCa: 100, models.ChSi: 100, models.ChAl: 100, models.ChFe: 100,
			models.ChS: 100, models.ChK: 100, models.ChNa: 100, models.ChMg: 100}), models.Pore},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyPixel(testThresholds(tc.blend), tc.v)
			if got != tc.want {
				t.Errorf("ClassifyPixel() = %v, want %v", got, tc.want)
			}
		})
	}
}

// TestClassifyTotality verifies that every cell receives exactly one valid
// phase, whatever the intensity mix.
func TestClassifyTotality(t *testing.T) {
	th := testThresholds(false)
	sample, err := models.NewElementSample(16, 16)
	if err != nil {
		t.Fatalf("NewElementSample: %v", err)
	}
	// Deterministic pseudo-random intensities spanning both sides of every
	// cutoff
	seed := uint32(12345)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			var v models.ElementVector
			for c := models.Channel(0); c < models.NumChannels; c++ {
				seed = seed*1664525 + 1013904223
				v[c] = float64(seed % 256)
			}
			sample.Set(x, y, v)
		}
	}

	pm, err := Classify(sample, th)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if pm.Width != sample.Width || pm.Height != sample.Height {
		t.Fatalf("dimensions changed: got %dx%d, want %dx%d",
			pm.Width, pm.Height, sample.Width, sample.Height)
	}
	for i, p := range pm.Cells {
		if !p.Valid() {
			t.Fatalf("cell %d holds invalid phase %d", i, p)
		}
	}
}

// TestClassifyDeterminism verifies classification is pure: the same sample
// and thresholds always produce the same map.
func TestClassifyDeterminism(t *testing.T) {
	th := testThresholds(true)
	sample, err := models.NewElementSample(8, 8)
	if err != nil {
		t.Fatalf("NewElementSample: %v", err)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			sample.Set(x, y, vec(map[models.Channel]float64{
				models.ChCa: float64(50 * x),
				models.ChSi: float64(30 * y),
				models.ChAl: float64(20 * (x + y)),
			}))
		}
	}

	first, err := Classify(sample, th)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	second, err := Classify(sample, th)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	for i := range first.Cells {
		if first.Cells[i] != second.Cells[i] {
			t.Fatalf("cell %d differs across runs: %v vs %v", i, first.Cells[i], second.Cells[i])
		}
	}
}
