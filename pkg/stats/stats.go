// Package stats derives the per-phase volume, boundary-area, and mass
// fractions from a final phase map and appends them to the cumulative
// results log shared across runs.
package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"clinkermap/internal/models"
)

// Density holds the mineral densities, in g/cm3, used to convert pixel
// counts into mass fractions for the tracked clinker phases.
var Density = map[models.Phase]float64{
	models.C3S:    3.21,
	models.C2S:    3.28,
	models.C3A:    3.03,
	models.C4AF:   3.73,
	models.K2SO4:  2.66,
	models.Na2SO4: 2.68,
}

// Record holds the statistics computed once from the final phase map.
// Fractions that have no defined value (a zero population) are NaN.
type Record struct {
	// Counts is the raw pixel count per phase over the whole map.
	Counts [models.NumPhases]int

	// TotalPixels is the full map population including pore.
	TotalPixels int

	// TotalSolids is the non-pore population.
	TotalSolids int

	// VolumeFraction is each solid phase's share of the solid population.
	VolumeFraction [models.NumPhases]float64

	// ClinkerFraction is each tracked clinker phase's share of the
	// clinker-phase population.
	ClinkerFraction [models.NumPhases]float64

	// AreaFraction is each tracked clinker phase's share of the total
	// solid-pore interface adjacency, counted over interior pixels only.
	AreaFraction [models.NumPhases]float64

	// MassFraction is the density-weighted normalization of the tracked
	// clinker phase counts.
	MassFraction [models.NumPhases]float64
}

// Compute derives the full statistics record from the final phase map.
// A zero population makes the affected fractions NaN; it never faults.
func Compute(m *models.PhaseMap) *Record {
	rec := &Record{TotalPixels: m.Width * m.Height}

	for _, p := range m.Cells {
		rec.Counts[p]++
	}
	rec.TotalSolids = rec.TotalPixels - rec.Counts[models.Pore]

	clinkerMask := models.MaskOf(models.ClinkerPhases...)

	// Volume fractions over the solid population
	for p := models.Phase(1); p < models.NumPhases; p++ {
		rec.VolumeFraction[p] = fraction(rec.Counts[p], rec.TotalSolids)
	}

	// Clinker-only volume fractions
	clinkerTotal := 0
	for _, p := range models.ClinkerPhases {
		clinkerTotal += rec.Counts[p]
	}
	for _, p := range models.ClinkerPhases {
		rec.ClinkerFraction[p] = fraction(rec.Counts[p], clinkerTotal)
	}

	// Boundary-area fractions: per clinker phase, the number of 4-connected
	// pore neighbors summed over interior pixels. The outermost ring is
	// excluded so image truncation does not masquerade as surface.
	var edges [models.NumPhases]float64
	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			p := m.At(x, y)
			if !clinkerMask.Contains(p) {
				continue
			}
			n := 0
			if m.At(x-1, y) == models.Pore {
				n++
			}
			if m.At(x+1, y) == models.Pore {
				n++
			}
			if m.At(x, y-1) == models.Pore {
				n++
			}
			if m.At(x, y+1) == models.Pore {
				n++
			}
			edges[p] += float64(n)
		}
	}
	edgeTotal := floats.Sum(edges[:])
	for _, p := range models.ClinkerPhases {
		if edgeTotal > 0 {
			rec.AreaFraction[p] = edges[p] / edgeTotal
		} else {
			rec.AreaFraction[p] = math.NaN()
		}
	}

	// Mass fractions: density-weighted clinker counts
	var weighted [models.NumPhases]float64
	for _, p := range models.ClinkerPhases {
		weighted[p] = float64(rec.Counts[p]) * Density[p]
	}
	massTotal := floats.Sum(weighted[:])
	for _, p := range models.ClinkerPhases {
		if massTotal > 0 {
			rec.MassFraction[p] = weighted[p] / massTotal
		} else {
			rec.MassFraction[p] = math.NaN()
		}
	}

	return rec
}

// fraction guards the count/total division against an empty population.
func fraction(count, total int) float64 {
	if total <= 0 {
		return math.NaN()
	}
	return float64(count) / float64(total)
}
