// Package filter implements the spatial cleanup stages applied to a freshly
// classified phase map: isolated-speck removal, pore void filling, and the
// escalating-radius consistency votes. All stages follow a strict
// read-from-snapshot, write-to-map contract so results are independent of
// scan order.
package filter

import (
	"clinkermap/internal/models"
)

// Histogram holds per-phase occupancy counts for a single neighborhood
// query. It is ephemeral: built, inspected, and discarded per pixel.
type Histogram [models.NumPhases]int

// Count scans the square window of side 2*radius+1 centered at (x, y),
// clipped to the map bounds, and tallies every phase inside it including
// the center cell. Cells outside the map contribute nothing.
func Count(m *models.PhaseMap, x, y, radius int) Histogram {
	var h Histogram
	for yy := y - radius; yy <= y+radius; yy++ {
		if yy < 0 || yy >= m.Height {
			continue
		}
		for xx := x - radius; xx <= x+radius; xx++ {
			if xx < 0 || xx >= m.Width {
				continue
			}
			h[m.At(xx, yy)]++
		}
	}
	return h
}

// Solid returns the total count over all non-pore phases.
func (h *Histogram) Solid() int {
	n := 0
	for p := models.Phase(1); p < models.NumPhases; p++ {
		n += h[p]
	}
	return n
}

// Pore returns the pore count.
func (h *Histogram) Pore() int { return h[models.Pore] }

// Plurality returns the solid phase with the highest occupancy and its
// count. Candidates are compared in models.VoteOrder with a strict greater-
// than, so the earliest phase in that order wins exact ties. When no solid
// phase is present the result is (Pore, 0).
func (h *Histogram) Plurality() (models.Phase, int) {
	best := models.Pore
	bestCount := 0
	for _, p := range models.VoteOrder {
		if h[p] > bestCount {
			best = p
			bestCount = h[p]
		}
	}
	return best, bestCount
}
