package filter

import "clinkermap/internal/models"

// RemoveSpecks reclassifies every solid pixel whose eight immediate
// neighbors are all pore back to pore. Such single-pixel specks are
// acquisition noise, not resolvable grains. Returns the number of pixels
// changed. Running the pass twice changes nothing the second time: a pixel
// demoted here had no solid neighbor, so its demotion cannot isolate
// another pixel.
func (s *State) RemoveSpecks() int {
	snap := s.begin()
	changed := 0
	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			if !snap.At(x, y).IsSolid() {
				continue
			}
			h := Count(snap, x, y, 1)
			// The center is solid, so the window's pore count is exactly
			// the pore count among the eight neighbors.
			if h.Pore() == 8 {
				s.Map.Set(x, y, models.Pore)
				changed++
			}
		}
	}
	return changed
}

// FillVoids reassigns pore pixels that are almost completely surrounded by
// solids to the plurality phase of their neighborhood. minSolid is the
// required solid count among the eight neighbors (7 on the first pass, 8 on
// the second); minFrac is the plurality phase's required share of the solid
// total. Returns the number of pixels changed.
func (s *State) FillVoids(minSolid int, minFrac float64) int {
	snap := s.begin()
	changed := 0
	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			if snap.At(x, y) != models.Pore {
				continue
			}
			h := Count(snap, x, y, 1)
			solid := h.Solid()
			if solid < minSolid {
				continue
			}
			phase, n := h.Plurality()
			if phase == models.Pore {
				continue
			}
			if float64(n) >= minFrac*float64(solid) {
				s.Map.Set(x, y, phase)
				changed++
			}
		}
	}
	return changed
}
