package filter

import "clinkermap/internal/models"

// overrideRule gives one condition under which a solid pixel adopts the
// plurality phase of its neighborhood. current is the pixel's phase before
// the pass, winner the plurality phase, frac the winner's share of the
// solid neighbor total, and total that solid neighbor total.
type overrideRule func(current, winner models.Phase, frac float64, total int) bool

// overrideRules lists the acceptance conditions for a consistency-vote
// reassignment. A pixel changes phase when any rule holds. The looser
// phase-specific entries reflect how easily small free-lime and periclase
// patches fragment during acquisition.
var overrideRules = []overrideRule{
	// Overwhelming local majority overrides anything
	func(current, winner models.Phase, frac float64, total int) bool {
		return frac >= 0.8 && total >= 5
	},
	// Non-sulfate solids yield to a clear majority
	func(current, winner models.Phase, frac float64, total int) bool {
		return current.IsSolid() && !current.IsSulfate() && frac >= 0.6 && total >= 5
	},
	func(current, winner models.Phase, frac float64, total int) bool {
		return current == models.C2S && frac >= 0.5 && total >= 5
	},
	func(current, winner models.Phase, frac float64, total int) bool {
		return current == models.FreeLime && frac >= 0.25 && total >= 4
	},
	func(current, winner models.Phase, frac float64, total int) bool {
		return current == models.Periclase && frac >= 0.5 && total >= 4
	},
	func(current, winner models.Phase, frac float64, total int) bool {
		return current == models.Periclase && winner == models.C3S && frac >= 0.3 && total >= 4
	},
}

// Consistency applies one escalating-radius plurality vote over every solid
// pixel. A pixel is first probed at probeRadius; if more than one solid
// neighbor is found there, the vote is taken over the larger voteRadius
// window and the pixel adopts the plurality phase when one of the override
// rules accepts it. The pixel's own phase never counts toward its vote.
// The coarse pipeline pass runs radii (2, 3) and the fine pass (1, 2).
// Returns the number of pixels changed.
func (s *State) Consistency(probeRadius, voteRadius int) int {
	snap := s.begin()
	changed := 0
	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			current := snap.At(x, y)
			if !current.IsSolid() {
				continue
			}
			probe := Count(snap, x, y, probeRadius)
			probe[current]-- // neighbors only
			if probe.Solid() <= 1 {
				continue
			}
			vote := Count(snap, x, y, voteRadius)
			vote[current]--
			total := vote.Solid()
			if total <= 0 {
				continue
			}
			winner, n := vote.Plurality()
			if winner == models.Pore || winner == current {
				continue
			}
			frac := float64(n) / float64(total)
			for _, accept := range overrideRules {
				if accept(current, winner, frac, total) {
					s.Map.Set(x, y, winner)
					changed++
					break
				}
			}
		}
	}
	return changed
}
