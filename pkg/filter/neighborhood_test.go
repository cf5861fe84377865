package filter

import (
	"testing"

	"clinkermap/internal/models"
)

// buildMap creates a phase map from a rune grid, one row per string.
// '.' is pore; letters map to phases via the legend.
func buildMap(t *testing.T, rows []string) *models.PhaseMap {
	t.Helper()
	legend := map[rune]models.Phase{
		'.': models.Pore,
		'A': models.C3S,
		'B': models.C2S,
		'C': models.C3A,
		'F': models.C4AF,
		'G': models.Gypsum,
		'L': models.FreeLime,
		'K': models.K2SO4,
		'N': models.Na2SO4,
		'P': models.Periclase,
		'S': models.Slag,
	}
	m, err := models.NewPhaseMap(len(rows[0]), len(rows))
	if err != nil {
		t.Fatalf("NewPhaseMap: %v", err)
	}
	for y, row := range rows {
		for x, r := range row {
			p, ok := legend[r]
			if !ok {
				t.Fatalf("unknown legend rune %q", r)
			}
			m.Set(x, y, p)
		}
	}
	return m
}

func TestCountFullWindow(t *testing.T) {
	m := buildMap(t, []string{
		"AAB",
		"A.B",
		"GGG",
	})
	h := Count(m, 1, 1, 1)

	if got := h[models.C3S]; got != 3 {
		t.Errorf("C3S count = %d, want 3", got)
	}
	if got := h[models.C2S]; got != 2 {
		t.Errorf("C2S count = %d, want 2", got)
	}
	if got := h[models.Gypsum]; got != 3 {
		t.Errorf("Gypsum count = %d, want 3", got)
	}
	if got := h.Pore(); got != 1 {
		t.Errorf("pore count = %d, want 1", got)
	}
	if got := h.Solid(); got != 8 {
		t.Errorf("solid count = %d, want 8", got)
	}
}

// TestCountClipsAtBorder verifies cells outside the map contribute nothing:
// no wraparound, no synthetic border phase.
func TestCountClipsAtBorder(t *testing.T) {
	m := buildMap(t, []string{
		"AB",
		"..",
	})
	h := Count(m, 0, 0, 1)

	// Window covers only the four in-bounds cells
	total := h.Solid() + h.Pore()
	if total != 4 {
		t.Fatalf("window total = %d, want 4", total)
	}
	if h[models.C3S] != 1 || h[models.C2S] != 1 || h.Pore() != 2 {
		t.Errorf("unexpected histogram: C3S=%d C2S=%d pore=%d",
			h[models.C3S], h[models.C2S], h.Pore())
	}
}

func TestCountLargerRadiusClipped(t *testing.T) {
	m := buildMap(t, []string{
		"AAA",
		"AAA",
		"AAA",
	})
	h := Count(m, 1, 1, 3)
	if got := h[models.C3S]; got != 9 {
		t.Errorf("C3S count = %d, want all 9 despite radius overshoot", got)
	}
}

func TestPluralityTieBreak(t *testing.T) {
	tests := []struct {
		name string
		fill func(h *Histogram)
		want models.Phase
		n    int
	}{
		{
			name: "C3SWinsTieWithC2S",
			fill: func(h *Histogram) { h[models.C3S] = 4; h[models.C2S] = 4 },
			want: models.C3S,
			n:    4,
		},
		{
			name: "SlagWinsTieWithPericlase",
			fill: func(h *Histogram) { h[models.Slag] = 3; h[models.Periclase] = 3 },
			want: models.Slag,
			n:    3,
		},
		{
			name: "GypsumBeatsLaterSulfates",
			fill: func(h *Histogram) { h[models.Gypsum] = 2; h[models.K2SO4] = 2; h[models.Na2SO4] = 2 },
			want: models.Gypsum,
			n:    2,
		},
		{
			name: "StrictMajorityStillWins",
			fill: func(h *Histogram) { h[models.C3S] = 2; h[models.Periclase] = 5 },
			want: models.Periclase,
			n:    5,
		},
		{
			name: "EmptyNeighborhood",
			fill: func(h *Histogram) {},
			want: models.Pore,
			n:    0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var h Histogram
			tc.fill(&h)
			p, n := h.Plurality()
			if p != tc.want || n != tc.n {
				t.Errorf("Plurality() = (%v, %d), want (%v, %d)", p, n, tc.want, tc.n)
			}
		})
	}
}

// TestPluralityIgnoresPore verifies pore occupancy never wins the vote even
// when it dominates the window.
func TestPluralityIgnoresPore(t *testing.T) {
	var h Histogram
	h[models.Pore] = 20
	h[models.C2S] = 1
	p, n := h.Plurality()
	if p != models.C2S || n != 1 {
		t.Errorf("Plurality() = (%v, %d), want (C2S, 1)", p, n)
	}
}
