package models

// Phase is a discrete mineralogical category assigned to one pixel of a
// classified clinker section. The numeric values are stable: they are what
// gets persisted in raw phase-grid files, so new phases must only ever be
// appended.
type Phase byte

const (
	// Pore is the background/unclassified phase.
	Pore Phase = iota

	// C3S is tricalcium silicate (alite), the dominant clinker phase.
	C3S

	// C2S is dicalcium silicate (belite).
	C2S

	// C3A is tricalcium aluminate.
	C3A

	// C4AF is tetracalcium aluminoferrite (ferrite).
	C4AF

	// K2SO4 is potassium sulfate (arcanite).
	K2SO4

	// Na2SO4 is sodium sulfate (thenardite).
	Na2SO4

	// Gypsum is calcium sulfate.
	Gypsum

	// FreeLime is uncombined CaO.
	FreeLime

	// Periclase is free MgO or a mixed Mg/Ca phase.
	Periclase

	// Kaolinite is the clay phase seen in blended samples.
	Kaolinite

	// Silica is free SiO2 (quartz).
	Silica

	// CAS is calcium-aluminosilicate glass, present in blended cements.
	CAS

	// Slag is ground granulated blast-furnace slag.
	Slag

	// NumPhases is the count of phase values; keep last.
	NumPhases
)

// phaseNames maps each phase to its display label.
var phaseNames = [NumPhases]string{
	Pore:      "Pore",
	C3S:       "C3S",
	C2S:       "C2S",
	C3A:       "C3A",
	C4AF:      "C4AF",
	K2SO4:     "K2SO4",
	Na2SO4:    "Na2SO4",
	Gypsum:    "Gypsum",
	FreeLime:  "FreeLime",
	Periclase: "Periclase",
	Kaolinite: "Kaolinite",
	Silica:    "Silica",
	CAS:       "CAS",
	Slag:      "Slag",
}

// String returns the display label of the phase.
func (p Phase) String() string {
	if p < NumPhases {
		return phaseNames[p]
	}
	return "Unknown"
}

// Valid reports whether p is one of the defined phase values.
func (p Phase) Valid() bool { return p < NumPhases }

// IsSolid reports whether p is any phase other than pore.
func (p Phase) IsSolid() bool { return p != Pore && p < NumPhases }

// IsSulfate reports whether p is one of the three sulfate phases.
func (p Phase) IsSulfate() bool {
	return p == K2SO4 || p == Na2SO4 || p == Gypsum
}

// PhaseMask is a power-of-two encoding of a phase (1 << phase). Statistics
// queries combine masks with bitwise OR and test membership of an arbitrary
// phase subset with a single AND.
type PhaseMask uint16

// Mask returns the bit-mask encoding of the phase.
func (p Phase) Mask() PhaseMask { return 1 << p }

// MaskOf combines the masks of the given phases.
func MaskOf(phases ...Phase) PhaseMask {
	var m PhaseMask
	for _, p := range phases {
		m |= p.Mask()
	}
	return m
}

// Contains reports whether the mask includes the given phase.
func (m PhaseMask) Contains(p Phase) bool { return m&p.Mask() != 0 }

// ClinkerPhases is the subset tracked for boundary-area and mass statistics,
// in reporting order.
var ClinkerPhases = []Phase{C3S, C2S, C3A, C4AF, K2SO4, Na2SO4}

// VoteOrder is the candidate order used when breaking plurality-vote ties
// during spatial filtering. Earlier phases win exact ties; the comparison is
// strict, so this order is load-bearing and must not be re-sorted.
var VoteOrder = []Phase{
	C3S, C2S, C3A, C4AF,
	Gypsum, FreeLime, K2SO4, Na2SO4,
	Kaolinite, Silica, CAS, Slag, Periclase,
}
