package models

import "fmt"

// Channel identifies one calibrated elemental intensity channel of a sample.
type Channel int

const (
	ChCa Channel = iota
	ChSi
	ChAl
	ChFe
	ChS
	ChK
	ChNa
	ChMg

	// NumChannels is the number of element channels in a sample.
	NumChannels
)

// channelNames holds the canonical lower-case element symbols, also used as
// raster filenames when a sample is loaded from a channel directory.
var channelNames = [NumChannels]string{"ca", "si", "al", "fe", "s", "k", "na", "mg"}

// String returns the element symbol for the channel.
func (c Channel) String() string {
	if c >= 0 && c < NumChannels {
		return channelNames[c]
	}
	return "?"
}

// ElementVector is the 8-component intensity vector of a single pixel,
// indexed by Channel.
type ElementVector [NumChannels]float64

// ElementSample is a width x height grid of element intensity vectors,
// immutable once loaded. Pixels are stored row-major.
type ElementSample struct {
	Width  int
	Height int
	pixels []ElementVector
}

// NewElementSample allocates a sample grid of the given dimensions.
func NewElementSample(width, height int) (*ElementSample, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid sample dimensions %dx%d", width, height)
	}
	return &ElementSample{
		Width:  width,
		Height: height,
		pixels: make([]ElementVector, width*height),
	}, nil
}

// At returns the element vector at (x, y).
func (s *ElementSample) At(x, y int) ElementVector {
	return s.pixels[y*s.Width+x]
}

// Set stores the element vector at (x, y). Intended for decoders and tests;
// the pipeline never mutates a sample.
func (s *ElementSample) Set(x, y int, v ElementVector) {
	s.pixels[y*s.Width+x] = v
}

// SetChannel stores a single channel intensity at (x, y).
func (s *ElementSample) SetChannel(x, y int, c Channel, value float64) {
	s.pixels[y*s.Width+x][c] = value
}

// PhaseMap is a width x height grid of phase assignments, stored row-major.
// Pipeline stages mutate it in place, one stage at a time.
type PhaseMap struct {
	Width  int
	Height int
	Cells  []Phase
}

// NewPhaseMap allocates a phase map of the given dimensions with every cell
// set to Pore.
func NewPhaseMap(width, height int) (*PhaseMap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid map dimensions %dx%d", width, height)
	}
	return &PhaseMap{
		Width:  width,
		Height: height,
		Cells:  make([]Phase, width*height),
	}, nil
}

// At returns the phase at (x, y).
func (m *PhaseMap) At(x, y int) Phase { return m.Cells[y*m.Width+x] }

// Set stores the phase at (x, y).
func (m *PhaseMap) Set(x, y int, p Phase) { m.Cells[y*m.Width+x] = p }

// In reports whether (x, y) lies inside the map bounds.
func (m *PhaseMap) In(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// Clone returns a deep copy of the map. Filtering stages use the copy as
// their read-only snapshot while writing decisions back into the original.
func (m *PhaseMap) Clone() *PhaseMap {
	cells := make([]Phase, len(m.Cells))
	copy(cells, m.Cells)
	return &PhaseMap{Width: m.Width, Height: m.Height, Cells: cells}
}

// CopyFrom overwrites the map's cells with those of src. The dimensions must
// match; this is the swap half of the buffer-then-swap contract.
func (m *PhaseMap) CopyFrom(src *PhaseMap) error {
	if m.Width != src.Width || m.Height != src.Height {
		return fmt.Errorf("phase map size mismatch: %dx%d vs %dx%d",
			m.Width, m.Height, src.Width, src.Height)
	}
	copy(m.Cells, src.Cells)
	return nil
}

// Count returns the number of cells holding the given phase.
func (m *PhaseMap) Count(p Phase) int {
	n := 0
	for _, c := range m.Cells {
		if c == p {
			n++
		}
	}
	return n
}
