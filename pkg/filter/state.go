package filter

import (
	"fmt"

	"clinkermap/internal/models"
)

// State owns the working phase map and the scratch snapshot shared by the
// filtering stages. Each stage copies the map into the snapshot, reads all
// of its decisions from the snapshot, and writes results into the map, so
// no stage ever observes its own partial updates.
type State struct {
	// Map is the current phase assignment, mutated stage by stage.
	Map *models.PhaseMap

	// snapshot is the pre-stage copy every decision reads from.
	snapshot *models.PhaseMap
}

// NewState wraps a phase map together with its scratch buffer.
func NewState(m *models.PhaseMap) (*State, error) {
	if m == nil {
		return nil, fmt.Errorf("filter state requires a phase map")
	}
	snap, err := models.NewPhaseMap(m.Width, m.Height)
	if err != nil {
		return nil, fmt.Errorf("allocating %dx%d scratch buffer: %w", m.Width, m.Height, err)
	}
	return &State{Map: m, snapshot: snap}, nil
}

// begin freezes the current map into the snapshot and returns it.
func (s *State) begin() *models.PhaseMap {
	copy(s.snapshot.Cells, s.Map.Cells)
	return s.snapshot
}
