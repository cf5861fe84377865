package stats

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"clinkermap/internal/models"
)

// Entry is one labeled statistic in the flattened record.
type Entry struct {
	Label string
	Value float64
}

// Separator is the literal line written between run blocks in the
// cumulative log.
const Separator = "----------"

// Entries flattens the record into labeled values in reporting order:
// pixel counts, solid volume fractions, clinker volume fractions, area
// fractions, mass fractions.
func (r *Record) Entries() []Entry {
	var out []Entry
	out = append(out,
		Entry{"pixels.total", float64(r.TotalPixels)},
		Entry{"pixels.solid", float64(r.TotalSolids)},
	)
	for p := models.Phase(0); p < models.NumPhases; p++ {
		out = append(out, Entry{"count." + p.String(), float64(r.Counts[p])})
	}
	for p := models.Phase(1); p < models.NumPhases; p++ {
		out = append(out, Entry{"volume." + p.String(), r.VolumeFraction[p]})
	}
	for _, p := range models.ClinkerPhases {
		out = append(out, Entry{"clinker." + p.String(), r.ClinkerFraction[p]})
	}
	for _, p := range models.ClinkerPhases {
		out = append(out, Entry{"area." + p.String(), r.AreaFraction[p]})
	}
	for _, p := range models.ClinkerPhases {
		out = append(out, Entry{"mass." + p.String(), r.MassFraction[p]})
	}
	return out
}

// FormatBlock renders one run block: a run-ID header, one "label: value"
// line per entry, and the separator line. Undefined fractions render as
// "undef".
func (r *Record) FormatBlock(runID uuid.UUID, sample string, at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s sample %s at %s\n", runID, sample, at.UTC().Format(time.RFC3339))
	for _, e := range r.Entries() {
		if math.IsNaN(e.Value) {
			fmt.Fprintf(&b, "%s: undef\n", e.Label)
		} else {
			fmt.Fprintf(&b, "%s: %.6f\n", e.Label, e.Value)
		}
	}
	b.WriteString(Separator + "\n")
	return b.String()
}

// AppendLog appends one run block for this record to the cumulative
// statistics log, creating the file on first use. Returns the run ID
// stamped into the block.
func (r *Record) AppendLog(path, sample string) (uuid.UUID, error) {
	runID := uuid.New()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return runID, fmt.Errorf("opening stats log %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(r.FormatBlock(runID, sample, time.Now())); err != nil {
		return runID, fmt.Errorf("appending to stats log %s: %w", path, err)
	}
	return runID, nil
}
