package imgio

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"clinkermap/internal/models"
)

// PhaseGridMagic identifies a persisted byte-per-pixel phase grid.
const PhaseGridMagic = "CLKPHS"

// WritePhaseGrid persists the phase map as a raw byte-per-pixel grid with a
// small text header, round-trippable through ReadPhaseGrid.
func WritePhaseGrid(w io.Writer, m *models.PhaseMap) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%d\n%d\n", PhaseGridMagic, m.Width, m.Height)
	for _, p := range m.Cells {
		bw.WriteByte(byte(p))
	}
	return bw.Flush()
}

// WritePhaseGridFile persists the phase map to a file.
func WritePhaseGridFile(path string, m *models.PhaseMap) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating phase grid %s: %w", path, err)
	}
	defer f.Close()

	if err := WritePhaseGrid(f, m); err != nil {
		return fmt.Errorf("writing phase grid %s: %w", path, err)
	}
	return nil
}

// ReadPhaseGrid decodes a persisted phase grid, validating every cell
// against the closed phase enumeration.
func ReadPhaseGrid(r io.Reader, limits Limits) (*models.PhaseMap, error) {
	br := bufio.NewReader(r)

	magic, err := readToken(br)
	if err != nil {
		return nil, fmt.Errorf("reading phase grid magic: %w", err)
	}
	if magic != PhaseGridMagic {
		return nil, fmt.Errorf("bad phase grid magic %q, want %q", magic, PhaseGridMagic)
	}
	width, err := readInt(br, "width")
	if err != nil {
		return nil, err
	}
	height, err := readInt(br, "height")
	if err != nil {
		return nil, err
	}
	if err := limits.check(width, height); err != nil {
		return nil, fmt.Errorf("phase grid: %w", err)
	}

	m, err := models.NewPhaseMap(width, height)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, width*height)
	if _, err := io.ReadFull(br, buf); err != nil {
		return nil, fmt.Errorf("phase grid: expected %d cells: %w", len(buf), err)
	}
	for i, b := range buf {
		p := models.Phase(b)
		if !p.Valid() {
			return nil, fmt.Errorf("phase grid: invalid phase value %d at cell %d", b, i)
		}
		m.Cells[i] = p
	}
	return m, nil
}

// ReadPhaseGridFile opens and decodes a persisted phase grid file.
func ReadPhaseGridFile(path string, limits Limits) (*models.PhaseMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening phase grid %s: %w", path, err)
	}
	defer f.Close()
	return ReadPhaseGrid(f, limits)
}
