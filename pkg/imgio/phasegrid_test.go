package imgio

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinkermap/internal/models"
)

func TestPhaseGridRoundTrip(t *testing.T) {
	want, err := models.NewPhaseMap(7, 3)
	require.NoError(t, err)
	for i := range want.Cells {
		want.Cells[i] = models.Phase(i % int(models.NumPhases))
	}

	var buf bytes.Buffer
	require.NoError(t, WritePhaseGrid(&buf, want))

	got, err := ReadPhaseGrid(&buf, Limits{})
	require.NoError(t, err)
	assert.Equal(t, want.Width, got.Width)
	assert.Equal(t, want.Height, got.Height)
	assert.Equal(t, want.Cells, got.Cells)
}

func TestPhaseGridFileRoundTrip(t *testing.T) {
	want, err := models.NewPhaseMap(4, 4)
	require.NoError(t, err)
	want.Set(2, 1, models.C4AF)
	want.Set(3, 3, models.Slag)

	path := filepath.Join(t.TempDir(), "phases.clkphs")
	require.NoError(t, WritePhaseGridFile(path, want))

	got, err := ReadPhaseGridFile(path, Limits{})
	require.NoError(t, err)
	assert.Equal(t, want.Cells, got.Cells)
}

func TestReadPhaseGridRejectsInvalidPhase(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("CLKPHS\n2\n1\n")
	buf.Write([]byte{0, 200})

	_, err := ReadPhaseGrid(&buf, Limits{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid phase value 200")
}

func TestReadPhaseGridBadMagic(t *testing.T) {
	_, err := ReadPhaseGrid(bytes.NewBufferString("CLKMAP\n2\n2\n"), Limits{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "magic")
}

func TestReadPhaseGridTruncated(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("CLKPHS\n4\n4\n")
	buf.Write(make([]byte, 7))

	_, err := ReadPhaseGrid(&buf, Limits{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 16 cells")
}
