package render

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"clinkermap/internal/models"
)

func TestImageDimensionsAndColors(t *testing.T) {
	m, err := models.NewPhaseMap(4, 3)
	if err != nil {
		t.Fatalf("NewPhaseMap: %v", err)
	}
	m.Set(1, 1, models.C3S)
	m.Set(2, 2, models.Slag)

	img := Image(m)
	bounds := img.Bounds()
	if bounds.Dx() != 4 || bounds.Dy() != 3 {
		t.Fatalf("image is %dx%d, want 4x3", bounds.Dx(), bounds.Dy())
	}

	if got := img.At(0, 0); got != Color(models.Pore) {
		t.Errorf("pore pixel = %v, want %v", got, Color(models.Pore))
	}
	if got := img.At(1, 1); got != Color(models.C3S) {
		t.Errorf("C3S pixel = %v, want %v", got, Color(models.C3S))
	}
	if got := img.At(2, 2); got != Color(models.Slag) {
		t.Errorf("slag pixel = %v, want %v", got, Color(models.Slag))
	}
}

func TestColorsDistinct(t *testing.T) {
	seen := make(map[color.RGBA]models.Phase)
	for p := models.Phase(0); p < models.NumPhases; p++ {
		c := Color(p)
		if prev, dup := seen[c]; dup {
			t.Errorf("phases %v and %v share color %v", prev, p, c)
		}
		seen[c] = p
	}
}

func TestUnknownPhaseRendersAsPore(t *testing.T) {
	if got := Color(models.Phase(200)); got != Color(models.Pore) {
		t.Errorf("unknown phase color = %v, want pore", got)
	}
}

func TestSavePNG(t *testing.T) {
	m, err := models.NewPhaseMap(5, 5)
	if err != nil {
		t.Fatalf("NewPhaseMap: %v", err)
	}
	m.Set(2, 2, models.C2S)

	path := filepath.Join(t.TempDir(), "out", "phases.png")
	if err := SavePNG(m, path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output PNG is empty")
	}
}

func TestLegendCoversAllPhases(t *testing.T) {
	entries := Legend()
	if len(entries) != int(models.NumPhases) {
		t.Fatalf("legend has %d entries, want %d", len(entries), models.NumPhases)
	}
	for i, e := range entries {
		if e.Phase != models.Phase(i) {
			t.Errorf("entry %d holds phase %v", i, e.Phase)
		}
		if e.Label != e.Phase.String() {
			t.Errorf("entry %d label %q, want %q", i, e.Label, e.Phase.String())
		}
	}
}
