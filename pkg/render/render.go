// Package render converts a classified phase map into a human-viewable
// raster using a fixed phase color table.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"clinkermap/internal/models"
)

// colorTable maps each phase to its display color. The palette follows the
// usual false-color convention for clinker micrographs: silicates in warm
// tones, aluminates in blues, minor phases in high-contrast accents.
var colorTable = [models.NumPhases]color.RGBA{
	models.Pore:      {0, 0, 0, 255},
	models.C3S:       {165, 42, 42, 255},
	models.C2S:       {70, 130, 180, 255},
	models.C3A:       {190, 190, 190, 255},
	models.C4AF:      {255, 255, 255, 255},
	models.K2SO4:     {255, 0, 0, 255},
	models.Na2SO4:    {255, 165, 0, 255},
	models.Gypsum:    {255, 255, 0, 255},
	models.FreeLime:  {0, 255, 0, 255},
	models.Periclase: {255, 0, 255, 255},
	models.Kaolinite: {0, 255, 255, 255},
	models.Silica:    {139, 69, 19, 255},
	models.CAS:       {34, 139, 34, 255},
	models.Slag:      {128, 0, 128, 255},
}

// Color returns the display color for a phase. Unknown phase values render
// as pore black.
func Color(p models.Phase) color.RGBA {
	if p < models.NumPhases {
		return colorTable[p]
	}
	return colorTable[models.Pore]
}

// Image converts the phase map into an RGBA raster using the color table.
func Image(m *models.PhaseMap) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			img.SetRGBA(x, y, Color(m.At(x, y)))
		}
	}
	return img
}

// SavePNG renders the phase map and writes it as a PNG file.
func SavePNG(m *models.PhaseMap, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filename, err)
	}
	defer file.Close()

	if err := png.Encode(file, Image(m)); err != nil {
		return fmt.Errorf("encoding %s: %w", filename, err)
	}
	return nil
}

// LegendEntry pairs a phase label with its display color.
type LegendEntry struct {
	Phase models.Phase
	Label string
	Color color.RGBA
}

// Legend returns one entry per phase in enumeration order, for callers that
// print or draw a color key next to the rendered map.
func Legend() []LegendEntry {
	entries := make([]LegendEntry, 0, models.NumPhases)
	for p := models.Phase(0); p < models.NumPhases; p++ {
		entries = append(entries, LegendEntry{Phase: p, Label: p.String(), Color: colorTable[p]})
	}
	return entries
}
