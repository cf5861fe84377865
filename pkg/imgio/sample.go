// Package imgio reads elemental concentration samples and persists phase
// grids. Two input forms are supported: the native multi-channel container
// and a directory of per-element grayscale rasters (PNG, JPEG, or TIFF).
package imgio

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	// Register the stdlib and TIFF decoders for raster channel files.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"

	"clinkermap/internal/models"
)

// SampleMagic identifies a native multi-channel element-map container.
const SampleMagic = "CLKMAP"

// Limits bounds the accepted grid dimensions. Inputs exceeding either
// dimension are rejected before the sample is allocated.
type Limits struct {
	MaxWidth  int
	MaxHeight int
}

// check validates decoded dimensions against the limits.
func (l Limits) check(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	if l.MaxWidth > 0 && width > l.MaxWidth {
		return fmt.Errorf("width %d exceeds maximum %d", width, l.MaxWidth)
	}
	if l.MaxHeight > 0 && height > l.MaxHeight {
		return fmt.Errorf("height %d exceeds maximum %d", height, l.MaxHeight)
	}
	return nil
}

// ReadSample decodes a native element-map container. The layout is a text
// header — magic, leading byte-skip count, width, height, each on its own
// line — followed by the skipped bytes and then eight row-major byte
// channels in models.Channel order.
func ReadSample(r io.Reader, limits Limits) (*models.ElementSample, error) {
	br := bufio.NewReader(r)

	magic, err := readToken(br)
	if err != nil {
		return nil, fmt.Errorf("reading container magic: %w", err)
	}
	if magic != SampleMagic {
		return nil, fmt.Errorf("bad container magic %q, want %q", magic, SampleMagic)
	}

	skip, err := readInt(br, "skip count")
	if err != nil {
		return nil, err
	}
	width, err := readInt(br, "width")
	if err != nil {
		return nil, err
	}
	height, err := readInt(br, "height")
	if err != nil {
		return nil, err
	}
	if skip < 0 {
		return nil, fmt.Errorf("negative skip count %d", skip)
	}
	if err := limits.check(width, height); err != nil {
		return nil, fmt.Errorf("element sample: %w", err)
	}

	if _, err := io.CopyN(io.Discard, br, int64(skip)); err != nil {
		return nil, fmt.Errorf("skipping %d header bytes: %w", skip, err)
	}

	sample, err := models.NewElementSample(width, height)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, width*height)
	for c := models.Channel(0); c < models.NumChannels; c++ {
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("channel %s: expected %d bytes: %w", c, len(buf), err)
		}
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				sample.SetChannel(x, y, c, float64(buf[y*width+x]))
			}
		}
	}
	return sample, nil
}

// ReadSampleFile opens and decodes a native container file.
func ReadSampleFile(path string, limits Limits) (*models.ElementSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sample %s: %w", path, err)
	}
	defer f.Close()
	return ReadSample(f, limits)
}

// WriteSample encodes a sample into the native container format with a zero
// skip count. Intensities are clamped to the 0..255 byte range.
func WriteSample(w io.Writer, sample *models.ElementSample) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n0\n%d\n%d\n", SampleMagic, sample.Width, sample.Height)
	for c := models.Channel(0); c < models.NumChannels; c++ {
		for y := 0; y < sample.Height; y++ {
			for x := 0; x < sample.Width; x++ {
				v := sample.At(x, y)[c]
				if v < 0 {
					v = 0
				} else if v > 255 {
					v = 255
				}
				bw.WriteByte(byte(v))
			}
		}
	}
	return bw.Flush()
}

// channelExtensions are the raster formats accepted for per-element files.
var channelExtensions = []string{".png", ".jpg", ".jpeg", ".tif", ".tiff"}

// ReadChannelDir loads a sample from a directory holding one grayscale
// raster per element channel, named by element symbol (ca.png, si.tif, ...).
// All channels must decode to identical dimensions; the first mismatch is
// fatal and names both sizes.
func ReadChannelDir(dir string, limits Limits) (*models.ElementSample, error) {
	var sample *models.ElementSample

	for c := models.Channel(0); c < models.NumChannels; c++ {
		path, err := findChannelFile(dir, c)
		if err != nil {
			return nil, err
		}
		img, err := decodeRaster(path)
		if err != nil {
			return nil, err
		}

		b := img.Bounds()
		width, height := b.Dx(), b.Dy()
		if sample == nil {
			if err := limits.check(width, height); err != nil {
				return nil, fmt.Errorf("channel %s: %w", c, err)
			}
			if sample, err = models.NewElementSample(width, height); err != nil {
				return nil, err
			}
		} else if width != sample.Width || height != sample.Height {
			return nil, fmt.Errorf("channel %s is %dx%d but channel %s was %dx%d",
				c, width, height, models.Channel(0), sample.Width, sample.Height)
		}

		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
				// Luma from the 16-bit channels, scaled back to 0..255
				gray := (299*float64(r) + 587*float64(g) + 114*float64(bl)) / 1000 / 257
				sample.SetChannel(x, y, c, gray)
			}
		}
	}
	return sample, nil
}

// findChannelFile locates the raster for a channel under any accepted
// extension.
func findChannelFile(dir string, c models.Channel) (string, error) {
	for _, ext := range channelExtensions {
		path := filepath.Join(dir, c.String()+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("channel %s: no raster found in %s (tried %v)", c, dir, channelExtensions)
}

// decodeRaster opens and decodes one registered raster format.
func decodeRaster(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening channel raster %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding channel raster %s: %w", path, err)
	}
	return img, nil
}

// readToken scans the next whitespace-delimited ASCII token.
func readToken(br *bufio.Reader) (string, error) {
	var tok []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				return string(tok), nil
			}
			return "", err
		}
		if b == ' ' || b == '\n' || b == '\r' || b == '\t' {
			if len(tok) > 0 {
				return string(tok), nil
			}
			continue
		}
		tok = append(tok, b)
	}
}

// readInt scans the next token as a non-negative decimal integer.
func readInt(br *bufio.Reader, what string) (int, error) {
	tok, err := readToken(br)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", what, err)
	}
	n := 0
	if len(tok) == 0 {
		return 0, fmt.Errorf("empty %s", what)
	}
	for _, ch := range tok {
		if ch < '0' || ch > '9' {
			return 0, fmt.Errorf("bad %s %q", what, tok)
		}
		n = n*10 + int(ch-'0')
		if n > 1<<30 {
			return 0, fmt.Errorf("%s %q out of range", what, tok)
		}
	}
	return n, nil
}
