package vectorize

import (
	"fmt"
	"math"
)

// Mask values.
const (
	Foreground uint8 = 0
	Background uint8 = 255
)

// PixelBuffer is a decoded image handed to the pipeline.
//
// Pix holds Width*Height samples in row-major order, four bytes per sample
// (R, G, B, A), the same layout as image.NRGBA with Stride == 4*Width. The
// pipeline only reads it.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// Validate checks that the buffer has a positive area and enough pixel data.
func (b PixelBuffer) Validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: buffer dimensions %dx%d", ErrInvalidInput, b.Width, b.Height)
	}
	if b.Width > math.MaxInt/4/b.Height {
		return fmt.Errorf("%w: buffer dimensions %dx%d overflow", ErrProcessingFailure, b.Width, b.Height)
	}
	if need := b.Width * b.Height * 4; len(b.Pix) < need {
		return fmt.Errorf("%w: pixel data has %d bytes, need %d", ErrInvalidInput, len(b.Pix), need)
	}
	return nil
}

// Mask is a two-level image with the same dimensions as its source buffer.
// Every value in Pix is either Foreground or Background.
type Mask struct {
	Width  int
	Height int
	Pix    []uint8
}

// At returns the mask value at (x, y).
func (m *Mask) At(x, y int) uint8 {
	return m.Pix[y*m.Width+x]
}

// Luminance returns the rounded ITU-R BT.601 luma of an 8-bit RGB sample.
func Luminance(r, g, b uint8) int {
	return int(math.Round(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)))
}

// Binarize converts a pixel buffer to a Mask using a luminance threshold.
//
// Parameters:
//   - buf: Source pixels. Alpha is ignored.
//   - threshold: Luminance cut-off, conventionally 0-255. Pixels with
//     luminance greater than threshold become Background; all others become
//     Foreground.
//
// Returns ErrInvalidInput if the buffer has zero area or is missing data.
func Binarize(buf PixelBuffer, threshold int) (*Mask, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	n := buf.Width * buf.Height
	mask := &Mask{
		Width:  buf.Width,
		Height: buf.Height,
		Pix:    make([]uint8, n),
	}

	for i := 0; i < n; i++ {
		o := i * 4
		if Luminance(buf.Pix[o], buf.Pix[o+1], buf.Pix[o+2]) > threshold {
			mask.Pix[i] = Background
		} else {
			mask.Pix[i] = Foreground
		}
	}

	return mask, nil
}
