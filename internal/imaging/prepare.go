package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/photo-svg-mcp/internal/vectorize"
)

// Region represents a rectangular region within an image.
//
// (X1, Y1) is inclusive and (X2, Y2) is exclusive, relative to the image's
// top-left corner.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// PrepareOptions controls how a decoded image is turned into a pixel buffer.
// Steps run in field order: crop, downscale, blur.
type PrepareOptions struct {
	// Region, if non-nil, restricts conversion to part of the image.
	Region *Region

	// MaxDimension bounds the longest side. 0 keeps the original size.
	MaxDimension int

	// BlurRadius applies a Gaussian blur before thresholding. 0 disables it.
	BlurRadius float64
}

// Prepare crops, downscales and smooths img as requested and returns the
// result as a pixel buffer ready for vectorize.Run.
func Prepare(img image.Image, opts PrepareOptions) (vectorize.PixelBuffer, error) {
	if opts.Region != nil {
		cropped, err := CropRegion(img, *opts.Region)
		if err != nil {
			return vectorize.PixelBuffer{}, err
		}
		img = cropped
	}

	if opts.MaxDimension < 0 {
		return vectorize.PixelBuffer{}, fmt.Errorf("max dimension must be >= 0, got %d", opts.MaxDimension)
	}
	if opts.MaxDimension > 0 {
		img = FitToDisplay(img, opts.MaxDimension)
	}

	if opts.BlurRadius < 0 {
		return vectorize.PixelBuffer{}, fmt.Errorf("blur radius must be >= 0, got %v", opts.BlurRadius)
	}
	if opts.BlurRadius > 0 {
		img = Smooth(img, opts.BlurRadius)
	}

	return PixelBufferFrom(img), nil
}

// CropRegion extracts a rectangular region from an image.
func CropRegion(img image.Image, r Region) (image.Image, error) {
	bounds := img.Bounds()
	x1, y1 := bounds.Min.X+r.X1, bounds.Min.Y+r.Y1
	x2, y2 := bounds.Min.X+r.X2, bounds.Min.Y+r.Y2

	if x1 < bounds.Min.X || y1 < bounds.Min.Y || x2 > bounds.Max.X || y2 > bounds.Max.Y {
		return nil, fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds %dx%d",
			r.X1, r.Y1, r.X2, r.Y2, bounds.Dx(), bounds.Dy())
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid region: x1 must be < x2, y1 must be < y2")
	}

	return imaging.Crop(img, image.Rect(x1, y1, x2, y2)), nil
}

// FitToDisplay scales img down so that neither side exceeds maxDimension,
// keeping the aspect ratio. Images that already fit are returned unscaled.
func FitToDisplay(img image.Image, maxDimension int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxDimension && b.Dy() <= maxDimension {
		return img
	}
	return imaging.Fit(img, maxDimension, maxDimension, imaging.Linear)
}

// Smooth applies a Gaussian blur of the given radius. Blurring before the
// threshold merges speckle into its neighbours so fewer short traces appear.
func Smooth(img image.Image, radius float64) image.Image {
	return blur.Gaussian(img, radius)
}

// PixelBufferFrom copies img into a non-premultiplied RGBA pixel buffer.
func PixelBufferFrom(img image.Image) vectorize.PixelBuffer {
	src := imaging.Clone(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()

	pix := make([]uint8, w*h*4)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		copy(pix[y*w*4:], row)
	}

	return vectorize.PixelBuffer{Width: w, Height: h, Pix: pix}
}
