package image

import (
	"fmt"
	"image"
	"image/color"
	"reflect"

	logInternal "github.com/AlexStarov/thermal-encoder/log"
	"github.com/AlexStarov/thermal-encoder/util"
)

const (
	// DefaultThreshold keeps the print light: only fairly dark dots become
	// ink.
	DefaultThreshold = 170

	// DefaultShrink leaves a margin around the scaled image.
	DefaultShrink = 0.75

	// DefaultBlurSigma is the gaussian smoothing applied before thresholding.
	DefaultBlurSigma = 0.5
)

// Converter turns arbitrary images into printer bitmaps.
type Converter struct {
	// Target graphics slot.
	Geometry Geometry

	// Dots with mean channel value below Threshold are ink.
	Threshold uint8

	// Fraction of the canvas the scaled image may fill, in (0, 1].
	Shrink float64

	// Gaussian blur sigma in dots; 0 disables smoothing.
	BlurSigma float64
}

// NewConverter returns a Converter for g with the default tuning.
func NewConverter(g Geometry) *Converter {
	return &Converter{
		Geometry:  g,
		Threshold: DefaultThreshold,
		Shrink:    DefaultShrink,
		BlurSigma: DefaultBlurSigma,
	}
}

// Rasterize converts img with the default shrink and blur.
func Rasterize(img image.Image, g Geometry, threshold uint8) (*Bitmap, error) {
	c := NewConverter(g)
	c.Threshold = threshold
	return c.Rasterize(img)
}

// Rasterize scales img onto the geometry's canvas, smooths and thresholds it
// and packs the result. The bitmap always has Geometry.Height rows of
// Geometry.BytesPerRow bytes.
func (c *Converter) Rasterize(img image.Image) (*Bitmap, error) {
	if err := c.Geometry.Validate(); err != nil {
		return nil, fmt.Errorf("rasterize: %w", err)
	}
	if isNil(img) {
		return nil, fmt.Errorf("rasterize: nil image: %w", util.ErrInvalidInput)
	}
	sz := img.Bounds().Size()
	if sz.X <= 0 || sz.Y <= 0 {
		return nil, fmt.Errorf("rasterize: empty image %dx%d: %w", sz.X, sz.Y, util.ErrInvalidInput)
	}
	if !(c.Shrink > 0 && c.Shrink <= 1) {
		return nil, fmt.Errorf("rasterize: shrink %v outside (0, 1]: %w", c.Shrink, util.ErrInvalidInput)
	}
	if !(c.BlurSigma >= 0) {
		return nil, fmt.Errorf("rasterize: blur sigma %v is negative: %w", c.BlurSigma, util.ErrInvalidInput)
	}

	canvas := acquireCanvas(c.Geometry.Width, c.Geometry.Height)
	defer releaseCanvas(canvas)

	p := compose(canvas, img, c.Shrink)
	bm := Pack(smooth(canvas, c.BlurSigma), c.Threshold)

	logInternal.Logf(logInternal.DEBUG, "rasterize: src %dx%d -> %dx%d at (%d,%d), %d ink dots",
		sz.X, sz.Y, p.width, p.height, p.x, p.y, bm.Ink())
	return bm, nil
}

// isNil also catches nil pointers stored in the interface, whose Bounds
// would panic.
func isNil(img image.Image) bool {
	if img == nil {
		return true
	}
	v := reflect.ValueOf(img)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Pack thresholds img and packs it MSB-first, row-major. A dot is ink when
// the unweighted mean of its red, green and blue channels is below
// threshold; alpha is ignored.
func Pack(img image.Image, threshold uint8) *Bitmap {
	b := img.Bounds()
	bm := NewBitmap(b.Dx(), b.Dy())
	limit := 3 * int(threshold)

	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < bm.Height; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < bm.Width; x++ {
				i := x * 4
				if int(row[i])+int(row[i+1])+int(row[i+2]) < limit {
					bm.Set(x, y)
				}
			}
		}
		return bm
	}

	for y := 0; y < bm.Height; y++ {
		for x := 0; x < bm.Width; x++ {
			if lightness(img.At(b.Min.X+x, b.Min.Y+y)) < limit {
				bm.Set(x, y)
			}
		}
	}
	return bm
}

// lightness is the sum of the 8-bit colour channels, alpha ignored.
func lightness(c color.Color) int {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return int(n.R) + int(n.G) + int(n.B)
}
