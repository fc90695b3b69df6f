package image

import (
	"image"
	"math"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"

	"github.com/AlexStarov/thermal-encoder/util"
)

// canvasPool holds scratch canvases. A canvas belongs to exactly one
// Rasterize call between acquireCanvas and releaseCanvas.
var canvasPool sync.Pool

func acquireCanvas(width, height int) *image.RGBA {
	if c, ok := canvasPool.Get().(*image.RGBA); ok && c.Rect.Dx() == width && c.Rect.Dy() == height {
		return c
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

func releaseCanvas(c *image.RGBA) {
	canvasPool.Put(c)
}

// placement is where a source image lands on the canvas after scaling.
type placement struct {
	width, height int
	x, y          int
}

// place scales a w x h source uniformly to fit the canvas, shrunk by
// shrink to leave a margin, and centres it. Offsets are floored and go
// negative when the scaled image is larger than the canvas.
func place(canvasW, canvasH, w, h int, shrink float64) placement {
	scale := math.Min(float64(canvasW)/float64(w), float64(canvasH)/float64(h)) * shrink

	p := placement{
		width:  int(math.Floor(float64(w) * scale)),
		height: int(math.Floor(float64(h) * scale)),
	}
	if p.width < 1 {
		p.width = 1
	}
	if p.height < 1 {
		p.height = 1
	}
	p.x = util.FloorDiv(canvasW-p.width, 2)
	p.y = util.FloorDiv(canvasH-p.height, 2)
	return p
}

// compose paints canvas white and draws src onto it scaled and centred.
// src is only read.
func compose(canvas *image.RGBA, src image.Image, shrink float64) placement {
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	sz := src.Bounds().Size()
	p := place(canvas.Rect.Dx(), canvas.Rect.Dy(), sz.X, sz.Y, shrink)

	scaled := src
	if p.width != sz.X || p.height != sz.Y {
		scaled = resize.Resize(uint(p.width), uint(p.height), src, resize.Lanczos3)
	}

	r := image.Rect(p.x, p.y, p.x+p.width, p.y+p.height)
	draw.Draw(canvas, r, scaled, scaled.Bounds().Min, draw.Over)
	return p
}

// smooth blurs the canvas with a gaussian of the given sigma. Hard edges
// left by scaling otherwise threshold into speckles.
func smooth(canvas *image.RGBA, sigma float64) image.Image {
	if sigma <= 0 {
		return canvas
	}
	return imaging.Blur(canvas, sigma)
}
