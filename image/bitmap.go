package image

import (
	"fmt"
	"math/bits"
)

// Bitmap is a 1-bit image in printer memory layout: Height rows of Stride
// bytes, row-major, MSB-first. Bit columns past Width are zero.
type Bitmap struct {
	Width, Height, Stride int
	Data                  []byte
}

// NewBitmap allocates an all-white bitmap.
func NewBitmap(width, height int) *Bitmap {
	stride := (width + 7) >> 3
	return &Bitmap{
		Width:  width,
		Height: height,
		Stride: stride,
		Data:   make([]byte, stride*height),
	}
}

// Bit returns 1 if the dot at (x, y) is ink.
func (b *Bitmap) Bit(x, y int) byte {
	return (b.Data[y*b.Stride+x/8] >> (7 - uint(x%8))) & 1
}

// Set marks the dot at (x, y) as ink.
func (b *Bitmap) Set(x, y int) {
	b.Data[y*b.Stride+x/8] |= 0x80 >> uint(x%8)
}

// Row returns the bytes of row y.
func (b *Bitmap) Row(y int) []byte {
	return b.Data[y*b.Stride : (y+1)*b.Stride]
}

// Ink counts the ink dots.
func (b *Bitmap) Ink() int {
	n := 0
	for _, v := range b.Data {
		n += bits.OnesCount8(v)
	}
	return n
}

func (b *Bitmap) String() string {
	return fmt.Sprintf("Bitmap(%d,%d)", b.Width, b.Height)
}
