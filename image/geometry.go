package image

import (
	"fmt"

	"github.com/AlexStarov/thermal-encoder/util"
)

// Geometry describes the printer's stored-graphic memory slot. The values
// are the literal arguments of the graphics definition command and must match
// the printer firmware; the printer rejects or garbles a job otherwise.
type Geometry struct {
	// canvas size in dots
	Width, Height int

	// XB argument of GS *, ceil(Width/8)
	BytesPerRow int

	// YS argument of GS *, fixed by the firmware
	Slices int

	// zero bytes the firmware expects between the definition command and the
	// pixel data
	Padding int

	// size of the graphics slot, BytesPerRow*Slices*8
	Total int
}

// MX980L is the Verifone MX980L cash printer logo slot: 352x80 dots,
// GS * 44 10, 517 bytes of header padding.
var MX980L = Geometry{
	Width:       352,
	Height:      80,
	BytesPerRow: 44,
	Slices:      10,
	Padding:     517,
	Total:       3520,
}

// Validate checks that g is self-consistent.
func (g Geometry) Validate() error {
	switch {
	case g.Width <= 0 || g.Height <= 0:
		return fmt.Errorf("geometry: empty canvas %dx%d: %w", g.Width, g.Height, util.ErrInvalidInput)
	case g.BytesPerRow != util.BytesPerRow(g.Width):
		return fmt.Errorf("geometry: %d bytes per row for width %d, want %d: %w",
			g.BytesPerRow, g.Width, util.BytesPerRow(g.Width), util.ErrInvalidInput)
	case g.Slices <= 0:
		return fmt.Errorf("geometry: %d slices: %w", g.Slices, util.ErrInvalidInput)
	case g.BytesPerRow > 0xff || g.Slices > 0xff:
		return fmt.Errorf("geometry: GS * arguments %d, %d do not fit one byte: %w",
			g.BytesPerRow, g.Slices, util.ErrInvalidInput)
	case g.Padding < 0:
		return fmt.Errorf("geometry: negative padding %d: %w", g.Padding, util.ErrInvalidInput)
	case g.Total != g.BytesPerRow*g.Slices*8:
		return fmt.Errorf("geometry: total %d, want %d: %w",
			g.Total, g.BytesPerRow*g.Slices*8, util.ErrInvalidInput)
	}
	return nil
}

// RasterSize is the number of bitmap bytes a full canvas occupies.
func (g Geometry) RasterSize() int {
	return g.BytesPerRow * g.Height
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d (GS * %d %d, pad %d, total %d)",
		g.Width, g.Height, g.BytesPerRow, g.Slices, g.Padding, g.Total)
}
