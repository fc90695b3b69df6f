package printer

import (
	"fmt"

	imgInternal "github.com/AlexStarov/thermal-encoder/image"
	"github.com/AlexStarov/thermal-encoder/util"
)

// fillSize is the number of zero bytes after the pixel data that complete
// the graphics slot. The header padding counts toward the slot; on the
// MX980L padding plus a full canvas already exceeds it and no fill is sent.
func fillSize(bm *imgInternal.Bitmap, g imgInternal.Geometry) int {
	if n := g.Total - (g.Padding + len(bm.Data)); n > 0 {
		return n
	}
	return 0
}

// checkGraphic reports whether bm can be stored in g's slot.
func checkGraphic(bm *imgInternal.Bitmap, g imgInternal.Geometry) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if bm.Stride != g.BytesPerRow || len(bm.Data) != bm.Stride*bm.Height {
		return fmt.Errorf("bitmap %v with stride %d does not match %d bytes per row: %w",
			bm, bm.Stride, g.BytesPerRow, util.ErrInvalidInput)
	}
	// padding is not counted: on the MX980L 517 bytes of padding plus a full
	// 3520 byte canvas exceed the slot and the printer still takes the job
	if len(bm.Data) > g.Total {
		return fmt.Errorf("%d rows of %d bytes exceed the %d byte graphics slot: %w",
			bm.Height, bm.Stride, g.Total, util.ErrPayloadOverflow)
	}
	return nil
}

// DefineGraphic downloads bm into the printer's graphics slot: GS * x y,
// the header padding, the rows, then zeros up to the slot size. Nothing is
// written when bm does not fit g.
func (s *Stream) DefineGraphic(bm *imgInternal.Bitmap, g imgInternal.Geometry) error {
	if err := checkGraphic(bm, g); err != nil {
		return err
	}
	x, err := util.IntLowHigh(g.BytesPerRow, 1)
	if err != nil {
		return err
	}
	y, err := util.IntLowHigh(g.Slices, 1)
	if err != nil {
		return err
	}

	s.put(cmdDefineGraph...)
	s.put(x...)
	s.put(y...)
	s.zeros(g.Padding)
	s.put(bm.Data...)
	s.zeros(fillSize(bm, g))
	return nil
}

// PrintGraphic prints the downloaded graphic.
func (s *Stream) PrintGraphic() {
	s.put(cmdPrintGraph...)
}
