// Package receipt produces complete print jobs from a logo and text.
package receipt

import (
	"fmt"
	"image"

	"github.com/AlexStarov/thermal-encoder/codepage"
	"github.com/AlexStarov/thermal-encoder/config"
	imgInternal "github.com/AlexStarov/thermal-encoder/image"
	logInternal "github.com/AlexStarov/thermal-encoder/log"
	"github.com/AlexStarov/thermal-encoder/printer"
	"github.com/AlexStarov/thermal-encoder/util"
)

// Producer turns an optional image and text into one print job. A Producer
// holds no per-job state and may be used from several goroutines.
type Producer struct {
	Converter *imgInternal.Converter
	Table     *codepage.Table
}

// New returns a Producer for the MX980L with CP862 Hebrew text.
func New() *Producer {
	return &Producer{
		Converter: imgInternal.NewConverter(imgInternal.MX980L),
		Table:     codepage.Hebrew,
	}
}

// FromConfig returns a Producer set up from cfg.
func FromConfig(cfg config.Config) *Producer {
	return &Producer{
		Converter: cfg.Converter(),
		Table:     codepage.Hebrew,
	}
}

type rasterResult struct {
	bm  *imgInternal.Bitmap
	err error
}

// Produce returns the finished job. img may be nil for a text-only job.
// The image is rasterized on its own goroutine while the text is encoded;
// on any error no bytes are returned.
func (p *Producer) Produce(img image.Image, text string) ([]byte, error) {
	if p == nil || p.Converter == nil || p.Table == nil {
		return nil, fmt.Errorf("produce: producer needs a converter and a code page table: %w", util.ErrInvalidInput)
	}

	var raster chan rasterResult
	if img != nil {
		raster = make(chan rasterResult, 1)
		go func() {
			bm, err := p.Converter.Rasterize(img)
			raster <- rasterResult{bm, err}
		}()
	}

	textBytes := codepage.Encode(text, p.Table)
	if n := codepage.Dropped(text, p.Table); n > 0 {
		logInternal.Logf(logInternal.DEBUG, "produce: %d characters not in the code page were dropped", n)
	}

	var bm *imgInternal.Bitmap
	if raster != nil {
		res := <-raster
		if res.err != nil {
			return nil, fmt.Errorf("produce: %w", res.err)
		}
		bm = res.bm
	}

	job, err := printer.Assemble(bm, p.Converter.Geometry, textBytes)
	if err != nil {
		return nil, fmt.Errorf("produce: %w", err)
	}
	return job, nil
}
