// Package config holds the encoder configuration file.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	imgInternal "github.com/AlexStarov/thermal-encoder/image"
	"github.com/AlexStarov/thermal-encoder/util"
)

// Geometry is the printer's graphics slot, see image.Geometry.
type Geometry struct {
	Width       int `toml:"width"`
	Height      int `toml:"height"`
	BytesPerRow int `toml:"bytes_per_row"`
	Slices      int `toml:"slices"`
	Padding     int `toml:"padding"`
	Total       int `toml:"total"`
}

// Raster tunes the image conversion.
type Raster struct {
	Threshold int     `toml:"threshold"`
	Shrink    float64 `toml:"shrink"`
	BlurSigma float64 `toml:"blur_sigma"`
}

// Output selects where jobs go.
type Output struct {
	File     string `toml:"file"`
	Network  string `toml:"network"`
	LPDQueue string `toml:"lpd_queue"`
	Serial   string `toml:"serial"`
	Baud     int    `toml:"baud"`
	USB      string `toml:"usb"`
	Spooler  string `toml:"spooler"`
}

// Log configures logging.
type Log struct {
	Level string `toml:"level"`
	Dir   string `toml:"dir"`
}

type Config struct {
	Geometry Geometry `toml:"geometry"`
	Raster   Raster   `toml:"raster"`
	Output   Output   `toml:"output"`
	Log      Log      `toml:"log"`
}

var DefaultConfig = Config{
	Geometry: Geometry{
		Width:       imgInternal.MX980L.Width,
		Height:      imgInternal.MX980L.Height,
		BytesPerRow: imgInternal.MX980L.BytesPerRow,
		Slices:      imgInternal.MX980L.Slices,
		Padding:     imgInternal.MX980L.Padding,
		Total:       imgInternal.MX980L.Total,
	},
	Raster: Raster{
		Threshold: imgInternal.DefaultThreshold,
		Shrink:    imgInternal.DefaultShrink,
		BlurSigma: imgInternal.DefaultBlurSigma,
	},
	Output: Output{
		File: "thermal_print_verifone.bin",
		Baud: 9600,
	},
	Log: Log{
		Level: "info",
	},
}

// Load reads path over the defaults. Keys missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w: %w", path, util.ErrInvalidInput, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		return Config{}, fmt.Errorf("config %s: unknown keys %v: %w", path, undecoded, util.ErrInvalidInput)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ImageGeometry converts the geometry section.
func (c Config) ImageGeometry() imgInternal.Geometry {
	return imgInternal.Geometry{
		Width:       c.Geometry.Width,
		Height:      c.Geometry.Height,
		BytesPerRow: c.Geometry.BytesPerRow,
		Slices:      c.Geometry.Slices,
		Padding:     c.Geometry.Padding,
		Total:       c.Geometry.Total,
	}
}

// Converter builds the rasterizer described by c.
func (c Config) Converter() *imgInternal.Converter {
	return &imgInternal.Converter{
		Geometry:  c.ImageGeometry(),
		Threshold: uint8(c.Raster.Threshold),
		Shrink:    c.Raster.Shrink,
		BlurSigma: c.Raster.BlurSigma,
	}
}

func (c Config) Validate() error {
	if err := c.ImageGeometry().Validate(); err != nil {
		return err
	}
	if c.Raster.Threshold < 0 || c.Raster.Threshold > 255 {
		return fmt.Errorf("threshold %d outside 0-255: %w", c.Raster.Threshold, util.ErrInvalidInput)
	}
	if !(c.Raster.Shrink > 0 && c.Raster.Shrink <= 1) {
		return fmt.Errorf("shrink %v outside (0, 1]: %w", c.Raster.Shrink, util.ErrInvalidInput)
	}
	if c.Raster.BlurSigma < 0 {
		return fmt.Errorf("negative blur sigma %v: %w", c.Raster.BlurSigma, util.ErrInvalidInput)
	}
	if c.Output.Baud < 0 {
		return fmt.Errorf("negative baud rate %d: %w", c.Output.Baud, util.ErrInvalidInput)
	}
	return nil
}
