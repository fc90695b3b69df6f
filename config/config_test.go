package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	imgInternal "github.com/AlexStarov/thermal-encoder/image"
	"github.com/AlexStarov/thermal-encoder/util"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "thermalenc.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	if err := DefaultConfig.Validate(); err != nil {
		t.Fatalf("DefaultConfig.Validate() = %v", err)
	}
	if diff := cmp.Diff(imgInternal.MX980L, DefaultConfig.ImageGeometry()); diff != "" {
		t.Errorf("default geometry mismatch (-want +got):\n%s", diff)
	}
	c := DefaultConfig.Converter()
	if c.Threshold != 170 || c.Shrink != 0.75 || c.BlurSigma != 0.5 {
		t.Errorf("Converter() = %+v", c)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[raster]
threshold = 150
blur_sigma = 0.0

[output]
network = "192.168.1.50:9100"

[log]
level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	want := DefaultConfig
	want.Raster.Threshold = 150
	want.Raster.BlurSigma = 0
	want.Output.Network = "192.168.1.50:9100"
	want.Log.Level = "debug"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[raster\nthreshold = 1"},
		{"unknown key", "[raster]\ngamma = 2.2"},
		{"geometry", "[geometry]\npadding = -1"},
		{"bytes per row", "[geometry]\nwidth = 384"},
		{"threshold", "[raster]\nthreshold = 300"},
		{"shrink", "[raster]\nshrink = 0.0"},
		{"blur", "[raster]\nblur_sigma = -1.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, util.ErrInvalidInput) {
				t.Errorf("Load() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Errorf("Load() of a missing file succeeded")
	}
}
