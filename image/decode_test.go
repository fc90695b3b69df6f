package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/AlexStarov/thermal-encoder/util"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	src := filled(4, 3, color.Black)
	img, err := Decode(bytes.NewReader(encodePNG(t, src)))
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Size(); got != (image.Point{4, 3}) {
		t.Errorf("size = %v, want (4,3)", got)
	}
}

func TestDecodeFailure(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("definitely not an image")))
	if !errors.Is(err, util.ErrDecodeFailure) {
		t.Errorf("Decode() error = %v, want ErrDecodeFailure", err)
	}
	if !errors.Is(err, image.ErrFormat) {
		t.Errorf("Decode() error = %v, underlying image.ErrFormat lost", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.png")
	if err := os.WriteFile(path, encodePNG(t, filled(7, 5, color.White)), 0o644); err != nil {
		t.Fatal(err)
	}

	img, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Size(); got != (image.Point{7, 5}) {
		t.Errorf("size = %v, want (7,5)", got)
	}

	if _, err := Load(filepath.Join(dir, "missing.png")); err == nil || errors.Is(err, util.ErrDecodeFailure) {
		t.Errorf("Load(missing) error = %v, want a plain open error", err)
	}
}

func TestRotimg(t *testing.T) {
	src := filled(4, 2, color.White)
	src.Set(0, 0, color.Black)

	tests := []struct {
		orient int
		size   image.Point
		dark   image.Point
	}{
		{1, image.Pt(4, 2), image.Pt(0, 0)},
		{2, image.Pt(4, 2), image.Pt(3, 0)},
		{3, image.Pt(4, 2), image.Pt(3, 1)},
		{4, image.Pt(4, 2), image.Pt(0, 1)},
		{6, image.Pt(2, 4), image.Pt(1, 0)},
		{8, image.Pt(2, 4), image.Pt(0, 3)},
	}
	for _, tt := range tests {
		got := rotimg(tt.orient, src)
		if sz := got.Bounds().Size(); sz != tt.size {
			t.Errorf("orientation %d: size %v, want %v", tt.orient, sz, tt.size)
			continue
		}
		if r, _, _, _ := got.At(tt.dark.X, tt.dark.Y).RGBA(); r != 0 {
			t.Errorf("orientation %d: dot %v is not dark", tt.orient, tt.dark)
		}
	}
}
