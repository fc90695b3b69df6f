package printer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	imgInternal "github.com/AlexStarov/thermal-encoder/image"
	"github.com/AlexStarov/thermal-encoder/util"
)

// textSection is everything Assemble writes from the style reset on.
func textSection(text ...byte) []byte {
	out := []byte{
		0x1B, 0x21, 0x00, 0x0A, // normal
		0x1B, 0x21, 0x08, // emphasized
		0x1B, 0x21, 0x30, // double width and height
	}
	out = append(out, text...)
	return append(out,
		0x0A, 0x1B, 0x21, 0x00, // reset
		0x0A, 0x0A, 0x0A,
		0x1D, 0x56, 0x31, 0x0A, // cut
	)
}

func patterned(width, height int, v byte) *imgInternal.Bitmap {
	bm := imgInternal.NewBitmap(width, height)
	for i := range bm.Data {
		bm.Data[i] = v
	}
	return bm
}

var small = imgInternal.Geometry{
	Width:       16,
	Height:      3,
	BytesPerRow: 2,
	Slices:      1,
	Padding:     4,
	Total:       16,
}

func TestAssembleNoImage(t *testing.T) {
	got, err := Assemble(nil, imgInternal.MX980L, []byte{0x41, 0x42})
	if err != nil {
		t.Fatal(err)
	}
	want := append([]byte{0x1B, 0x40}, textSection(0x41, 0x42)...)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Assemble() mismatch (-want +got):\n%s", diff)
	}
	if bytes.Contains(got, []byte{0x1D, 0x2A}) {
		t.Errorf("stream without image contains GS *")
	}
}

func TestAssembleEmptyText(t *testing.T) {
	got, err := Assemble(nil, imgInternal.MX980L, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 23 {
		t.Errorf("len = %d, want 23", len(got))
	}
	want := append([]byte{0x1B, 0x40}, textSection()...)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Assemble() mismatch (-want +got):\n%s", diff)
	}
}

func TestAssembleMX980L(t *testing.T) {
	g := imgInternal.MX980L
	bm := patterned(g.Width, g.Height, 0xA5)

	got, err := Assemble(bm, g, []byte("AB"))
	if err != nil {
		t.Fatal(err)
	}

	// 2 + 4 + 517 + 3520 + 0 + 3 + 3 + 10 + 2 + 11
	if len(got) != 4072 {
		t.Fatalf("len = %d, want 4072", len(got))
	}
	if diff := cmp.Diff([]byte{0x1B, 0x40, 0x1D, 0x2A, 44, 10}, got[:6]); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	if !bytes.Equal(got[6:523], make([]byte, 517)) {
		t.Errorf("padding is not 517 zero bytes")
	}
	if !bytes.Equal(got[523:4043], bm.Data) {
		t.Errorf("bitmap not copied verbatim after the padding")
	}
	if diff := cmp.Diff([]byte{0x1D, 0x2F, 0x01, 0x0A, 0x0A, 0x0A}, got[4043:4049]); diff != "" {
		t.Errorf("print graphic mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(textSection('A', 'B'), got[4049:]); diff != "" {
		t.Errorf("text section mismatch (-want +got):\n%s", diff)
	}
}

func TestAssembleFill(t *testing.T) {
	bm := patterned(16, 3, 0xFF)

	got, err := Assemble(bm, small, nil)
	if err != nil {
		t.Fatal(err)
	}

	want := []byte{0x1B, 0x40, 0x1D, 0x2A, 0x02, 0x01}
	want = append(want, 0, 0, 0, 0)                         // padding
	want = append(want, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF) // rows
	want = append(want, 0, 0, 0, 0, 0, 0)                   // fill to 16
	want = append(want, 0x1D, 0x2F, 0x01, 0x0A, 0x0A, 0x0A)
	want = append(want, textSection()...)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Assemble() mismatch (-want +got):\n%s", diff)
	}
}

func TestAssembleOverflow(t *testing.T) {
	tests := []struct {
		name string
		bm   *imgInternal.Bitmap
		g    imgInternal.Geometry
	}{
		{"MX980L 81 rows", patterned(352, 81, 0), imgInternal.MX980L},
		{"small 9 rows", patterned(16, 9, 0), small},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Assemble(tt.bm, tt.g, []byte("AB"))
			if !errors.Is(err, util.ErrPayloadOverflow) {
				t.Errorf("Assemble() error = %v, want ErrPayloadOverflow", err)
			}
			if got != nil {
				t.Errorf("Assemble() returned %d bytes on error", len(got))
			}
		})
	}

	// pixel data exactly filling the slot is fine; padding is not counted
	if _, err := Assemble(patterned(16, 8, 0), small, nil); err != nil {
		t.Errorf("Assemble() of a full slot: %v", err)
	}
}

func TestAssembleMismatch(t *testing.T) {
	bad := imgInternal.MX980L
	bad.Total = 1

	tests := []struct {
		name string
		bm   *imgInternal.Bitmap
		g    imgInternal.Geometry
	}{
		{"stride", patterned(100, 80, 0), imgInternal.MX980L},
		{"short data", &imgInternal.Bitmap{Width: 352, Height: 80, Stride: 44, Data: make([]byte, 10)}, imgInternal.MX980L},
		{"geometry", patterned(352, 80, 0), bad},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Assemble(tt.bm, tt.g, nil)
			if !errors.Is(err, util.ErrInvalidInput) {
				t.Errorf("Assemble() error = %v, want ErrInvalidInput", err)
			}
			if got != nil {
				t.Errorf("Assemble() returned %d bytes on error", len(got))
			}
		})
	}
}

func TestJobSize(t *testing.T) {
	tests := []struct {
		bm   *imgInternal.Bitmap
		g    imgInternal.Geometry
		text []byte
	}{
		{nil, imgInternal.MX980L, nil},
		{nil, imgInternal.MX980L, []byte("hello")},
		{patterned(352, 80, 1), imgInternal.MX980L, []byte("AB")},
		{patterned(352, 10, 1), imgInternal.MX980L, nil},
		{patterned(16, 3, 1), small, []byte{0x80}},
	}
	for _, tt := range tests {
		got, err := Assemble(tt.bm, tt.g, tt.text)
		if err != nil {
			t.Fatal(err)
		}
		if n := jobSize(tt.bm, tt.g, len(tt.text)); n != len(got) || cap(got) != len(got) {
			t.Errorf("jobSize() = %d, len %d cap %d", n, len(got), cap(got))
		}
	}
}

func TestStreamGrow(t *testing.T) {
	s := NewStream(0)
	s.Init()
	s.SetMode(ModeEmphasized | ModeUnderline)
	s.Text([]byte("x"))
	s.Feed(2)
	s.Cut()

	want := []byte{0x1B, 0x40, 0x1B, 0x21, 0x88, 'x', 0x0A, 0x0A, 0x1D, 0x56, 0x31, 0x0A}
	if diff := cmp.Diff(want, s.Bytes()); diff != "" {
		t.Errorf("Bytes() mismatch (-want +got):\n%s", diff)
	}
	if s.Len() != len(want) {
		t.Errorf("Len() = %d, want %d", s.Len(), len(want))
	}
}

func TestDefineGraphicWritesNothingOnError(t *testing.T) {
	s := NewStream(16)
	s.Init()
	if err := s.DefineGraphic(patterned(16, 9, 0xFF), small); err == nil {
		t.Fatal("DefineGraphic() succeeded for an oversized bitmap")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d after failed DefineGraphic, want 2", s.Len())
	}
}
