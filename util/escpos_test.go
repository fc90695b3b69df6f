package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIntLowHigh(t *testing.T) {
	tests := []struct {
		n, b    int
		want    []byte
		wantErr bool
	}{
		{44, 1, []byte{44}, false},
		{0x1234, 2, []byte{0x34, 0x12}, false},
		{3520, 4, []byte{0xc0, 0x0d, 0, 0}, false},
		{256, 1, nil, true},
		{-1, 2, nil, true},
		{1, 0, nil, true},
		{1, 5, nil, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.n, tt.b), func(t *testing.T) {
			got, err := IntLowHigh(tt.n, tt.b)
			if (err != nil) != tt.wantErr {
				t.Fatalf("IntLowHigh() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("IntLowHigh() error = %v, want ErrInvalidInput", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("IntLowHigh() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{292, 2, 146},
		{7, 2, 3},
		{-7, 2, -4},
		{-8, 2, -4},
		{7, -2, -4},
		{-7, -2, 3},
		{0, 3, 0},
	}
	for _, tt := range tests {
		if got := FloorDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("FloorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestBytesPerRow(t *testing.T) {
	for w, want := range map[int]int{1: 1, 8: 1, 9: 2, 352: 44, 353: 45} {
		if got := BytesPerRow(w); got != want {
			t.Errorf("BytesPerRow(%d) = %d, want %d", w, got, want)
		}
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{errors.New("other"), ""},
		{fmt.Errorf("rasterize: %w", ErrInvalidInput), "InvalidInput"},
		{fmt.Errorf("assemble: %w", ErrPayloadOverflow), "PayloadOverflow"},
		{fmt.Errorf("load: %w: %w", ErrDecodeFailure, errors.New("bad png")), "DecodeFailure"},
	}
	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
