package util

import "fmt"

// IntLowHigh splits n into b little-endian bytes, the nL nH ... argument
// layout used by ESC/POS commands. n must fit into b bytes.
func IntLowHigh(n int, b int) ([]byte, error) {
	if b < 1 || b > 4 {
		return nil, fmt.Errorf("IntLowHigh: 1-4 bytes only, got %d: %w", b, ErrInvalidInput)
	}
	if n < 0 || n >= 1<<(8*uint(b)) {
		return nil, fmt.Errorf("IntLowHigh: %d does not fit into %d byte(s): %w", n, b, ErrInvalidInput)
	}

	out := make([]byte, b)
	for i := 0; i < b; i++ {
		out[i] = byte(n % 256)
		n = n / 256
	}
	return out, nil
}

// FloorDiv divides rounding toward negative infinity, unlike Go's / which
// truncates toward zero.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// BytesPerRow is the number of bytes holding width 1-bit pixels.
func BytesPerRow(width int) int {
	return (width + 7) >> 3
}
