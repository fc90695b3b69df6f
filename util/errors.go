package util

import "errors"

// Failure kinds reported by the encoder. Call sites wrap them with %w, test
// with errors.Is.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrPayloadOverflow = errors.New("payload overflow")
	ErrDecodeFailure   = errors.New("decode failure")
)

// KindOf names the failure kind carried by err, or "" when err is nil or of
// no known kind.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return "InvalidInput"
	case errors.Is(err, ErrPayloadOverflow):
		return "PayloadOverflow"
	case errors.Is(err, ErrDecodeFailure):
		return "DecodeFailure"
	}
	return ""
}
