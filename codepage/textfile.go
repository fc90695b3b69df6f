package codepage

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/AlexStarov/thermal-encoder/util"
)

var boms = [][]byte{
	{0xEF, 0xBB, 0xBF},
	{0xFF, 0xFE},
	{0xFE, 0xFF},
}

// ReadText reads a text file written by whatever tool the shop uses, see
// DecodeText.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	s, err := DecodeText(data)
	if err != nil {
		return "", fmt.Errorf("read text %s: %w", path, err)
	}
	return s, nil
}

// DecodeText turns file contents into a string. A byte order mark selects
// UTF-8 or UTF-16; otherwise valid UTF-8 is taken as is and anything else is
// read as Windows-1255. Line endings are normalised to "\n".
func DecodeText(data []byte) (string, error) {
	var s string
	switch {
	case hasBOM(data):
		out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
		if err != nil {
			return "", fmt.Errorf("decode text: %w: %w", util.ErrDecodeFailure, err)
		}
		s = string(out)
	case utf8.Valid(data):
		s = string(data)
	default:
		out, err := charmap.Windows1255.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("decode text: %w: %w", util.ErrDecodeFailure, err)
		}
		s = string(out)
	}
	return strings.ReplaceAll(s, "\r\n", "\n"), nil
}

func hasBOM(data []byte) bool {
	for _, bom := range boms {
		if bytes.HasPrefix(data, bom) {
			return true
		}
	}
	return false
}
