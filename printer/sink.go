package printer

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlexStarov/thermal-encoder/util"
)

// WriteFile saves a job for later transfer to the printer.
func WriteFile(path string, job []byte) error {
	if err := os.WriteFile(path, job, 0o644); err != nil {
		return fmt.Errorf("write job: %w", err)
	}
	return nil
}

// HexDump writes job as rows of 16 upper-case hex bytes, the format
// ParseHex and vendor hex senders read back.
func HexDump(w io.Writer, job []byte) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < len(job); i += 16 {
		end := min(i+16, len(job))
		for j, b := range job[i:end] {
			if j > 0 {
				bw.WriteByte(' ')
			}
			fmt.Fprintf(bw, "%02X", b)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ParseHex reads hex bytes separated by anything that is not a hex digit
// ("1B 40", "1b,40", one per line). A single separator-free blob is read two
// digits at a time.
func ParseHex(s string) ([]byte, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !strings.ContainsRune("0123456789abcdefABCDEF", r)
	})
	if len(fields) == 1 && len(fields[0]) > 2 {
		b, err := hex.DecodeString(fields[0])
		if err != nil {
			return nil, fmt.Errorf("parse hex: %w: %w", util.ErrInvalidInput, err)
		}
		return b, nil
	}

	out := make([]byte, 0, len(fields))
	for _, f := range fields {
		if len(f) > 2 {
			return nil, fmt.Errorf("parse hex: %q is not a byte: %w", f, util.ErrInvalidInput)
		}
		if len(f) == 1 {
			f = "0" + f
		}
		b, err := hex.DecodeString(f)
		if err != nil {
			return nil, fmt.Errorf("parse hex: %w: %w", util.ErrInvalidInput, err)
		}
		out = append(out, b[0])
	}
	return out, nil
}
