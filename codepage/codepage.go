// Package codepage maps Unicode text to the printer's single-byte code page.
package codepage

import (
	"golang.org/x/text/encoding/charmap"
)

// LF is the printer's line feed.
const LF = 0x0A

// Table maps characters to code page bytes. A Table is immutable once built
// and safe for concurrent use.
type Table struct {
	enc map[rune]byte
	dec map[byte]rune
}

// NewTable builds a Table from m. When several characters map to the same
// byte, Decode reports the smallest of them.
func NewTable(m map[rune]byte) *Table {
	t := &Table{
		enc: make(map[rune]byte, len(m)),
		dec: make(map[byte]rune, len(m)),
	}
	for r, b := range m {
		t.enc[r] = b
		if prev, ok := t.dec[b]; !ok || r < prev {
			t.dec[b] = r
		}
	}
	return t
}

// Lookup returns the byte mapped to r.
func (t *Table) Lookup(r rune) (byte, bool) {
	b, ok := t.enc[r]
	return b, ok
}

// Decode returns the character mapped to b.
func (t *Table) Decode(b byte) (rune, bool) {
	r, ok := t.dec[b]
	return r, ok
}

// Len is the number of mapped characters.
func (t *Table) Len() int {
	return len(t.enc)
}

// Runes lists the mapped characters in no particular order.
func (t *Table) Runes() []rune {
	out := make([]rune, 0, len(t.enc))
	for r := range t.enc {
		out = append(out, r)
	}
	return out
}

// Hebrew is CP862 as the MX980L firmware uses it: the 27 Hebrew letters at
// 0x80-0x9A plus space, newline, digits, colon and period.
var Hebrew = newHebrew()

func newHebrew() *Table {
	m := map[rune]byte{
		' ':  0x20,
		'\n': LF,
		':':  0x3A,
		'.':  0x2E,
	}
	for d := '0'; d <= '9'; d++ {
		m[d] = byte(d)
	}
	// alef..tav
	for b := 0x80; b <= 0x9A; b++ {
		m[charmap.CodePage862.DecodeByte(byte(b))] = byte(b)
	}
	return NewTable(m)
}

// Encode maps text character by character. Characters found in t are
// replaced by their byte, other ASCII passes through unchanged and anything
// else is dropped.
func Encode(text string, t *Table) []byte {
	return EncodeRunes([]rune(text), t)
}

// EncodeRunes is Encode over already decoded characters.
func EncodeRunes(text []rune, t *Table) []byte {
	out := make([]byte, 0, len(text))
	for _, r := range text {
		if b, ok := t.Lookup(r); ok {
			out = append(out, b)
		} else if r < 0x80 {
			out = append(out, byte(r))
		}
	}
	return out
}

// Dropped counts the characters of text that Encode leaves out.
func Dropped(text string, t *Table) int {
	n := 0
	for _, r := range text {
		if _, ok := t.Lookup(r); !ok && r >= 0x80 {
			n++
		}
	}
	return n
}

// Decode maps encoded bytes back to text. Bytes below 0x80 not in t are
// taken as ASCII; other unmapped bytes become U+FFFD.
func Decode(b []byte, t *Table) string {
	out := make([]rune, 0, len(b))
	for _, c := range b {
		if r, ok := t.Decode(c); ok {
			out = append(out, r)
		} else if c < 0x80 {
			out = append(out, rune(c))
		} else {
			out = append(out, '\uFFFD')
		}
	}
	return string(out)
}
