package printer

import (
	"fmt"

	imgInternal "github.com/AlexStarov/thermal-encoder/image"
	logInternal "github.com/AlexStarov/thermal-encoder/log"
)

// Stream accumulates a print job. The buffer is sized up front and filled
// through a cursor; Bytes hands out the finished job.
type Stream struct {
	buf []byte
	n   int
}

// NewStream returns an empty stream with room for capacity bytes.
func NewStream(capacity int) *Stream {
	return &Stream{buf: make([]byte, capacity)}
}

func (s *Stream) grow(k int) {
	if s.n+k <= len(s.buf) {
		return
	}
	nb := make([]byte, 2*len(s.buf)+k)
	copy(nb, s.buf[:s.n])
	s.buf = nb
}

func (s *Stream) put(b ...byte) {
	s.grow(len(b))
	s.n += copy(s.buf[s.n:], b)
}

func (s *Stream) zeros(k int) {
	s.grow(k)
	clear(s.buf[s.n : s.n+k])
	s.n += k
}

// Len is the number of bytes written so far.
func (s *Stream) Len() int {
	return s.n
}

// Bytes returns the job. Appending to the result does not touch the stream.
func (s *Stream) Bytes() []byte {
	return s.buf[:s.n:s.n]
}

// Init resets the printer.
func (s *Stream) Init() {
	s.put(cmdInit...)
}

// Feed writes n line feeds.
func (s *Stream) Feed(n int) {
	for i := 0; i < n; i++ {
		s.put(LF)
	}
}

// SetMode selects the character print mode.
func (s *Stream) SetMode(m PrintMode) {
	s.put(cmdSelectMode...)
	s.put(byte(m))
}

// Text writes already encoded text verbatim.
func (s *Stream) Text(b []byte) {
	s.put(b...)
}

// Cut feeds to the cutter and cuts the paper.
func (s *Stream) Cut() {
	s.put(cmdCut...)
}

// jobSize is the exact length Assemble produces.
func jobSize(bm *imgInternal.Bitmap, g imgInternal.Geometry, textLen int) int {
	n := len(cmdInit)
	if bm != nil {
		n += len(cmdDefineGraph) + 2 + g.Padding + len(bm.Data) + fillSize(bm, g)
		n += len(cmdPrintGraph) + graphicFeed
	}
	mode := len(cmdSelectMode) + 1
	n += 3*mode + 1 // reset, feed, emphasized, enlarged
	n += textLen
	n += 1 + mode + cutFeed // feed, reset, blank lines
	n += len(cmdCut)
	return n
}

// Assemble builds the complete job: init, the stored logo when bm is not
// nil, then text printed bold and enlarged, then the cut. bm must have been
// rasterized for g. On error nothing is returned.
func Assemble(bm *imgInternal.Bitmap, g imgInternal.Geometry, text []byte) ([]byte, error) {
	s := NewStream(jobSize(bm, g, len(text)))

	s.Init()

	if bm != nil {
		if err := s.DefineGraphic(bm, g); err != nil {
			return nil, fmt.Errorf("assemble: %w", err)
		}
		s.PrintGraphic()
		s.Feed(graphicFeed)
	}

	s.SetMode(ModeNormal)
	s.Feed(1)
	s.SetMode(ModeEmphasized)
	s.SetMode(ModeEnlarged)

	s.Text(text)

	s.Feed(1)
	s.SetMode(ModeNormal)
	s.Feed(cutFeed)
	s.Cut()

	logInternal.Logf(logInternal.DEBUG, "assemble: %d bytes, logo %v, %d text bytes", s.Len(), bm != nil, len(text))
	return s.Bytes(), nil
}
