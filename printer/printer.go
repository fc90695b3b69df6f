package printer

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"

	logInternal "github.com/AlexStarov/thermal-encoder/log"
)

// Printer hands finished jobs to a device over a Transport.
type Printer struct {
	t Transport

	sync.Mutex
}

// NewPrinter wraps w. Network connections to port 515 are spooled through
// LPD, anything else gets the raw bytes.
func NewPrinter(w io.ReadWriter) (*Printer, error) {
	if w == nil {
		return nil, fmt.Errorf("printer: nil writer")
	}

	var transport Transport
	if conn, ok := w.(net.Conn); ok && strings.HasSuffix(conn.RemoteAddr().String(), ":515") {
		transport = NewLPDTransport(conn, "lp")
	} else if rc, ok := w.(io.ReadWriteCloser); ok {
		transport = &RawTransport{conn: rc}
	} else {
		transport = &RawTransport{conn: nopCloser{w}}
	}

	return &Printer{t: transport}, nil
}

// NewTransportPrinter uses t as is.
func NewTransportPrinter(t Transport) *Printer {
	return &Printer{t: t}
}

// Send writes the whole job.
func (p *Printer) Send(job []byte) error {
	p.Lock()
	defer p.Unlock()

	for sent := 0; sent < len(job); {
		n, err := p.t.Write(job[sent:])
		if err != nil {
			return fmt.Errorf("printer: sent %d of %d bytes: %w", sent+n, len(job), err)
		}
		if n == 0 {
			return fmt.Errorf("printer: sent %d of %d bytes: %w", sent, len(job), io.ErrShortWrite)
		}
		sent += n
	}
	logInternal.Logf(logInternal.INFO, "sent %d bytes", len(job))
	return nil
}

// Write writes buf to printer.
func (p *Printer) Write(buf []byte) (int, error) {
	p.Lock()
	defer p.Unlock()
	return p.t.Write(buf)
}

// ReadStatus asks the printer whether it is online (DLE EOT 1). LPD queues
// have no status channel.
func (p *Printer) ReadStatus() (bool, error) {
	p.Lock()
	defer p.Unlock()

	if _, ok := p.t.(*LPDTransport); ok {
		return false, errors.New("printer: status is not available through LPD")
	}

	if _, err := p.t.Write(cmdStatusOnline); err != nil {
		return false, err
	}
	buf := make([]byte, 1)
	n, err := p.t.Read(buf)
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	// bit 3 set means offline
	return buf[0]&0x08 == 0, nil
}

// Close flushes spooled transports and closes the connection.
func (p *Printer) Close() error {
	p.Lock()
	defer p.Unlock()
	return p.t.Close()
}
