package printer

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	logInternal "github.com/AlexStarov/thermal-encoder/log"
)

// Transport carries bytes to a printer.
type Transport interface {
	Write([]byte) (int, error)
	Read([]byte) (int, error)
	Close() error
}

// -------------------- RAW --------------------

// RawTransport passes bytes straight through, e.g. to port 9100.
type RawTransport struct {
	conn io.ReadWriteCloser
}

func (r *RawTransport) Write(b []byte) (int, error) { return r.conn.Write(b) }
func (r *RawTransport) Read(b []byte) (int, error)  { return r.conn.Read(b) }
func (r *RawTransport) Close() error                { return r.conn.Close() }

// DialRaw connects to a raw socket printer.
func DialRaw(addr string, timeout time.Duration) (*Printer, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return NewTransportPrinter(&RawTransport{conn: conn}), nil
}

// -------------------- LPD --------------------

// LPDTransport buffers the job and submits it to an LPD queue (RFC 1179)
// when closed.
type LPDTransport struct {
	conn   net.Conn
	queue  string
	jobBuf bytes.Buffer
	closed bool
	mu     sync.Mutex
}

func NewLPDTransport(conn net.Conn, queue string) *LPDTransport {
	if queue == "" {
		queue = "lp"
	}
	return &LPDTransport{
		conn:  conn,
		queue: queue,
	}
}

// DialLPD connects to an LPD server.
func DialLPD(addr, queue string, timeout time.Duration) (*Printer, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return NewTransportPrinter(NewLPDTransport(conn, queue)), nil
}

func (l *LPDTransport) Write(data []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return 0, io.ErrClosedPipe
	}
	return l.jobBuf.Write(data)
}

func (l *LPDTransport) Read(b []byte) (int, error) {
	return l.conn.Read(b)
}

func (l *LPDTransport) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true

	if l.jobBuf.Len() == 0 {
		return l.conn.Close()
	}

	if err := l.flushJob(); err != nil {
		_ = l.conn.Close()
		return err
	}
	return l.conn.Close()
}

func (l *LPDTransport) flushJob() error {
	host, _ := os.Hostname()
	if host == "" {
		host = "localhost"
	}
	user := os.Getenv("USER")
	if user == "" {
		user = "thermalenc"
	}

	jobID := int(time.Now().UnixNano() % 1000)
	hostShort := host
	if i := strings.IndexByte(hostShort, '.'); i > 0 {
		hostShort = hostShort[:i]
	}
	cfName := fmt.Sprintf("cfA%03d%s", jobID, hostShort)
	dfName := fmt.Sprintf("dfA%03d%s", jobID, hostShort)

	// H host, P user, J job name, N source name, l print dfName as is
	control := fmt.Sprintf("H%s\nP%s\nJreceipt-%03d\nN%s\nl%s\n", host, user, jobID, dfName, dfName)

	if err := requestPrintJob(l.conn, l.queue); err != nil {
		return fmt.Errorf("LPD: receive job: %w", err)
	}
	if err := sendSubcommand(l.conn, 0x02, cfName, []byte(control)); err != nil {
		return fmt.Errorf("LPD: control file: %w", err)
	}
	data := l.jobBuf.Bytes()
	if err := sendSubcommand(l.conn, 0x03, dfName, data); err != nil {
		return fmt.Errorf("LPD: data file: %w", err)
	}
	logInternal.Logf(logInternal.DEBUG, "LPD: queued %d bytes on %q as %s", len(data), l.queue, dfName)

	l.jobBuf.Reset()
	return nil
}

// -------------------- LPD helpers --------------------

func requestPrintJob(conn net.Conn, queue string) error {
	// \x02 <queue> LF
	if err := writeAll(conn, append([]byte{0x02}, queue+"\n"...)); err != nil {
		return err
	}
	return readAck(conn)
}

// sendSubcommand sends a control (0x02) or data (0x03) file:
// code "<size> <name>" LF, then the contents and a terminating zero.
func sendSubcommand(conn net.Conn, code byte, name string, contents []byte) error {
	header := append([]byte{code}, strconv.Itoa(len(contents))+" "+name+"\n"...)
	if err := writeAll(conn, header); err != nil {
		return err
	}
	if err := readAck(conn); err != nil {
		return err
	}
	if err := writeAll(conn, append(contents[:len(contents):len(contents)], 0x00)); err != nil {
		return err
	}
	return readAck(conn)
}

func readAck(conn net.Conn) error {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	defer conn.SetReadDeadline(time.Time{})

	ack := make([]byte, 1)
	if _, err := io.ReadFull(conn, ack); err != nil {
		return fmt.Errorf("read ack: %w", err)
	}
	if ack[0] != 0x00 {
		return fmt.Errorf("request not acknowledged (0x%02x)", ack[0])
	}
	return nil
}

func writeAll(conn net.Conn, b []byte) error {
	for sent := 0; sent < len(b); {
		n, err := conn.Write(b[sent:])
		if err != nil {
			return err
		}
		sent += n
	}
	return nil
}

// -------------------- helpers --------------------

type nopCloser struct {
	io.ReadWriter
}

func (n nopCloser) Close() error { return nil }
