package printer

import (
	"fmt"
	"slices"
	"time"

	"go.bug.st/serial"

	logInternal "github.com/AlexStarov/thermal-encoder/log"
)

// NewSerialPrinter opens a printer on a serial port (COM3, /dev/ttyUSB0,
// /dev/cu.usbmodem*), 8N1 at baudRate.
func NewSerialPrinter(portName string, baudRate int) (*Printer, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	logInternal.Logf(logInternal.DEBUG, "serial ports: %v", ports)

	if !slices.Contains(ports, portName) {
		return nil, fmt.Errorf("serial port %s not found (have %v)", portName, ports)
	}

	mode := &serial.Mode{
		BaudRate: baudRate,
		Parity:   serial.NoParity,
		DataBits: 8,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}
	if err := port.SetReadTimeout(100 * time.Millisecond); err != nil {
		port.Close()
		return nil, fmt.Errorf("serial port %s: %w", portName, err)
	}
	logInternal.Logf(logInternal.INFO, "opened %s at %d baud", portName, baudRate)

	return NewTransportPrinter(&RawTransport{conn: port}), nil
}
