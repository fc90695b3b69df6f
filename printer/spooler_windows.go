//go:build windows

package printer

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	winspool             = windows.NewLazySystemDLL("winspool.drv")
	procOpenPrinter      = winspool.NewProc("OpenPrinterW")
	procClosePrinter     = winspool.NewProc("ClosePrinter")
	procStartDocPrinter  = winspool.NewProc("StartDocPrinterW")
	procEndDocPrinter    = winspool.NewProc("EndDocPrinter")
	procStartPagePrinter = winspool.NewProc("StartPagePrinter")
	procEndPagePrinter   = winspool.NewProc("EndPagePrinter")
	procWritePrinter     = winspool.NewProc("WritePrinter")
)

// DOC_INFO_1
type docInfo struct {
	name     *uint16
	output   *uint16
	dataType *uint16
}

// spool calls a winspool function that returns FALSE on failure.
func spool(proc *windows.LazyProc, args ...uintptr) error {
	if r1, _, err := proc.Call(args...); r1 == 0 {
		return fmt.Errorf("%s: %w", proc.Name, err)
	}
	return nil
}

// spoolDoc is one open RAW document on a spooled printer.
type spoolDoc struct {
	h windows.Handle
}

func (d *spoolDoc) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	var n uint32
	err := spool(procWritePrinter, uintptr(d.h), uintptr(unsafe.Pointer(&p[0])),
		uintptr(len(p)), uintptr(unsafe.Pointer(&n)))
	return int(n), err
}

func (d *spoolDoc) Read([]byte) (int, error) {
	return 0, errors.New("spooler: printer status is not readable")
}

// Close ends the page and the document, which releases the job to the
// printer, and closes the handle.
func (d *spoolDoc) Close() error {
	return errors.Join(
		spool(procEndPagePrinter, uintptr(d.h)),
		spool(procEndDocPrinter, uintptr(d.h)),
		spool(procClosePrinter, uintptr(d.h)),
	)
}

// NewSpoolerPrinter opens printerName through the Windows spooler and
// starts a RAW document, so the job bytes reach the device untouched.
func NewSpoolerPrinter(printerName string) (*Printer, error) {
	name, err := windows.UTF16PtrFromString(printerName)
	if err != nil {
		return nil, fmt.Errorf("spooler: printer name %q: %w", printerName, err)
	}
	var h windows.Handle
	if err := spool(procOpenPrinter, uintptr(unsafe.Pointer(name)), uintptr(unsafe.Pointer(&h)), 0); err != nil {
		return nil, fmt.Errorf("spooler: open %q: %w", printerName, err)
	}

	di := docInfo{
		name:     windows.StringToUTF16Ptr("Thermal receipt"),
		dataType: windows.StringToUTF16Ptr("RAW"),
	}
	if err := spool(procStartDocPrinter, uintptr(h), 1, uintptr(unsafe.Pointer(&di))); err != nil {
		spool(procClosePrinter, uintptr(h))
		return nil, fmt.Errorf("spooler: %q: %w", printerName, err)
	}
	if err := spool(procStartPagePrinter, uintptr(h)); err != nil {
		spool(procEndDocPrinter, uintptr(h))
		spool(procClosePrinter, uintptr(h))
		return nil, fmt.Errorf("spooler: %q: %w", printerName, err)
	}
	return NewTransportPrinter(&RawTransport{conn: &spoolDoc{h: h}}), nil
}
