//go:build !windows

package printer

import "fmt"

// NewSpoolerPrinter is only available on Windows.
func NewSpoolerPrinter(printerName string) (*Printer, error) {
	return nil, fmt.Errorf("print spooler %q: only supported on Windows", printerName)
}
