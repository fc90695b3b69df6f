package printer

import (
	"fmt"

	"github.com/google/gousb"
)

type usbConn struct {
	ctx  *gousb.Context
	dev  *gousb.Device
	done func()
	out  *gousb.OutEndpoint
	in   *gousb.InEndpoint
}

// NewUSBPrinter claims the default interface of the first device with the
// given IDs and talks to its bulk endpoints.
func NewUSBPrinter(vendorID, productID gousb.ID) (*Printer, error) {
	ctx := gousb.NewContext()
	dev, err := ctx.OpenDeviceWithVIDPID(vendorID, productID)
	if err != nil || dev == nil {
		ctx.Close()
		if err == nil {
			err = fmt.Errorf("no device %s:%s", vendorID, productID)
		}
		return nil, fmt.Errorf("usb: %w", err)
	}
	if err := dev.SetAutoDetach(true); err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("usb: auto detach: %w", err)
	}

	intf, done, err := dev.DefaultInterface()
	if err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("usb: claim interface: %w", err)
	}

	conn := &usbConn{ctx: ctx, dev: dev, done: done}
	for _, ep := range intf.Setting.Endpoints {
		if ep.TransferType != gousb.TransferTypeBulk {
			continue
		}
		switch {
		case ep.Direction == gousb.EndpointDirectionOut && conn.out == nil:
			conn.out, err = intf.OutEndpoint(ep.Number)
		case ep.Direction == gousb.EndpointDirectionIn && conn.in == nil:
			// status reads are optional
			conn.in, _ = intf.InEndpoint(ep.Number)
		}
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("usb: endpoint %s: %w", ep, err)
		}
	}
	if conn.out == nil {
		conn.Close()
		return nil, fmt.Errorf("usb: %s:%s has no bulk out endpoint", vendorID, productID)
	}

	return NewTransportPrinter(&RawTransport{conn: conn}), nil
}

func (u *usbConn) Read(p []byte) (int, error) {
	if u.in != nil {
		return u.in.Read(p)
	}
	return 0, fmt.Errorf("USB read not supported")
}

func (u *usbConn) Write(p []byte) (int, error) {
	return u.out.Write(p)
}

func (u *usbConn) Close() error {
	if u.done != nil {
		u.done()
	}
	if u.dev != nil {
		u.dev.Close()
	}
	if u.ctx != nil {
		u.ctx.Close()
	}
	return nil
}
