// Command thermalenc builds a receipt print job from a logo and Hebrew text
// and writes it to a file, a hex dump or a printer.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/gousb"

	"github.com/AlexStarov/thermal-encoder/codepage"
	"github.com/AlexStarov/thermal-encoder/config"
	imgInternal "github.com/AlexStarov/thermal-encoder/image"
	logInternal "github.com/AlexStarov/thermal-encoder/log"
	"github.com/AlexStarov/thermal-encoder/printer"
	"github.com/AlexStarov/thermal-encoder/receipt"
	"github.com/AlexStarov/thermal-encoder/util"
)

type options struct {
	configPath   string
	imagePath    string
	text         string
	textFile     string
	fromHex      string
	out          string
	hex          bool
	threshold    int
	thresholdSet bool
	verbose      bool
	output       config.Output
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("thermalenc", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "TOML configuration file")
	fs.StringVar(&o.imagePath, "image", "", "logo image (png, jpeg, gif, bmp, tiff, webp)")
	fs.StringVar(&o.text, "text", "", "receipt text")
	fs.StringVar(&o.textFile, "text-file", "", "read receipt text from file (UTF-8, UTF-16 or Windows-1255)")
	fs.StringVar(&o.fromHex, "from-hex", "", "send a hex dump instead of building a job")
	fs.StringVar(&o.out, "out", "", "write the job to this file")
	fs.BoolVar(&o.hex, "hex", false, "print the job as hex to stdout")
	fs.IntVar(&o.threshold, "threshold", imgInternal.DefaultThreshold, "ink threshold 0-255, overrides the config file")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")
	fs.StringVar(&o.output.Network, "net", "", "raw socket printer host:port, or LPD server with -lpd-queue")
	fs.StringVar(&o.output.LPDQueue, "lpd-queue", "", "LPD queue name")
	fs.StringVar(&o.output.Serial, "serial", "", "serial port")
	fs.IntVar(&o.output.Baud, "baud", 0, "serial baud rate")
	fs.StringVar(&o.output.USB, "usb", "", "USB printer vid:pid in hex")
	fs.StringVar(&o.output.Spooler, "spooler", "", "Windows printer name")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "threshold" {
			o.thresholdSet = true
		}
	})
	if o.text != "" && o.textFile != "" {
		return o, fmt.Errorf("-text and -text-file are mutually exclusive: %w", util.ErrInvalidInput)
	}
	return o, nil
}

// merge applies command line overrides to cfg.
func merge(cfg config.Config, o options) (config.Config, error) {
	if o.thresholdSet {
		cfg.Raster.Threshold = o.threshold
	}
	if o.out != "" {
		cfg.Output.File = o.out
	}
	devices := 0
	for _, s := range []string{o.output.Network, o.output.Serial, o.output.USB, o.output.Spooler} {
		if s != "" {
			devices++
		}
	}
	if devices > 1 {
		return cfg, fmt.Errorf("choose one of -net, -serial, -usb, -spooler: %w", util.ErrInvalidInput)
	}
	if devices == 1 {
		cfg.Output.Network = o.output.Network
		cfg.Output.Serial = o.output.Serial
		cfg.Output.USB = o.output.USB
		cfg.Output.Spooler = o.output.Spooler
	}
	if o.output.LPDQueue != "" {
		cfg.Output.LPDQueue = o.output.LPDQueue
	}
	if o.output.Baud != 0 {
		cfg.Output.Baud = o.output.Baud
	}
	if o.verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, cfg.Validate()
}

func parseLevel(s string) (logInternal.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return logInternal.DEBUG, nil
	case "", "info":
		return logInternal.INFO, nil
	case "warn", "warning":
		return logInternal.WARN, nil
	case "error":
		return logInternal.ERROR, nil
	}
	return 0, fmt.Errorf("unknown log level %q: %w", s, util.ErrInvalidInput)
}

func parseUSB(s string) (gousb.ID, gousb.ID, error) {
	vid, pid, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("usb %q: want vid:pid: %w", s, util.ErrInvalidInput)
	}
	v, err := strconv.ParseUint(vid, 16, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("usb vendor %q: %w", vid, util.ErrInvalidInput)
	}
	p, err := strconv.ParseUint(pid, 16, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("usb product %q: %w", pid, util.ErrInvalidInput)
	}
	return gousb.ID(v), gousb.ID(p), nil
}

// openPrinter connects to the device selected in out, or returns nil when
// none is.
func openPrinter(out config.Output) (*printer.Printer, error) {
	switch {
	case out.Network != "" && out.LPDQueue != "":
		return printer.DialLPD(out.Network, out.LPDQueue, 5*time.Second)
	case out.Network != "":
		return printer.DialRaw(out.Network, 5*time.Second)
	case out.Serial != "":
		return printer.NewSerialPrinter(out.Serial, out.Baud)
	case out.USB != "":
		vid, pid, err := parseUSB(out.USB)
		if err != nil {
			return nil, err
		}
		return printer.NewUSBPrinter(vid, pid)
	case out.Spooler != "":
		return printer.NewSpoolerPrinter(out.Spooler)
	}
	return nil, nil
}

func buildJob(cfg config.Config, o options) ([]byte, error) {
	if o.fromHex != "" {
		data, err := os.ReadFile(o.fromHex)
		if err != nil {
			return nil, err
		}
		return printer.ParseHex(string(data))
	}

	var img image.Image
	if o.imagePath != "" {
		var err error
		if img, err = imgInternal.Load(o.imagePath); err != nil {
			return nil, err
		}
	}

	text := o.text
	if o.textFile != "" {
		var err error
		if text, err = codepage.ReadText(o.textFile); err != nil {
			return nil, err
		}
	}

	return receipt.FromConfig(cfg).Produce(img, text)
}

func run(args []string) error {
	o, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg := config.DefaultConfig
	if o.configPath != "" {
		if cfg, err = config.Load(o.configPath); err != nil {
			return err
		}
	}
	if cfg, err = merge(cfg, o); err != nil {
		return err
	}

	lvl, err := parseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logInternal.SetLevel(lvl)
	if err := logInternal.SetDir(cfg.Log.Dir); err != nil {
		return err
	}
	job, err := buildJob(cfg, o)
	if err != nil {
		return err
	}
	logInternal.Logf(logInternal.INFO, "job: %d bytes, geometry %v", len(job), cfg.ImageGeometry())

	if o.hex {
		if err := printer.HexDump(os.Stdout, job); err != nil {
			return err
		}
	}

	p, err := openPrinter(cfg.Output)
	if err != nil {
		return err
	}
	if p != nil {
		if err := p.Send(job); err != nil {
			p.Close()
			return err
		}
		if err := p.Close(); err != nil {
			return err
		}
	}

	// a device or -hex replaces the default file unless -out asks for it
	if cfg.Output.File != "" && (o.out != "" || (p == nil && !o.hex)) {
		if err := printer.WriteFile(cfg.Output.File, job); err != nil {
			return err
		}
		logInternal.Logf(logInternal.INFO, "wrote %s", cfg.Output.File)
	}
	return nil
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, util.ErrPayloadOverflow):
		return 3
	case errors.Is(err, util.ErrInvalidInput), errors.Is(err, util.ErrDecodeFailure):
		return 2
	}
	return 1
}

func main() {
	err := run(os.Args[1:])
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		logInternal.PrintIfErr("thermalenc "+util.KindOf(err), &err)
	}
	os.Exit(exitCode(err))
}
