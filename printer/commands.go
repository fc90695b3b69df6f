package printer

// ESC/POS control bytes.
const (
	ESC byte = 0x1B
	GS  byte = 0x1D
	DLE byte = 0x10
	EOT byte = 0x04
	LF  byte = 0x0A
)

// PrintMode is the argument of ESC !. The command replaces the whole mode,
// so sending ModeEmphasized and then ModeDoubleWidth leaves only double
// width on.
type PrintMode byte

const (
	ModeNormal       PrintMode = 0x00
	ModeEmphasized   PrintMode = 0x08
	ModeDoubleHeight PrintMode = 0x10
	ModeDoubleWidth  PrintMode = 0x20
	ModeUnderline    PrintMode = 0x80

	ModeEnlarged = ModeDoubleHeight | ModeDoubleWidth
)

var (
	cmdInit         = []byte{ESC, '@'}         // ESC @ (Initialize printer)
	cmdDefineGraph  = []byte{GS, '*'}          // GS * x y, define downloaded bit image
	cmdPrintGraph   = []byte{GS, '/', 0x01}    // GS / m, print downloaded bit image, double width
	cmdSelectMode   = []byte{ESC, '!'}         // ESC ! n
	cmdCut          = []byte{GS, 'V', '1', LF} // GS V 1, partial cut
	cmdStatusOnline = []byte{DLE, EOT, 0x01}   // DLE EOT 1, printer status
)

const (
	// line feeds between the logo and the text
	graphicFeed = 3

	// blank lines before the cut, so the text clears the cutter
	cutFeed = 3
)
