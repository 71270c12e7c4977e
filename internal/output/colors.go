package output

import (
	"io"
	"os"

	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
	colorBold   = "\033[1m"
)

// palette returns color codes when writing to a terminal and empty strings
// otherwise
type palette bool

func paletteFor(w io.Writer) palette {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false
	}
	// On Windows, enable ANSI escape sequences (see ansi_windows.go)
	return palette(enableANSI(f.Fd()))
}

func (p palette) c(code string) string {
	if p {
		return code
	}
	return ""
}
