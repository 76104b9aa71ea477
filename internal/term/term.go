// Package term owns the process-wide color switch and terminal detection.
//
// Output code asks for a semantic [Style] and calls [Paint]; whether escape
// sequences are emitted is decided once by [Configure] at startup.
package term

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/backmassage/pixmaster/internal/config"
)

// Style names what a piece of output means, not how it looks.
type Style int

const (
	Plain   Style = iota
	Info          // bold blue
	Good          // bold green
	Caution       // bold yellow
	Bad           // bold red
	Notice        // bold orange (256-color)
	Detail        // bold cyan
	Brand         // bold magenta
)

const reset = "\033[0m"

var sequences = [...]string{
	Plain:   "",
	Info:    "\033[1;94m",
	Good:    "\033[1;92m",
	Caution: "\033[1;93m",
	Bad:     "\033[1;91m",
	Notice:  "\033[1;38;5;208m",
	Detail:  "\033[1;96m",
	Brand:   "\033[1;95m",
}

var enabled bool

// Configure decides, once during startup, whether [Paint] emits color.
func Configure(mode config.ColorMode) {
	enabled = wantColor(mode, os.Getenv)
}

// Enabled reports whether colors are active.
func Enabled() bool { return enabled }

// Paint wraps text in the escape sequence for s. With colors off, or for
// [Plain], text is returned unchanged.
func Paint(s Style, text string) string {
	if !enabled || s <= Plain || int(s) >= len(sequences) {
		return text
	}
	return sequences[s] + text + reset
}

// wantColor applies the color mode. Auto means stdout is a terminal, NO_COLOR
// (https://no-color.org) is unset, and TERM is not "dumb".
func wantColor(mode config.ColorMode, getenv func(string) string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if getenv("NO_COLOR") != "" || strings.EqualFold(getenv("TERM"), "dumb") {
		return false
	}
	return IsTerminal(os.Stdout)
}

// IsTerminal reports whether f is attached to a TTY, including Cygwin/MSYS
// pseudo terminals.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
