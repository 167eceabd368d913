package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
)

// Printer writes human output to out and diagnostics to errOut.
type Printer struct {
	out    io.Writer
	errOut io.Writer
}

// NewPrinter returns a printer over the given writers.
func NewPrinter(out, errOut io.Writer) *Printer {
	return &Printer{out: out, errOut: errOut}
}

// Success prints a green message with a checkmark prefix.
func (p *Printer) Success(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		msg = "✓ " + msg
	}
	_, _ = green.Fprint(p.out, msg)
}

// Info prints a plain message.
func (p *Printer) Info(format string, a ...any) {
	_, _ = fmt.Fprintf(p.out, format, a...)
}

// Warning prints a yellow message to errOut.
func (p *Printer) Warning(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "⚠️") {
		msg = "⚠️  " + msg
	}
	_, _ = yellow.Fprint(p.errOut, msg)
}

// Error prints title, explanation and suggestions to errOut and returns a
// short error for cobra, which is configured not to print it again.
func (p *Printer) Error(title, explanation string, suggestions []string) error {
	_, _ = red.Fprintf(p.errOut, "%s\n\n", title)
	if explanation != "" {
		_, _ = fmt.Fprintf(p.errOut, "%s\n", explanation)
	}

	if len(suggestions) > 0 {
		_, _ = fmt.Fprintln(p.errOut)
		if len(suggestions) == 1 {
			_, _ = fmt.Fprintf(p.errOut, "%s\n", suggestions[0])
		} else {
			_, _ = fmt.Fprintln(p.errOut, "Either:")
			for i, s := range suggestions {
				_, _ = fmt.Fprintf(p.errOut, "  %d. %s\n", i+1, s)
			}
		}
	}

	return fmt.Errorf("%s", title)
}
