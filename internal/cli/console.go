package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/mmr-tortoise/filebundler/internal/model"
)

// console writes the user-facing result lines of a command. Colour is
// used only when the destination is a terminal.
type console struct {
	w        io.Writer
	okColor  *color.Color
	errColor *color.Color
}

func newConsole(w io.Writer) *console {
	c := &console{
		w:        w,
		okColor:  color.New(color.FgGreen),
		errColor: color.New(color.FgRed, color.Bold),
	}

	if isTerminal(w) {
		c.okColor.EnableColor()
		c.errColor.EnableColor()
	} else {
		c.okColor.DisableColor()
		c.errColor.DisableColor()
	}
	return c
}

// isTerminal reports whether w is a TTY. NO_COLOR disables colour even
// on a terminal (color.NoColor honours it).
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Success prints a confirmation line.
func (c *console) Success(format string, args ...interface{}) {
	_, _ = c.okColor.Fprintln(c.w, fmt.Sprintf(format, args...))
}

// Error prints err with its category prefix and returns the exit code
// the process should terminate with.
func (c *console) Error(err error) model.ExitCode {
	code := exitCodeOf(err)
	_, _ = c.errColor.Fprint(c.w, code.Prefix()+":")
	_, _ = fmt.Fprintf(c.w, " %s\n", err.Error())
	return code
}
