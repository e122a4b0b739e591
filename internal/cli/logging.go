package cli

import (
	"io"
	"log/slog"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// newLogger returns a slog logger backed by a charmbracelet/log text
// handler on w. Only warnings and errors are shown unless verbose is set.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := charmlog.WarnLevel
	if verbose {
		level = charmlog.DebugLevel
	}

	handler := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           level,
		Formatter:       charmlog.TextFormatter,
		ReportTimestamp: true,
		TimeFormat:      time.StampMilli,
	})
	handler.SetColorProfile(termenv.ColorProfile())

	return slog.New(handler)
}
