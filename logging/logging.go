package logging

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

const prefix = "nbatch"

var (
	InfoLog = log.NewWithOptions(os.Stdout, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          prefix,
	})

	// ErrLog also reports the caller, since it is used for warnings and errors
	// raised deep inside the renderer where the call site is what matters
	ErrLog = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		ReportCaller:    true,
		TimeFormat:      time.TimeOnly,
		Prefix:          prefix,
	})
)

// SetLevel sets the level of both loggers. Valid levels are: debug, info, warn, error, fatal
func SetLevel(level string) error {

	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}

	InfoLog.SetLevel(lvl)
	ErrLog.SetLevel(lvl)
	return nil
}

// New returns a logger with the same options as ErrLog that writes to w.
// Useful for capturing renderer warnings.
func New(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportCaller: true,
		Prefix:       prefix,
	})
}
