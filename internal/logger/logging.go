// Package logger provides charmbracelet/log loggers set up for bicig-toli.
//
// Logs always go to stderr: in server mode stdout carries the msgpack
// stream and must not see anything else.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Output is where loggers created by this package write.
var Output io.Writer = os.Stderr

// New creates a prefixed logger at the current global level.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(Output, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithConfig creates a logger with custom config
func NewWithConfig(prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(Output, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}
