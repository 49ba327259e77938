package logger

import (
	"github.com/charmbracelet/log"
)

// Setup configures the global logger used through the package-level log
// functions. Debug mode adds timestamps and caller info.
func Setup(debug bool) {
	log.SetOutput(Output)
	log.SetFormatter(log.TextFormatter)
	if debug {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
		log.SetReportCaller(true)
		return
	}
	log.SetLevel(log.WarnLevel)
	log.SetReportTimestamp(false)
	log.SetReportCaller(false)
}

// Level returns the name of the current global level.
func Level() string {
	return log.GetLevel().String()
}
