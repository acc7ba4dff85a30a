// Package logger configures the process-wide logrus logger.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// Init configures the global logger. Logs go to stderr so the operator
// summary on stdout stays clean. Debug mode switches to a human-readable
// format with full timestamps and enables debug-level output.
func Init(debug bool) {
	log.SetOutput(os.Stderr)
	if debug {
		log.SetLevel(logrus.DebugLevel)
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.SetFormatter(&logrus.JSONFormatter{})
	}
}

// L returns the global logger.
func L() *logrus.Logger {
	return log
}

// SetOutput redirects log output; tests use this to silence or capture logs.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}
