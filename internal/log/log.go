package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// InitLogs returns the logger shared by all chartgrd commands.
// Warnings and progress go to w, findings go to stdout.
func InitLogs(w io.Writer, debug bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableQuote:     true,
	})
	log.SetLevel(logrus.InfoLevel)
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}

	return log
}

// Discard returns a logger that drops everything, for tests and silent mode.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
