// Package logger configures the process-wide application logger.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a logrus logger from LOG_LEVEL and LOG_FORMAT.  Level
// defaults to info, format to text; LOG_FORMAT=json switches to JSON
// output for log shippers.  Output always goes to stdout.
func New() *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if os.Getenv("LOG_FORMAT") == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	log.SetOutput(os.Stdout)
	return log
}
