// Package logger builds the logrus logger shared by the simulation services.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New creates a logger configured from the environment.
//
// LOG_LEVEL selects the level (default "info"); LOG_FORMAT=json switches to the
// JSON formatter, anything else uses the text formatter.
func New() *logrus.Logger {
	log := logrus.New()

	levelName, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		levelName = "info"
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	log.SetOutput(os.Stdout)
	return log
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// For returns a logger entry tagged with the owning system name.
func For(log logrus.FieldLogger, system string) *logrus.Entry {
	if log == nil {
		log = Discard()
	}
	return log.WithField("system", system)
}
