package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

const serviceName = "timeline"

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// Unit tests do not go through main, so the logger must be usable without
// an explicit Init.
func init() {
	Init("info", false)
}

// Init configures the global logger. Production logs are JSON, development
// logs use the text formatter.
func Init(level string, production bool) {
	logger = logrus.New()
	logger.SetOutput(os.Stderr)

	if production {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	Log = logger.WithFields(logrus.Fields{
		"service":        serviceName,
		"is_development": !production,
	})
	if err != nil {
		Log.WithField("level", level).Warn("unknown log level, using info")
	}
}

// SetOutput redirects the global logger, mainly for tests.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}
