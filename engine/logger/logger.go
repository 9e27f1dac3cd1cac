// package logger holds the process-wide structured logger used by every engine component.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger. It is usable before Init is called and logs at Info in text format.
var Log = logrus.New()

// Init configures Log from the environment.
// LOG_LEVEL selects the level (default "info") and LOG_FORMAT=json switches to JSON output.
// Call it once at program start.
func Init() {
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// Component returns an entry tagged with the given component name.
//
// Parameters:
//   - name: the component name recorded in the "component" field
//
// Returns:
//   - *logrus.Entry: the tagged entry
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
