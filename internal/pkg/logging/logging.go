package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Log is the process wide structured logger.
var Log = logrus.New()

func init() {
	Log.SetFormatter(newJSONFormatter())
	Log.SetLevel(logrus.InfoLevel)
	Log.SetOutput(os.Stdout)
}

func newJSONFormatter() *logrus.JSONFormatter {
	return &logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	}
}

// Setup applies the configured level and format. Dev mode switches to the
// human readable text formatter.
func Setup(level string, dev bool) {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		Log.WithField("level", level).Warn("unknown log level, falling back to info")
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if dev {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		Log.SetFormatter(newJSONFormatter())
	}
}

// SetOutput redirects all log output, mainly for tests.
func SetOutput(w io.Writer) {
	Log.SetOutput(w)
}

// For returns an entry tagged with the emitting component.
func For(component string) *logrus.Entry {
	return Log.WithField("source", component)
}

// WithUser returns an entry tagged with the component and the acting user.
func WithUser(component string, userID interface{}) *logrus.Entry {
	if userID == nil || userID == "" {
		userID = "0"
	}
	return Log.WithFields(logrus.Fields{
		"source":  component,
		"user_id": userID,
	})
}
