package logging

import (
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

// RunID tags every log line of one pipeline run so runs can be grepped apart
// in aggregated output.
var RunID string

func Init() {
	Log = logrus.New()
	Log.SetOutput(os.Stdout)
	Log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	Log.SetLevel(logLevel)

	RunID = uuid.NewString()
}

func WithField(key string, value interface{}) *logrus.Entry {
	return Log.WithField("run_id", RunID).WithField(key, value)
}

func WithFields(fields logrus.Fields) *logrus.Entry {
	return Log.WithField("run_id", RunID).WithFields(fields)
}
