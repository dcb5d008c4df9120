package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It is usable before Bootstrap so packages and tests never see nil.
var Log = logrus.New()

// Bootstrap configures Log for the given level name. Unknown levels fall back to info.
func Bootstrap(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}

	Log = &logrus.Logger{
		Out:   os.Stdout,
		Hooks: make(logrus.LevelHooks),
		Formatter: &logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		},
		Level:    lvl,
		ExitFunc: os.Exit,
	}

	if err != nil {
		Log.Warnf("unknown log level %q, using info", level)
	}
}
