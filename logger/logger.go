package logger

import (
	"io"
	"os"
	"sync"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/sirupsen/logrus"
)

var (
	projectLogger *logrus.Logger
	once          sync.Once
)

// GetProjectLogger returns the shared project logger.
func GetProjectLogger() *logrus.Entry {
	once.Do(func() {
		projectLogger = logrus.New()
		projectLogger.Out = os.Stderr
		projectLogger.Formatter = &logrus.TextFormatter{FullTimestamp: true}
		projectLogger.Level = logrus.InfoLevel
	})
	return logrus.NewEntry(projectLogger)
}

// SetLevel changes the level of the project logger, e.g. "debug" or "warn".
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.WithStackTrace(err)
	}
	GetProjectLogger().Logger.SetLevel(lvl)
	return nil
}

// SetOutput redirects the project logger to w and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	l := GetProjectLogger().Logger
	prev := l.Out
	l.SetOutput(w)
	return prev
}
