// Package logrus adapts a *logrus.Entry to logging.Logger.
package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/mapkv/logging"
)

var _ logging.Logger = Logger{}

type Logger struct{ E *logrus.Entry }

// New wraps a *logrus.Logger with a "component" field set to name.
func New(l *logrus.Logger, name string) Logger {
	e := logrus.NewEntry(l)
	if name != "" {
		e = e.WithField("component", name)
	}
	return Logger{E: e}
}

func (l Logger) Debug(msg string, f logging.Fields) { l.with(f).Debug(msg) }
func (l Logger) Info(msg string, f logging.Fields)  { l.with(f).Info(msg) }
func (l Logger) Warn(msg string, f logging.Fields)  { l.with(f).Warn(msg) }
func (l Logger) Error(msg string, f logging.Fields) { l.with(f).Error(msg) }

func (l Logger) with(f logging.Fields) *logrus.Entry {
	if len(f) == 0 {
		return l.E
	}
	return l.E.WithFields(logrus.Fields(f))
}
