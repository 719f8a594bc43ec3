// Package logging provides the logrus-backed implementation of the
// per-package Logger interfaces. Library packages default to a no-op
// logger; the CLI wires this one in.
package logging

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Logger adapts a logrus entry to the Debug/Info/Warn/Error interface the
// internal packages expect, where fields are alternating key-value pairs.
type Logger struct {
	entry *logrus.Entry
}

// New creates a Logger at the given level ("debug", "info", "warn",
// "error"). An unrecognized level falls back to warn.
func New(level string) *Logger {
	l := logrus.New()
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.WarnLevel
	}
	l.SetLevel(parsed)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &Logger{entry: logrus.NewEntry(l)}
}

func (l *Logger) Debug(msg string, fields ...interface{}) {
	l.entry.WithFields(toFields(fields)).Debug(msg)
}

func (l *Logger) Info(msg string, fields ...interface{}) {
	l.entry.WithFields(toFields(fields)).Info(msg)
}

func (l *Logger) Warn(msg string, fields ...interface{}) {
	l.entry.WithFields(toFields(fields)).Warn(msg)
}

func (l *Logger) Error(msg string, err error, fields ...interface{}) {
	l.entry.WithFields(toFields(fields)).WithError(err).Error(msg)
}

func toFields(kvs []interface{}) logrus.Fields {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(kvs); i += 2 {
		key, ok := kvs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvs[i])
		}
		fields[key] = kvs[i+1]
	}
	return fields
}
