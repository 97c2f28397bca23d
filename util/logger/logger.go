package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

const (
	PanicLevel = logrus.PanicLevel
	FatalLevel = logrus.FatalLevel
	ErrorLevel = logrus.ErrorLevel
	WarnLevel  = logrus.WarnLevel
	InfoLevel  = logrus.InfoLevel
	DebugLevel = logrus.DebugLevel
	TraceLevel = logrus.TraceLevel
)

// Logger represents logrus logger with helpers to log a message with key / value fields
type Logger struct {
	*logrus.Logger
}

// New returns new configured logger
func New(lvl logrus.Level) *Logger {
	formatter := prefixed.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.Stamp,
		ForceFormatting: true,
	}
	log := logrus.Logger{
		Out:       os.Stderr,
		Formatter: &formatter,
		Level:     lvl,
		Hooks:     make(logrus.LevelHooks),
	}
	return &Logger{Logger: &log}
}

// TraceFi logs <msg> with fields <kv> at trace level
func (l *Logger) TraceFi(msg string, kv ...any) {
	l.WithFields(Fields(kv...)).Trace(msg)
}

// DebugFi logs <msg> with fields <kv> at debug level
func (l *Logger) DebugFi(msg string, kv ...any) {
	l.WithFields(Fields(kv...)).Debug(msg)
}

// InfoFi logs <msg> with fields <kv> at info level
func (l *Logger) InfoFi(msg string, kv ...any) {
	l.WithFields(Fields(kv...)).Info(msg)
}

// WarnFi logs <msg> with fields <kv> at warning level
func (l *Logger) WarnFi(msg string, kv ...any) {
	l.WithFields(Fields(kv...)).Warn(msg)
}

// ErrorFi logs <msg> with fields <kv> at error level
func (l *Logger) ErrorFi(msg string, kv ...any) {
	l.WithFields(Fields(kv...)).Error(msg)
}

// Fields returns logrus fields built from flat key / value list <kv>.
//
// Keys are formatted with %v. The value of a trailing key without a pair is "<missing>".
func Fields(kv ...any) logrus.Fields {
	fields := logrus.Fields{}
	for i := 0; i < len(kv); i += 2 {
		key := fmt.Sprintf("%v", kv[i])
		if i+1 < len(kv) {
			fields[key] = kv[i+1]
		} else {
			fields[key] = "<missing>"
		}
	}
	return fields
}

// ParseLevel returns logrus level parsed from <name> such as "debug" or "info"
func ParseLevel(name string) (logrus.Level, error) {
	return logrus.ParseLevel(name)
}
