package logger

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// Logger interface is used to allow tests to inject custom loggers.
type Logger interface {
	Fatalf(string, ...interface{})
	Debugf(string, ...interface{})
	Errorf(string, ...interface{})
	Infof(string, ...interface{})
	Warnf(string, ...interface{})
	Debug(...interface{})
	Warn(...interface{})
	Info(...interface{})
	Fatal(...interface{})
	Writer() io.Writer
	SetWriter(io.Writer)
	Prefix(string)
	Silent(bool)
}

type logger struct {
	*log.Logger
	prefix    string
	silentOut io.Writer
}

// NewLogger returns a new Logger instance backed by Logrus.
func NewLogger(level uint32) Logger {
	l := log.New()
	l.SetLevel(log.Level(level))
	logFormatter := &log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	}
	l.Formatter = logFormatter
	return &logger{Logger: l}
}

// NewNopLogger returns a Logger that discards all log statements. It is
// intended for embedding the codec in programs that manage their own logging.
func NewNopLogger() Logger {
	l := log.New()
	l.SetLevel(log.PanicLevel)
	l.SetOutput(io.Discard)
	return &logger{Logger: l}
}

// Prefix sets a string prepended to every log statement. Pass the empty
// string to clear it.
func (l *logger) Prefix(prefix string) {
	l.prefix = prefix
}

// Silent suppresses all log output when enabled and restores the previous
// writer when disabled. Disabling Silent without enabling it first panics.
func (l *logger) Silent(enabled bool) {
	if enabled {
		l.silentOut = l.Logger.Out
		l.Logger.SetOutput(io.Discard)
		return
	}
	if l.silentOut == nil {
		panic("logger: Silent(false) called without a previous Silent(true)")
	}
	l.Logger.SetOutput(l.silentOut)
	l.silentOut = nil
}

func (l *logger) Writer() io.Writer {
	return l.Out
}

func (l *logger) SetWriter(writer io.Writer) {
	l.Out = writer
}

func (l *logger) Fatalf(format string, v ...interface{}) {
	l.Logger.Fatalf(l.prefix+format, v...)
}

func (l *logger) Debugf(format string, v ...interface{}) {
	l.Logger.Debugf(l.prefix+format, v...)
}

func (l *logger) Errorf(format string, v ...interface{}) {
	l.Logger.Errorf(l.prefix+format, v...)
}

func (l *logger) Infof(format string, v ...interface{}) {
	l.Logger.Infof(l.prefix+format, v...)
}

func (l *logger) Warnf(format string, v ...interface{}) {
	l.Logger.Warnf(l.prefix+format, v...)
}

func (l *logger) Debug(v ...interface{}) {
	l.Logger.Debug(l.prefixed(v)...)
}

func (l *logger) Warn(v ...interface{}) {
	l.Logger.Warn(l.prefixed(v)...)
}

func (l *logger) Info(v ...interface{}) {
	l.Logger.Info(l.prefixed(v)...)
}

func (l *logger) Fatal(v ...interface{}) {
	l.Logger.Fatal(l.prefixed(v)...)
}

func (l *logger) prefixed(v []interface{}) []interface{} {
	if l.prefix == "" {
		return v
	}
	return append([]interface{}{l.prefix}, v...)
}
