package logger

import (
	"bytes"
	"io"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestNewLogger(t *testing.T) {
	l := NewLogger(uint32(log.DebugLevel))
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestLogger_LogMethods(t *testing.T) {
	l := NewLogger(uint32(log.DebugLevel))
	l.SetWriter(io.Discard)

	// These should not panic
	l.Debug("test debug")
	l.Info("test info")
	l.Warn("test warn")
	l.Debugf("test %s", "debugf")
	l.Infof("test %s", "infof")
	l.Warnf("test %s", "warnf")
	l.Errorf("test %s", "errorf")
}

func TestLogger_Prefix(t *testing.T) {
	l := NewLogger(uint32(log.DebugLevel)).(*logger)

	// Set output to capture logs
	var buf bytes.Buffer
	l.Logger.SetOutput(&buf)

	l.Prefix("[codec] ")
	l.Info("message")
	l.Infof("formatted %s", "message")

	output := buf.String()
	if strings.Count(output, "[codec]") != 2 {
		t.Errorf("expected prefix on both statements, got: %s", output)
	}

	// Clear prefix
	l.Prefix("")
	buf.Reset()
	l.Info("no prefix")

	output = buf.String()
	if strings.Contains(output, "[codec]") {
		t.Errorf("expected no prefix in output, got: %s", output)
	}
}

func TestLogger_Silent(t *testing.T) {
	l := NewLogger(uint32(log.DebugLevel)).(*logger)

	// Capture original output
	var buf bytes.Buffer
	l.Logger.SetOutput(&buf)

	// Enable silent mode
	l.Silent(true)
	l.Info("should not appear")

	if buf.Len() > 0 {
		t.Errorf("expected no output in silent mode, got: %s", buf.String())
	}

	// Disable silent mode
	l.Silent(false)
	l.Info("should appear")

	if buf.Len() == 0 {
		t.Error("expected output after disabling silent mode")
	}
}

func TestLogger_SilentPanicsIfNotEnabled(t *testing.T) {
	l := NewLogger(uint32(log.DebugLevel)).(*logger)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic when disabling Silent without enabling first")
		}
	}()

	l.Silent(false) // Should panic
}

func TestNewNopLogger(t *testing.T) {
	l := NewNopLogger().(*logger)

	var buf bytes.Buffer
	l.Logger.SetOutput(&buf)

	l.Debug("test")
	l.Info("test")
	l.Warn("test")
	l.Errorf("test %s", "error")

	if buf.Len() > 0 {
		t.Errorf("expected no output from nop logger, got: %s", buf.String())
	}
}

func TestLogger_WriterRoundTrip(t *testing.T) {
	l := NewLogger(uint32(log.InfoLevel))

	var buf bytes.Buffer
	l.SetWriter(&buf)

	if l.Writer() != &buf {
		t.Error("expected Writer to return the writer set with SetWriter")
	}

	l.Info("to buffer")
	if !strings.Contains(buf.String(), "to buffer") {
		t.Errorf("expected log statement in buffer, got: %s", buf.String())
	}
}

// Ensure interfaces are implemented
var _ Logger = (*logger)(nil)
