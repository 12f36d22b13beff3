package internal

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"ERROR":   LogLevelError,
		"warn":    LogLevelWarn,
		" debug ": LogLevelDebug,
		"TRACE":   LogLevelTrace,
		"":        LogLevelInfo,
		"verbose": LogLevelInfo,
	}
	for in, want := range tests {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q): expected %d, got %d", in, want, got)
		}
	}
}

func TestEnabled(t *testing.T) {
	l := NewLogger(LogLevelInfo)
	if !l.Enabled(LogLevelWarn) {
		t.Error("expected warn to be enabled at info level")
	}
	if l.Enabled(LogLevelDebug) {
		t.Error("expected debug to be disabled at info level")
	}
	var nilLogger *Logger
	if nilLogger.Enabled(LogLevelError) {
		t.Error("nil logger must not be enabled")
	}
}

func TestTraceRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	NewLogger(LogLevelDebug).Trace("hidden %d", 1)
	if buf.Len() != 0 {
		t.Errorf("trace written at debug level: %q", buf.String())
	}

	NewLogger(LogLevelTrace).Trace("shown %d", 2)
	if !strings.Contains(buf.String(), "[TRACE] shown 2") {
		t.Errorf("expected trace line, got %q", buf.String())
	}
}
