package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltersBelowThreshold(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, WarnLevel)

	l.Debug("should not appear")
	l.Info("should not appear either")
	l.Warn("this one shows up")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Fatalf("expected debug/info to be filtered, got: %q", out)
	}
	if !strings.Contains(out, "this one shows up") {
		t.Fatalf("expected warn message in output, got: %q", out)
	}
}

func TestDiscardSuppressesEverything(t *testing.T) {
	l := Discard()
	l.Error("nobody should see this")
	l.Errorf("nor this: %d", 42)
}

func TestNilLoggerIsSafeToUseAsZeroValue(t *testing.T) {
	var l *Logger
	l.Info("must not panic")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"DEBUG": DebugLevel,
		"INFO":  InfoLevel,
		"WARN":  WarnLevel,
		"ERROR": ErrorLevel,
		"bogus": InfoLevel, // unrecognized input falls back to InfoLevel
	}
	for input, want := range cases {
		if got := ParseLevel(input); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}
