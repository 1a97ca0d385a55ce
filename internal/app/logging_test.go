package app

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"", LogLevelInfo},
		{"verbose", LogLevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LogLevelWarn, &buf)

	log.Debugf("remote args: %v", []string{"--remote"})
	log.Infof("connected")
	log.Warnf("slow reply")
	log.Errorf("send failed")

	out := buf.String()
	if strings.Contains(out, "remote args") || strings.Contains(out, "connected") {
		t.Errorf("output contains suppressed levels: %q", out)
	}
	if !strings.Contains(out, "slow reply") || !strings.Contains(out, "send failed") {
		t.Errorf("output missing warn/error lines: %q", out)
	}
	if lines := strings.Count(out, "\n"); lines != 2 {
		t.Errorf("lines = %d, want 2", lines)
	}
}

func TestLoggerSetLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LogLevelInfo, &buf)

	log.Debugf("hidden")
	log.SetLevel(LogLevelDebug)
	log.Debugf("visible")

	if got := log.Level(); got != LogLevelDebug {
		t.Errorf("Level = %v", got)
	}
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("output contains filtered line: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("output missing debug line after SetLevel: %q", out)
	}
}

func TestLoggerSetLevelReachesComponents(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LogLevelInfo, &buf)
	child := log.WithComponent("vim")

	child.Debugf("early trace")
	log.SetLevel(LogLevelDebug)
	child.Debugf("late trace")

	out := buf.String()
	if strings.Contains(out, "early trace") {
		t.Errorf("output contains line filtered before the toggle: %q", out)
	}
	if !strings.Contains(out, "late trace") {
		t.Errorf("debug toggle did not reach the component logger; output = %q", out)
	}
	if got := child.Level(); got != LogLevelDebug {
		t.Errorf("component Level = %v, want LogLevelDebug", got)
	}
}

func TestLoggerComponentTag(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LogLevelInfo, &buf).WithComponent("bridge")

	log.Infof("started")

	if !strings.Contains(buf.String(), "vimview/bridge: started") {
		t.Errorf("output = %q, want component tag", buf.String())
	}
}
