package view

import (
	"errors"
	"testing"
)

func TestModeActive(t *testing.T) {
	tests := []struct {
		mode   Mode
		signal bool
		want   bool
	}{
		{ModeOn, false, true},
		{ModeOn, true, true},
		{ModeOff, false, false},
		{ModeOff, true, false},
		{ModeAuto, false, false},
		{ModeAuto, true, true},
	}

	for _, tt := range tests {
		if got := tt.mode.Active(tt.signal); got != tt.want {
			t.Errorf("%v.Active(%v) = %v, want %v", tt.mode, tt.signal, got, tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"on", ModeOn},
		{"true", ModeOn},
		{"1", ModeOn},
		{"off", ModeOff},
		{"false", ModeOff},
		{"0", ModeOff},
		{"auto", ModeAuto},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if err != nil {
			t.Errorf("ParseMode(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseModeInvalid(t *testing.T) {
	for _, in := range []string{"", "maybe", "ON "} {
		if _, err := ParseMode(in); !errors.Is(err, ErrInvalidMode) {
			t.Errorf("ParseMode(%q) error = %v, want ErrInvalidMode", in, err)
		}
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeOff, "off"},
		{ModeOn, "on"},
		{ModeAuto, "auto"},
		{Mode(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("String = %q, want %q", got, tt.want)
		}
	}
}
