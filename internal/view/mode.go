package view

import "fmt"

// Mode is a tri-state trigger setting.
type Mode int

const (
	// ModeOff disables the trigger.
	ModeOff Mode = iota
	// ModeOn enables the trigger unconditionally.
	ModeOn
	// ModeAuto enables the trigger when the activation signal is set.
	ModeAuto
)

// String returns the setting value form: "off", "on" or "auto".
func (m Mode) String() string {
	switch m {
	case ModeOff:
		return "off"
	case ModeOn:
		return "on"
	case ModeAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// ParseMode parses a setting value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "off", "false", "0":
		return ModeOff, nil
	case "on", "true", "1":
		return ModeOn, nil
	case "auto":
		return ModeAuto, nil
	default:
		return ModeOff, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Active resolves the mode against the activation signal.
func (m Mode) Active(signal bool) bool {
	switch m {
	case ModeOn:
		return true
	case ModeAuto:
		return signal
	default:
		return false
	}
}
