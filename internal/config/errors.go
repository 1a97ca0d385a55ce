package config

import "errors"

// Registry errors.
var (
	// ErrUnknownSetting indicates a name the registry does not define.
	ErrUnknownSetting = errors.New("config: unknown setting")

	// ErrInvalidValue indicates a value that fails the setting's
	// validation. The setting keeps its previous value.
	ErrInvalidValue = errors.New("config: invalid value")
)
