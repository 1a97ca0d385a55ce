package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// LoadFile overlays settings from a YAML file of "name: value" pairs.
// A missing file is not an error; an unknown name or invalid value is,
// and aborts the load (earlier pairs stay applied, each notifying
// observers as usual).
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := r.Set(name, raw[name]); err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
	}
	return nil
}
