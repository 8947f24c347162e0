package config

import (
	"fmt"
	"sort"
)

// Presets adjust the defaults of a scheme.
var Presets = map[string]map[string]func(*Config){
	"dual": {
		"standard": func(c *Config) {},
		"waters": func(c *Config) {
			c.ShowWaters = true
		},
		"draft": func(c *Config) {
			c.Samples = 11
			c.Rate = 0
		},
	},
	"single": {
		"standard": func(c *Config) {},
		"waters": func(c *Config) {
			c.ShowWaters = true
		},
		"draft": func(c *Config) {
			c.Samples = 11
			c.Rate = 0
		},
		"closeup": func(c *Config) {
			c.View.Range = 2
			c.Samples = 201
		},
	},
}

// GetPreset returns the defaults of scheme with the named preset applied.
func GetPreset(scheme, name string) *Config {
	cfg := DefaultConfig(scheme)
	if err := ApplyPreset(cfg, name); err != nil {
		return nil
	}
	return cfg
}

// ApplyPreset adjusts cfg with the named preset of its own scheme.
func ApplyPreset(cfg *Config, name string) error {
	apply, ok := Presets[cfg.Scheme][name]
	if !ok {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, ListPresets(cfg.Scheme))
	}
	apply(cfg)
	return nil
}

func ListPresets(scheme string) []string {
	presets, ok := Presets[scheme]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
