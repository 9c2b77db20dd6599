package config

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/blaisecz/meal-cycle/internal/domain"
	"gopkg.in/yaml.v3"
)

var builtinProfiles = map[string]domain.CycleProfile{
	"standard": {
		Name:                  "standard",
		Offsets:               []int{30, 60, 90, 120, 180},
		GraceMinutes:          10,
		EarlyAllowanceMinutes: 2,
		CeilingMinutes:        240,
	},
	// Short schedule for manual testing.
	"dev": {
		Name:                  "dev",
		Offsets:               []int{5, 10, 15},
		GraceMinutes:          2,
		EarlyAllowanceMinutes: 2,
		CeilingMinutes:        40,
	},
}

// BuiltinProfile returns a copy of the named built-in profile.
func BuiltinProfile(name string) (domain.CycleProfile, error) {
	p, ok := builtinProfiles[name]
	if !ok {
		return domain.CycleProfile{}, fmt.Errorf("unknown cycle profile %q (available: %v)", name, BuiltinProfileNames())
	}
	return p.Clone(), nil
}

// BuiltinProfileNames lists the built-in profiles in name order.
func BuiltinProfileNames() []string {
	names := make([]string, 0, len(builtinProfiles))
	for name := range builtinProfiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ReadProfileFile decodes and validates a YAML profile. Unknown keys are rejected.
func ReadProfileFile(path string) (domain.CycleProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.CycleProfile{}, fmt.Errorf("read profile file: %w", err)
	}

	var p domain.CycleProfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return domain.CycleProfile{}, fmt.Errorf("decode profile file %s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = "custom"
	}
	if err := p.Validate(); err != nil {
		return domain.CycleProfile{}, fmt.Errorf("profile file %s: %w", path, err)
	}
	return p, nil
}

// LoadProfile resolves the single authoritative profile: the file when set,
// otherwise the named built-in.
func LoadProfile(cfg *Config) (domain.CycleProfile, error) {
	if cfg.CycleProfileFile != "" {
		return ReadProfileFile(cfg.CycleProfileFile)
	}
	return BuiltinProfile(cfg.CycleProfile)
}
