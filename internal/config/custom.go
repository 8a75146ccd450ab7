package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// CustomSection returns the raw value of a custom top-level section.
func (cfg *StructuredConfig) CustomSection(name string) (any, error) {
	raw, ok := cfg.Custom[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, name)
	}
	return raw, nil
}

// LoadCustomConfig decodes the named custom section into target.
func (cfg *StructuredConfig) LoadCustomConfig(target any, section string) error {
	raw, err := cfg.CustomSection(section)
	if err != nil {
		return err
	}
	return DecodeSection(raw, target)
}

// DecodeSection decodes a raw section, as held in StructuredConfig.Custom,
// into target using the yaml field names of target.
func DecodeSection(raw any, target any) error {
	data, err := yaml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to encode section: %w", err)
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode section: %w", err)
	}
	return nil
}
