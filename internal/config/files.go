package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ServiceFilePath returns the location of the service configuration file:
// ConfigDir[/Profile]/ConfigFile.
func (s Sources) ServiceFilePath() string {
	dir := s.ConfigDir
	if dir == "" {
		dir = DefaultConfigDir
	}
	file := s.ConfigFile
	if file == "" {
		file = DefaultConfigFile
	}
	if filepath.IsAbs(file) {
		return file
	}
	if s.Profile != "" {
		dir = filepath.Join(dir, s.Profile)
	}
	return filepath.Join(dir, file)
}

func parseYAML(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrReadConfigFile, path, err)
	}

	cfg := new(StructuredConfig)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrReadConfigFile, path, err)
	}

	return cfg, nil
}

// mergeSources returns the first non-empty value of every source field.
func mergeSources(configs []*StructuredConfig) Sources {
	var out Sources
	for _, cfg := range configs {
		s := cfg.Sources
		if out.ConfigFile == "" {
			out.ConfigFile = s.ConfigFile
		}
		if out.ConfigDir == "" {
			out.ConfigDir = s.ConfigDir
		}
		if out.Profile == "" {
			out.Profile = s.Profile
		}
		if out.CommonConfig == "" {
			out.CommonConfig = s.CommonConfig
		}
		out.Overwrite = out.Overwrite || s.Overwrite
		out.DevMode = out.DevMode || s.DevMode
	}
	return out
}
