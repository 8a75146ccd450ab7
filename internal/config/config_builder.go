package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

type configBuilder struct {
	configs []*StructuredConfig
	sources Sources
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

// build merges the collected configs. mergo never overwrites a non-zero
// field, so configs appended earlier take precedence.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}
	if err := mergo.Merge(config, defaults()); err != nil {
		return nil, fmt.Errorf("error merging defaults: %w", err)
	}

	config.Sources = mergeSources(b.configs)
	config.applyDevMode()

	return config, config.validate()
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	flags, err := ParseFlags(args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flags)
	return b
}

// withFiles loads the service configuration file and, when -cc names one,
// the common configuration file. The file locations come from the configs
// collected so far.
func (b *configBuilder) withFiles() *configBuilder {
	if b.err != nil {
		return b
	}

	b.sources = mergeSources(b.configs)

	serviceCfg, err := parseYAML(b.sources.ServiceFilePath())
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, serviceCfg)

	if b.sources.CommonConfig != "" {
		commonCfg, err := parseYAML(b.sources.CommonConfig)
		if err != nil {
			b.err = errors.Join(b.err, err)
			return b
		}
		b.configs = append(b.configs, commonCfg)
	}

	return b
}

// Loader re-reads the configuration with the same command-line arguments.
type Loader struct {
	args []string
}

func NewLoader(args []string) *Loader {
	return &Loader{args: args}
}

// Load builds and validates the configuration.
func (l *Loader) Load() (*StructuredConfig, error) {
	return GetStructuredConfig(l.args)
}
