package config

import (
	"flag"
	"fmt"
	"io"
)

// DefaultConfigDir and DefaultConfigFile locate the service configuration
// when neither flags nor environment name it.
const (
	DefaultConfigDir  = "./res"
	DefaultConfigFile = "configuration.yaml"
)

// ParseFlags parses the command-line flags of an application service.
//
// Flags:
//
//	-cf/--configFile  service configuration file name
//	-cd/--configDir   directory holding the configuration file
//	-p/--profile      profile sub-directory under the configuration directory
//	-cc/--commonConfig path to the common configuration file
//	-o/--overwrite    accepted for compatibility, logged only
//	-d/--dev          developer mode, all hosts become localhost
func ParseFlags(args []string) (*StructuredConfig, error) {
	var sources Sources

	fs := flag.NewFlagSet("app-service", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&sources.ConfigFile, "cf", "", "Service configuration file name")
	fs.StringVar(&sources.ConfigFile, "configFile", "", "Service configuration file name (alias)")
	fs.StringVar(&sources.ConfigDir, "cd", "", "Configuration directory")
	fs.StringVar(&sources.ConfigDir, "configDir", "", "Configuration directory (alias)")
	fs.StringVar(&sources.Profile, "p", "", "Configuration profile")
	fs.StringVar(&sources.Profile, "profile", "", "Configuration profile (alias)")
	fs.StringVar(&sources.CommonConfig, "cc", "", "Common configuration file path")
	fs.StringVar(&sources.CommonConfig, "commonConfig", "", "Common configuration file path (alias)")
	fs.BoolVar(&sources.Overwrite, "o", false, "Overwrite configuration")
	fs.BoolVar(&sources.Overwrite, "overwrite", false, "Overwrite configuration (alias)")
	fs.BoolVar(&sources.DevMode, "d", false, "Developer mode")
	fs.BoolVar(&sources.DevMode, "dev", false, "Developer mode (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFlags, err)
	}

	return &StructuredConfig{Sources: sources}, nil
}
