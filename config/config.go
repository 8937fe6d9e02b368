package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/memfs/internal/util"
)

// Default configuration constants. See [Config] for field descriptions.
const (
	// DefaultFsName is the filesystem name used for log context
	DefaultFsName = "memfs"

	// DefaultRootName is the display name of the root node. It doubles as a
	// searchable name like any other.
	DefaultRootName = "/"
)

// CLI verbosity bounds, 1 (error) to 5 (trace); out-of-range values clamp.
const (
	MinVerbose   = 1
	MaxVerbose   = 5
	TraceVerbose = MaxVerbose
)

// Config contains runtime configuration values for the in-memory filesystem.
type Config struct {
	FsName   string        // Filesystem name used for log context (Default "memfs")
	RootName string        // Display name of the root node (Default "/")
	LogLvl   util.LogLevel // Resolved internal log level (Default info)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero
// values when loading partial configuration. LogLvl takes the CLI verbosity
// scale, not the internal level. See [Config] for field descriptions.
type ConfigOverride struct {
	FsName   *string `yaml:"fs_name,omitempty" json:"fs_name,omitempty"`
	RootName *string `yaml:"root_name,omitempty" json:"root_name,omitempty"`
	LogLvl   *int    `yaml:"verbose,omitempty" json:"verbose,omitempty"`
}

// NewConfig creates a Config from defaults with override applied on top.
// A nil override yields all defaults.
func NewConfig(override *ConfigOverride) *Config {
	cfg := &Config{
		FsName:   DefaultFsName,
		RootName: DefaultRootName,
		LogLvl:   util.InfoLevel,
	}
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.FsName != nil {
		c.FsName = *override.FsName
	}
	if override.RootName != nil {
		c.RootName = *override.RootName
	}
	if override.LogLvl != nil {
		c.LogLvl = VerboseToLevel(*override.LogLvl)
	}
}

// VerboseToLevel maps the CLI verbosity scale to an internal log level,
// clamping out-of-range values.
func VerboseToLevel(verbose int) util.LogLevel {
	if verbose < MinVerbose {
		verbose = MinVerbose
	}
	if verbose > MaxVerbose {
		verbose = MaxVerbose
	}
	lvls := [MaxVerbose]util.LogLevel{
		util.ErrorLevel,
		util.WarnLevel,
		util.InfoLevel,
		util.DebugLevel,
		util.TraceLevel,
	}
	return lvls[verbose-1]
}

// LoadConfigOverrideFile loads configuration overrides from a file without
// merging. Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with
// defaults. Convenience wrapper over NewConfig and LoadConfigOverrideFile.
func NewConfigFromFile(path string) (*Config, error) {
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	return NewConfig(override), nil
}
