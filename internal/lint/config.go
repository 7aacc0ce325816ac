// Package lint drives route-template checking for the routelint command
// line tool: configuration loading, template checking, diagnostic
// rendering and file watching.
package lint

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	semver "github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// Config is the routelint configuration file. YAML and TOML are both
// accepted; the format is picked by file extension.
type Config struct {
	// Templates to check in addition to command line arguments.
	Templates []string `yaml:"templates" toml:"templates"`
	// MinVersion is a semver constraint the tool version must satisfy,
	// e.g. ">=1.2.0". Empty means any version.
	MinVersion string `yaml:"min_version" toml:"min_version"`
	// NoColor disables styled output.
	NoColor bool `yaml:"no_color" toml:"no_color"`
}

// LoadConfig reads a configuration file, choosing the parser by
// extension (.yaml/.yml or .toml).
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := &Config{}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse yaml config %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse toml config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", path)
	}
	return cfg, nil
}

// CheckToolVersion verifies the running tool version against the
// config's MinVersion constraint.
func (c *Config) CheckToolVersion(version string) error {
	if c.MinVersion == "" {
		return nil
	}
	con, err := semver.NewConstraint(c.MinVersion)
	if err != nil {
		return fmt.Errorf("invalid min_version constraint %q: %w", c.MinVersion, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid tool version %q: %w", version, err)
	}
	if !con.Check(v) {
		return fmt.Errorf("routelint %s does not satisfy required version %q", version, c.MinVersion)
	}
	return nil
}
