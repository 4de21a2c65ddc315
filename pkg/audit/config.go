package audit

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/RouteLens/routelens/internal/output"
)

// Config holds all audit configuration.
type Config struct {
	// Root of the source tree to scan
	Root string `json:"root" yaml:"root"`

	// Root to search for specification documents (defaults to Root)
	SpecRoot string `json:"spec_root" yaml:"spec_root"`

	// Explicit specification files; skips discovery when set
	SpecFiles []string `json:"spec_files" yaml:"spec_files"`

	// Number of concurrent extraction workers
	Workers int `json:"workers" yaml:"workers"`

	// Output configuration
	Output output.Config `json:"output" yaml:"output"`

	// State persistence
	State StateConfig `json:"state" yaml:"state"`

	// Verbose logging
	Verbose bool `json:"verbose" yaml:"verbose"`

	// Debug mode
	Debug bool `json:"debug" yaml:"debug"`
}

// StateConfig controls scan history persistence.
type StateConfig struct {
	// Enable persisting scan reports between runs
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path to the history database file
	FilePath string `json:"file_path" yaml:"file_path"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Workers: 8,
		Output: output.Config{
			Format: "json",
			Pretty: true,
		},
		State: StateConfig{
			Enabled: false,
		},
		Verbose: false,
		Debug:   false,
	}
}

// LoadFromFile loads configuration from a file (JSON or YAML).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()

	// Try YAML first, then JSON
	if err := yaml.Unmarshal(data, config); err != nil {
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	return config, nil
}

// SaveToFile saves configuration to a file.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if len(path) > 5 && path[len(path)-5:] == ".json" {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("scan root is required")
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}

	if c.State.Enabled && c.State.FilePath == "" {
		return fmt.Errorf("state file path is required when state is enabled")
	}

	return nil
}
