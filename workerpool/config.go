package workerpool

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the file-loadable pool configuration.
type Config struct {
	Name    string `yaml:"name" json:"name"`
	Workers int    `yaml:"workers" json:"workers"`
	// MaxInFlight caps queued plus executing tasks when the pool is
	// wrapped in a Bounded. Zero means unbounded.
	MaxInFlight int `yaml:"max_in_flight" json:"max_in_flight"`
}

// LoadConfig reads a pool configuration from a YAML or JSON file, chosen by
// file extension.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}

	return &cfg, nil
}

// NewFromConfig creates a pool from cfg. A zero or negative worker count
// defaults to the number of CPUs. cfg.Name overrides opts.Name when opts
// carries none.
func NewFromConfig(cfg *Config, opts Options) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if opts.Name == "" {
		opts.Name = cfg.Name
	}
	return NewWithOptions(workers, opts)
}
