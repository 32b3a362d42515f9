// Package config loads experiment configurations. Config files live in a
// configuration/ directory next to the experiment scripts; JSON is the
// historical format, YAML is accepted by extension.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dir is the directory experiment configs are read from, relative to the
// working directory.
const Dir = "configuration"

// Config describes one experiment.
type Config struct {
	// Experiment name, used for run records and output filenames.
	Name string `json:"name" yaml:"name"`

	// Device selection
	Device   string `json:"device" yaml:"device"`
	Instance string `json:"instance" yaml:"instance"` // hub/group/project
	Token    string `json:"token,omitempty" yaml:"token,omitempty"`

	// Circuit shape
	QubitsLayout []int `json:"qubits_layout" yaml:"qubits_layout"`
	NQubitsList  []int `json:"nqubits_list" yaml:"nqubits_list"`

	// Execution
	Shots   int `json:"shots" yaml:"shots"`
	Split   int `json:"split" yaml:"split"`
	Workers int `json:"workers,omitempty" yaml:"workers,omitempty"`

	// Output
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// DefaultConfig returns a config suitable for local simulator smoke runs.
func DefaultConfig() *Config {
	return &Config{
		Name:         "smoke",
		Device:       "local_simulator",
		QubitsLayout: []int{0, 1, 2, 3, 4},
		NQubitsList:  []int{2, 3, 4},
		Shots:        1024,
		Split:        1,
		OutputDir:    "results",
	}
}

// Load reads, validates and env-overrides the named config from Dir. The
// name may carry a .json or .yaml/.yml extension; bare names are read as
// JSON, matching the historical layout.
func Load(name string) (*Config, error) {
	return LoadFrom(Dir, name)
}

// LoadFrom is Load with an explicit directory, for tests and odd layouts.
func LoadFrom(dir, name string) (*Config, error) {
	if name == "" {
		return nil, fmt.Errorf("config: empty config name")
	}
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", name, err)
	}
	return cfg, nil
}

// Save writes the config as indented JSON.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// applyEnvOverrides lets the environment win over the file for secrets and
// machine-local tuning.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("QGATES_TOKEN"); v != "" {
		c.Token = v
	}
	if v := os.Getenv("QGATES_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Workers = n
		}
	}
	if v := os.Getenv("QGATES_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
}

// Validate checks the cross-field invariants an experiment relies on.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("missing experiment name")
	}
	if c.Device == "" {
		return fmt.Errorf("missing device name")
	}
	if len(c.NQubitsList) == 0 {
		return fmt.Errorf("empty nqubits_list")
	}
	maxN := 0
	for _, n := range c.NQubitsList {
		if n < 1 {
			return fmt.Errorf("invalid qubit count %d in nqubits_list", n)
		}
		if n > maxN {
			maxN = n
		}
	}
	if len(c.QubitsLayout) < maxN {
		return fmt.Errorf("qubits_layout has %d entries, largest experiment needs %d",
			len(c.QubitsLayout), maxN)
	}
	if c.Shots < 1 {
		return fmt.Errorf("shots must be positive, got %d", c.Shots)
	}
	if c.Split < 1 {
		return fmt.Errorf("split must be >= 1, got %d", c.Split)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("missing output_dir")
	}
	return nil
}

// List returns the config filenames available under dir, sorted.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("config: list %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
