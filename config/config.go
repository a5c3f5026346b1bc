package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the concord tool.
type Config struct {
	Index   IndexConfig   `yaml:"index"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// IndexConfig holds indexing configuration.
type IndexConfig struct {
	Includes      []string `yaml:"includes"`
	Excludes      []string `yaml:"excludes"`
	CaseSensitive bool     `yaml:"case_sensitive"`
	Tokenizer     string   `yaml:"tokenizer"` // "boundary" or "whitespace"
	Workers       int      `yaml:"workers"`   // 0 = one worker per chapter
	FailFast      bool     `yaml:"fail_fast"`
}

// OutputConfig holds output configuration.
type OutputConfig struct {
	Path string `yaml:"path"` // listing destination, empty = stdout
	DB   string `yaml:"db"`   // optional persisted concordance database
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Index: IndexConfig{
			Includes:      []string{"**/*.txt"},
			Excludes:      []string{"**/.concord/**"},
			CaseSensitive: true,
			Tokenizer:     "boundary",
			Workers:       0,
			FailFast:      false,
		},
		Output: OutputConfig{
			Path: "",
			DB:   "",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for concord.yaml).
func LoadFromDir(dir string) (*Config, error) {
	// Try concord.yaml in the directory
	path := filepath.Join(dir, "concord.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	// Try .concord/config.yaml
	path = filepath.Join(dir, ".concord", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	// Return defaults
	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// IndexDBPath returns the default path to the concordance database.
func IndexDBPath(dir string) string {
	return filepath.Join(dir, ".concord", "index.db")
}
