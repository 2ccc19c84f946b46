// Package config loads the settings of the command line tool from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/xitonix/xshift/shift"
	"gopkg.in/yaml.v3"
)

const (
	// Shift1EnvVar overrides the first shift value
	Shift1EnvVar = "XSHIFT_SHIFT1"
	// Shift2EnvVar overrides the second shift value
	Shift2EnvVar = "XSHIFT_SHIFT2"
)

// ErrMissingShift is returned when a shift value has not been configured
var ErrMissingShift = errors.New("the shift values have not been specified")

// Config the settings of the command line tool
type Config struct {
	// Shift1 the first shift value (n)
	Shift1 *int `yaml:"shift1,omitempty"`
	// Shift2 the second shift value (m)
	Shift2 *int `yaml:"shift2,omitempty"`

	RawFile     string `yaml:"raw_file"`
	EncodedFile string `yaml:"encoded_file"`
	DecodedFile string `yaml:"decoded_file"`

	Watch   Watch `yaml:"watch"`
	Verbose bool  `yaml:"verbose"`
}

// Watch the settings of the directory watcher
type Watch struct {
	Source          string        `yaml:"source"`
	Target          string        `yaml:"target"`
	Decode          bool          `yaml:"decode"`
	Polling         bool          `yaml:"polling"`
	PollingInterval time.Duration `yaml:"polling_interval"`
	SettleTime      time.Duration `yaml:"settle_time"`
	Parallelism     uint16        `yaml:"parallelism"`
}

// Default returns the default settings
func Default() *Config {
	return &Config{
		RawFile:     "raw_text.txt",
		EncodedFile: "encrypted_text.txt",
		DecodedFile: "decrypted_text.txt",
		Watch: Watch{
			Source:          "src",
			Target:          "target",
			PollingInterval: 500 * time.Millisecond,
			SettleTime:      2 * time.Second,
			Parallelism:     4,
		},
	}
}

// Load loads the configuration from a YAML file.
// The defaults are returned if the file does not exist. The environment variables override the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves the configuration into a YAML file
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// SetParams sets both shift values
func (c *Config) SetParams(p shift.Params) {
	n, m := p.Shift1, p.Shift2
	c.Shift1, c.Shift2 = &n, &m
}

// Params returns the configured shift values or ErrMissingShift if any of them is missing
func (c *Config) Params() (shift.Params, error) {
	if c.Shift1 == nil || c.Shift2 == nil {
		return shift.Params{}, ErrMissingShift
	}
	return shift.NewParams(*c.Shift1, *c.Shift2), nil
}

func (c *Config) applyEnvOverrides() error {
	for name, target := range map[string]**int{Shift1EnvVar: &c.Shift1, Shift2EnvVar: &c.Shift2} {
		value, ok := os.LookupEnv(name)
		if !ok || value == "" {
			continue
		}
		v, err := ParseShift(value)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*target = &v
	}
	return nil
}

// ParseShift parses a shift value
func ParseShift(value string) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid shift value %q: must be an integer", value)
	}
	return v, nil
}
