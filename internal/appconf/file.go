package appconf

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig mirrors the config file. Every field is optional; unset fields
// keep the defaults. JSON files load too since YAML is a superset of JSON.
type FileConfig struct {
	Port                  *int           `yaml:"port"`
	Env                   string         `yaml:"env"`
	Verbose               *bool          `yaml:"verbose"`
	LogFormat             string         `yaml:"log-format"`
	ClientIdentifier      string         `yaml:"client-identifier"`
	StationInformationURL string         `yaml:"station-information-url"`
	StationStatusURL      string         `yaml:"station-status-url"`
	RequestTimeout        *time.Duration `yaml:"request-timeout"`
}

// LoadFromFile reads and validates a config file.
func LoadFromFile(path string) (*FileConfig, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if fc.Env != "" {
		if _, err := ParseEnvironment(fc.Env); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}
	if err := fc.ApplyTo(Default()).Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &fc, nil
}

// ToAppConfig overlays the file onto the defaults.
func (fc *FileConfig) ToAppConfig() Config {
	return fc.ApplyTo(Default())
}

// ApplyTo overlays the fields set in the file onto cfg.
func (fc *FileConfig) ApplyTo(cfg Config) Config {
	if fc.Port != nil {
		cfg.Port = *fc.Port
	}
	if env, err := ParseEnvironment(fc.Env); err == nil && fc.Env != "" {
		cfg.Env = env
	}
	if fc.Verbose != nil {
		cfg.Verbose = *fc.Verbose
	}
	if fc.LogFormat != "" {
		cfg.LogFormat = fc.LogFormat
	}
	if fc.ClientIdentifier != "" {
		cfg.ClientIdentifier = fc.ClientIdentifier
	}
	if fc.StationInformationURL != "" {
		cfg.StationInformationURL = fc.StationInformationURL
	}
	if fc.StationStatusURL != "" {
		cfg.StationStatusURL = fc.StationStatusURL
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = *fc.RequestTimeout
	}
	return cfg
}
