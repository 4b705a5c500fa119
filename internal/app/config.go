package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ComponentsPath string // component manifest files (.hcl)
	ScanPath       string // optional extra path scanned during bootstrap

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ComponentsPath == "" {
		return nil, errors.New("ComponentsPath is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
