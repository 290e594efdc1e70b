package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// scheduleParser accepts standard 5-field cron expressions plus descriptors
// like @daily and @every.
var scheduleParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// LoadConfig loads and validates a sweeprun configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Tracking.Dir == "" {
		cfg.Tracking.Dir = "./mlruns"
	}

	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "bbolt"
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "./.sweeprun.db"
	}

	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// validate checks the configuration for errors and inconsistencies.
func validate(cfg *Config) error {
	validDrivers := map[string]bool{
		"bbolt": true,
		"json":  true,
	}
	if !validDrivers[cfg.Store.Driver] {
		return fmt.Errorf("invalid store driver: %s (must be 'bbolt' or 'json')", cfg.Store.Driver)
	}

	jobNames := make(map[string]bool)
	for i, job := range cfg.Jobs {
		if job.Name == "" {
			return fmt.Errorf("job at index %d is missing a name", i)
		}

		if jobNames[job.Name] {
			return fmt.Errorf("duplicate job name: %s", job.Name)
		}
		jobNames[job.Name] = true

		if len(job.Steps) == 0 {
			return fmt.Errorf("job %s has no steps", job.Name)
		}

		if job.Schedule != "" {
			if err := ValidateSchedule(job.Schedule); err != nil {
				return fmt.Errorf("job %s has invalid schedule: %w", job.Name, err)
			}
		}
	}

	return nil
}

// ValidateSchedule checks if a schedule expression is valid. Supports cron
// expressions and @-prefixed descriptors like @daily or "@every 1h".
func ValidateSchedule(schedule string) error {
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		return fmt.Errorf("schedule cannot be empty")
	}

	if _, err := scheduleParser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid schedule expression %q: %w", schedule, err)
	}
	return nil
}

// ParseSchedule parses a schedule expression into a cron schedule for
// next-submission calculations.
func ParseSchedule(schedule string) (cron.Schedule, error) {
	s, err := scheduleParser.Parse(strings.TrimSpace(schedule))
	if err != nil {
		return nil, fmt.Errorf("invalid schedule expression %q: %w", schedule, err)
	}
	return s, nil
}
