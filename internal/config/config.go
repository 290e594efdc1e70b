package config

// Config represents the top-level configuration structure for sweeprun.
type Config struct {
	Tracking Tracking `yaml:"tracking"`
	Store    Store    `yaml:"store"`
	Logging  Logging  `yaml:"logging"`
	Jobs     []Job    `yaml:"jobs"`
}

// Tracking points at the experiment-tracking root that holds run
// directories.
type Tracking struct {
	Dir         string   `yaml:"dir"`         // tracking root directory
	Experiments []string `yaml:"experiments"` // optional: glob patterns of experiment names to include
}

// Store configuration for the run-index cache.
type Store struct {
	Driver string `yaml:"driver"` // "bbolt" or "json"
	Path   string `yaml:"path"`   // file path for the index
}

// Logging configuration for the CLI.
type Logging struct {
	Format string `yaml:"format"` // "json" or "text"
	Level  string `yaml:"level"`  // "debug", "info", "warn", or "error"
	Output string `yaml:"output"` // "stderr", "stdout", "discard", or a file path
}

// Job represents a named sweep job.
type Job struct {
	Name     string `yaml:"name"`     // unique job identifier
	Run      string `yaml:"run"`      // base command the expanded batches are appended to
	Schedule string `yaml:"schedule"` // optional: cron expression for periodic submission
	Steps    []Step `yaml:"steps"`    // sweep steps
}

// Step is one sweep unit within a job.
type Step struct {
	Args    string `yaml:"args"`    // free-text key=value arguments applied to every batch
	Batch   string `yaml:"batch"`   // key=range assignments combined via cartesian product
	Options string `yaml:"options"` // literal options prefixed verbatim onto every invocation
}
