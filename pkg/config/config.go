package config

import "time"

// Config is the complete qprint configuration.
type Config struct {
	Export    ExportConfig      `yaml:"export"`
	Server    ServerConfig      `yaml:"server"`
	Datasets  map[string]string `yaml:"datasets"`
	Telemetry TelemetryConfig   `yaml:"telemetry"`
}

// ExportConfig holds the default export parameters. Params uses the same
// keys as the command line flags and the query string of /export.
type ExportConfig struct {
	Format string            `yaml:"format"`
	Params map[string]string `yaml:"params"`
}

// ServerConfig configures `qprint serve`.
type ServerConfig struct {
	ListenAddress string `yaml:"listen_address"`

	// BaseURL is the externally visible root used in deferred links.
	// Empty means http://<listen_address>.
	BaseURL string `yaml:"base_url"`

	// DataDir is scanned for *.json and *.jsonl datasets, and bounds the
	// file= parameter of /export.
	DataDir string `yaml:"data_dir"`

	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxQueryLength bounds the q= parameter, in bytes.
	MaxQueryLength int `yaml:"max_query_length"`
}

// TelemetryConfig groups logging and metrics.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type LoggingConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	AddSource bool   `yaml:"add_source"`
}

type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Path      string `yaml:"path"`
	Namespace string `yaml:"namespace"`
}
