package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/bisegni/qprint/pkg/export"
	"github.com/bisegni/qprint/pkg/telemetry/logging"
)

// FieldError is a validation error for one configuration field.
type FieldError struct {
	// Field is the dotted path of the field, e.g. "server.listen_address".
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every FieldError found in a configuration.
type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration validation failed with %d errors:\n", len(e.Errors))
	for _, err := range e.Errors {
		fmt.Fprintf(&sb, "  - %s\n", err.Error())
	}
	return sb.String()
}

// Validate checks the whole configuration and returns a ValidationError
// listing every problem, or nil.
func Validate(cfg *Config) error {
	var errs []FieldError
	errs = append(errs, validateExport(&cfg.Export)...)
	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validateDatasets(cfg.Datasets)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

// validateExport resolves the options the same way every export does, so a
// format given in params is checked together with the params it governs.
func validateExport(cfg *ExportConfig) []FieldError {
	if _, err := cfg.Options(nil); err != nil {
		field := "export.params"
		var pe *export.ParamError
		if errors.As(err, &pe) {
			field += "." + pe.Param
			if pe.Param == export.ParamFormat && cfg.Params[export.ParamFormat] == "" {
				field = "export.format"
			}
		}
		return []FieldError{{Field: field, Message: err.Error()}}
	}
	return nil
}

func validateServer(cfg *ServerConfig) []FieldError {
	var errs []FieldError

	if cfg.ListenAddress == "" {
		errs = append(errs, FieldError{Field: "server.listen_address", Message: "listen address is required"})
	}
	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, FieldError{Field: "server.base_url", Message: "must be an absolute http or https URL"})
		}
	}
	if cfg.DataDir != "" {
		if info, err := os.Stat(cfg.DataDir); err != nil || !info.IsDir() {
			errs = append(errs, FieldError{Field: "server.data_dir", Message: "must be an existing directory"})
		}
	}

	for _, t := range []struct {
		field string
		d     time.Duration
	}{
		{"server.read_timeout", cfg.ReadTimeout},
		{"server.write_timeout", cfg.WriteTimeout},
		{"server.idle_timeout", cfg.IdleTimeout},
		{"server.shutdown_timeout", cfg.ShutdownTimeout},
	} {
		if t.d < 0 {
			errs = append(errs, FieldError{Field: t.field, Message: "must not be negative"})
		}
	}
	if cfg.MaxQueryLength < 0 {
		errs = append(errs, FieldError{Field: "server.max_query_length", Message: "must not be negative"})
	}
	return errs
}

func validateDatasets(datasets map[string]string) []FieldError {
	names := make([]string, 0, len(datasets))
	for name := range datasets {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []FieldError
	for _, name := range names {
		path := datasets[name]
		field := "datasets." + name
		switch {
		case strings.TrimSpace(name) == "":
			errs = append(errs, FieldError{Field: "datasets", Message: "dataset name must not be empty"})
		case path == "":
			errs = append(errs, FieldError{Field: field, Message: "file path is required"})
		}
	}
	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError
	if _, err := logging.ParseLevel(cfg.Logging.Level); err != nil {
		errs = append(errs, FieldError{Field: "telemetry.logging.level", Message: err.Error()})
	}
	if _, err := logging.ParseFormat(cfg.Logging.Format); err != nil {
		errs = append(errs, FieldError{Field: "telemetry.logging.format", Message: err.Error()})
	}
	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, FieldError{Field: "telemetry.metrics.path", Message: "must start with /"})
	}
	return errs
}
