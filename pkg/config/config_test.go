package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bisegni/qprint/pkg/export"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qprint.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Export.Format != DefaultExportFormat {
		t.Errorf("Expected format %s, got %s", DefaultExportFormat, cfg.Export.Format)
	}
	if cfg.Server.ListenAddress != DefaultListenAddress {
		t.Errorf("Expected listen address %s, got %s", DefaultListenAddress, cfg.Server.ListenAddress)
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("Expected metrics enabled by default")
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Expected defaults to validate: %v", err)
	}
	if got := cfg.Server.LinkBase(); got != "http://"+DefaultListenAddress {
		t.Errorf("Unexpected link base %s", got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `
export:
  format: dsv
  params:
    separator: ";"
    headers: hide
server:
  listen_address: 0.0.0.0:9090
  base_url: https://data.example.org
  data_dir: `+dir+`
  read_timeout: 5s
datasets:
  inventory: /srv/inventory.jsonl
telemetry:
  logging:
    level: debug
  metrics:
    enabled: false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Export.Format != "dsv" || cfg.Export.Params["separator"] != ";" {
		t.Errorf("Unexpected export config: %+v", cfg.Export)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("Expected read timeout 5s, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != DefaultWriteTimeout {
		t.Errorf("Expected default write timeout, got %v", cfg.Server.WriteTimeout)
	}
	if cfg.Server.LinkBase() != "https://data.example.org" {
		t.Errorf("Unexpected link base %s", cfg.Server.LinkBase())
	}
	if cfg.Datasets["inventory"] != "/srv/inventory.jsonl" {
		t.Errorf("Unexpected datasets %v", cfg.Datasets)
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("Expected metrics disabled by the file")
	}
	if cfg.Telemetry.Logging.Format != DefaultLoggingFormat {
		t.Errorf("Expected default logging format, got %s", cfg.Telemetry.Logging.Format)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Export.Format != DefaultExportFormat {
		t.Errorf("Expected defaults, got %+v", cfg.Export)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
	if _, err := Load(writeConfig(t, "export: [")); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("QPRINT_EXPORT_FORMAT", "dsv")
	t.Setenv("QPRINT_SERVER_LISTEN_ADDRESS", ":7000")
	t.Setenv("QPRINT_SERVER_READ_TIMEOUT", "not-a-duration")
	t.Setenv("QPRINT_LOGGING_LEVEL", "warn")
	t.Setenv("QPRINT_METRICS_ENABLED", "false")

	cfg, err := Load(writeConfig(t, "server:\n  listen_address: 127.0.0.1:1\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Export.Format != "dsv" {
		t.Errorf("Expected env format dsv, got %s", cfg.Export.Format)
	}
	if cfg.Server.ListenAddress != ":7000" {
		t.Errorf("Expected env listen address to win, got %s", cfg.Server.ListenAddress)
	}
	if cfg.Server.ReadTimeout != DefaultReadTimeout {
		t.Errorf("Expected unparsable duration to be ignored, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Telemetry.Logging.Level != "warn" || cfg.Telemetry.Metrics.Enabled {
		t.Errorf("Unexpected telemetry %+v", cfg.Telemetry)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		fields []string
	}{
		{
			name:   "unknown format",
			modify: func(c *Config) { c.Export.Format = "xlsx" },
			fields: []string{"export.format"},
		},
		{
			name:   "bad csv separator",
			modify: func(c *Config) { c.Export.Params["sep"] = ";;" },
			fields: []string{"export.params.sep"},
		},
		{
			name: "format in params",
			modify: func(c *Config) {
				c.Export.Format = "dsv"
				c.Export.Params["format"] = "csv"
				c.Export.Params["sep"] = ";;"
			},
			fields: []string{"export.params.sep"},
		},
		{
			name:   "unknown format in params",
			modify: func(c *Config) { c.Export.Params["format"] = "xlsx" },
			fields: []string{"export.params.format"},
		},
		{
			name:   "bad limit",
			modify: func(c *Config) { c.Export.Params["limit"] = "-4" },
			fields: []string{"export.params.limit"},
		},
		{
			name: "server fields",
			modify: func(c *Config) {
				c.Server.ListenAddress = ""
				c.Server.BaseURL = "data.example.org"
				c.Server.ReadTimeout = -time.Second
				c.Server.DataDir = "/definitely/not/here"
			},
			fields: []string{"server.listen_address", "server.base_url", "server.data_dir", "server.read_timeout"},
		},
		{
			name:   "dataset without path",
			modify: func(c *Config) { c.Datasets["people"] = "" },
			fields: []string{"datasets.people"},
		},
		{
			name: "telemetry",
			modify: func(c *Config) {
				c.Telemetry.Logging.Level = "loud"
				c.Telemetry.Logging.Format = "xml"
				c.Telemetry.Metrics.Path = "metrics"
			},
			fields: []string{"telemetry.logging.level", "telemetry.logging.format", "telemetry.metrics.path"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := Validate(cfg)
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected ValidationError, got %v", err)
			}
			if len(verr.Errors) != len(tt.fields) {
				t.Fatalf("Expected %d errors, got %v", len(tt.fields), verr.Errors)
			}
			for i, field := range tt.fields {
				if verr.Errors[i].Field != field {
					t.Errorf("Error %d: expected field %s, got %s", i, field, verr.Errors[i].Field)
				}
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	single := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}}}
	if single.Error() != "configuration validation failed: a: bad" {
		t.Errorf("Unexpected message %q", single.Error())
	}
	multi := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}, {Field: "b", Message: "worse"}}}
	if !strings.Contains(multi.Error(), "2 errors") || !strings.Contains(multi.Error(), "  - b: worse") {
		t.Errorf("Unexpected message %q", multi.Error())
	}
}

func TestExportOptions(t *testing.T) {
	cfg := Default()
	cfg.Export.Params = map[string]string{"sep": ";", "headers": "hide", "limit": "50"}

	opts, err := cfg.Export.Options(map[string]string{"headers": "show"})
	if err != nil {
		t.Fatalf("Options failed: %v", err)
	}
	if opts.Format != export.FormatCSV || opts.Separator != ";" || !opts.ShowHeaders || opts.Limit != 50 {
		t.Errorf("Unexpected options %+v", opts)
	}

	opts, err = cfg.Export.Options(map[string]string{"format": "dsv"})
	if err != nil {
		t.Fatalf("Options failed: %v", err)
	}
	if opts.Format != export.FormatDSV || opts.Separator != ";" {
		t.Errorf("Expected DSV to take sep as its separator, got %+v", opts)
	}

	if _, err := cfg.Export.Options(map[string]string{"format": "pdf"}); err == nil {
		t.Error("Expected error for unknown format")
	}
	var pe *export.ParamError
	if _, err := cfg.Export.Options(map[string]string{"limit": "x"}); !errors.As(err, &pe) || pe.Param != "limit" {
		t.Errorf("Expected limit ParamError, got %v", err)
	}
}
