package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML or TOML config file over the defaults. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse YAML config %q: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse TOML config %q: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config file extension %q (use .yaml, .yml or .toml)", filepath.Ext(path))
	}

	return cfg, nil
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides cfg with any of the recognised environment variables.
func ApplyEnv(cfg *Config, lookup LookupFunc) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	set := func(key string, target *string) {
		if value, ok := lookup(key); ok && value != "" {
			*target = value
		}
	}

	set("LOG_LEVEL", &cfg.LogLevel)
	set("LOG_FORMAT", &cfg.LogFormat)
	set("LOG_FILE", &cfg.LogFile)
	set("AWS_REGION", &cfg.Aws.Region)
	set("AWS_PROFILE", &cfg.Aws.Profile)
	set("SECURITYHUB_ENDPOINT", &cfg.Aws.Endpoint)
	set("FINDINGS_SINK", &cfg.Sink)
	set("GOOGLE_SHEET_ID", &cfg.Sheets.SpreadsheetId)
	set("GOOGLE_WORKSHEET", &cfg.Sheets.Worksheet)
	set("GOOGLE_CREDENTIALS_FILE", &cfg.Sheets.CredentialsFile)
	set("GOOGLE_CREDENTIALS_PARAMETER", &cfg.Sheets.CredentialsParameter)
	set("SHEETS_WRITE_MODE", &cfg.Sheets.WriteMode)

	if value, ok := lookup("FINDINGS_OUTPUT"); ok && value != "" {
		switch cfg.Sink {
		case SinkSqlite:
			cfg.Sqlite.Output = value
		case SinkJson:
			cfg.Json.Output = value
		default:
			cfg.Xlsx.Output = value
		}
	}
}

// LoadFromEnvironment loads path, applies the environment from lookup and
// validates the result.
func LoadFromEnvironment(path string, lookup LookupFunc) (Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	ApplyEnv(&cfg, lookup)
	return cfg, cfg.Validate()
}
