package config

import (
	"fmt"
	"time"

	"github.com/reaandrew/findingsexport/core"
)

const (
	SinkSheets = "sheets"
	SinkXlsx   = "xlsx"
	SinkSqlite = "sqlite"
	SinkJson   = "json"

	WriteModeBulk   = "bulk"
	WriteModeAppend = "append"

	DefaultRegion          = "eu-west-2"
	DefaultWorksheet       = "Data"
	DefaultCredentialsFile = "creds.json"
	DefaultXlsxOutput      = "Security Hub Findings.xlsx"
	DefaultSqliteOutput    = "findings.db"
	DefaultJsonOutput      = "findings.json"
	DefaultPacing          = time.Second
)

type Config struct {
	LogLevel  string `yaml:"log_level" toml:"log_level"`
	LogFormat string `yaml:"log_format" toml:"log_format"`
	LogFile   string `yaml:"log_file" toml:"log_file"`

	Aws      AwsConfig           `yaml:"aws" toml:"aws"`
	Criteria core.FilterCriteria `yaml:"criteria" toml:"criteria"`

	// Sink selects the destination: sheets, xlsx, sqlite or json.
	Sink   string       `yaml:"sink" toml:"sink"`
	Sheets SheetsConfig `yaml:"sheets" toml:"sheets"`
	Xlsx   FileConfig   `yaml:"xlsx" toml:"xlsx"`
	Sqlite FileConfig   `yaml:"sqlite" toml:"sqlite"`
	Json   FileConfig   `yaml:"json" toml:"json"`
}

type AwsConfig struct {
	Region   string `yaml:"region" toml:"region"`
	Profile  string `yaml:"profile" toml:"profile"`
	Endpoint string `yaml:"endpoint" toml:"endpoint"`
	PageSize int32  `yaml:"page_size" toml:"page_size"`
}

type SheetsConfig struct {
	SpreadsheetId        string   `yaml:"spreadsheet_id" toml:"spreadsheet_id"`
	Worksheet            string   `yaml:"worksheet" toml:"worksheet"`
	CredentialsFile      string   `yaml:"credentials_file" toml:"credentials_file"`
	CredentialsParameter string   `yaml:"credentials_parameter" toml:"credentials_parameter"`
	WriteMode            string   `yaml:"write_mode" toml:"write_mode"`
	Pacing               Duration `yaml:"pacing" toml:"pacing"`
	ClearFirst           *bool    `yaml:"clear_first" toml:"clear_first"`
}

type FileConfig struct {
	Output string `yaml:"output" toml:"output"`
}

// Default returns the configuration used when nothing else is supplied.
func Default() Config {
	clearFirst := true
	return Config{
		LogLevel:  "INFO",
		LogFormat: "text",
		Aws: AwsConfig{
			Region:   DefaultRegion,
			PageSize: 100,
		},
		Criteria: core.DefaultCriteria(),
		Sink:     SinkSheets,
		Sheets: SheetsConfig{
			Worksheet:       DefaultWorksheet,
			CredentialsFile: DefaultCredentialsFile,
			WriteMode:       WriteModeBulk,
			Pacing:          Duration(DefaultPacing),
			ClearFirst:      &clearFirst,
		},
		Xlsx:   FileConfig{Output: DefaultXlsxOutput},
		Sqlite: FileConfig{Output: DefaultSqliteOutput},
		Json:   FileConfig{Output: DefaultJsonOutput},
	}
}

// ShouldClear reports whether the sheet is cleared before writing.
func (s SheetsConfig) ShouldClear() bool {
	return s.ClearFirst == nil || *s.ClearFirst
}

// Validate checks the settings the selected sink depends on.
func (c Config) Validate() error {
	if c.Aws.PageSize < 1 || c.Aws.PageSize > 100 {
		return fmt.Errorf("config error: page_size must be between 1 and 100, got %d", c.Aws.PageSize)
	}
	if len(c.Criteria) == 0 {
		return fmt.Errorf("config error: at least one filter criterion is required")
	}
	if err := c.Criteria.Validate(); err != nil {
		return fmt.Errorf("config error: criteria: %w", err)
	}

	switch c.Sink {
	case SinkSheets:
		if c.Sheets.SpreadsheetId == "" {
			return fmt.Errorf("config error: sheets.spreadsheet_id is required for the sheets sink")
		}
		if c.Sheets.Worksheet == "" {
			return fmt.Errorf("config error: sheets.worksheet is required for the sheets sink")
		}
		if c.Sheets.WriteMode != WriteModeBulk && c.Sheets.WriteMode != WriteModeAppend {
			return fmt.Errorf("config error: invalid write_mode %q, must be one of: bulk, append", c.Sheets.WriteMode)
		}
		if c.Sheets.Pacing < 0 {
			return fmt.Errorf("config error: sheets.pacing must not be negative")
		}
	case SinkXlsx:
		if c.Xlsx.Output == "" {
			return fmt.Errorf("config error: xlsx.output is required for the xlsx sink")
		}
	case SinkSqlite:
		if c.Sqlite.Output == "" {
			return fmt.Errorf("config error: sqlite.output is required for the sqlite sink")
		}
	case SinkJson:
		if c.Json.Output == "" {
			return fmt.Errorf("config error: json.output is required for the json sink")
		}
	default:
		return fmt.Errorf("config error: unknown sink %q, must be one of: sheets, xlsx, sqlite, json", c.Sink)
	}
	return nil
}

// Duration parses Go duration strings such as "1s" or "500ms" from config files.
type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}
