package reporters

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/reaandrew/findingsexport/config"
	"github.com/reaandrew/findingsexport/utils"
	log "github.com/sirupsen/logrus"
)

// SecretGetter resolves a named secret, such as an SSM parameter.
type SecretGetter interface {
	Get(ctx context.Context, name string) (string, error)
}

// ReporterFactory builds the reporter selected by configuration. The hooks
// default to the real Google and SSM clients. ShowProgress draws a progress
// bar on stderr in append mode.
type ReporterFactory struct {
	AwsConfig    aws.Config
	Secrets      SecretGetter
	NewSheetsApi func(ctx context.Context, credentialsJSON []byte) (SheetsApi, error)
	ReadFile     func(name string) ([]byte, error)
	ShowProgress bool
}

func NewReporterFactory(awsConfig aws.Config) ReporterFactory {
	return ReporterFactory{
		AwsConfig: awsConfig,
		Secrets:   utils.NewParameterStore(awsConfig),
		NewSheetsApi: func(ctx context.Context, credentialsJSON []byte) (SheetsApi, error) {
			return NewGoogleSheetsApi(ctx, credentialsJSON)
		},
		ReadFile:     os.ReadFile,
		ShowProgress: utils.InteractiveStderr(),
	}
}

func (f ReporterFactory) CreateReporter(ctx context.Context, cfg config.Config) (Reporter, error) {
	switch cfg.Sink {
	case config.SinkXlsx:
		return XlsxReporter{OutputPath: cfg.Xlsx.Output, SheetName: DefaultSheetName}, nil
	case config.SinkSqlite:
		return SqliteReporter{DBPath: cfg.Sqlite.Output}, nil
	case config.SinkJson:
		return JsonReporter{OutputPath: cfg.Json.Output}, nil
	case config.SinkSheets:
		return f.createSheetsReporter(ctx, cfg.Sheets)
	}
	return nil, fmt.Errorf("unknown sink: %s", cfg.Sink)
}

func (f ReporterFactory) createSheetsReporter(ctx context.Context, cfg config.SheetsConfig) (Reporter, error) {
	credentials, err := f.loadCredentials(ctx, cfg)
	if err != nil {
		return nil, err
	}

	api, err := f.NewSheetsApi(ctx, credentials)
	if err != nil {
		return nil, err
	}

	reporter := NewSheetsReporter(api, cfg.SpreadsheetId, cfg.Worksheet)
	reporter.Mode = WriteMode(cfg.WriteMode)
	reporter.ClearFirst = cfg.ShouldClear()
	reporter.Pacing = cfg.Pacing.Duration()
	if reporter.Mode == WriteAppend && f.ShowProgress {
		reporter.Progress = utils.NewBarProgressReporter(os.Stderr, 0, "Appending rows")
	}
	return reporter, nil
}

func (f ReporterFactory) loadCredentials(ctx context.Context, cfg config.SheetsConfig) ([]byte, error) {
	if cfg.CredentialsParameter != "" {
		log.Debugf("Loading Google credentials from parameter %s", cfg.CredentialsParameter)
		value, err := f.Secrets.Get(ctx, cfg.CredentialsParameter)
		if err != nil {
			return nil, fmt.Errorf("failed to load Google credentials: %w", err)
		}
		return []byte(value), nil
	}

	log.Debugf("Loading Google credentials from %s", cfg.CredentialsFile)
	data, err := f.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read Google credentials file '%s': %w", cfg.CredentialsFile, err)
	}
	return data, nil
}
