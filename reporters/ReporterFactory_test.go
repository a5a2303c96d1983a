package reporters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/reaandrew/findingsexport/config"
	"github.com/reaandrew/findingsexport/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockSecrets struct {
	values map[string]string
}

func (m MockSecrets) Get(ctx context.Context, name string) (string, error) {
	value, ok := m.values[name]
	if !ok {
		return "", errors.New("ParameterNotFound")
	}
	return value, nil
}

func testFactory(credentials *[]byte) ReporterFactory {
	return ReporterFactory{
		Secrets: MockSecrets{values: map[string]string{"/findings/google": "from-ssm"}},
		NewSheetsApi: func(ctx context.Context, credentialsJSON []byte) (SheetsApi, error) {
			*credentials = credentialsJSON
			return &MockSheetsApi{}, nil
		},
		ReadFile: func(name string) ([]byte, error) {
			if name == "creds.json" {
				return []byte("from-file"), nil
			}
			return nil, errors.New("no such file")
		},
	}
}

func TestCreateReporterFileSinks(t *testing.T) {
	var credentials []byte
	factory := testFactory(&credentials)

	cfg := config.Default()
	cfg.Sink = config.SinkXlsx
	reporter, err := factory.CreateReporter(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, XlsxReporter{OutputPath: config.DefaultXlsxOutput, SheetName: "Data"}, reporter)

	cfg.Sink = config.SinkSqlite
	reporter, err = factory.CreateReporter(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, SqliteReporter{DBPath: config.DefaultSqliteOutput}, reporter)

	cfg.Sink = config.SinkJson
	reporter, err = factory.CreateReporter(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, JsonReporter{OutputPath: config.DefaultJsonOutput}, reporter)

	cfg.Sink = "ftp"
	_, err = factory.CreateReporter(context.Background(), cfg)
	assert.Error(t, err)
}

func TestCreateSheetsReporterFromFileCredentials(t *testing.T) {
	var credentials []byte
	factory := testFactory(&credentials)
	cfg := config.Default()
	cfg.Sheets.SpreadsheetId = "sheet-id"
	cfg.Sheets.WriteMode = config.WriteModeAppend
	cfg.Sheets.Pacing = config.Duration(2 * time.Second)

	reporter, err := factory.CreateReporter(context.Background(), cfg)

	require.NoError(t, err)
	assert.Equal(t, "from-file", string(credentials))
	sheetsReporter, ok := reporter.(SheetsReporter)
	require.True(t, ok)
	assert.Equal(t, WriteAppend, sheetsReporter.Mode)
	assert.Equal(t, 2*time.Second, sheetsReporter.Pacing)
	assert.True(t, sheetsReporter.ClearFirst)
	assert.Equal(t, "sheets:sheet-id/Data", reporter.Destination())
}

func TestCreateSheetsReporterFromParameter(t *testing.T) {
	var credentials []byte
	factory := testFactory(&credentials)
	cfg := config.Default()
	cfg.Sheets.SpreadsheetId = "sheet-id"
	cfg.Sheets.CredentialsParameter = "/findings/google"

	_, err := factory.CreateReporter(context.Background(), cfg)

	require.NoError(t, err)
	assert.Equal(t, "from-ssm", string(credentials))

	cfg.Sheets.CredentialsParameter = "/missing"
	_, err = factory.CreateReporter(context.Background(), cfg)
	assert.ErrorContains(t, err, "ParameterNotFound")
}

func TestCreateSheetsReporterMissingCredentialsFile(t *testing.T) {
	var credentials []byte
	factory := testFactory(&credentials)
	cfg := config.Default()
	cfg.Sheets.SpreadsheetId = "sheet-id"
	cfg.Sheets.CredentialsFile = "elsewhere.json"

	_, err := factory.CreateReporter(context.Background(), cfg)

	assert.ErrorContains(t, err, "elsewhere.json")
}

func TestCreateSheetsReporterAppendProgressOnlyWhenInteractive(t *testing.T) {
	var credentials []byte
	factory := testFactory(&credentials)
	cfg := config.Default()
	cfg.Sheets.SpreadsheetId = "sheet-id"
	cfg.Sheets.WriteMode = config.WriteModeAppend

	reporter, err := factory.CreateReporter(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, utils.NoopProgressReporter{}, reporter.(SheetsReporter).Progress)

	factory.ShowProgress = true
	reporter, err = factory.CreateReporter(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &utils.BarProgressReporter{}, reporter.(SheetsReporter).Progress)
}

func TestNewReporterFactoryHidesProgressInLambda(t *testing.T) {
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "findings-export")

	factory := NewReporterFactory(aws.Config{})

	assert.False(t, factory.ShowProgress)
}
