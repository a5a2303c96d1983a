package reporters

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const valueInputOption = "RAW"

// GoogleSheetsApi implements SheetsApi on the Sheets v4 REST API.
type GoogleSheetsApi struct {
	service *sheets.Service
}

// NewGoogleSheetsApi authorises with service-account credentials JSON.
func NewGoogleSheetsApi(ctx context.Context, credentialsJSON []byte) (*GoogleSheetsApi, error) {
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, sheets.SpreadsheetsScope, sheets.DriveFileScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Google credentials: %w", err)
	}

	service, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}
	return &GoogleSheetsApi{service: service}, nil
}

func (g *GoogleSheetsApi) Clear(ctx context.Context, spreadsheetId, cellRange string) error {
	_, err := g.service.Spreadsheets.Values.Clear(spreadsheetId, cellRange, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	return err
}

func (g *GoogleSheetsApi) Update(ctx context.Context, spreadsheetId, cellRange string, values [][]interface{}) error {
	resp, err := g.service.Spreadsheets.Values.Update(spreadsheetId, cellRange, &sheets.ValueRange{Values: values}).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return err
	}
	log.Debugf("Updated %d cells in %s", resp.UpdatedCells, resp.UpdatedRange)
	return nil
}

func (g *GoogleSheetsApi) Append(ctx context.Context, spreadsheetId, cellRange string, values [][]interface{}) error {
	_, err := g.service.Spreadsheets.Values.Append(spreadsheetId, cellRange, &sheets.ValueRange{Values: values}).
		ValueInputOption(valueInputOption).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}
