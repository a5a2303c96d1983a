package reporters

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/reaandrew/findingsexport/core"
	"github.com/reaandrew/findingsexport/utils"
	log "github.com/sirupsen/logrus"
)

// SheetsApi is the subset of spreadsheet value operations the reporter needs.
type SheetsApi interface {
	Clear(ctx context.Context, spreadsheetId, cellRange string) error
	Update(ctx context.Context, spreadsheetId, cellRange string, values [][]interface{}) error
	Append(ctx context.Context, spreadsheetId, cellRange string, values [][]interface{}) error
}

type WriteMode string

const (
	WriteBulk   WriteMode = "bulk"
	WriteAppend WriteMode = "append"
)

type SheetsReporter struct {
	Api           SheetsApi
	SpreadsheetId string
	Worksheet     string
	Mode          WriteMode
	ClearFirst    bool
	// Pacing is the pause between successive appends in append mode.
	Pacing   time.Duration
	Sleep    func(time.Duration)
	Progress utils.ProgressReporter
}

func NewSheetsReporter(api SheetsApi, spreadsheetId, worksheet string) SheetsReporter {
	return SheetsReporter{
		Api:           api,
		SpreadsheetId: spreadsheetId,
		Worksheet:     worksheet,
		Mode:          WriteBulk,
		ClearFirst:    true,
		Pacing:        time.Second,
		Sleep:         time.Sleep,
		Progress:      utils.NoopProgressReporter{},
	}
}

func (s SheetsReporter) Destination() string {
	return fmt.Sprintf("sheets:%s/%s", s.SpreadsheetId, s.Worksheet)
}

func (s SheetsReporter) Report(ctx context.Context, header []string, rows []core.Row) error {
	entry := log.WithFields(log.Fields{
		"spreadsheet": s.SpreadsheetId,
		"worksheet":   s.Worksheet,
		"mode":        s.Mode,
		"rows":        len(rows),
	})

	if s.ClearFirst {
		entry.Info("Clearing worksheet")
		if err := s.Api.Clear(ctx, s.SpreadsheetId, sheetRange(s.Worksheet, "")); err != nil {
			return destinationError(s.Destination(), fmt.Errorf("failed to clear worksheet: %w", err))
		}
	}

	headerRow := [][]interface{}{core.Row(header).Values()}
	if err := s.Api.Update(ctx, s.SpreadsheetId, sheetRange(s.Worksheet, "A1"), headerRow); err != nil {
		return destinationError(s.Destination(), fmt.Errorf("failed to write header: %w", err))
	}

	var err error
	switch s.Mode {
	case WriteAppend:
		err = s.appendRows(ctx, rows)
	case WriteBulk, "":
		err = s.bulkWrite(ctx, rows)
	default:
		err = fmt.Errorf("unknown write mode: %s", s.Mode)
	}
	if err != nil {
		return destinationError(s.Destination(), err)
	}

	entry.Info("Worksheet updated")
	return nil
}

func (s SheetsReporter) bulkWrite(ctx context.Context, rows []core.Row) error {
	if len(rows) == 0 {
		return nil
	}
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		values[i] = row.Values()
	}
	if err := s.Api.Update(ctx, s.SpreadsheetId, sheetRange(s.Worksheet, "A2"), values); err != nil {
		return fmt.Errorf("failed to write %d rows: %w", len(rows), err)
	}
	return nil
}

// appendRows issues one append per row, sleeping Pacing between calls to stay
// under per-minute write quotas.
func (s SheetsReporter) appendRows(ctx context.Context, rows []core.Row) error {
	progress := s.Progress
	if progress == nil {
		progress = utils.NoopProgressReporter{}
	}
	progress.SetTotal(len(rows))

	sleep := s.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	for i, row := range rows {
		if i > 0 && s.Pacing > 0 {
			sleep(s.Pacing)
		}
		if err := s.Api.Append(ctx, s.SpreadsheetId, sheetRange(s.Worksheet, "A1"), [][]interface{}{row.Values()}); err != nil {
			return fmt.Errorf("failed to append row %d: %w", i+2, err)
		}
		progress.Increment()
	}
	return nil
}

// sheetRange builds an A1 range, quoting the worksheet name. An empty cell
// selects the whole worksheet.
func sheetRange(worksheet, cell string) string {
	quoted := "'" + strings.ReplaceAll(worksheet, "'", "''") + "'"
	if cell == "" {
		return quoted
	}
	return quoted + "!" + cell
}
