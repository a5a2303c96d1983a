package reporters

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/reaandrew/findingsexport/core"
	"github.com/reaandrew/findingsexport/reportstorage"
	log "github.com/sirupsen/logrus"
)

const DefaultJsonReport = "findings.json"

// JsonReport keeps rows as arrays so column order survives serialization.
type JsonReport struct {
	Header []string   `json:"header"`
	Rows   []core.Row `json:"rows"`
}

type JsonReporter struct {
	OutputPath string
}

func (j JsonReporter) Destination() string {
	if j.OutputPath == "" {
		return DefaultJsonReport
	}
	return j.OutputPath
}

func (j JsonReporter) Report(ctx context.Context, header []string, rows []core.Row) error {
	if rows == nil {
		rows = []core.Row{}
	}
	data, err := json.MarshalIndent(JsonReport{Header: header, Rows: rows}, "", "  ")
	if err != nil {
		return destinationError(j.Destination(), fmt.Errorf("failed to marshal report: %w", err))
	}

	storage, err := reportstorage.CreateFileReportStorage(j.Destination())
	if err != nil {
		return destinationError(j.Destination(), err)
	}
	if err := storage.Store(data); err != nil {
		return destinationError(j.Destination(), err)
	}

	log.WithField("rows", len(rows)).Infof("JSON report generated successfully: %s", j.Destination())
	return nil
}
