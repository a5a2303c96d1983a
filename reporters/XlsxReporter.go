package reporters

import (
	"context"
	"fmt"

	"github.com/reaandrew/findingsexport/core"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	DefaultXlsxReport = "Security Hub Findings.xlsx"
	DefaultSheetName  = "Data"
)

// XlsxReporter writes a single-sheet workbook, overwriting OutputPath.
type XlsxReporter struct {
	OutputPath string
	SheetName  string
}

func (x XlsxReporter) Destination() string {
	return x.outputPath()
}

func (x XlsxReporter) outputPath() string {
	if x.OutputPath == "" {
		return DefaultXlsxReport
	}
	return x.OutputPath
}

func (x XlsxReporter) sheetName() string {
	if x.SheetName == "" {
		return DefaultSheetName
	}
	return x.SheetName
}

func (x XlsxReporter) Report(ctx context.Context, header []string, rows []core.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := x.sheetName()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return destinationError(x.Destination(), fmt.Errorf("failed to name sheet '%s': %w", sheet, err))
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return destinationError(x.Destination(), fmt.Errorf("failed to set headers for sheet '%s': %w", sheet, err))
	}

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return destinationError(x.Destination(), err)
		}
		cellAddress, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return destinationError(x.Destination(), fmt.Errorf("failed to get cell address for row %d: %w", i+2, err))
		}
		values := []string(row)
		if err := f.SetSheetRow(sheet, cellAddress, &values); err != nil {
			return destinationError(x.Destination(), fmt.Errorf("failed to set data for row %d: %w", i+2, err))
		}
	}

	if err := f.SaveAs(x.outputPath()); err != nil {
		return destinationError(x.Destination(), fmt.Errorf("failed to save XLSX file '%s': %w", x.outputPath(), err))
	}

	log.WithField("rows", len(rows)).Infof("XLSX report generated successfully: %s", x.outputPath())
	return nil
}
