package projector

import (
	"github.com/reaandrew/findingsexport/core"
)

// Column describes where one output value lives inside a record.
type Column struct {
	Name     string
	Path     []string
	Required bool
}

// FindingColumns is the Security Hub finding layout, in Header order.
var FindingColumns = []Column{
	{Name: "Id", Path: []string{"Id"}, Required: true},
	{Name: "GeneratorId", Path: []string{"GeneratorId"}, Required: true},
	{Name: "AwsAccountId", Path: []string{"AwsAccountId"}, Required: true},
	{Name: "Title", Path: []string{"Title"}, Required: true},
	{Name: "Description", Path: []string{"Description"}, Required: true},
	{Name: "Severity.Label", Path: []string{"Severity", "Label"}, Required: true},
	{Name: "Remediation.Recommendation.Text", Path: []string{"Remediation", "Recommendation", "Text"}},
	{Name: "Remediation.Recommendation.Url", Path: []string{"Remediation", "Recommendation", "Url"}},
}

// Projector flattens records onto a fixed list of columns.
type Projector struct {
	Columns []Column
}

func NewFindingProjector() Projector {
	return Projector{Columns: FindingColumns}
}

// Project maps every record to a row, keeping input order. The first record
// missing a required column stops projection with a *core.MalformedRecordError.
func (p Projector) Project(records []core.Record) ([]core.Row, error) {
	rows := make([]core.Row, 0, len(records))
	for _, record := range records {
		row, err := p.projectRecord(record)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (p Projector) projectRecord(record core.Record) (core.Row, error) {
	row := make(core.Row, len(p.Columns))
	for i, column := range p.Columns {
		if !column.Required {
			row[i] = record.LookupString("", column.Path...)
			continue
		}
		if _, ok := record.Lookup(column.Path...); !ok {
			return nil, &core.MalformedRecordError{Field: column.Name, RecordID: record.ID()}
		}
		row[i] = record.LookupString("", column.Path...)
	}
	return row, nil
}

// Project flattens records with the finding layout.
func Project(records []core.Record) ([]core.Row, error) {
	return NewFindingProjector().Project(records)
}
