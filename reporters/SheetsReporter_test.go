package reporters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/reaandrew/findingsexport/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sheetsCall struct {
	Method string
	Range  string
	Values [][]interface{}
}

// MockSheetsApi keeps an in-memory grid so repeated runs can be compared.
type MockSheetsApi struct {
	calls    []sheetsCall
	grid     [][]interface{}
	failOn   string
	failWith error
}

func (m *MockSheetsApi) record(method, cellRange string, values [][]interface{}) error {
	m.calls = append(m.calls, sheetsCall{Method: method, Range: cellRange, Values: values})
	if m.failOn == method {
		return m.failWith
	}
	return nil
}

func (m *MockSheetsApi) Clear(ctx context.Context, spreadsheetId, cellRange string) error {
	if err := m.record("clear", cellRange, nil); err != nil {
		return err
	}
	m.grid = nil
	return nil
}

func (m *MockSheetsApi) Update(ctx context.Context, spreadsheetId, cellRange string, values [][]interface{}) error {
	if err := m.record("update", cellRange, values); err != nil {
		return err
	}
	start := 0
	if cellRange == "'Data'!A2" {
		start = 1
	}
	for i, row := range values {
		for len(m.grid) <= start+i {
			m.grid = append(m.grid, nil)
		}
		m.grid[start+i] = row
	}
	return nil
}

func (m *MockSheetsApi) Append(ctx context.Context, spreadsheetId, cellRange string, values [][]interface{}) error {
	if err := m.record("append", cellRange, values); err != nil {
		return err
	}
	m.grid = append(m.grid, values...)
	return nil
}

func (m *MockSheetsApi) methods() []string {
	var methods []string
	for _, call := range m.calls {
		methods = append(methods, call.Method)
	}
	return methods
}

type countingProgress struct {
	total      int
	increments int
}

func (c *countingProgress) SetTotal(total int) { c.total = total }

func (c *countingProgress) Increment() { c.increments++ }

var testRows = []core.Row{
	{"f1", "g1", "111", "T", "D", "CRITICAL", "fix it", ""},
	{"f2", "g2", "222", "T2", "D2", "CRITICAL", "", ""},
}

func TestSheetsReporterBulkWrite(t *testing.T) {
	api := &MockSheetsApi{}
	reporter := NewSheetsReporter(api, "sheet-id", "Data")

	err := reporter.Report(context.Background(), core.Header, testRows)

	require.NoError(t, err)
	assert.Equal(t, []string{"clear", "update", "update"}, api.methods())
	assert.Equal(t, "'Data'", api.calls[0].Range)
	assert.Equal(t, "'Data'!A1", api.calls[1].Range)
	assert.Equal(t, [][]interface{}{core.HeaderValues()}, api.calls[1].Values)
	assert.Equal(t, "'Data'!A2", api.calls[2].Range)
	assert.Len(t, api.calls[2].Values, 2)
	assert.Equal(t, "fix it", api.calls[2].Values[0][6])
}

func TestSheetsReporterEmptyRowsWritesOnlyHeader(t *testing.T) {
	api := &MockSheetsApi{grid: [][]interface{}{{"stale"}, {"rows"}}}
	reporter := NewSheetsReporter(api, "sheet-id", "Data")

	err := reporter.Report(context.Background(), core.Header, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"clear", "update"}, api.methods())
	assert.Equal(t, [][]interface{}{core.HeaderValues()}, api.grid)
}

func TestSheetsReporterIsIdempotent(t *testing.T) {
	api := &MockSheetsApi{}
	reporter := NewSheetsReporter(api, "sheet-id", "Data")

	require.NoError(t, reporter.Report(context.Background(), core.Header, testRows))
	first := append([][]interface{}{}, api.grid...)
	require.NoError(t, reporter.Report(context.Background(), core.Header, testRows))

	assert.Equal(t, first, api.grid)
	assert.Len(t, api.grid, 3)
}

func TestSheetsReporterAppendPacesWrites(t *testing.T) {
	api := &MockSheetsApi{}
	var pauses []time.Duration
	progress := &countingProgress{}
	reporter := NewSheetsReporter(api, "sheet-id", "Data")
	reporter.Mode = WriteAppend
	reporter.Pacing = 1500 * time.Millisecond
	reporter.Sleep = func(d time.Duration) { pauses = append(pauses, d) }
	reporter.Progress = progress

	rows := append(testRows, core.Row{"f3", "g3", "333", "T3", "D3", "CRITICAL", "", ""})
	err := reporter.Report(context.Background(), core.Header, rows)

	require.NoError(t, err)
	assert.Equal(t, []string{"clear", "update", "append", "append", "append"}, api.methods())
	assert.Equal(t, []time.Duration{1500 * time.Millisecond, 1500 * time.Millisecond}, pauses)
	assert.Equal(t, 3, progress.total)
	assert.Equal(t, 3, progress.increments)
	for _, call := range api.calls[2:] {
		assert.Len(t, call.Values, 1)
	}
	assert.Len(t, api.grid, 4)
}

func TestSheetsReporterWithoutClear(t *testing.T) {
	api := &MockSheetsApi{}
	reporter := NewSheetsReporter(api, "sheet-id", "Data")
	reporter.ClearFirst = false

	require.NoError(t, reporter.Report(context.Background(), core.Header, testRows))
	assert.Equal(t, []string{"update", "update"}, api.methods())
}

func TestSheetsReporterWrapsDestinationErrors(t *testing.T) {
	for _, method := range []string{"clear", "update", "append"} {
		t.Run(method, func(t *testing.T) {
			cause := errors.New("googleapi: Error 429: Quota exceeded")
			api := &MockSheetsApi{failOn: method, failWith: cause}
			reporter := NewSheetsReporter(api, "sheet-id", "Data")
			reporter.Mode = WriteAppend
			reporter.Sleep = func(time.Duration) {}

			err := reporter.Report(context.Background(), core.Header, testRows)

			assert.ErrorIs(t, err, core.ErrDestinationWrite)
			assert.ErrorIs(t, err, cause)
			assert.Contains(t, err.Error(), "sheets:sheet-id/Data")
		})
	}
}

func TestSheetRangeQuotesWorksheet(t *testing.T) {
	assert.Equal(t, "'My Sheet'!A2", sheetRange("My Sheet", "A2"))
	assert.Equal(t, "'Bob''s'", sheetRange("Bob's", ""))
}
