package core

// Header is the fixed column schema written to every sink. Row values follow the
// same order.
var Header = []string{
	"Id",
	"GeneratorId",
	"AwsAccountId",
	"Title",
	"Description",
	"Severity",
	"Remediation_Text",
	"Remediation_URL",
}

// ColumnCount is the number of values in every Row.
const ColumnCount = 8

// Row is the flattened representation of one finding.
type Row []string

// Values returns the row as a slice of interface values, the shape expected by
// spreadsheet APIs.
func (r Row) Values() []interface{} {
	values := make([]interface{}, len(r))
	for i, v := range r {
		values[i] = v
	}
	return values
}

// HeaderValues returns Header in the same shape as Row.Values.
func HeaderValues() []interface{} {
	return Row(Header).Values()
}
