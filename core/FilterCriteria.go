package core

import "fmt"

type Comparison string

const (
	ComparisonEquals          Comparison = "EQUALS"
	ComparisonNotEquals       Comparison = "NOT_EQUALS"
	ComparisonPrefix          Comparison = "PREFIX"
	ComparisonPrefixNotEquals Comparison = "PREFIX_NOT_EQUALS"
	ComparisonContains        Comparison = "CONTAINS"
	ComparisonNotContains     Comparison = "NOT_CONTAINS"
)

const (
	FieldSeverityLabel  = "SeverityLabel"
	FieldWorkflowStatus = "WorkflowStatus"

	SeverityCritical = "CRITICAL"
	WorkflowResolved = "RESOLVED"
)

// Criterion is a single (field, comparator, value) triple.
type Criterion struct {
	Field      string     `yaml:"field" toml:"field" json:"field"`
	Comparison Comparison `yaml:"comparison" toml:"comparison" json:"comparison"`
	Value      string     `yaml:"value" toml:"value" json:"value"`
}

// FilterCriteria is combined with a logical AND across fields.
type FilterCriteria []Criterion

// DefaultCriteria selects critical findings that have not been resolved.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		{Field: FieldSeverityLabel, Comparison: ComparisonEquals, Value: SeverityCritical},
		{Field: FieldWorkflowStatus, Comparison: ComparisonNotEquals, Value: WorkflowResolved},
	}
}

// ByField groups criteria by field name, preserving their order within a field.
func (c FilterCriteria) ByField() map[string][]Criterion {
	grouped := make(map[string][]Criterion)
	for _, criterion := range c {
		grouped[criterion.Field] = append(grouped[criterion.Field], criterion)
	}
	return grouped
}

// FilterFields are the finding fields criteria may name.
var FilterFields = []string{
	"SeverityLabel",
	"WorkflowStatus",
	"RecordState",
	"AwsAccountId",
	"GeneratorId",
	"ProductName",
	"ComplianceStatus",
	"Title",
	"Region",
}

var comparisons = map[Comparison]bool{
	ComparisonEquals:          true,
	ComparisonNotEquals:       true,
	ComparisonPrefix:          true,
	ComparisonPrefixNotEquals: true,
	ComparisonContains:        true,
	ComparisonNotContains:     true,
}

// Validate rejects unknown fields and comparisons.
func (c FilterCriteria) Validate() error {
	for _, criterion := range c {
		if !isFilterField(criterion.Field) {
			return fmt.Errorf("unsupported filter field: %s", criterion.Field)
		}
		if !comparisons[criterion.Comparison] {
			return fmt.Errorf("unsupported comparison %q for field %s", criterion.Comparison, criterion.Field)
		}
	}
	return nil
}

func isFilterField(field string) bool {
	for _, known := range FilterFields {
		if known == field {
			return true
		}
	}
	return false
}
