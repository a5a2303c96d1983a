package sources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/securityhub"
	"github.com/aws/aws-sdk-go-v2/service/securityhub/types"
	"github.com/reaandrew/findingsexport/core"
	"github.com/reaandrew/findingsexport/fetcher"
	log "github.com/sirupsen/logrus"
)

const (
	GetFindingsOperation = "GetFindings"
	DefaultPageSize      = 100
	MaxPageSize          = 100
)

// SecurityHubSource lists findings through the GetFindings operation.
type SecurityHubSource struct {
	Client   securityhub.GetFindingsAPIClient
	PageSize int32
}

func NewSecurityHubSource(client securityhub.GetFindingsAPIClient, pageSize int32) SecurityHubSource {
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}
	return SecurityHubSource{Client: client, PageSize: pageSize}
}

// FetchAll returns every finding matching criteria, across all pages. Failed
// GetFindings calls come back as *core.TransportError; invalid criteria and
// undecodable findings do not.
func (s SecurityHubSource) FetchAll(ctx context.Context, criteria core.FilterCriteria) ([]core.Record, error) {
	filters, err := BuildFilters(criteria)
	if err != nil {
		return nil, err
	}

	input := securityhub.GetFindingsInput{
		Filters:    filters,
		MaxResults: aws.Int32(s.pageSize()),
	}
	pages := 0
	pager := fetcher.NewFuncPager(
		func(ctx context.Context, token *string) (*securityhub.GetFindingsOutput, error) {
			params := input
			params.NextToken = token
			output, err := s.Client.GetFindings(ctx, &params)
			if err != nil {
				return nil, &core.TransportError{Op: GetFindingsOperation, Err: err}
			}
			pages++
			log.Debugf("Received page %d with %d findings", pages, len(output.Findings))
			return output, nil
		},
		func(output *securityhub.GetFindingsOutput) []types.AwsSecurityFinding { return output.Findings },
		func(output *securityhub.GetFindingsOutput) *string { return output.NextToken },
	)

	findings, err := fetcher.FetchAll[types.AwsSecurityFinding](ctx, pager)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"operation": GetFindingsOperation,
		"pages":     pages,
		"findings":  len(findings),
	}).Info("Fetched Security Hub findings")

	records := make([]core.Record, 0, len(findings))
	for i := range findings {
		record, err := ToRecord(findings[i])
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (s SecurityHubSource) pageSize() int32 {
	if s.PageSize <= 0 || s.PageSize > MaxPageSize {
		return DefaultPageSize
	}
	return s.PageSize
}

// ToRecord decodes a finding into the nested mapping used by the projector.
// Nil pointers in the SDK structs become nil values and are treated as
// missing.
func ToRecord(finding types.AwsSecurityFinding) (core.Record, error) {
	data, err := json.Marshal(finding)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal finding: %w", err)
	}
	var record core.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to decode finding: %w", err)
	}
	return record, nil
}

var comparisons = map[core.Comparison]types.StringFilterComparison{
	core.ComparisonEquals:          types.StringFilterComparisonEquals,
	core.ComparisonNotEquals:       types.StringFilterComparisonNotEquals,
	core.ComparisonPrefix:          types.StringFilterComparisonPrefix,
	core.ComparisonPrefixNotEquals: types.StringFilterComparisonPrefixNotEquals,
	core.ComparisonContains:        types.StringFilterComparisonContains,
	core.ComparisonNotContains:     types.StringFilterComparisonNotContains,
}

// BuildFilters converts criteria into the GetFindings filter structure.
func BuildFilters(criteria core.FilterCriteria) (*types.AwsSecurityFindingFilters, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	filters := &types.AwsSecurityFindingFilters{}
	for _, criterion := range criteria {
		comparison, ok := comparisons[criterion.Comparison]
		if !ok {
			return nil, fmt.Errorf("unsupported comparison %q for field %s", criterion.Comparison, criterion.Field)
		}
		filter := types.StringFilter{
			Comparison: comparison,
			Value:      aws.String(criterion.Value),
		}

		switch criterion.Field {
		case "SeverityLabel":
			filters.SeverityLabel = append(filters.SeverityLabel, filter)
		case "WorkflowStatus":
			filters.WorkflowStatus = append(filters.WorkflowStatus, filter)
		case "RecordState":
			filters.RecordState = append(filters.RecordState, filter)
		case "AwsAccountId":
			filters.AwsAccountId = append(filters.AwsAccountId, filter)
		case "GeneratorId":
			filters.GeneratorId = append(filters.GeneratorId, filter)
		case "ProductName":
			filters.ProductName = append(filters.ProductName, filter)
		case "ComplianceStatus":
			filters.ComplianceStatus = append(filters.ComplianceStatus, filter)
		case "Title":
			filters.Title = append(filters.Title, filter)
		case "Region":
			filters.Region = append(filters.Region, filter)
		default:
			return nil, fmt.Errorf("unsupported filter field: %s", criterion.Field)
		}
	}
	return filters, nil
}
